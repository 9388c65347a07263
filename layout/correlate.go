package layout

import (
	"github.com/wippyai/fwsize"
	"github.com/wippyai/fwsize/errors"
	"github.com/wippyai/fwsize/ldscript"
	"go.uber.org/zap"
)

// Extract reduces a parsed linker script to the skeleton of a report:
// one empty Region per MEMORY entry, in declaration order, plus the
// placement rules the correlator matches samples against. A script
// that declares no memory regions cannot be reported on and fails.
//
// A script may declare the same output section more than once; the
// last declaration wins.
func Extract(script *ldscript.Script) (Layout, []fwsize.Placement, error) {
	if len(script.Regions) == 0 {
		return nil, nil, errors.MissingRegions("")
	}

	lay := make(Layout, 0, len(script.Regions))
	for _, r := range script.Regions {
		lay = append(lay, Region{Name: r.Name, Length: r.Length})
	}

	byName := make(map[string]int)
	var rules []fwsize.Placement
	for _, out := range script.Outputs {
		if out.Region == "" && out.LoadRegion == "" {
			continue
		}
		lma := out.LoadRegion
		if lma == out.Region {
			lma = ""
		}
		rule := fwsize.Placement{Section: out.Name, VMARegion: out.Region, LMARegion: lma}
		if i, ok := byName[out.Name]; ok {
			rules[i] = rule
			continue
		}
		byName[out.Name] = len(rules)
		rules = append(rules, rule)
	}

	Logger().Debug("extracted layout skeleton",
		zap.Int("regions", len(lay)),
		zap.Int("placements", len(rules)))
	return lay, rules, nil
}

// Correlate charges each sampled section to every region its placement
// rule names, by run address, load address, or both. A section whose
// load region differs from its run region appears in two regions; that
// is the point, the bytes exist in both. Samples without a placement
// rule and zero-size samples are dropped. Within a region, records
// follow sample order.
func Correlate(lay Layout, rules []fwsize.Placement, samples []fwsize.Section) {
	byName := make(map[string]fwsize.Placement, len(rules))
	for _, rule := range rules {
		byName[rule.Section] = rule
	}

	for i := range lay {
		region := &lay[i]
		for _, s := range samples {
			if s.Size == 0 {
				continue
			}
			rule, ok := byName[s.Name]
			if !ok {
				continue
			}
			if rule.In(region.Name) {
				region.Sections = append(region.Sections, SectionRecord{Name: s.Name, Size: s.Size})
			}
		}
	}
}
