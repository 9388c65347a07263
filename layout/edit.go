package layout

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Edit is one user-declared structural transformation of a layout.
// Apply reports whether the edit changed anything; an edit that
// references a missing region or section leaves the layout untouched
// and reports false rather than failing. That leniency is deliberate:
// an edits file is often shared across firmware variants that do not
// all have every region.
type Edit interface {
	Apply(l *Layout) bool
}

// GroupRegions folds an entire region into another: the source region
// disappears from the layout and reappears as a single synthetic
// record at the top of the destination, whose capacity grows by the
// source's declared capacity. The classic use is charging a fixed
// bootloader partition against the main flash bank.
type GroupRegions struct {
	SourceRegion string `json:"source_region"`
	DestRegion   string `json:"dest_region"`
	SectionName  string `json:"synthetic_section_name"`
}

// Apply performs the fold. When either region cannot be found, or
// source and destination are the same region, nothing changes.
func (g GroupRegions) Apply(l *Layout) bool {
	src := -1
	for i := range *l {
		if (*l)[i].Name == g.SourceRegion {
			src = i
			break
		}
	}
	if src < 0 {
		return false
	}
	dst := -1
	for i := range *l {
		if i != src && (*l)[i].Name == g.DestRegion {
			dst = i
			break
		}
	}
	if dst < 0 {
		return false
	}

	source := (*l)[src]
	*l = append((*l)[:src], (*l)[src+1:]...)
	if dst > src {
		dst--
	}

	dest := &(*l)[dst]
	dest.Sections = append([]SectionRecord{{Name: g.SectionName, Size: source.Length}}, dest.Sections...)
	dest.Length += source.Length
	return true
}

// Ignore drops the first record with the given name from the named
// region.
type Ignore struct {
	RegionName  string `json:"region_name"`
	SectionName string `json:"section_name"`
}

// Apply removes the record. When the region or the record cannot be
// found, nothing changes.
func (ig Ignore) Apply(l *Layout) bool {
	region := l.Region(ig.RegionName)
	if region == nil {
		return false
	}
	for i := range region.Sections {
		if region.Sections[i].Name == ig.SectionName {
			region.Sections = append(region.Sections[:i], region.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// Apply runs the edits strictly in order and reports how many changed
// the layout. Order matters: a GroupRegions that consumed a region
// turns every later edit naming that region into a no-op. Edits that
// match nothing are skipped with a debug log only.
func (l *Layout) Apply(edits []Edit) int {
	applied := 0
	for _, e := range edits {
		if e.Apply(l) {
			applied++
			continue
		}
		Logger().Debug("edit matched nothing", zap.Any("edit", e))
	}
	return applied
}

// DecodeEdits parses the edits file: a JSON array of single-key
// objects whose key tags the edit type.
//
//	[
//	  {"GroupRegions": {"source_region": "BOOT",
//	                    "dest_region": "FLASH",
//	                    "synthetic_section_name": "bootloader"}},
//	  {"Ignore": {"region_name": "RAM", "section_name": ".stack"}}
//	]
//
// The returned edits preserve file order. Unknown tags and malformed
// entries are errors; whether a missing file is an error is the
// caller's concern.
func DecodeEdits(data []byte) ([]Edit, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	edits := make([]Edit, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return nil, fmt.Errorf("edit %d: expected one GroupRegions or Ignore object", i)
		}
		for tag, body := range entry {
			switch tag {
			case "GroupRegions":
				var g GroupRegions
				if err := json.Unmarshal(body, &g); err != nil {
					return nil, fmt.Errorf("edit %d: %w", i, err)
				}
				edits = append(edits, g)
			case "Ignore":
				var ig Ignore
				if err := json.Unmarshal(body, &ig); err != nil {
					return nil, fmt.Errorf("edit %d: %w", i, err)
				}
				edits = append(edits, ig)
			default:
				return nil, fmt.Errorf("edit %d: unknown edit type %q", i, tag)
			}
		}
	}
	return edits, nil
}
