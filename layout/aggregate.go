package layout

import (
	"github.com/wippyai/fwsize/errors"
	"go.uber.org/zap"
)

// DefaultThreshold is the materiality cutoff used by Aggregate, in
// percent of region capacity.
const DefaultThreshold = 2.0

// MiscellaneousName is the name of the synthetic record that collects
// the folded sections of a region.
const MiscellaneousName = "miscellaneous"

// Aggregate folds each region's insignificant sections into a single
// trailing record. A section is insignificant when it occupies
// strictly less than threshold percent of the region's declared
// capacity. Significant sections keep their relative order; the
// miscellaneous record is appended only when the folded sizes sum to
// something. A region with zero capacity has no defined percentages
// and fails the run.
func (l Layout) Aggregate(threshold float64) error {
	for i := range l {
		region := &l[i]
		if region.Length == 0 {
			return errors.ZeroCapacity(region.Name)
		}

		var kept []SectionRecord
		var folded uint64
		for _, s := range region.Sections {
			percent := 100 * float64(s.Size) / float64(region.Length)
			if percent < threshold {
				folded += s.Size
				continue
			}
			kept = append(kept, s)
		}
		if folded != 0 {
			kept = append(kept, SectionRecord{Name: MiscellaneousName, Size: folded})
			Logger().Debug("folded insignificant sections",
				zap.String("region", region.Name),
				zap.Uint64("total", folded))
		}
		region.Sections = kept
	}
	return nil
}
