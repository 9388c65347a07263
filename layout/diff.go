package layout

// SectionDiff pairs a record with its signed size change since the
// previous build. Delta 0 covers both "same size" and "nothing to
// compare against".
type SectionDiff struct {
	Name  string
	Size  uint64
	Delta int64
}

// RegionDiff is a region annotated with per-record deltas, ready for
// rendering.
type RegionDiff struct {
	Name     string
	Length   uint64
	Sections []SectionDiff
}

// Diff annotates the current layout with per-record deltas against the
// previous build, matching records by name within the same-named
// region. A missing previous layout, region, or record yields delta 0:
// a section appearing for the first time reads as unchanged, not as
// new growth. Records that vanished since the previous build do not
// appear at all.
func Diff(current, previous Layout) []RegionDiff {
	diffs := make([]RegionDiff, 0, len(current))
	for _, region := range current {
		rd := RegionDiff{Name: region.Name, Length: region.Length}
		prev := previous.Region(region.Name)
		for _, s := range region.Sections {
			var delta int64
			if prev != nil {
				for _, ps := range prev.Sections {
					if ps.Name == s.Name {
						delta = int64(s.Size) - int64(ps.Size)
						break
					}
				}
			}
			rd.Sections = append(rd.Sections, SectionDiff{Name: s.Name, Size: s.Size, Delta: delta})
		}
		diffs = append(diffs, rd)
	}
	return diffs
}
