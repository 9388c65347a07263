package layout

import (
	"encoding/json"
	"fmt"
)

// SectionRecord is a region's view of one section after correlation,
// aggregation, and edits. Records can be synthetic, with no backing
// ELF section: a folded-in region or the miscellaneous bucket.
type SectionRecord struct {
	Name string
	Size uint64
}

// MarshalJSON encodes the record as a [name, size] pair, the shape
// the history file stores.
func (r SectionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.Size})
}

// UnmarshalJSON decodes the [name, size] pair form.
func (r *SectionRecord) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("section record: expected [name, size], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Name); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &r.Size)
}

// Region is a named memory range with its declared capacity and the
// ordered records charged against it. Length comes from the linker
// script, never from measurement. Record order is significant: it is
// the rendering order and drives bar color alternation. Records may
// sum to more than Length; the report renders that as >100%.
type Region struct {
	Name     string          `json:"name"`
	Length   uint64          `json:"length"`
	Sections []SectionRecord `json:"sections"`
}

// Used returns the number of bytes charged against the region.
func (r *Region) Used() uint64 {
	var total uint64
	for _, s := range r.Sections {
		total += s.Size
	}
	return total
}

// Layout is the ordered set of regions for one build. Two layouts can
// be alive during a run: the one computed from the current build and
// the one loaded from the previous run's history file.
type Layout []Region

// Region returns a pointer to the named region for in-place mutation,
// or nil when the layout has no region with that name.
func (l Layout) Region(name string) *Region {
	for i := range l {
		if l[i].Name == name {
			return &l[i]
		}
	}
	return nil
}
