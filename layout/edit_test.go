package layout

import (
	"reflect"
	"strings"
	"testing"
)

func twoBank() Layout {
	return Layout{
		{Name: "BANK_A", Length: 4096, Sections: []SectionRecord{{".text", 1000}, {".vectors", 64}}},
		{Name: "BANK_B", Length: 8192, Sections: []SectionRecord{{".data", 500}}},
	}
}

func TestGroupRegions(t *testing.T) {
	t.Run("source_before_dest", func(t *testing.T) {
		lay := twoBank()
		ok := GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_B", SectionName: "bank_a"}.Apply(&lay)
		if !ok {
			t.Fatal("Apply returned false")
		}
		want := Layout{{Name: "BANK_B", Length: 12288, Sections: []SectionRecord{
			{"bank_a", 4096},
			{".data", 500},
		}}}
		if !reflect.DeepEqual(lay, want) {
			t.Errorf("layout = %+v, want %+v", lay, want)
		}
	})

	t.Run("source_after_dest", func(t *testing.T) {
		lay := twoBank()
		ok := GroupRegions{SourceRegion: "BANK_B", DestRegion: "BANK_A", SectionName: "bank_b"}.Apply(&lay)
		if !ok {
			t.Fatal("Apply returned false")
		}
		want := Layout{{Name: "BANK_A", Length: 12288, Sections: []SectionRecord{
			{"bank_b", 8192},
			{".text", 1000},
			{".vectors", 64},
		}}}
		if !reflect.DeepEqual(lay, want) {
			t.Errorf("layout = %+v, want %+v", lay, want)
		}
	})

	t.Run("missing_source", func(t *testing.T) {
		lay := twoBank()
		ok := GroupRegions{SourceRegion: "BANK_C", DestRegion: "BANK_B", SectionName: "x"}.Apply(&lay)
		if ok {
			t.Fatal("Apply returned true")
		}
		if !reflect.DeepEqual(lay, twoBank()) {
			t.Errorf("layout changed: %+v", lay)
		}
	})

	t.Run("missing_dest_leaves_source", func(t *testing.T) {
		lay := twoBank()
		ok := GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_C", SectionName: "x"}.Apply(&lay)
		if ok {
			t.Fatal("Apply returned true")
		}
		if !reflect.DeepEqual(lay, twoBank()) {
			t.Errorf("layout changed: %+v", lay)
		}
	})

	t.Run("source_is_dest", func(t *testing.T) {
		lay := twoBank()
		ok := GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_A", SectionName: "x"}.Apply(&lay)
		if ok {
			t.Fatal("Apply returned true")
		}
		if !reflect.DeepEqual(lay, twoBank()) {
			t.Errorf("layout changed: %+v", lay)
		}
	})
}

func TestIgnore(t *testing.T) {
	t.Run("removes_first_match", func(t *testing.T) {
		lay := Layout{{Name: "RAM", Length: 1024, Sections: []SectionRecord{
			{".stack", 256},
			{".bss", 128},
			{".stack", 64},
		}}}
		ok := Ignore{RegionName: "RAM", SectionName: ".stack"}.Apply(&lay)
		if !ok {
			t.Fatal("Apply returned false")
		}
		want := []SectionRecord{{".bss", 128}, {".stack", 64}}
		if !reflect.DeepEqual(lay[0].Sections, want) {
			t.Errorf("sections = %+v, want %+v", lay[0].Sections, want)
		}
	})

	t.Run("missing_region", func(t *testing.T) {
		lay := twoBank()
		if ok := (Ignore{RegionName: "BANK_C", SectionName: ".text"}).Apply(&lay); ok {
			t.Fatal("Apply returned true")
		}
		if !reflect.DeepEqual(lay, twoBank()) {
			t.Errorf("layout changed: %+v", lay)
		}
	})

	t.Run("missing_section", func(t *testing.T) {
		lay := twoBank()
		if ok := (Ignore{RegionName: "BANK_A", SectionName: ".nope"}).Apply(&lay); ok {
			t.Fatal("Apply returned true")
		}
		if !reflect.DeepEqual(lay, twoBank()) {
			t.Errorf("layout changed: %+v", lay)
		}
	})
}

func TestApplyOrder(t *testing.T) {
	t.Run("order_changes_outcome", func(t *testing.T) {
		fold := GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_B", SectionName: "bank_a"}
		drop := Ignore{RegionName: "BANK_B", SectionName: "bank_a"}

		foldFirst := twoBank()
		foldFirst.Apply([]Edit{fold, drop})

		dropFirst := twoBank()
		dropFirst.Apply([]Edit{drop, fold})

		if reflect.DeepEqual(foldFirst, dropFirst) {
			t.Errorf("edit order had no effect: %+v", foldFirst)
		}
		// Fold-then-drop removes the synthetic record again.
		if got := foldFirst[0].Sections; len(got) != 1 || got[0].Name != ".data" {
			t.Errorf("fold-first sections = %+v", got)
		}
		// Drop-then-fold keeps it; the drop had nothing to match.
		if got := dropFirst[0].Sections; len(got) != 2 || got[0].Name != "bank_a" {
			t.Errorf("drop-first sections = %+v", got)
		}
	})

	t.Run("edits_on_consumed_region_are_noops", func(t *testing.T) {
		lay := twoBank()
		applied := lay.Apply([]Edit{
			GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_B", SectionName: "bank_a"},
			Ignore{RegionName: "BANK_A", SectionName: ".text"},
			GroupRegions{SourceRegion: "BANK_A", DestRegion: "BANK_B", SectionName: "again"},
		})
		if applied != 1 {
			t.Errorf("applied = %d, want 1", applied)
		}
		if len(lay) != 1 || lay[0].Name != "BANK_B" {
			t.Errorf("layout = %+v", lay)
		}
	})
}

func TestDecodeEdits(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		edits, err := DecodeEdits([]byte(`[
			{"GroupRegions": {"source_region": "BOOT",
			                  "dest_region": "FLASH",
			                  "synthetic_section_name": "bootloader"}},
			{"Ignore": {"region_name": "RAM", "section_name": ".stack"}}
		]`))
		if err != nil {
			t.Fatalf("DecodeEdits failed: %v", err)
		}
		if len(edits) != 2 {
			t.Fatalf("got %d edits, want 2", len(edits))
		}

		g, ok := edits[0].(GroupRegions)
		if !ok {
			t.Fatalf("edit 0 is %T, want GroupRegions", edits[0])
		}
		if g.SourceRegion != "BOOT" || g.DestRegion != "FLASH" || g.SectionName != "bootloader" {
			t.Errorf("edit 0 = %+v", g)
		}

		ig, ok := edits[1].(Ignore)
		if !ok {
			t.Fatalf("edit 1 is %T, want Ignore", edits[1])
		}
		if ig.RegionName != "RAM" || ig.SectionName != ".stack" {
			t.Errorf("edit 1 = %+v", ig)
		}
	})

	t.Run("empty", func(t *testing.T) {
		edits, err := DecodeEdits([]byte(`[]`))
		if err != nil {
			t.Fatalf("DecodeEdits failed: %v", err)
		}
		if len(edits) != 0 {
			t.Errorf("got %d edits, want 0", len(edits))
		}
	})

	tests := []struct {
		name, input, wantErr string
	}{
		{"not_array", `{"Ignore": {}}`, "cannot unmarshal"},
		{"unknown_tag", `[{"Rename": {}}]`, "unknown edit type"},
		{"empty_entry", `[{}]`, "expected one"},
		{"two_tags", `[{"Ignore": {}, "GroupRegions": {}}]`, "expected one"},
		{"bad_body", `[{"Ignore": 42}]`, "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEdits([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
		})
	}
}
