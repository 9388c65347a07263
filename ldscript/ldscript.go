package ldscript

import (
	"github.com/wippyai/fwsize/ldscript/internal/token"
	"go.uber.org/zap"
)

// MemoryRegion is one entry of a MEMORY command: a named address range
// with a declared capacity.
type MemoryRegion struct {
	Name   string
	Attrs  string
	Origin uint64
	Length uint64
}

// OutputSection is one output section definition from a SECTIONS
// command. Region is the target of the `> REGION` annotation (the
// section's run-time home), LoadRegion the target of `AT> REGION`
// (where the section's image is stored). Either may be empty when the
// script does not place the section.
type OutputSection struct {
	Name       string
	Region     string
	LoadRegion string
}

// Script is the parsed form of a linker script, reduced to the parts
// that matter for memory accounting: region declarations and section
// placements. Everything else in the script is skipped during parsing.
type Script struct {
	Regions []MemoryRegion
	Outputs []OutputSection
}

// Region returns the declared region with the given name.
func (s *Script) Region(name string) (MemoryRegion, bool) {
	for _, r := range s.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return MemoryRegion{}, false
}

// Parse reads GNU ld linker script source and extracts its MEMORY
// regions and SECTIONS placements. Commands outside those two blocks
// (ENTRY, OUTPUT_FORMAT, symbol assignments, ...) are tolerated and
// skipped. A script with no MEMORY command parses successfully with an
// empty Regions slice; requiring regions is the caller's policy.
func Parse(source string) (*Script, error) {
	tokens := token.Tokenize(source)
	p := newParser(tokens)
	script, err := p.parse()
	if err != nil {
		return nil, err
	}
	Logger().Debug("parsed linker script",
		zap.Int("regions", len(script.Regions)),
		zap.Int("outputs", len(script.Outputs)))
	return script, nil
}
