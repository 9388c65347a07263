package elf

import (
	"debug/elf"
	"os"
	"path/filepath"

	"github.com/wippyai/fwsize"
	"github.com/wippyai/fwsize/errors"
)

// Sections reads the loaded sections of the firmware image at path: every
// section with a nonzero address and a nonzero size, in header order.
// Sections that occupy no memory at run time (debug info, symbol tables,
// the section name table itself) have a zero address and are excluded.
func Sections(path string) ([]fwsize.Section, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(errors.PhaseELF, resolve(path))
	}

	f, err := elf.Open(path)
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseELF, resolve(path), err)
	}
	defer f.Close()

	if len(f.Sections) == 0 {
		return nil, errors.New(errors.PhaseELF, errors.KindParseFailure).
			Path(resolve(path)).
			Detail("image has no section headers").
			Build()
	}

	var samples []fwsize.Section
	for _, s := range f.Sections {
		if s.Addr == 0 || s.Size == 0 {
			continue
		}
		samples = append(samples, fwsize.Section{Name: s.Name, Size: s.Size})
	}
	return samples, nil
}

// resolve makes a path absolute for error reporting. A path that cannot
// be resolved is reported as given.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
