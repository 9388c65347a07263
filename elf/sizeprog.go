package elf

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/wippyai/fwsize"
	"github.com/wippyai/fwsize/errors"
)

// DefaultSizeProg is the binutils size program used when none is named.
const DefaultSizeProg = "arm-none-eabi-size"

// SizeProgSections reads the section inventory by invoking an external
// binutils size program instead of parsing the image natively. This is
// the pre-native extraction path, kept for toolchains whose output the
// native reader cannot handle; prog runs as `prog -A -d path` and its
// SysV-style listing is parsed with the same nonzero-address,
// nonzero-size filter Sections applies.
func SizeProgSections(path, prog string) ([]fwsize.Section, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(errors.PhaseELF, resolve(path))
	}
	if prog == "" {
		prog = DefaultSizeProg
	}

	out, err := exec.Command(prog, "-A", "-d", path).Output()
	if err != nil {
		return nil, errors.ExecFailed(prog, err)
	}

	samples, err := parseSysV(string(out))
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseELF, resolve(path), err)
	}
	return samples, nil
}

// parseSysV parses the `size -A -d` listing: a file name line, a column
// header line, then one line per section holding name, size and address
// in decimal. The trailing Total line carries no address and drops out
// through the address filter.
func parseSysV(listing string) ([]fwsize.Section, error) {
	var samples []fwsize.Section

	lines := strings.Split(listing, "\n")
	for i, line := range lines {
		if i < 2 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		size, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, errors.New(errors.PhaseELF, errors.KindParseFailure).
				Detail("size listing line %d: bad size %q", i+1, fields[1]).
				Build()
		}

		var addr uint64
		if len(fields) >= 3 {
			addr, err = strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return nil, errors.New(errors.PhaseELF, errors.KindParseFailure).
					Detail("size listing line %d: bad address %q", i+1, fields[2]).
					Build()
			}
		}

		if addr == 0 || size == 0 {
			continue
		}
		samples = append(samples, fwsize.Section{Name: fields[0], Size: size})
	}
	return samples, nil
}
