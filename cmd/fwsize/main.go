package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/fwsize"
	"github.com/wippyai/fwsize/elf"
	"github.com/wippyai/fwsize/errors"
	"github.com/wippyai/fwsize/layout"
	"github.com/wippyai/fwsize/ldscript"
	"github.com/wippyai/fwsize/report"
)

func main() {
	var (
		ldFile      = flag.String("ld", "", "Path to the linker script")
		editsFile   = flag.String("section-edits", "", "Path to a JSON section edits file")
		sizeProg    = flag.String("size-prog", "", "Read sections with an external size program instead of the native reader")
		noColor     = flag.Bool("no-color", false, "Disable ANSI styling")
		summary     = flag.Bool("summary", false, "Print a per-region totals table instead of the bar report")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	// The legacy tool took these; sizes are always human readable now.
	flag.Bool("human-readable", false, "Accepted for compatibility and ignored")
	flag.Bool("H", false, "Accepted for compatibility and ignored")
	flag.Parse()

	if flag.NArg() != 1 || *ldFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: fwsize -ld <script.ld> [flags] <firmware.elf>")
		fmt.Fprintln(os.Stderr, "       fwsize -ld <script.ld> -summary <firmware.elf>")
		fmt.Fprintln(os.Stderr, "       fwsize -ld <script.ld> -i <firmware.elf>  (interactive mode)")
		os.Exit(1)
	}
	elfFile := flag.Arg(0)

	if *verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			ldscript.SetLogger(logger)
			layout.SetLogger(logger)
		}
	}

	if *interactive {
		if err := runInteractive(elfFile, *ldFile, *editsFile, *sizeProg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(elfFile, *ldFile, *editsFile, *sizeProg, *summary, *noColor); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(elfFile, ldFile, editsFile, sizeProg string, summaryOnly, noColor bool) error {
	diffs, lay, err := analyze(elfFile, ldFile, editsFile, sizeProg)
	if err != nil {
		return err
	}

	if summaryOnly {
		printSummary(os.Stdout, diffs)
	} else {
		r := report.New(os.Stdout)
		if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
			r.SetColor(false)
		}
		if err := r.Render(diffs); err != nil {
			return err
		}
	}

	return layout.SaveHistory(layout.HistoryPath(elfFile), lay)
}

// analyze runs the measurement pipeline up to diffing. All four inputs
// are read to completion first; the computation that follows is pure.
// The returned layout is the state a successful run persists.
func analyze(elfFile, ldFile, editsFile, sizeProg string) ([]layout.RegionDiff, layout.Layout, error) {
	samples, err := readSections(elfFile, sizeProg)
	if err != nil {
		return nil, nil, err
	}

	script, err := parseScript(ldFile)
	if err != nil {
		return nil, nil, err
	}

	var edits []layout.Edit
	if editsFile != "" {
		if edits, err = readEdits(editsFile); err != nil {
			return nil, nil, err
		}
	}

	prior := layout.LoadHistory(layout.HistoryPath(elfFile))

	lay, rules, err := layout.Extract(script)
	if err != nil {
		return nil, nil, err
	}
	layout.Correlate(lay, rules, samples)

	if err := lay.Aggregate(layout.DefaultThreshold); err != nil {
		return nil, nil, err
	}
	lay.Apply(edits)

	return layout.Diff(lay, prior), lay, nil
}

func readSections(elfFile, sizeProg string) ([]fwsize.Section, error) {
	if sizeProg != "" {
		return elf.SizeProgSections(elfFile, sizeProg)
	}
	return elf.Sections(elfFile)
}

func parseScript(path string) (*ldscript.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseScript, resolve(path))
		}
		return nil, errors.ParseFailed(errors.PhaseScript, resolve(path), err)
	}

	script, err := ldscript.Parse(string(data))
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseScript, resolve(path), err)
	}
	return script, nil
}

func readEdits(path string) ([]layout.Edit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseEdits, resolve(path))
		}
		return nil, errors.ParseFailed(errors.PhaseEdits, resolve(path), err)
	}

	edits, err := layout.DecodeEdits(data)
	if err != nil {
		return nil, errors.ParseFailed(errors.PhaseEdits, resolve(path), err)
	}
	return edits, nil
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
