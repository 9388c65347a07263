// Package fwsize reports how a firmware image's binary sections consume
// the memory regions declared by its linker script, with a byte-level
// delta against the previous build.
//
// # Architecture Overview
//
// The repository is a batch pipeline built from small packages with
// distinct responsibilities:
//
//	fwsize/              Root package with the Section and Placement boundary types
//	├── cmd/fwsize/      Command line tool: flags, pipeline wiring, exit codes
//	├── elf/             Section inventory from the compiled image (debug/elf,
//	│                    plus the legacy external size-program fallback)
//	├── ldscript/        GNU ld linker script parser (MEMORY and SECTIONS)
//	├── layout/          Region/section correlation, aggregation, edits,
//	│                    history persistence and diffing
//	├── report/          Terminal renderer: usage bars, aligned columns
//	└── errors/          Structured error types
//
// Data flows strictly forward. The elf and ldscript packages each read
// one input to completion; layout correlates their outputs into an
// ordered sequence of regions, folds insignificant sections into a
// single "miscellaneous" record, applies user-declared edits, and diffs
// the result against the layout persisted by the previous run; report
// formats the final, delta-annotated layout. No stage re-enters an
// earlier one, and no state is shared between stages.
//
// # Quick Start
//
// Analyze an image against its linker script:
//
//	fwsize -ld firmware.ld firmware.elf
//
// Fold the bootloader region into flash and hide a section:
//
//	fwsize -ld firmware.ld -section-edits edits.json firmware.elf
//
// where edits.json holds an ordered list of edits:
//
//	[
//	  {"GroupRegions": {"source_region": "BOOT", "dest_region": "FLASH",
//	                    "synthetic_section_name": "bootloader"}},
//	  {"Ignore": {"region_name": "RAM", "section_name": ".heap"}}
//	]
//
// Each run overwrites fw-size.last next to the image; the next run
// reads it back to annotate every section with its growth or shrinkage.
//
// # Library Use
//
// The same pipeline is available programmatically:
//
//	samples, err := elf.Sections("firmware.elf")
//	script, err := ldscript.Parse(source)
//	regions, rules, err := layout.Extract(script)
//	layout.Correlate(regions, rules, samples)
//	err = regions.Aggregate(layout.DefaultThreshold)
//	regions.Apply(edits)
//	diff := layout.Diff(regions, layout.LoadHistory(path))
//	report.New(os.Stdout).Render(diff)
//
// Computation is pure and deterministic: the only side effects live at
// the edges (file reads, the stdout report, the history write).
package fwsize
