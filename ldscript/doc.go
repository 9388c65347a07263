// Package ldscript provides GNU ld linker script parsing.
//
// This package extracts the memory accounting view of a linker script:
// the MEMORY command's region declarations and the SECTIONS command's
// output section placements. It does not validate scripts or evaluate
// the location counter; it reads just enough structure to answer
// "which regions exist, how large are they, and which output section
// lives (and loads) where".
//
// Basic usage:
//
//	script, err := ldscript.Parse(`MEMORY
//	{
//		FLASH (rx) : ORIGIN = 0x08000000, LENGTH = 512K
//		RAM (xrw)  : ORIGIN = 0x20000000, LENGTH = 128K
//	}
//	SECTIONS
//	{
//		.text : { *(.text*) } > FLASH
//		.data : { *(.data*) } > RAM AT> FLASH
//	}`)
//
// Supported constructs:
//   - MEMORY entries with attribute lists, ORIGIN/LENGTH (and the
//     org/o, len/l spellings), hex and decimal literals, K/M/G scale
//     suffixes, +,-,*,/ expressions, ORIGIN(r)/LENGTH(r) references
//   - SECTIONS output sections with `> REGION` and `AT> REGION`
//     placement, address/type decorations, phdr and fill clauses
//   - Block and preprocessor-style line comments, quoted names,
//     /DISCARD/ sections
//
// Everything else (ENTRY, OUTPUT_FORMAT, PROVIDE, symbol assignments,
// PHDRS, ...) is tolerated and skipped without interpretation.
package ldscript
