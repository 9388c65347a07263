// Package elf produces the section inventory of a firmware image: the
// ordered (name, size) samples for every section that is actually
// loaded, meaning it has both a nonzero address and a nonzero size.
//
// Two extraction paths exist. Sections parses the image natively with
// debug/elf and is the default. SizeProgSections shells out to a
// binutils size program and parses its SysV listing; it predates the
// native reader and remains available through the -size-prog flag for
// images the native reader cannot handle.
//
// Both paths produce identical inventories for well-formed images, and
// neither interprets section contents: the inventory is the raw
// material the layout package correlates against the linker script's
// memory regions.
package elf
