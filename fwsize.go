package fwsize

// Section is one loaded section sampled from a firmware image: its name
// and its size in bytes. Samples are immutable; they are produced once
// per build by the elf package and consumed by layout.Correlate.
type Section struct {
	Name string
	Size uint64
}

// Placement records which memory region an output section's run-time
// (virtual) address belongs to, and optionally the distinct region its
// load address belongs to. The load region differs for sections that
// are stored in one region and copied to another at startup, such as
// initialized data kept in flash but executed from RAM.
type Placement struct {
	Section   string
	VMARegion string
	LMARegion string // empty when the load region equals the run region
}

// In reports whether the placement assigns its section to the named
// region, either by run-time address or by load address.
func (p Placement) In(region string) bool {
	return p.VMARegion == region || p.LMARegion == region
}
