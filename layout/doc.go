// Package layout is the memory accounting core: it correlates a
// firmware image's sections with the linker script's memory regions
// and prepares the result for reporting.
//
// # Main Types
//
//   - Layout: ordered regions for one build, the unit of persistence
//   - Region: declared capacity plus the ordered records charged to it
//   - SectionRecord: one named size, real or synthetic
//   - Edit: a user-declared transformation (GroupRegions, Ignore)
//   - RegionDiff/SectionDiff: the layout annotated with build deltas
//
// # Pipeline
//
// The stages run in a fixed order, each mutating or consuming the
// previous stage's value:
//
//  1. Extract: linker script → empty regions + placement rules
//  2. Correlate: charge sampled sections to their regions
//  3. Aggregate: fold insignificant sections into "miscellaneous"
//  4. Apply: run the user's edits in file order
//  5. SaveHistory / LoadHistory + Diff: persist and compare builds
//
// # Example
//
//	lay, rules, _ := layout.Extract(script)
//	layout.Correlate(lay, rules, samples)
//	_ = lay.Aggregate(layout.DefaultThreshold)
//	lay.Apply(edits)
//	diffs := layout.Diff(lay, layout.LoadHistory(histPath))
//	_ = layout.SaveHistory(histPath, lay)
//
// Correlation, aggregation, edits, and diffing are pure computation;
// only the history helpers touch the filesystem. Nothing here prints.
package layout
