// Package errors provides structured error types for the fwsize tool.
//
// Errors are categorized by Phase (which input or pipeline stage
// failed) and Kind (error category). The Error type carries the
// resolved path of the offending input and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseScript, errors.KindParseFailure).
//		Path("/abs/path/firmware.ld").
//		Detail("line %d: expected region name", line).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseELF, path)
//	err := errors.ParseFailed(errors.PhaseEdits, path, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As; two Errors match when Phase and Kind agree.
//
// Fatal versus non-fatal is a pipeline policy, not an error property:
// everything this package can express aborts the run. Conditions the
// tool tolerates (an unreadable history file, an edit naming a region
// that no longer exists) are handled in place and never constructed as
// errors.
package errors
