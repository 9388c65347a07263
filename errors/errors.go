package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which input or pipeline stage the error occurred in
type Phase string

const (
	PhaseELF     Phase = "elf"      // firmware image reading
	PhaseScript  Phase = "ldscript" // linker script parsing
	PhaseEdits   Phase = "edits"    // section edits file
	PhaseLayout  Phase = "layout"   // correlation and aggregation
	PhaseHistory Phase = "history"  // persisted prior layout
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindParseFailure   Kind = "parse_failure"
	KindMissingRegions Kind = "missing_regions"
	KindZeroCapacity   Kind = "zero_capacity"
	KindExec           Kind = "exec"
	KindWriteFailure   Kind = "write_failure"
)

// Error is the structured error type used throughout the tool.
// Every fatal condition in the pipeline is reported as one of these;
// non-fatal conditions (an unreadable history file, an edit that
// matches nothing) never surface as errors at all.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Path   string // resolved path of the offending input, when file-bound
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the resolved path of the offending input
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the pipeline's fatal conditions

// NotFound reports a required input path that does not exist.
// The path should already be resolved to an absolute path.
func NotFound(phase Phase, path string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: "no such file",
	}
}

// ParseFailed reports an input that exists but cannot be decoded.
func ParseFailed(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindParseFailure,
		Path:  path,
		Cause: cause,
	}
}

// MissingRegions reports a linker script that parses but declares no
// memory regions, leaving the correlator nothing to populate.
func MissingRegions(path string) *Error {
	return &Error{
		Phase:  PhaseScript,
		Kind:   KindMissingRegions,
		Path:   path,
		Detail: "script declares no memory regions",
	}
}

// ZeroCapacity reports a region whose declared length is zero, which
// makes its usage percentages undefined.
func ZeroCapacity(region string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindZeroCapacity,
		Detail: fmt.Sprintf("region %q has zero capacity", region),
	}
}

// ExecFailed reports a failure to run the external size program.
func ExecFailed(prog string, cause error) *Error {
	return &Error{
		Phase:  PhaseELF,
		Kind:   KindExec,
		Detail: fmt.Sprintf("run %s", prog),
		Cause:  cause,
	}
}

// WriteFailed reports a failure to persist the history file.
func WriteFailed(path string, cause error) *Error {
	return &Error{
		Phase: PhaseHistory,
		Kind:  KindWriteFailure,
		Path:  path,
		Cause: cause,
	}
}
