package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // program to bytes
	PhaseDecode   Phase = "decode"   // bytes to program
	PhaseValidate Phase = "validate" // program consistency checks
	PhaseRender   Phase = "render"   // instruction stream consumption
	PhaseParse    Phase = "parse"    // markup parsing
	PhaseLoad     Phase = "load"     // file and config loading
)

// Kind categorizes the error
type Kind string

const (
	KindTruncatedHeader Kind = "truncated_header"
	KindTruncatedText   Kind = "truncated_text"
	KindMisaligned      Kind = "misaligned_stream"
	KindUnknownOpcode   Kind = "unknown_opcode"
	KindInvalidStyleVar Kind = "invalid_style_var"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindInvalidData     Kind = "invalid_data"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
)

// Error is the structured error type used throughout swb
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Section string // buffer section or program part, e.g. "header", "text", "code"
	Detail  string
	Offset  int // byte offset or instruction index within Section
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" at ")
		b.WriteString(strconv.Itoa(e.Offset))
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

// Unwrap returns the underlying cause
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

// At sets the section and offset the error was detected at
func (b *Builder) At(section string, offset int) *Builder {
	b.err.Section = section
	b.err.Offset = offset
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Decoder constructors. Each one is terminal for the decode call that
// produced it.

// TruncatedHeader reports a buffer shorter than the 8-byte length header.
func TruncatedHeader(have int) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindTruncatedHeader,
		Section: "header",
		Offset:  0,
		Detail:  fmt.Sprintf("need 8 bytes, have %d", have),
		Value:   have,
	}
}

// TruncatedText reports a text pool shorter than its declared length.
func TruncatedText(offset int, declared uint64, have int) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindTruncatedText,
		Section: "text",
		Offset:  offset,
		Detail:  fmt.Sprintf("declared %d bytes, have %d", declared, have),
		Value:   declared,
	}
}

// Misaligned reports an instruction section that is not a whole number of records.
func Misaligned(offset, length, recordSize int) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindMisaligned,
		Section: "code",
		Offset:  offset,
		Detail:  fmt.Sprintf("%d bytes is not a multiple of %d", length, recordSize),
		Value:   length,
	}
}

// UnknownOpcode reports a record whose type tag names no instruction.
func UnknownOpcode(offset int, tag uint8) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindUnknownOpcode,
		Section: "code",
		Offset:  offset,
		Detail:  fmt.Sprintf("opcode %d", tag),
		Value:   tag,
	}
}

// InvalidStyleVar reports a push/pop argument that is not a style var tag.
func InvalidStyleVar(offset int, value uint64) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindInvalidStyleVar,
		Section: "code",
		Offset:  offset,
		Detail:  fmt.Sprintf("style var encoding %d", value),
		Value:   value,
	}
}

// OutOfBounds creates an out of bounds error for a text range at the given
// instruction index.
func OutOfBounds(phase Phase, index int, end uint64, length int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOutOfBounds,
		Section: "code",
		Offset:  index,
		Detail:  fmt.Sprintf("range end %d out of bounds (text length %d)", end, length),
		Value:   end,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
