package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the boundary the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // label to handle lookup
	PhaseAccess  Phase = "access"  // component get/set
	PhaseInput   Phase = "input"   // input snapshot queries
	PhaseBuffer  Phase = "buffer"  // buffer transfer protocol
	PhaseSession Phase = "session" // session lifecycle
	PhaseGuest   Phase = "guest"   // guest binding / marshalling
	PhaseScript  Phase = "script"  // script host integration
	PhaseScene   Phase = "scene"   // scene loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindNoComponent    Kind = "no_component"
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidHandle  Kind = "invalid_handle"
	KindNilPointer     Kind = "nil_pointer"
	KindBufferTooSmall Kind = "buffer_too_small"
	KindInvalidKey     Kind = "invalid_key"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindDoubleRelease  Kind = "double_release"
	KindSendFailed     Kind = "send_failed"
	KindClosed         Kind = "closed"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindAllocation     Kind = "allocation"
	KindRegistration   Kind = "registration"
)

// Error is the structured error type used throughout the boundary.
// Flat status codes shown to foreign callers are derived from the
// Kind at the literal boundary, never the other way around.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// Convenience constructors for common boundary failures

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NoComponent reports an entity that lacks the requested component
func NoComponent(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoComponent,
		Detail: fmt.Sprintf("entity has no %s component", component),
	}
}

// TypeMismatch reports a property stored under a different type
func TypeMismatch(phase Phase, label, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   []string{label},
		Detail: fmt.Sprintf("property holds %s, requested %s", got, want),
	}
}

// InvalidHandle reports a stale or never-issued entity handle
func InvalidHandle(phase Phase, handle int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %d does not name a live entity", handle),
		Value:  handle,
	}
}

// NilPointer reports a null opaque reference
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("nil %s reference", what),
	}
}

// BufferTooSmall reports a caller buffer insufficient for string
// output. needed is the full byte length including the null terminator.
func BufferTooSmall(phase Phase, needed, capacity int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBufferTooSmall,
		Detail: fmt.Sprintf("need %d bytes, caller supplied %d", needed, capacity),
		Value:  needed,
	}
}

// InvalidKey reports an out-of-range key or mouse button code
func InvalidKey(phase Phase, code int32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidKey,
		Detail: fmt.Sprintf("code %d is not a known key", code),
		Value:  code,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// DoubleRelease reports a buffer released more than once
func DoubleRelease(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDoubleRelease,
		Detail: "buffer already released",
	}
}

// SendFailed reports a command that could not be enqueued
func SendFailed(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSendFailed,
		Detail: "enqueue command",
		Cause:  cause,
	}
}

// Closed reports an operation against a closed session or queue
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// OutOfBounds reports a foreign-memory access outside the memory size
func OutOfBounds(phase Phase, offset, length, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", offset, offset+length, size),
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

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// Registration creates a host-function registration error
func Registration(phase Phase, namespace, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
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
