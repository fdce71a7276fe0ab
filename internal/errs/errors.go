// Package errs provides the error taxonomy shared by every stage of a run.
//
// Catalog access, layout and workbook output wrap their failures into
// *errs.Error so the CLI can tell a locked output file apart from a broken
// connection without importing driver packages:
//
//	if errs.IsOutputLocked(err) {
//	    fmt.Fprintln(os.Stderr, "close the workbook and run again")
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a failure. None of them is retried.
type Kind int

const (
	KindUnknown         Kind = iota
	KindConnectFailed        // catalog connection could not be established
	KindQueryFailed          // one catalog query failed
	KindOutputLocked         // output path held open by another process
	KindLayoutInvariant      // name collision or table without columns
	KindInvalidInput         // bad configuration or connection URL
)

func (k Kind) String() string {
	switch k {
	case KindConnectFailed:
		return "connect_failed"
	case KindQueryFailed:
		return "query_failed"
	case KindOutputLocked:
		return "output_locked"
	case KindLayoutInvariant:
		return "layout_invariant"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is the single error type returned across the module.
type Error struct {
	Kind    Kind
	Op      string // failing operation, e.g. "column_info"
	Object  string // table name or output path, when known
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op
		if e.Object != "" {
			msg += " " + e.Object
		}
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// Connect wraps a failure to open the catalog connection.
func Connect(msg string, cause error) *Error {
	return &Error{Kind: KindConnectFailed, Message: msg, Cause: cause}
}

// Query wraps a failed catalog query with the operation and table it served.
func Query(op, table string, cause error) *Error {
	return &Error{Kind: KindQueryFailed, Op: op, Object: table, Cause: cause}
}

// OutputLocked reports that path could not be written because another
// process holds it open.
func OutputLocked(path string, cause error) *Error {
	return &Error{Kind: KindOutputLocked, Op: "write", Object: path, Message: "file is open in another program", Cause: cause}
}

// Layout reports a broken layout invariant.
func Layout(format string, args ...any) *Error {
	return &Error{Kind: KindLayoutInvariant, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports bad configuration.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// --- Predicates ---

// IsConnectFailed reports whether err is a catalog connection failure.
func IsConnectFailed(err error) bool {
	return kindOf(err) == KindConnectFailed
}

// IsQueryFailed reports whether err is a catalog query failure.
func IsQueryFailed(err error) bool {
	return kindOf(err) == KindQueryFailed
}

// IsOutputLocked reports whether err means the output file is held open.
func IsOutputLocked(err error) bool {
	return kindOf(err) == KindOutputLocked
}

// IsLayoutInvariant reports whether err is a layout invariant violation.
func IsLayoutInvariant(err error) bool {
	return kindOf(err) == KindLayoutInvariant
}

// IsInvalidInput reports whether err was caused by bad configuration.
func IsInvalidInput(err error) bool {
	return kindOf(err) == KindInvalidInput
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	return kindOf(err)
}

// Fields returns the structured parts of err for logging: its kind and,
// when known, the failing operation and object.
func Fields(err error) map[string]any {
	fields := map[string]any{"kind": kindOf(err).String()}
	var e *Error
	if errors.As(err, &e) {
		if e.Op != "" {
			fields["op"] = e.Op
		}
		if e.Object != "" {
			fields["object"] = e.Object
		}
	}
	return fields
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
