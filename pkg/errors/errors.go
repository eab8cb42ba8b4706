// Package errors provides structured error reporting for sizewatch.
//
// The detector never lets a failure escape as a panic: user-supplied
// callbacks run behind recovery, and anything recovered is reported through
// a pluggable global handler. Control-flow conditions (unresolvable target,
// headless document, absent callbacks) are silent no-ops and never reach
// this package.
package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Kind categorizes a reported error.
type Kind int

const (
	// KindUnknown indicates an error of unknown origin.
	KindUnknown Kind = iota
	// KindCallback indicates a failure inside a user-supplied callback.
	KindCallback
	// KindRender indicates a failure while producing render output.
	KindRender
	// KindConfig indicates an invalid configuration value.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindCallback:
		return "callback"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a structured error raised by the library.
type Error struct {
	// Op is the operation that failed (e.g. "detector.commit").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	// Op is the operation whose callback panicked.
	Op string
	// Value is the recovered panic value.
	Value any
	// StackTrace contains the call stack captured at recovery.
	StackTrace string
	// Timestamp is when the panic was recovered.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// CaptureStack returns the current goroutine's stack, trimmed of the
// capture frames themselves.
func CaptureStack() string {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])

	// Drop the header line and the CaptureStack frame (two lines per frame).
	lines := strings.Split(stack, "\n")
	if len(lines) > 3 {
		return lines[0] + "\n" + strings.Join(lines[3:], "\n")
	}
	return stack
}
