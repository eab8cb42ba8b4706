package errors

import (
	"sync"
	"time"
)

// Handler receives reported errors and recovered panics.
type Handler interface {
	HandleError(err *Error)
	HandlePanic(err *PanicError)
}

var (
	handlerMu sync.RWMutex

	// defaultHandler is the global error handler, a non-verbose LogHandler
	// unless replaced via SetHandler.
	defaultHandler Handler = &LogHandler{}
)

// SetHandler configures the global error handler and returns the previous
// one. Pass nil to restore the default LogHandler.
func SetHandler(h Handler) Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := defaultHandler
	if h == nil {
		h = &LogHandler{}
	}
	defaultHandler = h
	return prev
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return defaultHandler
}

// Report sends an error to the global handler. If err.Timestamp is zero it
// is set to the current time.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandleError(err)
}

// ReportPanic sends a recovered panic to the global handler. If
// err.Timestamp is zero it is set to the current time.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	getHandler().HandlePanic(err)
}
