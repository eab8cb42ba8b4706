// Package frame provides frame-aligned callback scheduling.
//
// A Scheduler stands in for a platform's per-frame callback facility: work
// scheduled during one frame runs at the start of the next. Callbacks are
// executed at most once and may be cancelled by token before they run.
// The document pumps its scheduler once per frame.
package frame

import "sync"

// Token identifies a scheduled callback. The zero Token never refers to a
// pending callback, so callers can use it as a "nothing scheduled" sentinel.
type Token uint64

// NoToken is the zero Token.
const NoToken Token = 0

// Scheduler queues callbacks for execution on the next frame.
//
// Scheduler is safe for concurrent use. Callbacks run on whichever goroutine
// calls Flush, in the order they were scheduled.
type Scheduler struct {
	mu      sync.Mutex
	next    Token
	order   []Token
	pending map[Token]func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[Token]func())}
}

// Schedule queues fn for the next flush and returns its cancellation token.
// A nil fn is ignored and NoToken is returned.
func (s *Scheduler) Schedule(fn func()) Token {
	if fn == nil {
		return NoToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := s.next
	s.pending[token] = fn
	s.order = append(s.order, token)
	return token
}

// Cancel drops a pending callback. Cancelling an already-run or unknown
// token is a no-op.
func (s *Scheduler) Cancel(token Token) {
	if token == NoToken {
		return
	}
	s.mu.Lock()
	delete(s.pending, token)
	s.mu.Unlock()
}

// HasPending reports whether any callbacks are waiting for the next flush.
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Flush runs the callbacks scheduled before this call, in schedule order.
// Callbacks scheduled while flushing run on the following flush, mirroring
// how a frame callback scheduled mid-frame waits for the next frame.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	order := s.order
	s.order = nil
	callbacks := make([]func(), 0, len(order))
	for _, token := range order {
		if fn, ok := s.pending[token]; ok {
			callbacks = append(callbacks, fn)
			delete(s.pending, token)
		}
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
