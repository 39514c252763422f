package draft

import (
	"sync"
	"time"
)

// DefaultSaveInterval is the debounce quiet window for editor keystrokes.
const DefaultSaveInterval = time.Second

// Scheduler coalesces bursts of edits into at most one store write per quiet
// interval. Each key has at most one pending write; scheduling again within
// the window replaces the captured code and restarts the timer.
//
// Ordering invariant: callers that need a synchronous flush (language switch,
// navigation) must call CancelPending before writing the store directly, so a
// pending timer can never fire afterward with stale captured code and clobber
// the flush. FlushPending does the cancel-then-write in one step.
type Scheduler[K comparable] struct {
	mu       sync.Mutex
	interval time.Duration
	save     func(key K, code string)
	pending  map[K]*pendingWrite
	stopped  bool
}

type pendingWrite struct {
	timer *time.Timer
	code  string
}

// NewScheduler creates a scheduler that writes through save after the given
// quiet interval. A non-positive interval falls back to DefaultSaveInterval.
func NewScheduler[K comparable](interval time.Duration, save func(key K, code string)) *Scheduler[K] {
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &Scheduler[K]{
		interval: interval,
		save:     save,
		pending:  make(map[K]*pendingWrite),
	}
}

// Schedule records code as the pending write for key and (re)starts the
// debounce timer. Only the most recently scheduled code is ever written.
func (s *Scheduler[K]) Schedule(key K, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if pw, ok := s.pending[key]; ok {
		pw.timer.Stop()
		pw.code = code
		pw.timer.Reset(s.interval)
		return
	}
	pw := &pendingWrite{code: code}
	pw.timer = time.AfterFunc(s.interval, func() { s.fire(key, pw) })
	s.pending[key] = pw
}

// CancelPending drops any pending write for key without saving it.
// Returns true if a write was pending.
func (s *Scheduler[K]) CancelPending(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pw, ok := s.pending[key]
	if !ok {
		return false
	}
	pw.timer.Stop()
	delete(s.pending, key)
	return true
}

// FlushPending writes any pending code for key immediately and cancels its
// timer. No-op when nothing is pending.
func (s *Scheduler[K]) FlushPending(key K) {
	s.mu.Lock()
	pw, ok := s.pending[key]
	if ok {
		pw.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	if ok {
		s.save(key, pw.code)
	}
}

// FlushAll writes every pending code immediately.
func (s *Scheduler[K]) FlushAll() {
	s.mu.Lock()
	flushed := make(map[K]string, len(s.pending))
	for key, pw := range s.pending {
		pw.timer.Stop()
		flushed[key] = pw.code
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for key, code := range flushed {
		s.save(key, code)
	}
}

// Stop cancels all pending writes and rejects future scheduling. Pending
// edits inside the debounce window are dropped; that loss is bounded by the
// interval and accepted (callers flush on teardown when the last keystrokes
// matter).
func (s *Scheduler[K]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, pw := range s.pending {
		pw.timer.Stop()
		delete(s.pending, key)
	}
}

// HasPending reports whether a write is pending for key.
func (s *Scheduler[K]) HasPending(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// fire runs on the timer goroutine when the quiet interval elapses. The save
// happens under the lock so that once CancelPending returns, no fire can
// write afterward; save callbacks must not call back into the scheduler.
func (s *Scheduler[K]) fire(key K, pw *pendingWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.pending[key]
	if !ok || current != pw {
		// Cancelled or replaced after this timer was queued; the cancel
		// (or the newer write) wins.
		return
	}
	delete(s.pending, key)
	s.save(key, pw.code)
}
