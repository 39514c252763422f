// Package contest provides the contest clock and the problem-mode practice
// stopwatch. Both count whole seconds and are driven by an external 1 Hz
// tick (tea.Tick in the UI layer); neither runs its own goroutine.
package contest

import (
	"fmt"
	"time"
)

// Timer derives elapsed contest time from a server-provided participation
// start timestamp. It never runs backward: the initial value comes from the
// wall clock, after which only Tick advances it. Freeze stops it permanently
// (participation ended).
type Timer struct {
	elapsed int
	running bool
	now     func() time.Time
}

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithNow replaces the wall-clock source (used by tests).
func WithNow(now func() time.Time) TimerOption {
	return func(t *Timer) { t.now = now }
}

// NewTimer creates a running timer whose initial elapsed seconds are derived
// from start. A start time in the future yields zero rather than a negative
// count.
func NewTimer(start time.Time, opts ...TimerOption) *Timer {
	t := &Timer{now: time.Now, running: true}
	for _, opt := range opts {
		opt(t)
	}
	if secs := int(t.now().Sub(start) / time.Second); secs > 0 {
		t.elapsed = secs
	}
	return t
}

// Tick advances the timer by one second. No-op once frozen.
func (t *Timer) Tick() {
	if t.running {
		t.elapsed++
	}
}

// Freeze stops the timer at its current value. Used when the participation
// end time becomes known; a frozen timer never resumes.
func (t *Timer) Freeze() {
	t.running = false
}

// Running reports whether the timer is still ticking.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the current elapsed seconds.
func (t *Timer) Elapsed() int {
	return t.elapsed
}

// Stopwatch is the per-problem practice timer in problem mode. It starts at
// zero, can be paused and resumed, and resets on navigation.
type Stopwatch struct {
	elapsed int
	running bool
}

// NewStopwatch creates a running stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{running: true}
}

// Tick advances the stopwatch by one second while running.
func (s *Stopwatch) Tick() {
	if s.running {
		s.elapsed++
	}
}

// Toggle pauses or resumes the stopwatch.
func (s *Stopwatch) Toggle() {
	s.running = !s.running
}

// Reset returns the stopwatch to zero and starts it running.
func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = true
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the current elapsed seconds.
func (s *Stopwatch) Elapsed() int {
	return s.elapsed
}

// FormatHMS renders seconds as zero-padded HH:MM:SS with no upper bound, so
// a 27-hour contest shows as 27:03:10.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatMS renders seconds as zero-padded MM:SS for the practice stopwatch.
func FormatMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
