package draft

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameysr/codex-frontend/internal/api"
)

// recorder collects scheduler writes in order, safely across goroutines.
type recorder struct {
	mu     sync.Mutex
	writes []write
}

type write struct {
	key  Key
	code string
}

func (r *recorder) save(key Key, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, write{key: key, code: code})
}

func (r *recorder) all() []write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]write, len(r.writes))
	copy(out, r.writes)
	return out
}

func (r *recorder) waitFor(t *testing.T, n int) []write {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.all(); len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d writes, have %d", n, len(r.all()))
	return nil
}

func testKey(lang api.Language) Key {
	return Key{ProblemID: "p1", Language: lang}
}

func TestSchedulerFiresAfterInterval(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(10*time.Millisecond, rec.save)
	defer s.Stop()

	s.Schedule(testKey(api.LanguageCPP), "final code")

	writes := rec.waitFor(t, 1)
	require.Len(t, writes, 1)
	assert.Equal(t, "final code", writes[0].code)
	assert.Equal(t, testKey(api.LanguageCPP), writes[0].key)
	assert.False(t, s.HasPending(testKey(api.LanguageCPP)))
}

func TestSchedulerCoalescesBurst(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(30*time.Millisecond, rec.save)
	defer s.Stop()

	key := testKey(api.LanguageCPP)
	for _, code := range []string{"a", "ab", "abc", "abcd"} {
		s.Schedule(key, code)
	}

	rec.waitFor(t, 1)
	// A burst inside one quiet window produces exactly one write, the latest.
	time.Sleep(60 * time.Millisecond)
	writes := rec.all()
	require.Len(t, writes, 1)
	assert.Equal(t, "abcd", writes[0].code)
}

func TestSchedulerIndependentKeys(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(10*time.Millisecond, rec.save)
	defer s.Stop()

	s.Schedule(testKey(api.LanguageCPP), "cpp")
	s.Schedule(testKey(api.LanguageJava), "java")

	writes := rec.waitFor(t, 2)
	require.Len(t, writes, 2)
	got := map[Key]string{}
	for _, w := range writes {
		got[w.key] = w.code
	}
	assert.Equal(t, "cpp", got[testKey(api.LanguageCPP)])
	assert.Equal(t, "java", got[testKey(api.LanguageJava)])
}

func TestSchedulerCancelPending(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(20*time.Millisecond, rec.save)
	defer s.Stop()

	key := testKey(api.LanguageCPP)
	s.Schedule(key, "doomed")
	require.True(t, s.CancelPending(key))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.all())
	assert.False(t, s.CancelPending(key), "second cancel reports nothing pending")
}

// Cancelling a pending write and then saving directly must leave the direct
// save as the last word, never the stale debounced code. This is the ordering
// a language switch and navigation rely on.
func TestSchedulerCancelThenDirectSaveOrdering(t *testing.T) {
	store := NewStore()
	var sched *Scheduler[Key]
	sched = NewScheduler(5*time.Millisecond, func(key Key, code string) {
		store.Save(key, code)
	})
	defer sched.Stop()

	key := testKey(api.LanguageCPP)
	for i := 0; i < 100; i++ {
		sched.Schedule(key, "stale")
		// Race the timer on purpose: sleep right up to the interval so the
		// fire and the cancel land in either order. Whatever happens, the
		// direct save after the cancel must be the last word.
		time.Sleep(time.Duration(i%7) * time.Millisecond)
		sched.CancelPending(key)
		store.Save(key, "flushed")

		time.Sleep(10 * time.Millisecond)
		got, ok := store.Load(key)
		require.True(t, ok)
		require.Equal(t, "flushed", got, "iteration %d: stale debounced write clobbered the flush", i)
	}
}

func TestSchedulerFlushPending(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(time.Hour, rec.save)
	defer s.Stop()

	key := testKey(api.LanguageJavaScript)
	s.Schedule(key, "flush me")
	s.FlushPending(key)

	writes := rec.all()
	require.Len(t, writes, 1)
	assert.Equal(t, "flush me", writes[0].code)
	assert.False(t, s.HasPending(key))

	// Flushing again is a no-op.
	s.FlushPending(key)
	assert.Len(t, rec.all(), 1)
}

func TestSchedulerFlushAll(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(time.Hour, rec.save)
	defer s.Stop()

	s.Schedule(testKey(api.LanguageCPP), "one")
	s.Schedule(testKey(api.LanguageJava), "two")
	s.FlushAll()

	writes := rec.all()
	require.Len(t, writes, 2)
	assert.False(t, s.HasPending(testKey(api.LanguageCPP)))
	assert.False(t, s.HasPending(testKey(api.LanguageJava)))
}

func TestSchedulerStopDropsPending(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(10*time.Millisecond, rec.save)

	key := testKey(api.LanguageCPP)
	s.Schedule(key, "dropped")
	s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.all())

	// Scheduling after Stop is rejected.
	s.Schedule(key, "too late")
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestSchedulerDefaultInterval(t *testing.T) {
	s := NewScheduler[Key](0, func(Key, string) {})
	defer s.Stop()
	assert.Equal(t, DefaultSaveInterval, s.interval)
}

func TestProblemAccessScoping(t *testing.T) {
	store := NewStore()
	sched := NewScheduler(time.Hour, func(key Key, code string) {
		store.Save(key, code)
	})
	defer sched.Stop()

	a := ProblemAccess(store, sched, "p1")
	b := ProblemAccess(store, sched, "p2")

	a.Save(api.LanguageCPP, "for p1")
	b.Save(api.LanguageCPP, "for p2")

	got, ok := a.Load(api.LanguageCPP)
	require.True(t, ok)
	assert.Equal(t, "for p1", got)

	got, ok = b.Load(api.LanguageCPP)
	require.True(t, ok)
	assert.Equal(t, "for p2", got)

	a.Schedule(api.LanguageJava, "pending")
	require.True(t, a.CancelPending(api.LanguageJava))
	_, ok = a.Load(api.LanguageJava)
	assert.False(t, ok)
}

func TestContestProblemAccessScoping(t *testing.T) {
	store := NewContestStore()
	sched := NewScheduler(time.Hour, func(key ContestKey, code string) {
		store.Save(key, code)
	})
	defer sched.Stop()

	a := ContestProblemAccess(store, sched, "c1", "p1")
	b := ContestProblemAccess(store, sched, "c2", "p1")

	a.Save(api.LanguageCPP, "c1 code")
	b.Save(api.LanguageCPP, "c2 code")

	got, ok := a.Load(api.LanguageCPP)
	require.True(t, ok)
	assert.Equal(t, "c1 code", got)

	got, ok = b.Load(api.LanguageCPP)
	require.True(t, ok)
	assert.Equal(t, "c2 code", got)
}
