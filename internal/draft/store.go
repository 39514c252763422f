// Package draft keeps a user's in-progress source code keyed by problem and
// language, so edits survive language switches and navigation within a
// session. Stores are in-memory for the life of the process; last write wins.
//
// An empty string is a valid saved draft (the user deleted all code on
// purpose) and is distinct from "never saved": Load reports absence through
// its bool, and callers fall back to the starter template only on absence.
package draft

import (
	"sync"

	"github.com/Ameysr/codex-frontend/internal/api"
)

// Key identifies one problem-mode draft.
type Key struct {
	ProblemID string
	Language  api.Language
}

// Store maps (problem, language) to draft source text.
type Store struct {
	mu     sync.RWMutex
	drafts map[Key]string
}

// NewStore creates an empty problem-mode draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[Key]string)}
}

// Save inserts or overwrites the draft for key. Empty code is stored, not
// deleted.
func (s *Store) Save(key Key, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = code
}

// Load returns the draft for key. The bool is false when no draft was ever
// saved, which callers must distinguish from a saved empty string.
func (s *Store) Load(key Key) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.drafts[key]
	return code, ok
}

// Has reports whether a draft exists for key.
func (s *Store) Has(key Key) bool {
	_, ok := s.Load(key)
	return ok
}

// Clear removes every draft for the problem, across all languages.
// Clearing a problem with no drafts is a no-op.
func (s *Store) Clear(problemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.drafts {
		if key.ProblemID == problemID {
			delete(s.drafts, key)
		}
	}
}

// Len returns the number of stored drafts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
