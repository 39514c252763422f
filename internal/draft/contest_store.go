package draft

import (
	"sync"

	"github.com/Ameysr/codex-frontend/internal/api"
)

// ContestKey identifies one contest-mode draft.
type ContestKey struct {
	ContestID string
	ProblemID string
	Language  api.Language
}

// ContestStore maps (contest, problem, language) to draft source text.
// Buckets are nested so that clearing a problem can drop an emptied contest
// bucket entirely.
type ContestStore struct {
	mu       sync.RWMutex
	contests map[string]map[string]map[api.Language]string
}

// NewContestStore creates an empty contest-mode draft store.
func NewContestStore() *ContestStore {
	return &ContestStore{contests: make(map[string]map[string]map[api.Language]string)}
}

// Save inserts or overwrites the draft for key. Empty code is stored, not
// deleted.
func (s *ContestStore) Save(key ContestKey, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	problems := s.contests[key.ContestID]
	if problems == nil {
		problems = make(map[string]map[api.Language]string)
		s.contests[key.ContestID] = problems
	}
	langs := problems[key.ProblemID]
	if langs == nil {
		langs = make(map[api.Language]string)
		problems[key.ProblemID] = langs
	}
	langs[key.Language] = code
}

// Load returns the draft for key; the bool is false when never saved.
func (s *ContestStore) Load(key ContestKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.contests[key.ContestID][key.ProblemID][key.Language]
	return code, ok
}

// Has reports whether a draft exists for key.
func (s *ContestStore) Has(key ContestKey) bool {
	_, ok := s.Load(key)
	return ok
}

// Clear removes every draft for the contest problem, across all languages,
// and drops the contest bucket once its last problem is cleared. Clearing an
// absent scope is a no-op.
func (s *ContestStore) Clear(contestID, problemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	problems, ok := s.contests[contestID]
	if !ok {
		return
	}
	delete(problems, problemID)
	if len(problems) == 0 {
		delete(s.contests, contestID)
	}
}

// HasContest reports whether any draft exists under the contest.
func (s *ContestStore) HasContest(contestID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contests[contestID]) > 0
}

// Len returns the total number of stored drafts across all contests.
func (s *ContestStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, problems := range s.contests {
		for _, langs := range problems {
			n += len(langs)
		}
	}
	return n
}
