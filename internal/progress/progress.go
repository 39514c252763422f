// Package progress tracks locally persisted study progress: the solved
// problems cache and the optional daily-goal configuration. Both are simple
// JSON blobs read and written wholesale through an injected Storage backend.
package progress

import (
	"encoding/json"
	"fmt"
	"time"
)

// TopicProblemSolved is published on the pubsub broker each time a
// problem-mode submission is accepted. The payload is the SolvedProblem.
const TopicProblemSolved = "problem.solved"

const (
	solvedKey = "solved_problems.json"
	goalKey   = "daily_goal.json"
)

// SolvedProblem is one entry in the solved cache.
type SolvedProblem struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags,omitempty"`
	Title      string   `json:"title"`
}

// DailyGoal is the user's configured daily solve target.
type DailyGoal struct {
	Target    int    `json:"target"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Repository provides access to the persisted progress blobs.
type Repository struct {
	storage Storage
	now     func() time.Time
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock replaces the wall-clock source (used by tests for Date stamps).
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a repository over the given storage backend.
func NewRepository(storage Storage, opts ...RepositoryOption) *Repository {
	r := &Repository{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Solved returns the full solved-problems list, empty when never written.
func (r *Repository) Solved() ([]SolvedProblem, error) {
	data, ok, err := r.storage.Read(solvedKey)
	if err != nil {
		return nil, fmt.Errorf("reading solved cache: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var solved []SolvedProblem
	if err := json.Unmarshal(data, &solved); err != nil {
		return nil, fmt.Errorf("decoding solved cache: %w", err)
	}
	return solved, nil
}

// IsSolved reports whether the problem appears in the solved cache.
func (r *Repository) IsSolved(problemID string) bool {
	solved, err := r.Solved()
	if err != nil {
		return false
	}
	for _, p := range solved {
		if p.ID == problemID {
			return true
		}
	}
	return false
}

// RecordSolved appends an entry to the solved cache. The Date field is
// stamped with today when empty. Duplicate solves of the same problem are
// kept; consumers that care about unique counts dedupe on read.
func (r *Repository) RecordSolved(p SolvedProblem) error {
	solved, err := r.Solved()
	if err != nil {
		return err
	}
	if p.Date == "" {
		p.Date = r.now().Format("2006-01-02")
	}
	solved = append(solved, p)

	data, err := json.Marshal(solved)
	if err != nil {
		return fmt.Errorf("encoding solved cache: %w", err)
	}
	if err := r.storage.Write(solvedKey, data); err != nil {
		return fmt.Errorf("writing solved cache: %w", err)
	}
	return nil
}

// SolvedToday returns how many cache entries carry today's date.
func (r *Repository) SolvedToday() (int, error) {
	solved, err := r.Solved()
	if err != nil {
		return 0, err
	}
	today := r.now().Format("2006-01-02")
	n := 0
	for _, p := range solved {
		if p.Date == today {
			n++
		}
	}
	return n, nil
}

// Goal returns the daily goal, or nil when none is configured.
func (r *Repository) Goal() (*DailyGoal, error) {
	data, ok, err := r.storage.Read(goalKey)
	if err != nil {
		return nil, fmt.Errorf("reading daily goal: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var goal DailyGoal
	if err := json.Unmarshal(data, &goal); err != nil {
		return nil, fmt.Errorf("decoding daily goal: %w", err)
	}
	return &goal, nil
}

// SetGoal replaces the daily goal wholesale.
func (r *Repository) SetGoal(goal DailyGoal) error {
	goal.UpdatedAt = r.now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("encoding daily goal: %w", err)
	}
	if err := r.storage.Write(goalKey, data); err != nil {
		return fmt.Errorf("writing daily goal: %w", err)
	}
	return nil
}
