// Package submit coordinates run and submit requests for the active editor
// session: one in-flight request per operation, a stale-response guard keyed
// by a navigation generation counter, and synthetic failure results so the
// UI never shows stale output after an error.
package submit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/log"
	"github.com/Ameysr/codex-frontend/internal/progress"
	"github.com/Ameysr/codex-frontend/internal/pubsub"
)

// Backend is the slice of the API client the coordinator needs.
type Backend interface {
	Run(ctx context.Context, problemID string, req api.RunRequest) (*api.RunResult, error)
	Submit(ctx context.Context, problemID string, req api.SubmitRequest) (*api.SubmissionResult, error)
	ContestSubmit(ctx context.Context, problemID string, req api.ContestSubmitRequest) (*api.SubmissionResult, error)
}

// Scope identifies where a request originated. Responses are discarded when
// the active scope generation has moved on by the time they arrive.
type Scope struct {
	ProblemID  string
	ContestID  string    // empty in problem mode
	ContestEnd time.Time // zero in problem mode
}

// ContestMode reports whether the scope is a contest problem.
func (s Scope) ContestMode() bool { return s.ContestID != "" }

// RunOutcome is the result of a Run call.
type RunOutcome struct {
	// Ignored means another run was already in flight; nothing was sent.
	Ignored bool
	// Stale means the scope changed while the request was in flight; the
	// response was discarded and must not be displayed.
	Stale bool
	// Result is the run result, synthetic on backend failure.
	Result *api.RunResult
}

// SubmitOutcome is the result of a Submit call.
type SubmitOutcome struct {
	Ignored bool
	Stale   bool
	// ContestEnded means the contest deadline had passed at send time; the
	// request was refused locally without a network round trip.
	ContestEnded bool
	// Result is the submission result, synthetic on backend failure.
	Result *api.SubmissionResult
	// Solved is set when an accepted problem-mode submission was recorded
	// in the local solved cache.
	Solved *progress.SolvedProblem
}

// Coordinator serializes run/submit traffic for the active session. Run and
// Submit have independent in-flight flags so they never stomp on each
// other's displayed result. Safe for concurrent use; calls block for the
// duration of the network request and are meant to run inside tea.Cmd
// goroutines.
type Coordinator struct {
	backend  Backend
	progress *progress.Repository
	broker   *pubsub.Broker
	now      func() time.Time

	mu             sync.Mutex
	generation     uint64
	runInFlight    bool
	submitInFlight bool
	lastRun        *api.RunResult
	lastSubmit     *api.SubmissionResult
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the clock used for the contest-expiry pre-check. It
// must be the same source the contest timer uses.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// New creates a coordinator. progress and broker may be nil in contest mode,
// where solved markers are not recorded.
func New(backend Backend, repo *progress.Repository, broker *pubsub.Broker, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend:  backend,
		progress: repo,
		broker:   broker,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bump invalidates all in-flight requests and cached results. Call on every
// scope navigation: late responses from the previous scope compare their
// captured generation against the current one and get discarded.
func (c *Coordinator) Bump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.runInFlight = false
	c.submitInFlight = false
	c.lastRun = nil
	c.lastSubmit = nil
}

// LastRun returns the most recent run result for the active scope.
func (c *Coordinator) LastRun() *api.RunResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRun
}

// LastSubmit returns the most recent submission result for the active scope.
func (c *Coordinator) LastSubmit() *api.SubmissionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSubmit
}

// RunBusy reports whether a run request is outstanding.
func (c *Coordinator) RunBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runInFlight
}

// SubmitBusy reports whether a submit request is outstanding.
func (c *Coordinator) SubmitBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitInFlight
}

// Run executes the current editor code against the backend. A second call
// while one is outstanding is ignored, never raced.
func (c *Coordinator) Run(ctx context.Context, scope Scope, code string, lang api.Language, customInput string) RunOutcome {
	c.mu.Lock()
	if c.runInFlight {
		c.mu.Unlock()
		return RunOutcome{Ignored: true}
	}
	gen := c.generation
	c.runInFlight = true
	c.lastRun = nil
	c.mu.Unlock()

	reqID := uuid.NewString()
	log.Debug(log.CatSubmit, "run %s problem=%s lang=%s gen=%d", reqID, scope.ProblemID, lang, gen)

	result, err := c.backend.Run(ctx, scope.ProblemID, api.RunRequest{
		Code:        code,
		Language:    lang,
		CustomInput: customInput,
	})
	if err != nil {
		log.Error(log.CatSubmit, "run %s failed: %v", reqID, err)
		result = &api.RunResult{Success: false, Error: runErrorMessage(err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		log.Debug(log.CatSubmit, "run %s discarded: scope moved on", reqID)
		return RunOutcome{Stale: true}
	}
	c.runInFlight = false
	c.lastRun = result
	return RunOutcome{Result: result}
}

// Submit grades the current editor code. In contest mode the contest end
// time is checked against the shared clock immediately before sending; an
// expired contest refuses the submission locally. The backend remains the
// authority on post-deadline enforcement.
func (c *Coordinator) Submit(ctx context.Context, scope Scope, code string, lang api.Language, prob *api.Problem) SubmitOutcome {
	if scope.ContestMode() && !scope.ContestEnd.IsZero() && !c.now().Before(scope.ContestEnd) {
		log.Info(log.CatSubmit, "contest %s ended, submission refused locally", scope.ContestID)
		return SubmitOutcome{ContestEnded: true}
	}

	c.mu.Lock()
	if c.submitInFlight {
		c.mu.Unlock()
		return SubmitOutcome{Ignored: true}
	}
	gen := c.generation
	c.submitInFlight = true
	c.lastSubmit = nil
	c.mu.Unlock()

	reqID := uuid.NewString()
	log.Debug(log.CatSubmit, "submit %s problem=%s lang=%s gen=%d contest=%q", reqID, scope.ProblemID, lang, gen, scope.ContestID)

	var result *api.SubmissionResult
	var err error
	if scope.ContestMode() {
		result, err = c.backend.ContestSubmit(ctx, scope.ProblemID, api.ContestSubmitRequest{
			Code:      code,
			Language:  lang,
			ContestID: scope.ContestID,
		})
	} else {
		result, err = c.backend.Submit(ctx, scope.ProblemID, api.SubmitRequest{
			Code:     code,
			Language: lang,
		})
	}
	if err != nil {
		log.Error(log.CatSubmit, "submit %s failed: %v", reqID, err)
		result = &api.SubmissionResult{Accepted: false, Error: submitErrorMessage(err)}
	}

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		log.Debug(log.CatSubmit, "submit %s discarded: scope moved on", reqID)
		return SubmitOutcome{Stale: true}
	}
	c.submitInFlight = false
	c.lastSubmit = result
	c.mu.Unlock()

	outcome := SubmitOutcome{Result: result}
	if result.Accepted && !scope.ContestMode() {
		outcome.Solved = c.recordSolved(scope.ProblemID, prob)
	}
	return outcome
}

// recordSolved appends a solved marker and notifies subscribers. Failures
// are logged, not surfaced: the submission itself succeeded.
func (c *Coordinator) recordSolved(problemID string, prob *api.Problem) *progress.SolvedProblem {
	if c.progress == nil {
		return nil
	}
	solved := progress.SolvedProblem{
		ID:   problemID,
		Date: c.now().Format("2006-01-02"),
	}
	if prob != nil {
		solved.Difficulty = prob.Difficulty
		solved.Tags = prob.Tags
		solved.Title = prob.Title
	}
	if err := c.progress.RecordSolved(solved); err != nil {
		log.Error(log.CatSubmit, "recording solved problem %s: %v", problemID, err)
		return nil
	}
	if c.broker != nil {
		c.broker.Publish(progress.TopicProblemSolved, solved)
	}
	return &solved
}

func runErrorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.UserMessage()
	}
	return "Internal server error"
}

func submitErrorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.UserMessage()
	}
	return "Submission failed"
}
