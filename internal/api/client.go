// Package api implements the REST client for the CodeeX backend.
// All business logic (execution, grading, persistence) lives server-side;
// this package only shapes requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ameysr/codex-frontend/internal/log"
)

const defaultTimeout = 30 * time.Second

// Client talks to the CodeeX backend over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Problem fetches problem detail including starter templates and visible
// test cases.
func (c *Client) Problem(ctx context.Context, id string) (*Problem, error) {
	var p Problem
	if err := c.do(ctx, http.MethodGet, "/problem/problemById/"+id, nil, &p); err != nil {
		return nil, fmt.Errorf("fetching problem %s: %w", id, err)
	}
	return &p, nil
}

// Problems fetches the full problem list.
func (c *Client) Problems(ctx context.Context) ([]Problem, error) {
	var ps []Problem
	if err := c.do(ctx, http.MethodGet, "/problem/getAllProblem", nil, &ps); err != nil {
		return nil, fmt.Errorf("fetching problems: %w", err)
	}
	return ps, nil
}

// Run executes code against the problem's visible test cases, or against
// custom stdin when req.CustomInput is set.
func (c *Client) Run(ctx context.Context, problemID string, req RunRequest) (*RunResult, error) {
	var res RunResult
	if err := c.do(ctx, http.MethodPost, "/submission/run/"+problemID, req, &res); err != nil {
		return nil, fmt.Errorf("running code: %w", err)
	}
	if req.CustomInput != "" && len(res.TestCases) > 0 {
		tc := res.TestCases[0]
		res.CustomResult = &tc
	}
	return &res, nil
}

// Submit grades code against the problem's full (hidden) test suite.
func (c *Client) Submit(ctx context.Context, problemID string, req SubmitRequest) (*SubmissionResult, error) {
	var res SubmissionResult
	if err := c.do(ctx, http.MethodPost, "/submission/submit/"+problemID, req, &res); err != nil {
		return nil, fmt.Errorf("submitting code: %w", err)
	}
	return &res, nil
}

// ContestByID fetches contest metadata plus the caller's participation data.
func (c *Client) ContestByID(ctx context.Context, contestID string) (*ContestDetail, error) {
	var detail ContestDetail
	if err := c.do(ctx, http.MethodGet, "/contest/fetchById/"+contestID, nil, &detail); err != nil {
		return nil, fmt.Errorf("fetching contest %s: %w", contestID, err)
	}
	return &detail, nil
}

// ContestSubmit grades a contest-mode submission. The backend is the
// authority on post-deadline rejection; callers should still pre-check the
// contest end time to avoid a pointless round trip.
func (c *Client) ContestSubmit(ctx context.Context, problemID string, req ContestSubmitRequest) (*SubmissionResult, error) {
	var res SubmissionResult
	if err := c.do(ctx, http.MethodPost, "/contest/submit/"+problemID, req, &res); err != nil {
		return nil, fmt.Errorf("submitting contest code: %w", err)
	}
	return &res, nil
}

// StartContest records the caller's participation start.
func (c *Client) StartContest(ctx context.Context, contestID string) error {
	if err := c.do(ctx, http.MethodPost, "/contest/"+contestID+"/start", nil, nil); err != nil {
		return fmt.Errorf("starting contest %s: %w", contestID, err)
	}
	return nil
}

// EndContest records the caller leaving the contest with their elapsed time
// in seconds.
func (c *Client) EndContest(ctx context.Context, contestID string, timeTakenSeconds int) error {
	body := map[string]int{"timeTaken": timeTakenSeconds}
	if err := c.do(ctx, http.MethodPost, "/contest/"+contestID+"/end", body, nil); err != nil {
		return fmt.Errorf("ending contest %s: %w", contestID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug(log.CatAPI, "%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			} else {
				apiErr.Message = payload.Message
			}
		}
		log.Warn(log.CatAPI, "%s %s -> %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
