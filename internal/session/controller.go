// Package session owns what source code is visible in the editor for one
// problem view, and keeps the draft store eventually consistent with user
// edits. One Controller exists per active view; navigation tears it down and
// creates a fresh one for the new scope.
package session

import (
	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/draft"
	"github.com/Ameysr/codex-frontend/internal/log"
)

// State is the controller lifecycle state.
type State int

const (
	// StateLoading means problem metadata is still in flight.
	StateLoading State = iota
	// StateReady means code is displayed and editable.
	StateReady
	// StateFailed means the metadata fetch failed; the view shows an error.
	StateFailed
	// StateTerminated means the view navigated away or unmounted.
	StateTerminated
)

// Controller decides what code the editor shows and writes edits through to
// the draft store (debounced for keystrokes, synchronous on switches).
// It is confined to the UI event loop and is not safe for concurrent use.
type Controller struct {
	drafts    draft.Access
	templates map[api.Language]string
	language  api.Language
	code      string
	state     State
	err       error
}

// New creates a controller in StateLoading for the given scope's drafts.
func New(drafts draft.Access, language api.Language) *Controller {
	return &Controller{
		drafts:   drafts,
		language: language,
		state:    StateLoading,
	}
}

// Ready transitions to StateReady with the backend-supplied starter
// templates and resolves the displayed code for the current language.
func (c *Controller) Ready(templates map[api.Language]string) {
	c.templates = templates
	c.code = c.resolve(c.language)
	c.state = StateReady
}

// Fail transitions to StateFailed. The draft store is untouched: other
// scopes' entries stay intact.
func (c *Controller) Fail(err error) {
	c.state = StateFailed
	c.err = err
}

// resolve picks the code to display for lang: a saved draft always wins
// (even an empty one), then the starter template, then empty string.
func (c *Controller) resolve(lang api.Language) string {
	if code, ok := c.drafts.Load(lang); ok {
		return code
	}
	if tmpl, ok := c.templates[lang]; ok {
		return tmpl
	}
	log.Warn(log.CatSession, "no starter template for language %s, falling back to empty", lang)
	return ""
}

// SetCode records an edit: the displayed code updates immediately and a
// debounced store write is scheduled. Ignored outside StateReady.
func (c *Controller) SetCode(code string) {
	if c.state != StateReady {
		return
	}
	c.code = code
	c.drafts.Schedule(c.language, code)
}

// ChangeLanguage flushes the current in-editor text under the old language
// key, then resolves the displayed code for the new language. The pending
// debounced write is cancelled before the flush so it cannot fire later with
// stale code.
func (c *Controller) ChangeLanguage(lang api.Language) {
	if c.state != StateReady || lang == c.language {
		return
	}
	c.drafts.CancelPending(c.language)
	c.drafts.Save(c.language, c.code)

	c.language = lang
	c.code = c.resolve(lang)
}

// Flush writes the current in-editor text through to the store immediately,
// cancelling any pending debounced write first (cancel-then-flush; the flush
// is authoritative). Used before navigation.
func (c *Controller) Flush() {
	if c.state != StateReady {
		return
	}
	c.drafts.CancelPending(c.language)
	c.drafts.Save(c.language, c.code)
}

// Terminate flushes and moves to StateTerminated. Further edits are ignored.
func (c *Controller) Terminate() {
	c.Flush()
	c.state = StateTerminated
}

// Code returns the currently displayed source text.
func (c *Controller) Code() string { return c.code }

// Language returns the currently selected language.
func (c *Controller) Language() api.Language { return c.language }

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Err returns the failure cause when in StateFailed.
func (c *Controller) Err() error { return c.err }
