package draft

import "github.com/Ameysr/codex-frontend/internal/api"

// Access is a language-keyed view of one problem's drafts, binding a store
// and its scheduler to a fixed scope. The session controller works against
// this interface so problem mode and contest mode share one code path.
type Access interface {
	// Save writes through to the store immediately.
	Save(lang api.Language, code string)
	// Load returns the stored draft; the bool is false when never saved.
	Load(lang api.Language) (string, bool)
	// Schedule records a debounced write for the language.
	Schedule(lang api.Language, code string)
	// CancelPending drops any debounced write for the language.
	CancelPending(lang api.Language) bool
}

type problemAccess struct {
	store     *Store
	sched     *Scheduler[Key]
	problemID string
}

// ProblemAccess binds the problem-mode store and scheduler to one problem.
func ProblemAccess(store *Store, sched *Scheduler[Key], problemID string) Access {
	return &problemAccess{store: store, sched: sched, problemID: problemID}
}

func (a *problemAccess) key(lang api.Language) Key {
	return Key{ProblemID: a.problemID, Language: lang}
}

func (a *problemAccess) Save(lang api.Language, code string) {
	a.store.Save(a.key(lang), code)
}

func (a *problemAccess) Load(lang api.Language) (string, bool) {
	return a.store.Load(a.key(lang))
}

func (a *problemAccess) Schedule(lang api.Language, code string) {
	a.sched.Schedule(a.key(lang), code)
}

func (a *problemAccess) CancelPending(lang api.Language) bool {
	return a.sched.CancelPending(a.key(lang))
}

type contestAccess struct {
	store     *ContestStore
	sched     *Scheduler[ContestKey]
	contestID string
	problemID string
}

// ContestProblemAccess binds the contest-mode store and scheduler to one
// problem within a contest.
func ContestProblemAccess(store *ContestStore, sched *Scheduler[ContestKey], contestID, problemID string) Access {
	return &contestAccess{store: store, sched: sched, contestID: contestID, problemID: problemID}
}

func (a *contestAccess) key(lang api.Language) ContestKey {
	return ContestKey{ContestID: a.contestID, ProblemID: a.problemID, Language: lang}
}

func (a *contestAccess) Save(lang api.Language, code string) {
	a.store.Save(a.key(lang), code)
}

func (a *contestAccess) Load(lang api.Language) (string, bool) {
	return a.store.Load(a.key(lang))
}

func (a *contestAccess) Schedule(lang api.Language, code string) {
	a.sched.Schedule(a.key(lang), code)
}

func (a *contestAccess) CancelPending(lang api.Language) bool {
	return a.sched.CancelPending(a.key(lang))
}
