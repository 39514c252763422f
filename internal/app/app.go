// Package app wires the client together and routes between the problem
// browser, the problem editor, and contest mode. It owns the process-wide
// singletons: draft stores and their schedulers, the pubsub broker, the
// progress repository, and the submission coordinator.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/config"
	"github.com/Ameysr/codex-frontend/internal/draft"
	"github.com/Ameysr/codex-frontend/internal/log"
	"github.com/Ameysr/codex-frontend/internal/progress"
	"github.com/Ameysr/codex-frontend/internal/pubsub"
	"github.com/Ameysr/codex-frontend/internal/submit"
	"github.com/Ameysr/codex-frontend/internal/ui/contestview"
	"github.com/Ameysr/codex-frontend/internal/ui/editorview"
	"github.com/Ameysr/codex-frontend/internal/ui/problemlist"
	"github.com/Ameysr/codex-frontend/internal/ui/styles"
)

type view int

const (
	viewList view = iota
	viewEditor
	viewContest
)

type problemsLoadedMsg struct {
	problems []api.Problem
}

type problemsFailedMsg struct {
	err error
}

type solvedNoticeMsg struct {
	solved progress.SolvedProblem
}

// Services bundles the shared singletons.
type Services struct {
	Config       config.Config
	Client       *api.Client
	Drafts       *draft.Store
	DraftSched   *draft.Scheduler[draft.Key]
	ContestStore *draft.ContestStore
	ContestSched *draft.Scheduler[draft.ContestKey]
	Broker       *pubsub.Broker
	Progress     *progress.Repository
	Coordinator  *submit.Coordinator
}

// NewServices builds the singletons from configuration.
func NewServices(cfg config.Config, configPath string) Services {
	client := api.New(cfg.BaseURL, api.WithToken(cfg.AuthToken))

	drafts := draft.NewStore()
	draftSched := draft.NewScheduler(cfg.DraftSaveInterval, func(key draft.Key, code string) {
		drafts.Save(key, code)
	})
	contestStore := draft.NewContestStore()
	contestSched := draft.NewScheduler(cfg.DraftSaveInterval, func(key draft.ContestKey, code string) {
		contestStore.Save(key, code)
	})

	broker := pubsub.NewBroker()
	repo := progress.NewRepository(progress.NewFileStorage(config.DataPath(cfg, configPath)))

	return Services{
		Config:       cfg,
		Client:       client,
		Drafts:       drafts,
		DraftSched:   draftSched,
		ContestStore: contestStore,
		ContestSched: contestSched,
		Broker:       broker,
		Progress:     repo,
		Coordinator:  submit.New(client, repo, broker),
	}
}

// Model is the top-level Bubble Tea model.
type Model struct {
	services Services

	active   view
	list     problemlist.Model
	editor   editorview.Model
	contest  contestview.Model
	problems []api.Problem

	notice      string
	unsubscribe func()
	program     func() *tea.Program

	width   int
	height  int
	loadErr error
}

// New creates the app in problem-browsing mode.
func New(services Services) *Model {
	return &Model{
		services: services,
		active:   viewList,
		list:     problemlist.New(nil, services.Progress),
	}
}

// NewContest creates the app directly in contest mode.
func NewContest(services Services, contestID string) *Model {
	m := &Model{
		services: services,
		active:   viewContest,
	}
	m.contest = contestview.New(contestview.Deps{
		Backend:         services.Client,
		Coordinator:     services.Coordinator,
		Drafts:          services.ContestStore,
		Scheduler:       services.ContestSched,
		DefaultLanguage: api.Language(services.Config.DefaultLanguage),
	}, contestID)
	return m
}

// AttachProgram registers the running program so pubsub events can be
// forwarded into the message loop. Call before Program.Run.
func (m *Model) AttachProgram(get func() *tea.Program) {
	m.program = get
	m.unsubscribe = m.services.Broker.Subscribe(progress.TopicProblemSolved, func(payload any) {
		solved, ok := payload.(progress.SolvedProblem)
		if !ok {
			return
		}
		if p := get(); p != nil {
			p.Send(solvedNoticeMsg{solved: solved})
		}
	})
}

// Init starts the initial data load.
func (m *Model) Init() tea.Cmd {
	if m.active == viewContest {
		return m.contest.Init()
	}
	return m.loadProblemsCmd()
}

func (m *Model) loadProblemsCmd() tea.Cmd {
	client := m.services.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		problems, err := client.Problems(ctx)
		if err != nil {
			return problemsFailedMsg{err: err}
		}
		return problemsLoadedMsg{problems: problems}
	}
}

// Update routes messages to the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list = m.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.teardown()
			return m, tea.Quit
		}

	case problemsLoadedMsg:
		m.problems = msg.problems
		m.list = m.list.SetProblems(msg.problems)
		return m, nil

	case problemsFailedMsg:
		log.Error(log.CatUI, "problem list load failed: %v", msg.err)
		m.loadErr = msg.err
		return m, nil

	case solvedNoticeMsg:
		m.notice = fmt.Sprintf("Solved %s — nice work!", msg.solved.Title)
		return m, nil

	case problemlist.SelectMsg:
		return m.openEditor(msg.Problem)

	case editorview.BackMsg:
		m.active = viewList
		m.notice = ""
		// Refresh solved markers after a possible accept.
		return m, m.loadProblemsCmd()

	case contestview.LeftMsg:
		m.teardown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.active {
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case viewContest:
		m.contest, cmd = m.contest.Update(msg)
	}
	return m, cmd
}

// openEditor enters the problem editor at the selected problem.
func (m *Model) openEditor(selected api.Problem) (tea.Model, tea.Cmd) {
	idx := 0
	for i, p := range m.problems {
		if p.ID == selected.ID {
			idx = i
			break
		}
	}

	services := m.services
	m.editor = editorview.New(editorview.Deps{
		Fetcher:     services.Client,
		Coordinator: services.Coordinator,
		Drafts: func(problemID string) draft.Access {
			return draft.ProblemAccess(services.Drafts, services.DraftSched, problemID)
		},
		Scope: func(problemID string) submit.Scope {
			return submit.Scope{ProblemID: problemID}
		},
		Problems:        m.problems,
		DefaultLanguage: api.Language(services.Config.DefaultLanguage),
		ShowStopwatch:   true,
	}, idx)
	m.active = viewEditor
	m.services.Coordinator.Bump()

	cmds := []tea.Cmd{m.editor.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// teardown flushes pending draft writes and releases subscriptions.
func (m *Model) teardown() {
	m.services.DraftSched.FlushAll()
	m.services.ContestSched.FlushAll()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// View renders the active view plus any notice line.
func (m *Model) View() string {
	var body string
	switch m.active {
	case viewList:
		if m.loadErr != nil {
			body = styles.FailureStyle.Render("Failed to load problems. Is the backend reachable?")
		} else {
			body = m.list.View()
		}
	case viewEditor:
		body = m.editor.View()
	case viewContest:
		body = m.contest.View()
	}
	if m.notice != "" {
		body += "\n" + styles.SuccessStyle.Render(m.notice)
	}
	return body
}
