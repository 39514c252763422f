// Package contestview implements contest mode: the contest clock, ordered
// problem navigation, the leave-contest flow, and the submission deadline
// gate, wrapped around the shared editor view.
package contestview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/contest"
	"github.com/Ameysr/codex-frontend/internal/draft"
	"github.com/Ameysr/codex-frontend/internal/keys"
	"github.com/Ameysr/codex-frontend/internal/log"
	"github.com/Ameysr/codex-frontend/internal/submit"
	"github.com/Ameysr/codex-frontend/internal/ui/editorview"
	"github.com/Ameysr/codex-frontend/internal/ui/shared/confirm"
	"github.com/Ameysr/codex-frontend/internal/ui/styles"
)

// Backend is the slice of the API client contest mode needs beyond the
// editor's own dependencies.
type Backend interface {
	editorview.ProblemFetcher
	ContestByID(ctx context.Context, contestID string) (*api.ContestDetail, error)
	StartContest(ctx context.Context, contestID string) error
	EndContest(ctx context.Context, contestID string, timeTakenSeconds int) error
}

// Deps wires contest mode to the rest of the client.
type Deps struct {
	Backend         Backend
	Coordinator     *submit.Coordinator
	Drafts          *draft.ContestStore
	Scheduler       *draft.Scheduler[draft.ContestKey]
	DefaultLanguage api.Language
}

// LeftMsg is sent after the user leaves the contest and the backend recorded
// the participation end.
type LeftMsg struct {
	ContestID string
	TimeTaken int
}

type contestLoadedMsg struct {
	detail *api.ContestDetail
}

type contestFailedMsg struct {
	err error
}

type leftDoneMsg struct {
	timeTaken int
	err       error
}

// Model is the contest mode state.
type Model struct {
	deps      Deps
	contestID string

	detail *api.ContestDetail
	timer  *contest.Timer
	editor editorview.Model
	ready  bool

	leaveModal confirm.Model
	leaving    bool

	width   int
	height  int
	loadErr error
}

// New creates contest mode for the given contest.
func New(deps Deps, contestID string) Model {
	return Model{
		deps:      deps,
		contestID: contestID,
		leaveModal: confirm.New(confirm.Config{
			Title:   "Leave Contest?",
			Message: "Your participation will be closed and scored.",
		}),
	}
}

// Init starts the contest fetch.
func (m Model) Init() tea.Cmd {
	return m.loadContestCmd()
}

func (m Model) loadContestCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := m.deps.Backend.ContestByID(ctx, m.contestID)
		if err != nil {
			return contestFailedMsg{err: err}
		}
		// First entry: record participation start, then refetch so the
		// server-assigned start timestamp drives the clock.
		if detail.Participant == nil || detail.Participant.StartTime == nil {
			if err := m.deps.Backend.StartContest(ctx, m.contestID); err != nil {
				return contestFailedMsg{err: err}
			}
			detail, err = m.deps.Backend.ContestByID(ctx, m.contestID)
			if err != nil {
				return contestFailedMsg{err: err}
			}
		}
		return contestLoadedMsg{detail: detail}
	}
}

func (m Model) endContestCmd() tea.Cmd {
	timeTaken := m.timer.Elapsed()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := m.deps.Backend.EndContest(ctx, m.contestID, timeTaken)
		return leftDoneMsg{timeTaken: timeTaken, err: err}
	}
}

// Update handles contest chrome; everything else goes to the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.leaveModal.SetSize(msg.Width, msg.Height)
		if m.ready {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		return m, nil

	case contestLoadedMsg:
		return m.enterContest(msg.detail)

	case contestFailedMsg:
		log.Error(log.CatContest, "contest load failed: %v", msg.err)
		m.loadErr = msg.err
		return m, nil

	case leftDoneMsg:
		m.leaving = false
		if msg.err != nil {
			log.Error(log.CatContest, "ending contest failed: %v", msg.err)
			return m, nil
		}
		m.timer.Freeze()
		id := m.contestID
		return m, func() tea.Msg { return LeftMsg{ContestID: id, TimeTaken: msg.timeTaken} }

	case editorview.TickMsg:
		if m.timer != nil {
			m.timer.Tick()
		}
		if m.ready {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.leaveModal.IsVisible() {
			var result confirm.Result
			m.leaveModal, result = m.leaveModal.Update(msg)
			if result == confirm.ResultConfirm {
				m.leaving = true
				return m, m.endContestCmd()
			}
			return m, nil
		}
		if key.Matches(msg, keys.Contest.Leave) {
			m.leaveModal.Show()
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// enterContest builds the editor over the contest's ordered problems and
// starts the clock from the participant's server-recorded start time.
func (m Model) enterContest(detail *api.ContestDetail) (Model, tea.Cmd) {
	m.detail = detail

	var start time.Time
	if detail.Participant != nil && detail.Participant.StartTime != nil {
		start = *detail.Participant.StartTime
	}
	m.timer = contest.NewTimer(start)
	if detail.Participant != nil && detail.Participant.EndTime != nil {
		m.timer.Freeze()
	}

	contestID := m.contestID
	end := detail.Contest.EndDate
	store := m.deps.Drafts
	sched := m.deps.Scheduler

	m.editor = editorview.New(editorview.Deps{
		Fetcher:     m.deps.Backend,
		Coordinator: m.deps.Coordinator,
		Drafts: func(problemID string) draft.Access {
			return draft.ContestProblemAccess(store, sched, contestID, problemID)
		},
		Scope: func(problemID string) submit.Scope {
			return submit.Scope{ProblemID: problemID, ContestID: contestID, ContestEnd: end}
		},
		Problems:        detail.Contest.Problems,
		DefaultLanguage: m.deps.DefaultLanguage,
		ShowStopwatch:   false,
	}, 0)
	m.ready = true

	cmds := []tea.Cmd{m.editor.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 1})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the contest bar above the editor.
func (m Model) View() string {
	if m.loadErr != nil {
		return styles.FailureStyle.Render("Failed to load contest.") + "\n" +
			styles.HelpStyle.Render("ctrl+c to quit")
	}
	if !m.ready {
		return "loading contest…"
	}

	title := m.detail.Contest.Title
	clock := styles.TimerStyle.Render(contest.FormatHMS(m.timer.Elapsed()))
	position := fmt.Sprintf("problem %d/%d", m.problemPosition(), len(m.detail.Contest.Problems))
	bar := strings.Join([]string{
		styles.TitleStyle.Render(title),
		clock,
		styles.HelpStyle.Render(position),
		styles.HelpStyle.Render("ctrl+e leave"),
	}, "  ")

	view := bar + "\n" + m.editor.View()
	if m.leaveModal.IsVisible() {
		return m.leaveModal.View()
	}
	if m.leaving {
		return view + "\n" + styles.HelpStyle.Render("leaving contest…")
	}
	return view
}

func (m Model) problemPosition() int {
	id := m.editor.ProblemID()
	for i, p := range m.detail.Contest.Problems {
		if p.ID == id {
			return i + 1
		}
	}
	return 1
}
