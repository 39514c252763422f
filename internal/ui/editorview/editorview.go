// Package editorview implements the code editor view shared by problem mode
// and contest mode. The mode differences (draft store shape, submit scope,
// solved recording) are injected through factories so both modes run the
// same session logic.
package editorview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/contest"
	"github.com/Ameysr/codex-frontend/internal/draft"
	"github.com/Ameysr/codex-frontend/internal/keys"
	"github.com/Ameysr/codex-frontend/internal/log"
	"github.com/Ameysr/codex-frontend/internal/session"
	"github.com/Ameysr/codex-frontend/internal/submit"
	"github.com/Ameysr/codex-frontend/internal/ui/styles"
)

// ProblemFetcher is the slice of the API client this view needs.
type ProblemFetcher interface {
	Problem(ctx context.Context, id string) (*api.Problem, error)
}

// Deps wires the editor view to the rest of the client.
type Deps struct {
	Fetcher     ProblemFetcher
	Coordinator *submit.Coordinator
	// Drafts returns the draft access for a problem in this view's mode.
	Drafts func(problemID string) draft.Access
	// Scope returns the submit scope for a problem in this view's mode.
	Scope func(problemID string) submit.Scope
	// Problems is the ordered problem list used for prev/next navigation.
	Problems []api.Problem
	// DefaultLanguage is selected when a problem opens.
	DefaultLanguage api.Language
	// ShowStopwatch enables the per-problem practice stopwatch
	// (problem mode only; contest mode has the contest clock instead).
	ShowStopwatch bool
}

// BackMsg is sent when the user leaves the editor.
type BackMsg struct{}

// NavigatedMsg is sent after the view switches to an adjacent problem, so a
// parent can track position (contest mode chrome).
type NavigatedMsg struct {
	ProblemID string
}

type problemLoadedMsg struct {
	problem *api.Problem
}

type problemFailedMsg struct {
	err error
}

type runDoneMsg struct {
	outcome submit.RunOutcome
}

type submitDoneMsg struct {
	outcome submit.SubmitOutcome
}

// TickMsg drives the 1 Hz clocks.
type TickMsg time.Time

type pane int

const (
	paneEditor pane = iota
	paneDescription
	paneResults
)

// Model is the editor view state.
type Model struct {
	deps Deps

	problem    *api.Problem
	problemIdx int
	controller *session.Controller
	stopwatch  *contest.Stopwatch

	editor      textarea.Model
	description viewport.Model
	customInput textinput.Model
	useCustom   bool
	spin        spinner.Model

	active  pane
	status  string
	width   int
	height  int
	loadErr error
}

// New creates an editor view opening the problem at index idx in
// deps.Problems.
func New(deps Deps, idx int) Model {
	ta := textarea.New()
	ta.Placeholder = "// your solution"
	ta.CharLimit = 0
	ta.ShowLineNumbers = true

	ti := textinput.New()
	ti.Placeholder = "custom stdin"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	m := Model{
		deps:        deps,
		problemIdx:  idx,
		editor:      ta,
		customInput: ti,
		spin:        sp,
		stopwatch:   contest.NewStopwatch(),
	}
	m.beginLoad()
	return m
}

// beginLoad resets per-problem state and creates a Loading controller.
func (m *Model) beginLoad() {
	id := m.currentProblemID()
	m.problem = nil
	m.loadErr = nil
	m.controller = session.New(m.deps.Drafts(id), m.deps.DefaultLanguage)
	m.editor.SetValue("")
	m.editor.Blur()
	m.stopwatch.Reset()
	m.active = paneEditor
	m.status = ""
}

func (m Model) currentProblemID() string {
	if m.problemIdx < 0 || m.problemIdx >= len(m.deps.Problems) {
		return ""
	}
	return m.deps.Problems[m.problemIdx].ID
}

// ProblemID returns the id of the problem this view currently shows.
func (m Model) ProblemID() string { return m.currentProblemID() }

// Deps returns the dependency set this view was created with.
func (m Model) Deps() Deps { return m.deps }

// Controller exposes the session controller (used by parents on teardown).
func (m Model) Controller() *session.Controller { return m.controller }

// Init starts the metadata fetch and the clock tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProblemCmd(), m.tickCmd(), m.spin.Tick)
}

func (m Model) loadProblemCmd() tea.Cmd {
	id := m.currentProblemID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p, err := m.deps.Fetcher.Problem(ctx, id)
		if err != nil {
			return problemFailedMsg{err: err}
		}
		return problemLoadedMsg{problem: p}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) runCmd() tea.Cmd {
	scope := m.deps.Scope(m.currentProblemID())
	code := m.controller.Code()
	lang := m.controller.Language()
	custom := ""
	if m.useCustom {
		custom = m.customInput.Value()
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return runDoneMsg{outcome: m.deps.Coordinator.Run(ctx, scope, code, lang, custom)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	scope := m.deps.Scope(m.currentProblemID())
	code := m.controller.Code()
	lang := m.controller.Language()
	prob := m.problem
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return submitDoneMsg{outcome: m.deps.Coordinator.Submit(ctx, scope, code, lang, prob)}
	}
}

// Update handles editor interaction.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case problemLoadedMsg:
		m.problem = msg.problem
		m.controller.Ready(msg.problem.Templates())
		m.editor.SetValue(m.controller.Code())
		m.editor.Focus()
		m.description.SetContent(m.renderDescription())
		return m, nil

	case problemFailedMsg:
		log.Error(log.CatUI, "problem load failed: %v", msg.err)
		m.loadErr = msg.err
		m.controller.Fail(msg.err)
		return m, nil

	case TickMsg:
		if m.deps.ShowStopwatch {
			m.stopwatch.Tick()
		}
		return m, m.tickCmd()

	case runDoneMsg:
		if msg.outcome.Stale || msg.outcome.Ignored {
			return m, nil
		}
		m.active = paneResults
		m.status = ""
		return m, nil

	case submitDoneMsg:
		if msg.outcome.Stale || msg.outcome.Ignored {
			return m, nil
		}
		if msg.outcome.ContestEnded {
			m.status = "Contest has ended. Submissions are closed."
			return m, nil
		}
		m.active = paneResults
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Editor.Back):
		if m.controller != nil {
			m.controller.Terminate()
		}
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, keys.Editor.Run):
		if m.controller.State() != session.StateReady || m.deps.Coordinator.RunBusy() {
			return m, nil
		}
		return m, m.runCmd()

	case key.Matches(msg, keys.Editor.Submit):
		if m.controller.State() != session.StateReady || m.deps.Coordinator.SubmitBusy() {
			return m, nil
		}
		return m, m.submitCmd()

	case key.Matches(msg, keys.Editor.CycleLanguage):
		m.cycleLanguage()
		return m, nil

	case key.Matches(msg, keys.Editor.NextProblem):
		return m.navigate(1)

	case key.Matches(msg, keys.Editor.PrevProblem):
		return m.navigate(-1)

	case key.Matches(msg, keys.Editor.ToggleInput):
		m.useCustom = !m.useCustom
		if m.useCustom {
			m.editor.Blur()
			m.customInput.Focus()
		} else {
			m.customInput.Blur()
			m.editor.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.Editor.ToggleTimer):
		if m.deps.ShowStopwatch {
			m.stopwatch.Toggle()
		}
		return m, nil

	case key.Matches(msg, keys.Editor.ResultsTab):
		if m.active == paneResults {
			m.active = paneEditor
			m.editor.Focus()
		} else {
			m.active = paneResults
			m.editor.Blur()
		}
		return m, nil

	case key.Matches(msg, keys.Common.Tab):
		if m.active == paneDescription {
			m.active = paneEditor
			m.editor.Focus()
		} else {
			m.active = paneDescription
			m.editor.Blur()
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// updateInputs routes remaining keys to the focused input component and
// pushes editor changes through the session controller.
func (m Model) updateInputs(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case paneDescription:
		m.description, cmd = m.description.Update(msg)
		return m, cmd

	case paneEditor:
		if m.useCustom && m.customInput.Focused() {
			m.customInput, cmd = m.customInput.Update(msg)
			return m, cmd
		}
		if m.controller.State() != session.StateReady {
			return m, nil
		}
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if after := m.editor.Value(); after != before {
			m.controller.SetCode(after)
		}
		return m, cmd
	}

	return m, nil
}

// cycleLanguage switches to the next language, flushing the current draft.
func (m *Model) cycleLanguage() {
	if m.controller.State() != session.StateReady {
		return
	}
	current := m.controller.Language()
	for i, lang := range api.Languages {
		if lang == current {
			next := api.Languages[(i+1)%len(api.Languages)]
			m.controller.ChangeLanguage(next)
			m.editor.SetValue(m.controller.Code())
			return
		}
	}
}

// navigate flushes the current draft, invalidates in-flight results, and
// loads the adjacent problem. The flush happens before any pending debounced
// write could fire, so the left problem's draft holds the latest text.
func (m Model) navigate(delta int) (Model, tea.Cmd) {
	next := m.problemIdx + delta
	if next < 0 || next >= len(m.deps.Problems) {
		return m, nil
	}
	if m.controller != nil {
		m.controller.Terminate()
	}
	m.deps.Coordinator.Bump()

	m.problemIdx = next
	m.beginLoad()
	id := m.currentProblemID()
	return m, tea.Batch(
		m.loadProblemCmd(),
		func() tea.Msg { return NavigatedMsg{ProblemID: id} },
	)
}

func (m *Model) layout() {
	contentHeight := m.height - 6
	if contentHeight < 4 {
		contentHeight = 4
	}
	m.editor.SetWidth(m.width - 4)
	m.editor.SetHeight(contentHeight)
	m.description = viewport.New(m.width-4, contentHeight)
	if m.problem != nil {
		m.description.SetContent(m.renderDescription())
	}
	m.customInput.Width = m.width - 8
}

// View renders the editor chrome around the active pane.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(styles.FailureStyle.Render("Failed to load problem."))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("esc to go back"))
	case m.problem == nil:
		b.WriteString(m.spin.View() + " loading problem…")
	case m.active == paneDescription:
		b.WriteString(m.description.View())
	case m.active == paneResults:
		b.WriteString(m.renderResults())
	default:
		b.WriteString(m.editor.View())
		if m.useCustom {
			b.WriteString("\n")
			b.WriteString(styles.HelpStyle.Render("stdin: ") + m.customInput.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "…"
	difficulty := ""
	if m.problem != nil {
		title = m.problem.Title
		diffStyle := lipgloss.NewStyle().Foreground(styles.DifficultyColor(m.problem.Difficulty))
		difficulty = diffStyle.Render(strings.ToUpper(m.problem.Difficulty))
	}

	parts := []string{styles.TitleStyle.Render(title)}
	if difficulty != "" {
		parts = append(parts, difficulty)
	}
	parts = append(parts, styles.HelpStyle.Render(m.controller.Language().Display()))
	if m.deps.ShowStopwatch {
		parts = append(parts, styles.TimerStyle.Render(contest.FormatMS(m.stopwatch.Elapsed())))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return styles.FailureStyle.Render(m.status)
	}
	var busy string
	if m.deps.Coordinator.RunBusy() {
		busy = m.spin.View() + " running  "
	} else if m.deps.Coordinator.SubmitBusy() {
		busy = m.spin.View() + " submitting  "
	}
	help := "ctrl+r run · ctrl+s submit · ctrl+l language · ctrl+n/p problems · tab description · esc back"
	return busy + styles.HelpStyle.Render(help)
}

func (m Model) renderDescription() string {
	if m.problem == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.problem.Description)
	b.WriteString("\n")
	for i, tc := range m.problem.VisibleTestCases {
		b.WriteString(fmt.Sprintf("\nExample %d\n  Input:    %s\n  Output:   %s\n", i+1, tc.Input, tc.Output))
		if tc.Explanation != "" {
			b.WriteString("  Explains: " + tc.Explanation + "\n")
		}
	}
	return b.String()
}

func (m Model) renderResults() string {
	run := m.deps.Coordinator.LastRun()
	sub := m.deps.Coordinator.LastSubmit()
	if run == nil && sub == nil {
		return styles.HelpStyle.Render("No results yet. ctrl+r to run, ctrl+s to submit.")
	}

	var b strings.Builder
	if sub != nil {
		if sub.Accepted {
			b.WriteString(styles.SuccessStyle.Render("Accepted"))
			b.WriteString(fmt.Sprintf("  %d/%d test cases · %.3fs · %dKB\n",
				sub.PassedTestCases, sub.TotalTestCases, sub.Runtime, sub.Memory))
		} else {
			msg := sub.Error
			if msg == "" {
				msg = "Wrong Answer"
			}
			b.WriteString(styles.FailureStyle.Render(msg))
			b.WriteString(fmt.Sprintf("  %d/%d test cases\n", sub.PassedTestCases, sub.TotalTestCases))
		}
	}
	if run != nil {
		if run.Success {
			b.WriteString(styles.SuccessStyle.Render("Run passed"))
			b.WriteString(fmt.Sprintf("  %.3fs · %dKB\n", run.Runtime, run.Memory))
		} else if run.Error != "" {
			b.WriteString(styles.FailureStyle.Render(run.Error) + "\n")
		} else {
			b.WriteString(styles.FailureStyle.Render("Run failed") + "\n")
		}
		if run.CustomResult != nil {
			tc := run.CustomResult
			b.WriteString(fmt.Sprintf("\ncustom stdin: %s\noutput: %s\n", tc.Stdin, tc.Stdout))
		} else {
			for i, tc := range run.TestCases {
				mark := styles.FailureStyle.Render("✗")
				if tc.Passed() {
					mark = styles.SuccessStyle.Render("✓")
				}
				b.WriteString(fmt.Sprintf("%s case %d  in=%s  want=%s  got=%s\n",
					mark, i+1, tc.Stdin, tc.ExpectedOutput, tc.Stdout))
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+o back to editor"))
	return b.String()
}
