// Package problemlist implements the problem browser view.
package problemlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ameysr/codex-frontend/internal/api"
	"github.com/Ameysr/codex-frontend/internal/keys"
	"github.com/Ameysr/codex-frontend/internal/progress"
	"github.com/Ameysr/codex-frontend/internal/ui/styles"
)

// SelectMsg is sent when the user opens a problem.
type SelectMsg struct {
	Problem api.Problem
}

// Model is the problem browser state.
type Model struct {
	problems []api.Problem
	progress *progress.Repository
	cursor   int
	width    int
	height   int
}

// New creates a problem list over the given problems. repo may be nil;
// solved markers are then omitted.
func New(problems []api.Problem, repo *progress.Repository) Model {
	return Model{problems: problems, progress: repo}
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetProblems replaces the listed problems, clamping the cursor.
func (m Model) SetProblems(problems []api.Problem) Model {
	m.problems = problems
	if m.cursor >= len(problems) {
		m.cursor = 0
	}
	return m
}

// Selected returns the problem under the cursor.
func (m Model) Selected() (api.Problem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.problems) {
		return api.Problem{}, false
	}
	return m.problems[m.cursor], true
}

// Update handles navigation and selection.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Common.Down):
			if m.cursor < len(m.problems)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Common.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Common.Enter):
			if selected, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SelectMsg{Problem: selected} }
			}
		}
	}
	return m, nil
}

// View renders the problem table.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Problems"))
	b.WriteString("\n\n")

	if len(m.problems) == 0 {
		b.WriteString(styles.HelpStyle.Render("No problems available."))
		return b.String()
	}

	for i, p := range m.problems {
		marker := "  "
		if m.progress != nil && m.progress.IsSolved(p.ID) {
			marker = styles.SolvedMarkerStyle.Render("✓ ")
		}

		diffStyle := lipgloss.NewStyle().Foreground(styles.DifficultyColor(p.Difficulty))
		line := fmt.Sprintf("%s%-40s %s", marker, truncate(p.Title, 40), diffStyle.Render(p.Difficulty))
		if len(p.Tags) > 0 {
			line += styles.HelpStyle.Render("  " + strings.Join(p.Tags, ", "))
		}

		if i == m.cursor {
			b.WriteString(styles.SelectionIndicatorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate · enter open · ctrl+c quit"))
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
