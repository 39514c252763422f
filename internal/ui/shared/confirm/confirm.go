// Package confirm provides a reusable yes/no confirmation modal with a
// Result enum so callers decide their own follow-up behavior.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ameysr/codex-frontend/internal/ui/styles"
)

// Result indicates the outcome of modal interaction.
type Result int

const (
	ResultNone    Result = iota // Modal still open or not visible
	ResultConfirm               // User confirmed
	ResultCancel                // User cancelled/dismissed
)

// Config controls modal text.
type Config struct {
	Title   string
	Message string
}

// Model is the confirmation modal state. It starts hidden.
type Model struct {
	cfg     Config
	visible bool
	focused int // 0 = confirm, 1 = cancel
	width   int
	height  int
}

// New creates a hidden modal with the given configuration.
func New(cfg Config) Model {
	return Model{cfg: cfg}
}

// Show displays the modal with cancel focused (safe default).
func (m *Model) Show() {
	m.visible = true
	m.focused = 1
}

// Hide dismisses the modal.
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible reports whether the modal is displayed.
func (m Model) IsVisible() bool {
	return m.visible
}

// SetSize updates viewport dimensions for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update processes messages while visible. ResultNone is returned for
// messages that don't resolve the modal.
func (m Model) Update(msg tea.Msg) (Model, Result) {
	if !m.visible {
		return m, ResultNone
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ResultNone
	}

	switch keyMsg.String() {
	case "left", "right", "tab", "h", "l":
		m.focused = 1 - m.focused
	case "enter":
		m.visible = false
		if m.focused == 0 {
			return m, ResultConfirm
		}
		return m, ResultCancel
	case "y":
		m.visible = false
		return m, ResultConfirm
	case "n", "esc":
		m.visible = false
		return m, ResultCancel
	}
	return m, ResultNone
}

// View renders the modal centered in the viewport.
func (m Model) View() string {
	confirm := "[ Yes ]"
	cancel := "[ No ]"
	if m.focused == 0 {
		confirm = styles.FailureStyle.Render(confirm)
		cancel = styles.HelpStyle.Render(cancel)
	} else {
		confirm = styles.HelpStyle.Render(confirm)
		cancel = styles.SelectionIndicatorStyle.Render(cancel)
	}

	content := strings.Join([]string{
		styles.TitleStyle.Render(m.cfg.Title),
		"",
		m.cfg.Message,
		"",
		confirm + "  " + cancel,
	}, "\n")

	box := styles.PaneStyle.Padding(1, 2).Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
