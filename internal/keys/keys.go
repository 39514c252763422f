// Package keys centralizes key bindings so views stay consistent and help
// text lives in one place.
package keys

import "github.com/charmbracelet/bubbles/key"

// Common holds bindings shared by every view.
var Common = struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
	Tab    key.Binding
}{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
}

// Editor holds bindings for the code editor views (problem and contest).
// Plain letters belong to the textarea, so actions use ctrl/alt chords.
var Editor = struct {
	Run           key.Binding
	Submit        key.Binding
	CycleLanguage key.Binding
	NextProblem   key.Binding
	PrevProblem   key.Binding
	ToggleInput   key.Binding
	ToggleTimer   key.Binding
	ResultsTab    key.Binding
	Back          key.Binding
}{
	Run: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "run"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	CycleLanguage: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "language"),
	),
	NextProblem: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next problem"),
	),
	PrevProblem: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "prev problem"),
	),
	// ctrl+i is tab on most terminals, so the stdin toggle uses ctrl+g.
	ToggleInput: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "custom input"),
	),
	ToggleTimer: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "pause/resume timer"),
	),
	ResultsTab: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "toggle results"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to list"),
	),
}

// Contest holds bindings specific to contest mode.
var Contest = struct {
	Leave key.Binding
}{
	Leave: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "leave contest"),
	),
}
