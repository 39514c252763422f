// Package styles holds the shared lipgloss palette and common styles.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	AccentColor  = lipgloss.Color("#60A5FA") // blue-400
	SubtleColor  = lipgloss.Color("#6B7280") // gray-500
	SuccessColor = lipgloss.Color("#4ADE80") // green-400
	FailureColor = lipgloss.Color("#F87171") // red-400
	WarningColor = lipgloss.Color("#FACC15") // yellow-400
	BorderColor  = lipgloss.Color("#374151") // gray-700

	DifficultyEasyColor   = lipgloss.Color("#22C55E")
	DifficultyMediumColor = lipgloss.Color("#EAB308")
	DifficultyHardColor   = lipgloss.Color("#EF4444")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	HelpStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	FailureStyle = lipgloss.NewStyle().Bold(true).Foreground(FailureColor)

	TimerStyle = lipgloss.NewStyle().Foreground(WarningColor)

	SolvedMarkerStyle = lipgloss.NewStyle().Foreground(SuccessColor)

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
)

// DifficultyColor maps a problem difficulty to its display color.
func DifficultyColor(difficulty string) lipgloss.Color {
	switch difficulty {
	case "easy":
		return DifficultyEasyColor
	case "medium":
		return DifficultyMediumColor
	case "hard":
		return DifficultyHardColor
	default:
		return SubtleColor
	}
}
