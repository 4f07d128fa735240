package cli

import "github.com/charmbracelet/lipgloss"

// Report rendering styles. Scores at or above scoreHealthy render
// green; below scoreSuspect, red.
const (
	scoreHealthy = 90.0
	scoreSuspect = 50.0
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	healthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	suspectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// scoreStyle picks the rendering style for an authenticity score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= scoreHealthy:
		return healthyStyle
	case score < scoreSuspect:
		return suspectStyle
	default:
		return lipgloss.NewStyle()
	}
}
