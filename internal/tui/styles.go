package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the summary screen.
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Filter      lipgloss.Style
	Card        lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.Color("#EF4444")
	muted := lipgloss.Color("#6B7280")

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Tab:         lipgloss.NewStyle().Padding(0, 2),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(accent),
		Filter:      lipgloss.NewStyle().Foreground(muted),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Italic(true),
		Status:      lipgloss.NewStyle().Foreground(accent),
		Help:        lipgloss.NewStyle().Foreground(muted),
	}
}
