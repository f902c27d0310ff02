package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Group     lipgloss.Style
	Item      lipgloss.Style
	Confirmed lipgloss.Style
	Cursor    lipgloss.Style
	Empty     lipgloss.Style
	Footer    lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the built-in color scheme. The confirmed color
// matches the fill written to the sheet.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Group:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Item:      lipgloss.NewStyle(),
		Confirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("#C6EFCE")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Empty:     lipgloss.NewStyle().Faint(true),
		Footer:    lipgloss.NewStyle().Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
