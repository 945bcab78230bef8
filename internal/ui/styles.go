package ui

import "github.com/charmbracelet/lipgloss"

// StyleManager encapsulates the picker styles
type StyleManager struct {
	Title    lipgloss.Style
	Path     lipgloss.Style
	Date     lipgloss.Style
	Undated  lipgloss.Style
	Cursor   lipgloss.Style
	Included lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:    lipgloss.NewStyle().Bold(true),
		Path:     lipgloss.NewStyle(),
		Date:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Undated:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Included: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var styles = DefaultStyles()
