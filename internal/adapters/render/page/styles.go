package page

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	entry       lipgloss.Style
	editing     lipgloss.Style
	heading     lipgloss.Style
	mode        lipgloss.Style
	description lipgloss.Style
	fieldKey    lipgloss.Style
	fieldValue  lipgloss.Style
	empty       lipgloss.Style
	fieldError  lipgloss.Style
	action      lipgloss.Style
	actionName  lipgloss.Style
	success     lipgloss.Style
	danger      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		entry:       lipgloss.NewStyle().MarginTop(1),
		editing:     lipgloss.NewStyle().MarginTop(1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		mode:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		description: lipgloss.NewStyle().Faint(true),
		fieldKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		fieldValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		empty:       lipgloss.NewStyle().Faint(true),
		fieldError:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		action:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		actionName:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		success:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		danger:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
