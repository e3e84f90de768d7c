package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	event    lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	key      lipgloss.Style
	intValue lipgloss.Style
	trueVal  lipgloss.Style
	falseVal lipgloss.Style
	nullVal  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		event:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		intValue: lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		trueVal:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		falseVal: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		nullVal:  lipgloss.NewStyle().Faint(true),
	}
}
