package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	typeLabel    lipgloss.Style
	low          lipgloss.Style
	high         lipgloss.Style
	total        lipgloss.Style
	warning      lipgloss.Style
	section      lipgloss.Style
	empty        lipgloss.Style
	slotMeta     lipgloss.Style
	cellUsed     lipgloss.Style
	cellFree     lipgloss.Style
	barBracket   lipgloss.Style
	barFill      lipgloss.Style
	barEmpty     lipgloss.Style
	barTextFaint lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true),
		header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		typeLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(labelWidth),
		low:          lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		high:         lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		total:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warning:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:      lipgloss.NewStyle().MarginTop(1),
		empty:        lipgloss.NewStyle().Faint(true),
		slotMeta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		cellUsed:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		cellFree:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barBracket:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barTextFaint: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
