package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// styles are the lipgloss styles the views draw with, built from the
// configured theme.
type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	subtle      lipgloss.Style
	selected    lipgloss.Style
	success     lipgloss.Style
	error       lipgloss.Style
	header      lipgloss.Style
	cell        lipgloss.Style
	border      lipgloss.Style
	statusBar   lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	accent := lipgloss.Color(theme.Accent)
	subtle := lipgloss.Color(theme.Subtle)
	normal := lipgloss.Color(theme.Normal)
	selected := lipgloss.Color(theme.Selected)

	return styles{
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(selected).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(accent),
		inactiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(subtle).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(subtle),
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		label:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		value:     lipgloss.NewStyle().Foreground(normal),
		subtle:    lipgloss.NewStyle().Foreground(subtle),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(selected),
		success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Success)),
		error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Error)),
		header:    lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		cell:      lipgloss.NewStyle().Foreground(normal).Padding(0, 1),
		border:    lipgloss.NewStyle().Foreground(subtle),
		statusBar: lipgloss.NewStyle().Foreground(subtle).Padding(0, 1),
	}
}
