package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskcal/internal/task"
)

var (
	colorAccent  = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorHigh    = lipgloss.Color("#EF4444")
	colorMedium  = lipgloss.Color("#F59E0B")
	colorLow     = lipgloss.Color("#10B981")
	colorDone    = lipgloss.Color("#22C55E")
	colorPending = lipgloss.Color("#F97316")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleTabOn    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent).Padding(0, 1)
	styleTabOff   = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	styleCursor   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleDone     = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	styleToday    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent)
	styleDayNum   = lipgloss.NewStyle().Bold(true)
	styleWeekday  = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
	styleBarFull  = lipgloss.NewStyle().Foreground(colorDone)
	styleBarEmpty = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatus   = lipgloss.NewStyle().Italic(true)
	styleHelp     = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	styleDoneNum  = lipgloss.NewStyle().Bold(true).Foreground(colorDone)
	stylePendNum  = lipgloss.NewStyle().Bold(true).Foreground(colorPending)
	styleOverdue  = lipgloss.NewStyle().Bold(true).Foreground(colorHigh)
)

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return lipgloss.NewStyle().Foreground(colorHigh)
	case task.PriorityMedium:
		return lipgloss.NewStyle().Foreground(colorMedium)
	default:
		return lipgloss.NewStyle().Foreground(colorLow)
	}
}

// priorityBadge is the one-letter marker used in list rows.
func priorityBadge(p task.Priority) string {
	letter := "L"
	switch p {
	case task.PriorityHigh:
		letter = "H"
	case task.PriorityMedium:
		letter = "M"
	}
	return priorityStyle(p).Bold(true).Render("[" + letter + "]")
}
