package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mkoval/tend/internal/task"
)

var (
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	styleOverdue = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleDueSoon = lipgloss.NewStyle().Foreground(colorYellow)
	styleContext = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// Status badge styles.
var badges = map[task.Status]lipgloss.Style{
	task.StatusInbox:     lipgloss.NewStyle().Foreground(colorDim),
	task.StatusNext:      lipgloss.NewStyle().Foreground(colorCyan),
	task.StatusWaiting:   lipgloss.NewStyle().Foreground(colorYellow),
	task.StatusSomeday:   lipgloss.NewStyle().Foreground(colorDim),
	task.StatusCompleted: lipgloss.NewStyle().Foreground(colorGreen),
}

func renderStatus(s task.Status) string {
	if style, ok := badges[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}
