package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("portwho " + m.version)

	status := "Mode: Navigation (Press / to search)"
	if m.input.Focused() {
		status = "Mode: Searching (Press Esc/Enter to stop)"
	}
	if m.statusMsg != "" {
		status = errorStyle.Render(m.statusMsg)
	}

	counts := fmt.Sprintf("%d sockets", len(m.filtered))
	if len(m.filtered) != len(m.records) {
		counts = fmt.Sprintf("%d of %d sockets", len(m.filtered), len(m.records))
	}

	detailPane := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("#585858")).
		PaddingLeft(2).
		Render(detailHeaderStyle.Render("Details") + "\n" + m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), detailPane)

	footer := footerStyle.Render("↑/↓ select  / search  s sort (" + m.sortCol + ")  S reverse  r refresh  q quit  — " + counts)

	return baseStyle.
		Width(m.width - 2).
		Padding(0, 1).
		Render(title + "  " + status + "\n" + m.input.View() + "\n" + body + "\n" + footer)
}
