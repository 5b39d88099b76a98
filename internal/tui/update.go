package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.updateDetail()
		return m, nil

	case recordsMsg:
		m.records = msg
		m.statusMsg = ""
		m.applyFilter()
		return m, nil

	case error:
		m.statusMsg = msg.Error()
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateNavigation(msg)
	}

	return m, nil
}

func (m MainModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.applyFilter()
		return m, nil
	case "enter":
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m MainModel) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.input.Focus()
		return m, nil

	case "r":
		// Explicit one-shot refresh; there is no timer.
		m.statusMsg = "refreshing..."
		return m, m.refreshRecords()

	case "s":
		m.sortCol = nextSortCol(m.sortCol)
		m.sortRecords()
		m.rebuildRows()
		return m, nil

	case "S":
		m.sortDesc = !m.sortDesc
		m.sortRecords()
		m.rebuildRows()
		return m, nil

	case "pgdown", "pgup":
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.updateDetail()
	return m, cmd
}

func nextSortCol(col string) string {
	order := []string{"port", "proto", "state", "process", "user"}
	for i, c := range order {
		if c == col {
			return order[(i+1)%len(order)]
		}
	}
	return "port"
}

func (m *MainModel) resize() {
	tableHeight := m.height - 8
	if tableHeight < 5 {
		tableHeight = 5
	}
	m.table.SetHeight(tableHeight)

	detailWidth := m.width/3 - 4
	if detailWidth < 24 {
		detailWidth = 24
	}
	m.detail.Width = detailWidth
	m.detail.Height = tableHeight
}
