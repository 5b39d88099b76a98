package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
	"github.com/pranshuparmar/portwho/internal/pipeline"
	"github.com/pranshuparmar/portwho/pkg/model"
)

type recordsMsg []model.OwnershipRecord

func (m MainModel) refreshRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := pipeline.Take(pipeline.Config{UDP: m.includeUDP})
		if err != nil {
			return err
		}
		return recordsMsg(records)
	}
}

func (m *MainModel) sortRecords() {
	sort.SliceStable(m.filtered, func(i, j int) bool {
		a, b := m.filtered[i], m.filtered[j]
		var less bool
		switch m.sortCol {
		case "port":
			less = a.Socket.LocalPort < b.Socket.LocalPort
		case "proto":
			less = a.Socket.Label() < b.Socket.Label()
		case "state":
			less = a.Socket.State < b.Socket.State
		case "process":
			less = strings.ToLower(ownerName(a)) < strings.ToLower(ownerName(b))
		case "user":
			less = strings.ToLower(a.User) < strings.ToLower(b.User)
		default:
			less = a.Socket.LocalPort < b.Socket.LocalPort
		}
		if m.sortDesc {
			return !less
		}
		return less
	})
}

func (m *MainModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = append([]model.OwnershipRecord(nil), m.records...)
	} else {
		m.filtered = m.filtered[:0]
		for _, r := range m.records {
			if recordMatches(r, query) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	m.sortRecords()
	m.rebuildRows()
}

func recordMatches(r model.OwnershipRecord, query string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		strconv.Itoa(r.Socket.LocalPort),
		r.Socket.Label(),
		string(r.Socket.State),
		ownerName(r),
		r.User,
		r.Socket.LocalAddr,
		r.Socket.RemoteAddr,
	}, " "))
	return strings.Contains(haystack, query)
}

func (m *MainModel) rebuildRows() {
	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range m.filtered {
		remote := "-"
		if r.Socket.Connected() {
			remote = fmt.Sprintf("%s:%d", r.Socket.RemoteAddr, r.Socket.RemotePort)
		}
		state := string(r.Socket.State)
		if state == "" {
			state = "-"
		}
		user := r.User
		if user == "" {
			user = model.Unknown
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.Socket.LocalPort),
			r.Socket.Label(),
			state,
			ownerCell(r),
			user,
			fmt.Sprintf("%s:%d", r.Socket.LocalAddr, r.Socket.LocalPort),
			remote,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateDetail()
}

func ownerName(r model.OwnershipRecord) string {
	if p, ok := r.FirstOwner(); ok && p.Name != "" {
		return p.Name
	}
	return model.Unknown
}

func ownerCell(r model.OwnershipRecord) string {
	name := ownerName(r)
	if extra := len(r.Processes) - 1; extra > 0 {
		return fmt.Sprintf("%s +%d", name, extra)
	}
	return name
}

// updateDetail rebuilds the side pane for the selected record.
func (m *MainModel) updateDetail() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		m.detail.SetContent("")
		return
	}
	r := m.filtered[cursor]

	var b strings.Builder
	fmt.Fprintf(&b, "Port %d/%s\n", r.Socket.LocalPort, r.Socket.Label())
	fmt.Fprintf(&b, "Local:  %s:%d\n", r.Socket.LocalAddr, r.Socket.LocalPort)
	if r.Socket.Connected() {
		fmt.Fprintf(&b, "Remote: %s:%d\n", r.Socket.RemoteAddr, r.Socket.RemotePort)
	} else {
		fmt.Fprintf(&b, "Remote: -\n")
	}
	if r.Socket.State != model.StateNone {
		fmt.Fprintf(&b, "State:  %s\n", r.Socket.State)
	}

	user := r.User
	if user == "" {
		user = model.Unknown
	}
	uid := model.Unknown
	if u := r.OwnerUID(); u >= 0 {
		uid = strconv.Itoa(u)
	}
	fmt.Fprintf(&b, "User:   %s (uid %s)\n", user, uid)

	if len(r.Processes) == 0 {
		fmt.Fprintf(&b, "\nNo owning process found.\nKernel-internal or orphaned socket,\nor insufficient permission to scan\nother users' descriptors.\n")
	}
	for _, p := range r.Processes {
		name := p.Name
		if name == "" {
			name = model.Unknown
		}
		fmt.Fprintf(&b, "\nProcess %s (pid %d)\n", name, p.PID)
		if cmd := p.Cmdline(); cmd != "" {
			fmt.Fprintf(&b, "  %s\n", cmd)
		}
		if p.Exe != "" {
			fmt.Fprintf(&b, "  exe: %s\n", p.Exe)
		}
		if p.WorkingDir != "" {
			fmt.Fprintf(&b, "  cwd: %s\n", p.WorkingDir)
		}
	}

	width := m.detail.Width
	if width <= 0 {
		width = 40
	}
	m.detail.SetContent(wrap.String(b.String(), width))
	m.detail.GotoTop()
}
