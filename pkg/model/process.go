package model

import "strings"

// ProcessRecord is one observed process. A process that exits mid-scan
// keeps its slot with only PID populated.
type ProcessRecord struct {
	PID        int
	Name       string
	Args       []string
	Exe        string
	WorkingDir string
	UID        int // -1 when unreadable
}

func (p ProcessRecord) Cmdline() string {
	return strings.Join(p.Args, " ")
}
