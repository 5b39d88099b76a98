//go:build freebsd

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// SnapshotProcesses takes one ps pass over the process table.
func SnapshotProcesses() (map[int]model.ProcessRecord, error) {
	out, err := exec.Command("ps", "-axo", "pid=,uid=,comm=,args=").Output()
	if err != nil {
		return nil, fmt.Errorf("ps process list: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	procs := make(map[int]model.ProcessRecord, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		uid := -1
		if n, err := strconv.Atoi(fields[1]); err == nil {
			uid = n
		}

		var args []string
		if len(fields) > 3 {
			args = fields[3:]
		}

		procs[pid] = model.ProcessRecord{
			PID:  pid,
			Name: fields[2],
			Args: args,
			UID:  uid,
		}
	}

	return procs, nil
}
