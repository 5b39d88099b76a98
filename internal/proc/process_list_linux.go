//go:build linux

package proc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// SnapshotProcesses walks /proc once and returns every live process keyed
// by pid. A process that exits between the directory listing and the
// detail reads keeps its entry with only PID populated; nothing is ever
// dropped for a partial read.
func SnapshotProcesses() (map[int]model.ProcessRecord, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	procs := make(map[int]model.ProcessRecord, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		procs[pid] = readProcessRecord(pid)
	}

	return procs, nil
}

func readProcessRecord(pid int) model.ProcessRecord {
	rec := model.ProcessRecord{PID: pid, UID: -1}
	base := "/proc/" + strconv.Itoa(pid)

	// Owner of the /proc/<pid> dir is the process uid.
	if info, err := os.Stat(base); err == nil {
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			rec.UID = int(stat.Uid)
		}
	}

	if stat, err := os.ReadFile(base + "/stat"); err == nil {
		rec.Name = commFromStat(string(stat))
	}

	if cmdline, err := os.ReadFile(base + "/cmdline"); err == nil {
		for _, arg := range strings.Split(string(cmdline), "\x00") {
			if arg != "" {
				rec.Args = append(rec.Args, arg)
			}
		}
	}

	if exe, err := os.Readlink(base + "/exe"); err == nil {
		rec.Exe = strings.TrimSuffix(exe, " (deleted)")
	}
	if cwd, err := os.Readlink(base + "/cwd"); err == nil {
		rec.WorkingDir = cwd
	}

	return rec
}

// commFromStat pulls the command out of /proc/<pid>/stat.
// stat format is evil, the command is inside () and may contain spaces.
func commFromStat(raw string) string {
	open := strings.Index(raw, "(")
	close := strings.LastIndex(raw, ")")
	if open == -1 || close == -1 || close <= open {
		return ""
	}
	return raw[open+1 : close]
}
