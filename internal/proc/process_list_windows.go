//go:build windows

package proc

import (
	"encoding/csv"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// SnapshotProcesses takes one CIM pass over the process table.
func SnapshotProcesses() (map[int]model.ProcessRecord, error) {
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive",
		"Get-CimInstance -ClassName Win32_Process | Select-Object ProcessId,Name,CommandLine,ExecutablePath | ConvertTo-Csv -NoTypeInformation")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("powershell process list: %w", err)
	}

	r := csv.NewReader(strings.NewReader(string(out)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse powershell output: %w", err)
	}
	if len(records) < 2 {
		return map[int]model.ProcessRecord{}, nil
	}

	pidIdx, nameIdx, cmdIdx, exeIdx := -1, -1, -1, -1
	for i, h := range records[0] {
		switch h {
		case "ProcessId":
			pidIdx = i
		case "Name":
			nameIdx = i
		case "CommandLine":
			cmdIdx = i
		case "ExecutablePath":
			exeIdx = i
		}
	}
	if pidIdx == -1 || nameIdx == -1 {
		return nil, fmt.Errorf("invalid powershell output headers: %v", records[0])
	}

	procs := make(map[int]model.ProcessRecord, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= pidIdx || len(record) <= nameIdx {
			continue
		}
		pid, err := strconv.Atoi(record[pidIdx])
		if err != nil {
			continue
		}

		rec := model.ProcessRecord{PID: pid, Name: record[nameIdx], UID: -1}
		if cmdIdx != -1 && len(record) > cmdIdx && record[cmdIdx] != "" {
			rec.Args = strings.Fields(record[cmdIdx])
		}
		if exeIdx != -1 && len(record) > exeIdx {
			rec.Exe = record[exeIdx]
		}
		procs[pid] = rec
	}

	return procs, nil
}
