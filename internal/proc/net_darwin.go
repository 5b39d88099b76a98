//go:build darwin

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// EnumerateSockets shells out to lsof, which reports the owning PID on
// every row (direct ownership strategy). A socket shared by several
// processes appears once per process; rows are merged on the kernel
// device id with all PIDs kept in encounter order.
func EnumerateSockets(opts EnumerateOptions) ([]model.SocketRecord, error) {
	out, err := exec.Command("lsof", "-i", "-P", "-n").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: lsof: %v", ErrSocketTable, err)
	}
	return parseLsofTable(string(out), opts), nil
}

func parseLsofTable(out string, opts EnumerateOptions) []model.SocketRecord {
	var sockets []model.SocketRecord
	index := make(map[string]int) // device id → position in sockets

	lines := strings.Split(out, "\n")
	startIdx := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "COMMAND") {
		startIdx = 1
	}

	for _, line := range lines[startIdx:] {
		// COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME [STATE]
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}

		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		family := model.FamilyIPv4
		if fields[4] == "IPv6" {
			family = model.FamilyIPv6
		}

		var proto model.Protocol
		switch fields[7] {
		case "TCP":
			proto = model.ProtoTCP
		case "UDP":
			proto = model.ProtoUDP
		default:
			continue
		}
		if !opts.wants(proto, family) {
			continue
		}

		device := fields[5]
		name := fields[8]

		state := model.StateNone
		if proto == model.ProtoTCP {
			state = model.StateUnknown
			if len(fields) > 9 {
				state = model.TCPStateFromName(strings.Trim(fields[9], "()"))
			}
		}

		localName, remoteName, _ := strings.Cut(name, "->")
		localAddr, localPort := parseEndpoint(localName)
		if localPort == 0 {
			continue
		}
		remoteAddr, remotePort := parseEndpoint(remoteName)
		if remoteAddr == "" || remotePort == 0 {
			remoteAddr, remotePort = "", 0
		}

		if i, ok := index[device]; ok {
			sockets[i].OwnerPIDs = appendPID(sockets[i].OwnerPIDs, pid)
			continue
		}

		index[device] = len(sockets)
		sockets = append(sockets, model.SocketRecord{
			Protocol:   proto,
			Family:     family,
			LocalAddr:  localAddr,
			LocalPort:  localPort,
			RemoteAddr: remoteAddr,
			RemotePort: remotePort,
			State:      state,
			Inode:      device,
			UID:        -1,
			OwnerPIDs:  []int{pid},
		})
	}

	return sockets
}

func appendPID(pids []int, pid int) []int {
	for _, p := range pids {
		if p == pid {
			return pids
		}
	}
	return append(pids, pid)
}

// parseEndpoint parses lsof address forms: "*:8080", "127.0.0.1:8080",
// "[::1]:8080". A "*" port means none.
func parseEndpoint(addr string) (string, int) {
	if addr == "" {
		return "", 0
	}

	if strings.HasPrefix(addr, "[") {
		bracketEnd := strings.LastIndex(addr, "]")
		if bracketEnd == -1 {
			return "", 0
		}
		ip := addr[1:bracketEnd]
		rest := addr[bracketEnd+1:]
		if len(rest) > 1 && rest[0] == ':' {
			if port, err := strconv.Atoi(rest[1:]); err == nil {
				if ip == "" {
					ip = "::"
				}
				return ip, port
			}
		}
		return "", 0
	}

	idx := strings.LastIndex(addr, ":")
	if idx == -1 {
		return "", 0
	}
	ip := addr[:idx]
	if ip == "*" {
		ip = "0.0.0.0"
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return "", 0
	}
	return ip, port
}
