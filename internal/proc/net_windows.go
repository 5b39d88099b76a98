//go:build windows

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// EnumerateSockets shells out to netstat, which reports the owning PID on
// every row (direct ownership strategy).
func EnumerateSockets(opts EnumerateOptions) ([]model.SocketRecord, error) {
	out, err := exec.Command("netstat", "-ano").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: netstat: %v", ErrSocketTable, err)
	}
	return parseNetstatTable(string(out), opts), nil
}

func parseNetstatTable(out string, opts EnumerateOptions) []model.SocketRecord {
	var sockets []model.SocketRecord
	seen := make(map[string]bool)

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		// TCP 0.0.0.0:135 0.0.0.0:0 LISTENING 888  (len 5)
		// UDP 0.0.0.0:123 *:*       999            (len 4)
		if len(fields) < 4 {
			continue
		}

		var proto model.Protocol
		switch fields[0] {
		case "TCP", "TCPv6":
			proto = model.ProtoTCP
		case "UDP", "UDPv6":
			proto = model.ProtoUDP
		default:
			continue
		}

		var pidStr string
		state := model.StateNone
		if proto == model.ProtoTCP {
			if len(fields) < 5 {
				continue
			}
			state = model.TCPStateFromName(fields[3])
			pidStr = fields[4]
		} else {
			pidStr = fields[3]
		}

		pid, err := strconv.Atoi(pidStr)
		if err != nil {
			continue
		}

		localAddr, localPort := parseWinEndpoint(fields[1])
		if localAddr == "" {
			continue
		}
		remoteAddr, remotePort := parseWinEndpoint(fields[2])
		if remoteAddr == "" || remotePort == 0 {
			remoteAddr, remotePort = "", 0
		}

		family := model.FamilyIPv4
		if strings.HasSuffix(fields[0], "v6") || strings.HasPrefix(fields[1], "[") {
			family = model.FamilyIPv6
		}
		if !opts.wants(proto, family) {
			continue
		}

		key := fmt.Sprintf("%s|%s|%d|%d", proto, localAddr, localPort, pid)
		if seen[key] {
			continue
		}
		seen[key] = true

		sockets = append(sockets, model.SocketRecord{
			Protocol:   proto,
			Family:     family,
			LocalAddr:  localAddr,
			LocalPort:  localPort,
			RemoteAddr: remoteAddr,
			RemotePort: remotePort,
			State:      state,
			UID:        -1,
			OwnerPIDs:  []int{pid},
		})
	}

	return sockets
}

func parseWinEndpoint(addr string) (string, int) {
	lastColon := strings.LastIndex(addr, ":")
	if lastColon == -1 {
		return "", 0
	}
	ip := addr[:lastColon]
	if strings.HasPrefix(ip, "[") && strings.HasSuffix(ip, "]") {
		ip = ip[1 : len(ip)-1]
	}
	port, err := strconv.Atoi(addr[lastColon+1:])
	if err != nil {
		return "", 0
	}
	return ip, port
}
