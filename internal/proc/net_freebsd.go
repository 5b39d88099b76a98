//go:build freebsd

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// EnumerateSockets shells out to sockstat, which reports the owning PID on
// every row (direct ownership strategy). -s appends the connection state
// column for TCP rows.
func EnumerateSockets(opts EnumerateOptions) ([]model.SocketRecord, error) {
	out, err := exec.Command("sockstat", "-46", "-s").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: sockstat: %v", ErrSocketTable, err)
	}
	return parseSockstatTable(string(out), opts), nil
}

func parseSockstatTable(out string, opts EnumerateOptions) []model.SocketRecord {
	var sockets []model.SocketRecord

	lines := strings.Split(out, "\n")
	startIdx := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "USER") {
		startIdx = 1
	}

	for _, line := range lines[startIdx:] {
		// USER COMMAND PID FD PROTO LOCAL FOREIGN [STATE]
		fields := strings.Fields(line)
		if len(fields) < 7 {
			continue
		}

		pid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}

		rawProto := fields[4]
		var proto model.Protocol
		switch {
		case strings.HasPrefix(rawProto, "tcp"):
			proto = model.ProtoTCP
		case strings.HasPrefix(rawProto, "udp"):
			proto = model.ProtoUDP
		default:
			continue
		}
		family := model.FamilyIPv4
		if strings.HasSuffix(rawProto, "6") {
			family = model.FamilyIPv6
		}
		if !opts.wants(proto, family) {
			continue
		}

		localAddr, localPort := parseSockstatEndpoint(fields[5])
		if localPort == 0 {
			continue
		}
		remoteAddr, remotePort := parseSockstatEndpoint(fields[6])
		if remoteAddr == "" || remotePort == 0 {
			remoteAddr, remotePort = "", 0
		}

		state := model.StateNone
		if proto == model.ProtoTCP {
			state = model.StateUnknown
			if len(fields) > 7 {
				state = model.TCPStateFromName(fields[7])
			}
		}

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

// parseSockstatEndpoint parses sockstat address forms: "*:22",
// "127.0.0.1:8080", "::1:8080". "*:*" means unbound.
func parseSockstatEndpoint(addr string) (string, int) {
	lastColon := strings.LastIndex(addr, ":")
	if lastColon == -1 {
		return "", 0
	}
	ip := addr[:lastColon]
	if ip == "*" {
		ip = "0.0.0.0"
	}
	port, err := strconv.Atoi(addr[lastColon+1:])
	if err != nil {
		return "", 0
	}
	return ip, port
}
