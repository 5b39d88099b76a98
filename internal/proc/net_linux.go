//go:build linux

package proc

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

var procNetTables = []struct {
	path   string
	proto  model.Protocol
	family model.Family
}{
	{"/proc/net/tcp", model.ProtoTCP, model.FamilyIPv4},
	{"/proc/net/tcp6", model.ProtoTCP, model.FamilyIPv6},
	{"/proc/net/udp", model.ProtoUDP, model.FamilyIPv4},
	{"/proc/net/udp6", model.ProtoUDP, model.FamilyIPv6},
}

// EnumerateSockets reads the kernel socket tables once and returns every
// row as a SocketRecord carrying the socket inode for correlation.
// Individual malformed rows are skipped; ErrSocketTable is returned only
// when none of the requested tables could be read at all.
func EnumerateSockets(opts EnumerateOptions) ([]model.SocketRecord, error) {
	var sockets []model.SocketRecord
	opened := 0
	for _, t := range procNetTables {
		if !opts.wants(t.proto, t.family) {
			continue
		}
		f, err := os.Open(t.path)
		if err != nil {
			continue
		}
		opened++
		sockets = append(sockets, parseSocketTable(f, t.proto, t.family)...)
		f.Close()
	}
	if opened == 0 {
		return nil, fmt.Errorf("%w: no readable table under /proc/net", ErrSocketTable)
	}
	return sockets, nil
}

// parseSocketTable decodes one /proc/net/{tcp,tcp6,udp,udp6} table.
// Row layout: sl local_address rem_address st tx_queue:rx_queue tr:tm->when
// retrnsmt uid timeout inode ...
func parseSocketTable(r io.Reader, proto model.Protocol, family model.Family) []model.SocketRecord {
	var sockets []model.SocketRecord

	scanner := bufio.NewScanner(r)
	scanner.Scan() // skip header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		localAddr, localPort := parseAddr(fields[1], family == model.FamilyIPv6)
		if localAddr == "" {
			continue
		}
		remoteAddr, remotePort := parseAddr(fields[2], family == model.FamilyIPv6)
		if remoteAddr == "" || remotePort == 0 {
			// Unconnected; the invariant is both fields set or both empty.
			remoteAddr, remotePort = "", 0
		}

		state := model.StateNone
		if proto == model.ProtoTCP {
			state = model.TCPStateFromCode(fields[3])
		}

		uid := -1
		if n, err := strconv.Atoi(fields[7]); err == nil {
			uid = n
		}

		inode := fields[9]
		if inode == "" {
			continue
		}

		sockets = append(sockets, model.SocketRecord{
			Protocol:   proto,
			Family:     family,
			LocalAddr:  localAddr,
			LocalPort:  localPort,
			RemoteAddr: remoteAddr,
			RemotePort: remotePort,
			State:      state,
			Inode:      inode,
			UID:        uid,
		})
	}

	return sockets
}

func parseAddr(raw string, ipv6 bool) (string, int) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return "", 0
	}
	portHex := parts[1]
	port, err := strconv.ParseInt(portHex, 16, 32)
	if err != nil {
		return "", 0
	}

	b, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", int(port)
	}

	if ipv6 {
		if len(b) != 16 {
			return "", int(port)
		}
		// /proc/net/tcp6 stores IPv6 as 4 little-endian 32-bit groups.
		// Reverse bytes within each 4-byte group.
		ip := make(net.IP, 16)
		for i := 0; i < 4; i++ {
			ip[i*4+0] = b[i*4+3]
			ip[i*4+1] = b[i*4+2]
			ip[i*4+2] = b[i*4+1]
			ip[i*4+3] = b[i*4+0]
		}
		return ip.String(), int(port)
	}

	if len(b) < 4 {
		return "", int(port)
	}
	ip := strconv.Itoa(int(b[3])) + "." +
		strconv.Itoa(int(b[2])) + "." +
		strconv.Itoa(int(b[1])) + "." +
		strconv.Itoa(int(b[0]))

	return ip, int(port)
}
