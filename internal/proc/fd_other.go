//go:build !linux

package proc

// SocketInodes is only meaningful where ownership is resolved through the
// descriptor table; the lsof/netstat/sockstat enumerators report owners
// directly, so there is nothing to scan.
func SocketInodes(pid int) []string {
	return nil
}
