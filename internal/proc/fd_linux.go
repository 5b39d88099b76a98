//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SocketInodes returns the socket inodes held open by a process, in
// descriptor order. An unreadable fd directory (process exited, permission
// revoked) yields nil: "no match from this process", never an error.
// Descriptors whose link target is not a socket are skipped.
func SocketInodes(pid int) []string {
	fdPath := "/proc/" + strconv.Itoa(pid) + "/fd"
	entries, err := os.ReadDir(fdPath)
	if err != nil {
		return nil
	}

	var inodes []string
	for _, e := range entries {
		link, err := os.Readlink(filepath.Join(fdPath, e.Name()))
		if err != nil {
			continue
		}
		if strings.HasPrefix(link, "socket:[") {
			inodes = append(inodes, strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]"))
		}
	}
	return inodes
}
