//go:build !linux && !darwin && !freebsd && !windows

package proc

import (
	"fmt"
	"runtime"

	"github.com/pranshuparmar/portwho/pkg/model"
)

func EnumerateSockets(opts EnumerateOptions) ([]model.SocketRecord, error) {
	return nil, fmt.Errorf("%w: GOOS=%s", ErrUnsupported, runtime.GOOS)
}

func SnapshotProcesses() (map[int]model.ProcessRecord, error) {
	return map[int]model.ProcessRecord{}, nil
}
