// Package pipeline runs the whole snapshot pass: enumerate sockets and
// processes, correlate, enrich with user names, sort and filter.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pranshuparmar/portwho/internal/correlate"
	"github.com/pranshuparmar/portwho/internal/proc"
	"github.com/pranshuparmar/portwho/pkg/model"
)

// ErrPortNotFound reports a port filter that matched nothing. It is a
// distinguishable outcome for the presentation layer, not a failure of
// the snapshot itself.
var ErrPortNotFound = errors.New("port not in use")

type Config struct {
	// Port filters the result to one local port; 0 means all.
	Port int
	// UDP includes UDP sockets alongside TCP.
	UDP bool
}

// Take runs one snapshot pass and returns the ordered ownership records.
// Only whole-table socket enumeration failure is fatal; every other gap
// degrades to partial records.
func Take(cfg Config) ([]model.OwnershipRecord, error) {
	var (
		wg      sync.WaitGroup
		sockets []model.SocketRecord
		procs   map[int]model.ProcessRecord
		users   map[int]string
		sockErr error
	)

	// The three reads are independent read-only queries; each produces an
	// immutable snapshot consumed only after all complete.
	wg.Add(3)
	go func() {
		defer wg.Done()
		sockets, sockErr = proc.EnumerateSockets(proc.DefaultEnumerateOptions(cfg.UDP))
	}()
	go func() {
		defer wg.Done()
		// A failed process snapshot is not fatal: sockets then resolve
		// as unowned, which the display degrades to "unknown".
		if p, err := proc.SnapshotProcesses(); err == nil {
			procs = p
		} else {
			procs = map[int]model.ProcessRecord{}
		}
	}()
	go func() {
		defer wg.Done()
		users = proc.LoadUsers()
	}()
	wg.Wait()

	if sockErr != nil {
		return nil, sockErr
	}

	records := correlate.Resolve(sockets, procs, correlate.DescriptorSourceFunc(proc.SocketInodes))
	enrichUsers(records, users)
	return Assemble(records, cfg.Port)
}

// enrichUsers fills the User field from the account directory snapshot.
// Unmapped uids stay empty; renderers print the unknown sentinel.
func enrichUsers(records []model.OwnershipRecord, users map[int]string) {
	for i := range records {
		uid := records[i].OwnerUID()
		if uid < 0 {
			continue
		}
		if name, ok := users[uid]; ok {
			records[i].User = name
		}
	}
}

// Assemble sorts records ascending by local port (stable, ties keep
// enumeration order) and applies the optional port filter. A filter that
// matches nothing returns ErrPortNotFound wrapping the port number.
func Assemble(records []model.OwnershipRecord, port int) ([]model.OwnershipRecord, error) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Socket.LocalPort < records[j].Socket.LocalPort
	})

	if port == 0 {
		return records, nil
	}

	matched := make([]model.OwnershipRecord, 0, 2)
	for _, r := range records {
		if r.Socket.LocalPort == port {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("port %d: %w", port, ErrPortNotFound)
	}
	return matched, nil
}
