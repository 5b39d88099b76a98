// Package correlate joins a socket snapshot with a process snapshot.
// The join is a pure function of its inputs: same tables in, same ordered
// records out, so it is exercised in tests with synthetic tables.
package correlate

import (
	"sort"
	"sync"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// DescriptorSource exposes one process's open socket descriptors.
// Implementations must treat an unreadable descriptor table as an empty
// one; a process vanishing mid-scan is "no match", not an error.
type DescriptorSource interface {
	Inodes(pid int) []string
}

// DescriptorSourceFunc adapts a plain function to a DescriptorSource.
type DescriptorSourceFunc func(pid int) []string

func (f DescriptorSourceFunc) Inodes(pid int) []string {
	return f(pid)
}

// descriptorWorkers bounds the concurrent fd directory reads.
const descriptorWorkers = 8

// descriptorSnapshot holds every process's socket inodes, slot-indexed in
// ascending pid order so the later join never depends on which read
// finished first.
type descriptorSnapshot struct {
	pids   []int
	inodes [][]string
}

func snapshotDescriptors(procs map[int]model.ProcessRecord, src DescriptorSource) descriptorSnapshot {
	pids := make([]int, 0, len(procs))
	for pid := range procs {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	snap := descriptorSnapshot{pids: pids, inodes: make([][]string, len(pids))}

	var wg sync.WaitGroup
	work := make(chan int)
	for w := 0; w < descriptorWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				snap.inodes[i] = src.Inodes(snap.pids[i])
			}
		}()
	}
	for i := range pids {
		work <- i
	}
	close(work)
	wg.Wait()

	return snap
}

// Resolve maps every socket to the processes that own it. Sockets whose
// enumerator already named the owning PIDs resolve by map lookup; the rest
// resolve by scanning each process's descriptor table for the socket's
// inode. Every input socket yields exactly one OwnershipRecord, with an
// empty process list when no owner could be determined.
func Resolve(sockets []model.SocketRecord, procs map[int]model.ProcessRecord, src DescriptorSource) []model.OwnershipRecord {
	needScan := false
	for _, s := range sockets {
		if len(s.OwnerPIDs) == 0 && s.Inode != "" {
			needScan = true
			break
		}
	}

	var snap descriptorSnapshot
	if needScan && src != nil {
		snap = snapshotDescriptors(procs, src)
	}

	records := make([]model.OwnershipRecord, 0, len(sockets))
	for _, s := range sockets {
		rec := model.OwnershipRecord{Socket: s}
		if len(s.OwnerPIDs) > 0 {
			rec.Processes = lookupOwners(s.OwnerPIDs, procs)
		} else if s.Inode != "" {
			rec.Processes = scanOwners(s.Inode, snap, procs)
		}
		records = append(records, rec)
	}
	return records
}

// lookupOwners resolves directly-reported PIDs against the process
// snapshot. A PID missing from the snapshot (exited between the two OS
// queries) still counts as an owner, with only the pid known.
func lookupOwners(pids []int, procs map[int]model.ProcessRecord) []model.ProcessRecord {
	owners := make([]model.ProcessRecord, 0, len(pids))
	for _, pid := range pids {
		if p, ok := procs[pid]; ok {
			owners = append(owners, p)
		} else {
			owners = append(owners, model.ProcessRecord{PID: pid, UID: -1})
		}
	}
	return owners
}

// scanOwners walks every process's descriptor snapshot looking for the
// socket's inode. The scan short-circuits per process on the first match,
// so a process holding duplicate descriptors to one socket is recorded
// once. All matching processes are kept, in ascending-pid scan order.
func scanOwners(inode string, snap descriptorSnapshot, procs map[int]model.ProcessRecord) []model.ProcessRecord {
	var owners []model.ProcessRecord
	for i, pid := range snap.pids {
		for _, ino := range snap.inodes[i] {
			if ino == inode {
				if p, ok := procs[pid]; ok {
					owners = append(owners, p)
				} else {
					owners = append(owners, model.ProcessRecord{PID: pid, UID: -1})
				}
				break
			}
		}
	}
	return owners
}
