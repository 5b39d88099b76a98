package model

// Unknown is the display sentinel for anything that could not be resolved.
// Rows are never dropped for missing data; they degrade to this.
const Unknown = "unknown"

// OwnershipRecord joins one socket with the processes holding it.
// The process list is empty when no owner could be determined
// (kernel-internal or orphaned sockets) and has more than one entry when
// several processes share descriptors to the same socket.
type OwnershipRecord struct {
	Socket    SocketRecord
	Processes []ProcessRecord

	// User resolved from the first owning process, empty when unknown.
	User string
}

// FirstOwner returns the first associated process, if any.
func (r OwnershipRecord) FirstOwner() (ProcessRecord, bool) {
	if len(r.Processes) == 0 {
		return ProcessRecord{}, false
	}
	return r.Processes[0], true
}

// OwnerUID is the uid used for user attribution: the first owning
// process's uid, falling back to the uid the socket table itself reported.
func (r OwnershipRecord) OwnerUID() int {
	for _, p := range r.Processes {
		if p.UID >= 0 {
			return p.UID
		}
	}
	return r.Socket.UID
}
