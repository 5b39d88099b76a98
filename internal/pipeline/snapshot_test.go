package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/portwho/internal/correlate"
	"github.com/pranshuparmar/portwho/pkg/model"
)

func record(port int, proto model.Protocol, inode string) model.OwnershipRecord {
	return model.OwnershipRecord{Socket: model.SocketRecord{
		Protocol:  proto,
		Family:    model.FamilyIPv4,
		LocalAddr: "127.0.0.1",
		LocalPort: port,
		Inode:     inode,
	}}
}

func TestAssembleSortsByLocalPort(t *testing.T) {
	records := []model.OwnershipRecord{
		record(443, model.ProtoTCP, "3"),
		record(22, model.ProtoTCP, "1"),
		record(8080, model.ProtoTCP, "2"),
	}

	out, err := Assemble(records, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 22, out[0].Socket.LocalPort)
	assert.Equal(t, 443, out[1].Socket.LocalPort)
	assert.Equal(t, 8080, out[2].Socket.LocalPort)
}

func TestAssembleSortIsStable(t *testing.T) {
	// Same port over tcp and udp keeps enumeration order.
	records := []model.OwnershipRecord{
		record(53, model.ProtoTCP, "a"),
		record(53, model.ProtoUDP, "b"),
		record(22, model.ProtoTCP, "c"),
	}

	out, err := Assemble(records, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].Socket.Inode)
	assert.Equal(t, "a", out[1].Socket.Inode)
	assert.Equal(t, "b", out[2].Socket.Inode)
}

func TestAssemblePortFilterReturnsAllMatches(t *testing.T) {
	records := []model.OwnershipRecord{
		record(53, model.ProtoTCP, "a"),
		record(53, model.ProtoUDP, "b"),
		record(22, model.ProtoTCP, "c"),
	}

	out, err := Assemble(records, 53)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, 53, r.Socket.LocalPort)
	}
}

func TestAssemblePortFilterMiss(t *testing.T) {
	records := []model.OwnershipRecord{
		record(22, model.ProtoTCP, "c"),
	}

	out, err := Assemble(records, 9999)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPortNotFound))
	assert.Contains(t, err.Error(), "9999")
}

func TestAssembleFilterEqualsFullSubset(t *testing.T) {
	records := []model.OwnershipRecord{
		record(8080, model.ProtoTCP, "1"),
		record(22, model.ProtoTCP, "2"),
		record(8080, model.ProtoUDP, "3"),
	}

	full, err := Assemble(append([]model.OwnershipRecord(nil), records...), 0)
	require.NoError(t, err)

	var want []model.OwnershipRecord
	for _, r := range full {
		if r.Socket.LocalPort == 8080 {
			want = append(want, r)
		}
	}

	got, err := Assemble(append([]model.OwnershipRecord(nil), records...), 8080)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// The whole resolution path over synthetic tables: one listener owned by
// a known process, one socket nobody owns.
func TestResolveEnrichAssemble(t *testing.T) {
	sockets := []model.SocketRecord{
		{Protocol: model.ProtoTCP, Family: model.FamilyIPv4, LocalAddr: "0.0.0.0", LocalPort: 8080, State: model.StateListen, Inode: "12345", UID: 1000},
		{Protocol: model.ProtoTCP, Family: model.FamilyIPv4, LocalAddr: "127.0.0.1", LocalPort: 631, State: model.StateListen, Inode: "999", UID: -1},
	}
	procs := map[int]model.ProcessRecord{
		42: {PID: 42, Name: "webserver", UID: 1000},
	}
	fds := correlate.DescriptorSourceFunc(func(pid int) []string {
		if pid == 42 {
			return []string{"12345"}
		}
		return nil
	})

	records := correlate.Resolve(sockets, procs, fds)
	enrichUsers(records, map[int]string{1000: "alice"})
	out, err := Assemble(records, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	orphan, owned := out[0], out[1]
	assert.Equal(t, 631, orphan.Socket.LocalPort)
	assert.Empty(t, orphan.Processes)
	assert.Empty(t, orphan.User)

	assert.Equal(t, 8080, owned.Socket.LocalPort)
	require.Len(t, owned.Processes, 1)
	assert.Equal(t, "webserver", owned.Processes[0].Name)
	assert.Equal(t, "alice", owned.User)
}

func TestEnrichUsers(t *testing.T) {
	records := []model.OwnershipRecord{
		{Socket: model.SocketRecord{LocalPort: 80, UID: -1}, Processes: []model.ProcessRecord{{PID: 42, UID: 1000}}},
		{Socket: model.SocketRecord{LocalPort: 81, UID: 0}}, // socket-table uid fallback
		{Socket: model.SocketRecord{LocalPort: 82, UID: -1}},
		{Socket: model.SocketRecord{LocalPort: 83, UID: -1}, Processes: []model.ProcessRecord{{PID: 7, UID: 4242}}},
	}
	users := map[int]string{1000: "alice", 0: "root"}

	enrichUsers(records, users)
	assert.Equal(t, "alice", records[0].User)
	assert.Equal(t, "root", records[1].User)
	assert.Empty(t, records[2].User)
	assert.Empty(t, records[3].User) // uid with no account entry stays unknown
}
