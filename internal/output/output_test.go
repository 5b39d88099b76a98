package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/portwho/pkg/model"
)

func sampleRecords() []model.OwnershipRecord {
	return []model.OwnershipRecord{
		{
			Socket: model.SocketRecord{
				Protocol:  model.ProtoTCP,
				Family:    model.FamilyIPv4,
				LocalAddr: "0.0.0.0",
				LocalPort: 8080,
				State:     model.StateListen,
				UID:       1000,
			},
			Processes: []model.ProcessRecord{
				{PID: 42, Name: "webserver", Args: []string{"webserver", "--port", "8080"}, UID: 1000},
				{PID: 43, Name: "webserver", UID: 1000},
			},
			User: "alice",
		},
		{
			Socket: model.SocketRecord{
				Protocol:  model.ProtoUDP,
				Family:    model.FamilyIPv6,
				LocalAddr: "::",
				LocalPort: 5353,
				UID:       -1,
			},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTable(&buf, sampleRecords(), false)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3) // header + one row per socket, unowned included

	assert.Contains(t, lines[0], "PORT")
	assert.Contains(t, lines[0], "REMOTE")

	assert.Contains(t, lines[1], "8080")
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "LISTEN")
	assert.Contains(t, lines[1], "webserver +1")

	assert.Contains(t, lines[2], "5353")
	assert.Contains(t, lines[2], "UDP6")
	assert.Contains(t, lines[2], model.Unknown)
	assert.NotContains(t, out, "\033[") // color disabled
}

func TestRenderTableColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, sampleRecords(), true))
	assert.Contains(t, buf.String(), colorGreen+"LISTEN"+colorReset)
}

func TestRenderDetail(t *testing.T) {
	var buf bytes.Buffer
	RenderDetail(&buf, sampleRecords())

	out := buf.String()
	assert.Contains(t, out, "Port 8080/TCP:")
	assert.Contains(t, out, "Local Address: 0.0.0.0:8080")
	assert.Contains(t, out, "Remote Address: -")
	assert.Contains(t, out, "State: LISTEN")
	assert.Contains(t, out, "Process: webserver (PID: 42)")
	assert.Contains(t, out, "Process: webserver (PID: 43)")
	assert.Contains(t, out, "Command: webserver --port 8080")
	assert.Contains(t, out, "UID: 1000 (User: alice)")

	// The unowned socket degrades to sentinels, never disappears.
	assert.Contains(t, out, "Port 5353/UDP6:")
	assert.Contains(t, out, "Process: unknown")
	assert.Contains(t, out, "UID: unknown (User: unknown)")
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sampleRecords())
	require.NoError(t, err)

	var decoded []model.OwnershipRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 8080, decoded[0].Socket.LocalPort)
	assert.Equal(t, "alice", decoded[0].User)
}
