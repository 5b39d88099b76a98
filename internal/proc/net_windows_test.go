//go:build windows

package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/portwho/pkg/model"
)

const netstatOut = `
Active Connections

  Proto  Local Address          Foreign Address        State           PID
  TCP    0.0.0.0:135            0.0.0.0:0              LISTENING       888
  TCP    10.0.0.5:49200         93.184.216.34:443      ESTABLISHED     1204
  TCP    [::]:135               [::]:0                 LISTENING       888
  UDP    0.0.0.0:123            *:*                    999
`

func TestParseNetstatTable(t *testing.T) {
	sockets := parseNetstatTable(netstatOut, DefaultEnumerateOptions(true))
	require.Len(t, sockets, 4)

	listen := sockets[0]
	assert.Equal(t, 135, listen.LocalPort)
	assert.Equal(t, model.StateListen, listen.State)
	assert.Equal(t, []int{888}, listen.OwnerPIDs)
	assert.False(t, listen.Connected())

	conn := sockets[1]
	assert.Equal(t, "93.184.216.34", conn.RemoteAddr)
	assert.Equal(t, 443, conn.RemotePort)
	assert.Equal(t, model.StateEstablished, conn.State)

	v6 := sockets[2]
	assert.Equal(t, model.FamilyIPv6, v6.Family)
	assert.Equal(t, "::", v6.LocalAddr)

	udp := sockets[3]
	assert.Equal(t, model.ProtoUDP, udp.Protocol)
	assert.Equal(t, model.StateNone, udp.State)
	assert.Equal(t, []int{999}, udp.OwnerPIDs)
}

func TestParseWinEndpoint(t *testing.T) {
	addr, port := parseWinEndpoint("[fe80::1]:8080")
	assert.Equal(t, "fe80::1", addr)
	assert.Equal(t, 8080, port)

	addr, port = parseWinEndpoint("*:*")
	assert.Empty(t, addr)
	assert.Zero(t, port)
}
