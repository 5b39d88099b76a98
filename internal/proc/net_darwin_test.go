//go:build darwin

package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/portwho/pkg/model"
)

const lsofOut = `COMMAND   PID  USER   FD   TYPE             DEVICE SIZE/OFF NODE NAME
webserver  42 alice    5u  IPv4 0xabc123456789      0t0  TCP *:8080 (LISTEN)
webserver  43 alice    5u  IPv4 0xabc123456789      0t0  TCP *:8080 (LISTEN)
curl      77  alice    8u  IPv6 0xdef987654321      0t0  TCP [::1]:52000->[::1]:443 (ESTABLISHED)
mdns      88  _mdns    9u  IPv4 0x111222333444      0t0  UDP *:5353
weird     99  alice   10u  IPv4 0x555666777888      0t0  ICMP *:*
`

func TestParseLsofTable(t *testing.T) {
	sockets := parseLsofTable(lsofOut, DefaultEnumerateOptions(true))
	require.Len(t, sockets, 3) // shared socket merged, ICMP skipped

	shared := sockets[0]
	assert.Equal(t, model.ProtoTCP, shared.Protocol)
	assert.Equal(t, "0.0.0.0", shared.LocalAddr)
	assert.Equal(t, 8080, shared.LocalPort)
	assert.Equal(t, model.StateListen, shared.State)
	assert.Equal(t, []int{42, 43}, shared.OwnerPIDs)

	conn := sockets[1]
	assert.Equal(t, model.FamilyIPv6, conn.Family)
	assert.Equal(t, "::1", conn.LocalAddr)
	assert.Equal(t, 52000, conn.LocalPort)
	assert.Equal(t, "::1", conn.RemoteAddr)
	assert.Equal(t, 443, conn.RemotePort)
	assert.Equal(t, model.StateEstablished, conn.State)

	udp := sockets[2]
	assert.Equal(t, model.ProtoUDP, udp.Protocol)
	assert.Equal(t, model.StateNone, udp.State)
	assert.Equal(t, []int{88}, udp.OwnerPIDs)
}

func TestParseLsofTableTCPOnly(t *testing.T) {
	sockets := parseLsofTable(lsofOut, DefaultEnumerateOptions(false))
	require.Len(t, sockets, 2)
	for _, s := range sockets {
		assert.Equal(t, model.ProtoTCP, s.Protocol)
	}
}

func TestParseEndpoint(t *testing.T) {
	addr, port := parseEndpoint("*:8080")
	assert.Equal(t, "0.0.0.0", addr)
	assert.Equal(t, 8080, port)

	addr, port = parseEndpoint("[::]:443")
	assert.Equal(t, "::", addr)
	assert.Equal(t, 443, port)

	addr, port = parseEndpoint("127.0.0.1:22")
	assert.Equal(t, "127.0.0.1", addr)
	assert.Equal(t, 22, port)

	addr, port = parseEndpoint("*:*")
	assert.Empty(t, addr)
	assert.Zero(t, port)
}
