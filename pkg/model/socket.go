package model

type Protocol string

const (
	ProtoTCP Protocol = "TCP"
	ProtoUDP Protocol = "UDP"
)

type Family string

const (
	FamilyIPv4 Family = "v4"
	FamilyIPv6 Family = "v6"
)

// TCPState is the closed set of connection states a socket row can carry.
// Anything the kernel reports outside this set maps to StateUnknown.
type TCPState string

const (
	StateEstablished TCPState = "ESTABLISHED"
	StateSynSent     TCPState = "SYN_SENT"
	StateSynRecv     TCPState = "SYN_RECV"
	StateFinWait1    TCPState = "FIN_WAIT1"
	StateFinWait2    TCPState = "FIN_WAIT2"
	StateTimeWait    TCPState = "TIME_WAIT"
	StateClose       TCPState = "CLOSE"
	StateCloseWait   TCPState = "CLOSE_WAIT"
	StateLastAck     TCPState = "LAST_ACK"
	StateListen      TCPState = "LISTEN"
	StateClosing     TCPState = "CLOSING"
	StateUnknown     TCPState = "UNKNOWN"

	// StateNone marks rows with no TCP meaning (UDP).
	StateNone TCPState = ""
)

// Hex state codes as /proc/net/tcp* reports them.
var tcpStateCodes = map[string]TCPState{
	"01": StateEstablished,
	"02": StateSynSent,
	"03": StateSynRecv,
	"04": StateFinWait1,
	"05": StateFinWait2,
	"06": StateTimeWait,
	"07": StateClose,
	"08": StateCloseWait,
	"09": StateLastAck,
	"0A": StateListen,
	"0B": StateClosing,
}

func TCPStateFromCode(code string) TCPState {
	if s, ok := tcpStateCodes[code]; ok {
		return s
	}
	return StateUnknown
}

var tcpStateNames = map[string]TCPState{
	string(StateEstablished): StateEstablished,
	string(StateSynSent):     StateSynSent,
	string(StateSynRecv):     StateSynRecv,
	"SYN_RECEIVED":           StateSynRecv,
	string(StateFinWait1):    StateFinWait1,
	"FIN_WAIT_1":             StateFinWait1,
	string(StateFinWait2):    StateFinWait2,
	"FIN_WAIT_2":             StateFinWait2,
	string(StateTimeWait):    StateTimeWait,
	string(StateClose):       StateClose,
	"CLOSED":                 StateClose,
	string(StateCloseWait):   StateCloseWait,
	string(StateLastAck):     StateLastAck,
	string(StateListen):      StateListen,
	"LISTENING":              StateListen,
	string(StateClosing):     StateClosing,
}

// TCPStateFromName normalizes the state spellings emitted by lsof and
// netstat into the closed set.
func TCPStateFromName(name string) TCPState {
	if s, ok := tcpStateNames[name]; ok {
		return s
	}
	return StateUnknown
}

// SocketRecord is one observed socket from the kernel table.
//
// Exactly one of Inode / OwnerPIDs is populated, depending on what the
// platform enumerator can supply: Linux rows carry the socket inode and
// ownership is resolved by scanning descriptor tables; lsof and netstat
// rows already name the owning PIDs.
type SocketRecord struct {
	Protocol  Protocol
	Family    Family
	LocalAddr string
	LocalPort int

	// Remote endpoint; both fields set or both empty.
	RemoteAddr string
	RemotePort int

	State TCPState // StateNone for UDP

	// Inode is the correlation key, never displayed.
	Inode string

	// UID as the socket table reports it, -1 when the table has none.
	UID int

	// OwnerPIDs is populated by enumerators with a native ownership query.
	OwnerPIDs []int
}

func (s SocketRecord) Connected() bool {
	return s.RemoteAddr != ""
}

// Label is the display protocol, e.g. TCP6 for a TCP socket over IPv6.
func (s SocketRecord) Label() string {
	if s.Family == FamilyIPv6 {
		return string(s.Protocol) + "6"
	}
	return string(s.Protocol)
}
