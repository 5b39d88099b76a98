package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/pranshuparmar/portwho/pkg/model"
)

var (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorBold  = "\033[2m"
)

// RenderTable writes the full listing, one row per socket. Missing data
// renders as the unknown sentinel or "-"; rows are never dropped.
func RenderTable(w io.Writer, records []model.OwnershipRecord, colorEnabled bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tUID\tUSER\tSTATE\tPROTOCOL\tPROCESS\tLOCAL\tREMOTE")

	for _, r := range records {
		state := stateCell(r.Socket, colorEnabled)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Socket.LocalPort,
			uidCell(r),
			userCell(r),
			state,
			r.Socket.Label(),
			processCell(r, colorEnabled),
			endpoint(r.Socket.LocalAddr, r.Socket.LocalPort),
			remoteCell(r.Socket),
		)
	}

	return tw.Flush()
}

func uidCell(r model.OwnershipRecord) string {
	if uid := r.OwnerUID(); uid >= 0 {
		return strconv.Itoa(uid)
	}
	return model.Unknown
}

func userCell(r model.OwnershipRecord) string {
	if r.User == "" {
		return model.Unknown
	}
	return r.User
}

func stateCell(s model.SocketRecord, colorEnabled bool) string {
	if s.State == model.StateNone {
		return "-"
	}
	if colorEnabled && s.State == model.StateListen {
		return colorGreen + string(s.State) + colorReset
	}
	return string(s.State)
}

// processCell shows the first owner; shared sockets get a +N marker and
// the detail view lists everyone.
func processCell(r model.OwnershipRecord, colorEnabled bool) string {
	first, ok := r.FirstOwner()
	if !ok {
		return model.Unknown
	}
	name := first.Name
	if name == "" {
		name = "pid " + strconv.Itoa(first.PID)
	}
	if extra := len(r.Processes) - 1; extra > 0 {
		marker := fmt.Sprintf(" +%d", extra)
		if colorEnabled {
			marker = colorBold + marker + colorReset
		}
		return name + marker
	}
	return name
}

func remoteCell(s model.SocketRecord) string {
	if !s.Connected() {
		return "-"
	}
	return endpoint(s.RemoteAddr, s.RemotePort)
}

func endpoint(addr string, port int) string {
	return addr + ":" + strconv.Itoa(port)
}
