package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// RenderDetail writes the per-port view: one block per matching socket,
// every owning process listed.
func RenderDetail(w io.Writer, records []model.OwnershipRecord) {
	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Port %d/%s:\n", r.Socket.LocalPort, r.Socket.Label())
		fmt.Fprintf(w, "  Local Address: %s\n", endpoint(r.Socket.LocalAddr, r.Socket.LocalPort))
		fmt.Fprintf(w, "  Remote Address: %s\n", remoteCell(r.Socket))
		if r.Socket.State != model.StateNone {
			fmt.Fprintf(w, "  State: %s\n", r.Socket.State)
		}

		if len(r.Processes) == 0 {
			fmt.Fprintf(w, "  Process: %s\n", model.Unknown)
		}
		for _, p := range r.Processes {
			name := p.Name
			if name == "" {
				name = model.Unknown
			}
			fmt.Fprintf(w, "  Process: %s (PID: %d)\n", name, p.PID)
			if cmd := p.Cmdline(); cmd != "" {
				fmt.Fprintf(w, "    Command: %s\n", cmd)
			}
			if p.WorkingDir != "" {
				fmt.Fprintf(w, "    Working Dir: %s\n", p.WorkingDir)
			}
		}

		uid := model.Unknown
		if u := r.OwnerUID(); u >= 0 {
			uid = strconv.Itoa(u)
		}
		user := r.User
		if user == "" {
			user = model.Unknown
		}
		fmt.Fprintf(w, "  UID: %s (User: %s)\n", uid, user)
	}
}
