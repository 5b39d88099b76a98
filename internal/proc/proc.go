// Package proc reads the host's socket table, process table and account
// directory as one-shot snapshots. Everything here is a read-only OS
// query; per-entity failures degrade to partial records, never errors.
package proc

import (
	"errors"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// ErrSocketTable means the kernel socket table could not be read at all.
// This is the only fatal enumeration failure; single bad rows are skipped.
var ErrSocketTable = errors.New("socket table unreadable")

// ErrUnsupported is returned on platforms without a socket table facility.
var ErrUnsupported = errors.New("socket enumeration not supported on this platform")

// EnumerateOptions selects which protocol/family tables to read.
// The zero value selects nothing; use DefaultEnumerateOptions.
type EnumerateOptions struct {
	TCP, UDP   bool
	IPv4, IPv6 bool
}

// DefaultEnumerateOptions reads TCP over both families, matching the
// default table view. UDP is opt-in.
func DefaultEnumerateOptions(udp bool) EnumerateOptions {
	return EnumerateOptions{TCP: true, UDP: udp, IPv4: true, IPv6: true}
}

func (o EnumerateOptions) wants(proto model.Protocol, family model.Family) bool {
	switch proto {
	case model.ProtoTCP:
		if !o.TCP {
			return false
		}
	case model.ProtoUDP:
		if !o.UDP {
			return false
		}
	}
	switch family {
	case model.FamilyIPv4:
		return o.IPv4
	case model.FamilyIPv6:
		return o.IPv6
	}
	return false
}
