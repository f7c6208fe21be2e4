package addrpool

import "net"

// Flags selects which ranges an Acquire call may draw from.
type Flags int

const (
	// FlagIPv4 restricts acquisition to IPv4 ranges.
	FlagIPv4 Flags = 1 << iota
	// FlagIPv6 restricts acquisition to IPv6 ranges.
	FlagIPv6
	// FlagEvenPort requires the returned range to start on an even port,
	// skipping one port of an odd-starting range to get there.
	FlagEvenPort
)

func (r *Range) isIPv4() bool {
	return len(r.Min.IP) == net.IPv4len
}
