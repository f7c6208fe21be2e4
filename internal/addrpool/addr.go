// Package addrpool implements the multicast address/port allocator a WFD
// source uses to hand each session its own multicast destination: ranges
// of addresses and ports are split on acquire and returned whole on
// release.
package addrpool

import (
	"bytes"
	"net"
)

// Addr is a single address/port pair. IP is always normalized to either
// 4 or 16 bytes (via To4/To16) so address arithmetic and comparison can
// work byte-wise without re-checking family on every operation.
type Addr struct {
	IP   net.IP
	Port uint16
}

func normalizeIP(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip.To16()
}

// compareIP returns -1, 0 or 1 like bytes.Compare. Both IPs must share
// the same length.
func compareIP(a, b net.IP) int {
	return bytes.Compare(a, b)
}

// incIP returns a new IP one step past ip, adding 1 to the last byte with
// carry propagating toward the first.
func incIP(ip net.IP) net.IP {
	out := make(net.IP, len(ip))
	copy(out, ip)
	for i := len(out) - 1; i >= 0; i-- {
		out[i]++
		if out[i] != 0 {
			break
		}
	}
	return out
}

// Range is a contiguous block of addresses and ports carved from a pool,
// either still free or currently handed out to a session.
type Range struct {
	Min Addr
	Max Addr
	TTL uint8
}

// portCount returns the number of ports this range covers on a single
// address.
func (r *Range) portCount() int {
	return int(r.Max.Port) - int(r.Min.Port) + 1
}

// singleAddress reports whether Min and Max name the same address, i.e.
// this range has already been narrowed to one address's port space.
func (r *Range) singleAddress() bool {
	return compareIP(r.Min.IP, r.Max.IP) == 0
}
