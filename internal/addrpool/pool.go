package addrpool

import (
	"fmt"
	"net"
	"sync"

	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/logger"
)

// Pool hands out non-overlapping address/port ranges to sessions and
// takes them back on release. It never merges adjacent free ranges back
// together: fragmentation only grows across the pool's lifetime.
type Pool struct {
	mu        sync.Mutex
	free      []*Range
	allocated []*Range
	log       logger.Writer
}

// New creates an empty pool. log may be nil.
func New(log logger.Writer) *Pool {
	return &Pool{log: log}
}

// AddRange adds a block of addresses and ports to the pool's free list.
// minAddr and maxAddr must parse as IPs of the same family, with
// minAddr <= maxAddr byte-wise, and minPort <= maxPort.
func (p *Pool) AddRange(minAddr, maxAddr string, minPort, maxPort uint16, ttl uint8) error {
	minIP := net.ParseIP(minAddr)
	if minIP == nil {
		return events.ErrInvalidArgument{Reason: fmt.Sprintf("invalid min address %q", minAddr)}
	}
	maxIP := net.ParseIP(maxAddr)
	if maxIP == nil {
		return events.ErrInvalidArgument{Reason: fmt.Sprintf("invalid max address %q", maxAddr)}
	}

	minIP = normalizeIP(minIP)
	maxIP = normalizeIP(maxIP)
	if len(minIP) != len(maxIP) {
		return events.ErrInvalidArgument{Reason: "min and max address families differ"}
	}
	if compareIP(minIP, maxIP) > 0 {
		return events.ErrInvalidArgument{Reason: "min address is greater than max address"}
	}
	if minPort > maxPort {
		return events.ErrInvalidArgument{Reason: "min port is greater than max port"}
	}

	r := &Range{
		Min: Addr{IP: minIP, Port: minPort},
		Max: Addr{IP: maxIP, Port: maxPort},
		TTL: ttl,
	}

	p.mu.Lock()
	p.free = append(p.free, r)
	p.mu.Unlock()
	return nil
}

// Acquire scans the free list for the first range that matches flags'
// address family and has enough ports, splits off exactly nPorts ports
// on a single address, and returns that fragment. The fragment's
// lifetime is tracked until Release is called with it.
func (p *Pool) Acquire(flags Flags, nPorts int) (*Range, error) {
	if nPorts <= 0 {
		return nil, events.ErrInvalidArgument{Reason: "nPorts must be positive"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, r := range p.free {
		if flags&FlagIPv4 != 0 && !r.isIPv4() {
			continue
		}
		if flags&FlagIPv6 != 0 && r.isIPv4() {
			continue
		}

		skip := 0
		if flags&FlagEvenPort != 0 && r.Min.Port%2 != 0 {
			skip = 1
		}

		if r.portCount()-skip < nPorts {
			continue
		}

		p.free = append(p.free[:i], p.free[i+1:]...)

		acquired := p.splitRange(r, skip, nPorts)
		p.allocated = append(p.allocated, acquired)
		return acquired, nil
	}

	return nil, events.ErrPoolExhausted{}
}

// splitRange narrows r down to a single address and exactly nPorts
// ports, after skipping skip ports from its start, requeueing every
// leftover fragment onto the free list. It returns r itself, mutated
// in place to be the acquired fragment.
func (p *Pool) splitRange(r *Range, skip, nPorts int) *Range {
	if !r.singleAddress() {
		remainder := &Range{
			Min: Addr{IP: incIP(r.Min.IP), Port: r.Min.Port},
			Max: Addr{IP: r.Max.IP, Port: r.Max.Port},
			TTL: r.TTL,
		}
		p.free = append(p.free, remainder)
		r.Max.IP = r.Min.IP
	}

	if skip > 0 {
		skipped := &Range{
			Min: Addr{IP: r.Min.IP, Port: r.Min.Port},
			Max: Addr{IP: r.Min.IP, Port: r.Min.Port + uint16(skip) - 1},
			TTL: r.TTL,
		}
		p.free = append(p.free, skipped)
		r.Min.Port += uint16(skip)
	}

	if remaining := r.portCount(); remaining > nPorts {
		trailing := &Range{
			Min: Addr{IP: r.Min.IP, Port: r.Min.Port + uint16(nPorts)},
			Max: Addr{IP: r.Max.IP, Port: r.Max.Port},
			TTL: r.TTL,
		}
		p.free = append(p.free, trailing)
		r.Max.Port = r.Min.Port + uint16(nPorts) - 1
	}

	return r
}

// Release returns a previously acquired range to the free list. It is
// matched by identity, not value: handle must be the exact pointer
// Acquire returned. An unknown handle is logged as a warning and
// otherwise ignored, since a double release or a stale handle from a
// prior pool generation isn't fatal to the caller.
func (p *Pool) Release(handle *Range) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, r := range p.allocated {
		if r == handle {
			p.allocated = append(p.allocated[:i], p.allocated[i+1:]...)
			p.free = append(p.free, r)
			return
		}
	}

	if p.log != nil {
		p.log.Log(logger.Warn, "addrpool: release of unknown range %v:%d-%d", handle.Min.IP, handle.Min.Port, handle.Max.Port)
	}
}
