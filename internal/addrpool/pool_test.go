package addrpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirasrc/wfdsource/internal/events"
)

func TestAddRangeRejectsBadOrdering(t *testing.T) {
	p := New(nil)
	err := p.AddRange("10.0.0.4", "10.0.0.1", 5000, 5009, 1)
	require.Error(t, err)
	var invalid events.ErrInvalidArgument
	require.True(t, errors.As(err, &invalid))
}

func TestAddRangeRejectsMixedFamilies(t *testing.T) {
	p := New(nil)
	err := p.AddRange("10.0.0.1", "::1", 5000, 5009, 1)
	require.Error(t, err)
}

func TestAddRangeRejectsBadPortOrder(t *testing.T) {
	p := New(nil)
	err := p.AddRange("10.0.0.1", "10.0.0.4", 5009, 5000, 1)
	require.Error(t, err)
}

// TestAcquireEvenPortSplit reproduces the address-pool split scenario:
// a pool of 10.0.0.1-10.0.0.4:5000-5009/ttl=1, acquiring 2 even-starting
// ports yields 10.0.0.1:5000-5001 and leaves the 3-address remainder
// plus the 5002-5009 trailing port fragment on the free list.
func TestAcquireEvenPortSplit(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.4", 5000, 5009, 1))

	r, err := p.Acquire(FlagEvenPort, 2)
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", r.Min.IP.String())
	require.Equal(t, "10.0.0.1", r.Max.IP.String())
	require.Equal(t, uint16(5000), r.Min.Port)
	require.Equal(t, uint16(5001), r.Max.Port)

	require.Len(t, p.free, 2)

	var sawRemainder, sawTrailing bool
	for _, f := range p.free {
		switch {
		case f.Min.IP.String() == "10.0.0.2" && f.Max.IP.String() == "10.0.0.4":
			require.Equal(t, uint16(5000), f.Min.Port)
			require.Equal(t, uint16(5009), f.Max.Port)
			sawRemainder = true
		case f.Min.IP.String() == "10.0.0.1" && f.Min.Port == 5002:
			require.Equal(t, uint16(5009), f.Max.Port)
			sawTrailing = true
		}
	}
	require.True(t, sawRemainder, "expected multi-address remainder on free list")
	require.True(t, sawTrailing, "expected trailing port fragment on free list")
}

func TestAcquireEvenPortSkipsOddStart(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5001, 5010, 1))

	r, err := p.Acquire(FlagEvenPort, 2)
	require.NoError(t, err)
	require.Equal(t, uint16(5002), r.Min.Port)
	require.Equal(t, uint16(5003), r.Max.Port)

	require.Len(t, p.free, 2)
}

func TestAcquireExactFitLeavesNoTrailingFragment(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5000, 5001, 1))

	r, err := p.Acquire(0, 2)
	require.NoError(t, err)
	require.Equal(t, uint16(5000), r.Min.Port)
	require.Equal(t, uint16(5001), r.Max.Port)
	require.Empty(t, p.free)
}

func TestAcquireReturnsPoolExhausted(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5000, 5001, 1))

	_, err := p.Acquire(0, 4)
	require.Error(t, err)
	var exhausted events.ErrPoolExhausted
	require.True(t, errors.As(err, &exhausted))
}

func TestAcquireFiltersByFamily(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5000, 5001, 1))

	_, err := p.Acquire(FlagIPv6, 2)
	require.Error(t, err)
}

func TestReleaseReturnsRangeToFreeListWithoutMerging(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5000, 5009, 1))

	r, err := p.Acquire(0, 2)
	require.NoError(t, err)
	require.Len(t, p.allocated, 1)

	p.Release(r)
	require.Empty(t, p.allocated)
	// Released fragment is appended back as-is, not merged with its
	// former trailing sibling still sitting on the free list.
	require.Len(t, p.free, 2)
}

func TestReleaseOfUnknownHandleIsNoop(t *testing.T) {
	p := New(nil)
	require.NoError(t, p.AddRange("10.0.0.1", "10.0.0.1", 5000, 5001, 1))

	stray := &Range{Min: Addr{IP: p.free[0].Min.IP, Port: 6000}, Max: Addr{IP: p.free[0].Min.IP, Port: 6001}}
	require.NotPanics(t, func() { p.Release(stray) })
	require.Len(t, p.free, 1)
}
