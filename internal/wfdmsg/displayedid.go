package wfdmsg

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	edidBlockSize        = 128
	edidBlockCountMax    = 256
	edidDetailedTimingOff = 54
)

// DisplayEdid is the wfd_display_edid attribute: an optional EDID payload,
// transmitted as a contiguous lowercase hex string after the block count.
//
// The literal token "none" means the attribute is present but the feature
// is unsupported, per the Miracast EDID-exchange convention.
type DisplayEdid struct {
	Supported  bool
	BlockCount uint8
	Payload    []byte
}

// Read parses the value portion of a wfd_display_edid line.
func (e *DisplayEdid) Read(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	if strings.Contains(value, "none") {
		e.Supported = false
		return
	}

	f := fields(value)
	if len(f) == 0 {
		return
	}

	count, err := strconv.ParseUint(f[0], 16, 32)
	if err != nil {
		return
	}
	if count > edidBlockCountMax {
		count = edidBlockCountMax
	}
	e.BlockCount = uint8(count)

	if count == 0 {
		e.Supported = false
		return
	}

	if len(f) < 2 {
		return
	}

	payload, err := hex.DecodeString(f[1])
	if err != nil {
		return
	}

	e.Payload = payload
	e.Supported = true
}

// Write encodes the value portion of a wfd_display_edid line.
func (e DisplayEdid) Write() string {
	if !e.Supported {
		return "none"
	}
	return fmt.Sprintf("%04x %s", e.BlockCount, hex.EncodeToString(e.Payload))
}

// Clone returns a deep copy.
func (e *DisplayEdid) Clone() *DisplayEdid {
	if e == nil {
		return nil
	}
	c := *e
	c.Payload = append([]byte(nil), e.Payload...)
	return &c
}

// Resolution extracts the horizontal/vertical pixel counts encoded in the
// EDID's first detailed-timing descriptor (bytes 54..61 of the first
// block), per the standard EDID layout. It reports ok=false if the
// payload is too short, or if the extracted dimensions fall outside the
// Miracast-supported envelope of 640..1920 x 480..1080.
func (e DisplayEdid) Resolution() (hres, vres int, ok bool) {
	if !e.Supported || len(e.Payload) < edidDetailedTimingOff+8 {
		return 0, 0, false
	}

	p := e.Payload
	hres = (int(p[edidDetailedTimingOff+4]>>4) << 8) | int(p[edidDetailedTimingOff+2])
	vres = (int(p[edidDetailedTimingOff+7]>>4) << 8) | int(p[edidDetailedTimingOff+5])

	if hres < 640 || hres > 1920 || vres < 480 || vres > 1080 {
		return hres, vres, false
	}

	return hres, vres, true
}
