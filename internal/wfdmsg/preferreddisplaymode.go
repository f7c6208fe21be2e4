package wfdmsg

import (
	"fmt"
	"strings"
)

// PreferredDisplayMode is the wfd_preferred_display_mode attribute: either
// "none" or a full clock+timing record plus the H.264 capability for that
// mode.
type PreferredDisplayMode struct {
	Supported bool

	PClock       uint32
	H            uint32
	HB           uint32
	HSPOLHSOff   uint32
	HSW          uint32
	V            uint32
	VB           uint32
	VSPOLVSOff   uint32
	VSW          uint32
	VBS3D        uint32
	V2DS3DModes  uint32
	PDepth       uint32

	Profile                 H264Profile
	Level                   H264Level
	CEASupport              uint32
	VESASupport             uint32
	HHSupport               uint32
	Latency                 uint8
	MinSliceSize            uint32
	SliceEncParams          uint32
	FrameRateControlSupport uint8
	MaxHres                 uint16
	MaxVres                 uint16
}

// Read parses the value portion of a wfd_preferred_display_mode line.
func (p *PreferredDisplayMode) Read(value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		p.Supported = false
		return
	}

	f := fields(value)
	get := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return "0"
	}

	p.Supported = true
	p.PClock = parseHex32(get(0))
	p.H = parseHex32(get(1))
	p.HB = parseHex32(get(2))
	p.HSPOLHSOff = parseHex32(get(3))
	p.HSW = parseHex32(get(4))
	p.V = parseHex32(get(5))
	p.VB = parseHex32(get(6))
	p.VSPOLVSOff = parseHex32(get(7))
	p.VSW = parseHex32(get(8))
	p.VBS3D = parseHex32(get(9))
	p.V2DS3DModes = parseHex32(get(10))
	p.PDepth = parseHex32(get(11))
	p.Profile = H264Profile(parseHex32(get(12)))
	p.Level = H264Level(parseHex32(get(13)))
	p.CEASupport = parseHex32(get(14))
	p.VESASupport = parseHex32(get(15))
	p.HHSupport = parseHex32(get(16))
	p.Latency = parseHex8(get(17))
	p.MinSliceSize = parseHex32(get(18))
	p.SliceEncParams = parseHex32(get(19))
	p.FrameRateControlSupport = parseHex8(get(20))
	p.MaxHres = parseHex16(get(21))
	p.MaxVres = parseHex16(get(22))
}

// Write encodes the value portion of a wfd_preferred_display_mode line.
func (p PreferredDisplayMode) Write() string {
	if !p.Supported {
		return "none"
	}

	return fmt.Sprintf(
		"%08x %08x %08x %08x %08x %08x %08x %08x %08x %08x %08x %08x "+
			"%02x %02x %08x %08x %08x %02x %04x %04x %02x %04x %04x",
		p.PClock, p.H, p.HB, p.HSPOLHSOff, p.HSW, p.V, p.VB, p.VSPOLVSOff, p.VSW,
		p.VBS3D, p.V2DS3DModes, p.PDepth,
		p.Profile, p.Level, p.CEASupport, p.VESASupport, p.HHSupport,
		p.Latency, p.MinSliceSize, p.SliceEncParams, p.FrameRateControlSupport,
		p.MaxHres, p.MaxVres)
}

// Clone returns a deep copy.
func (p *PreferredDisplayMode) Clone() *PreferredDisplayMode {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
