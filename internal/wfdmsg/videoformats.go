package wfdmsg

import (
	"fmt"
	"strconv"
)

// VideoFormat is the wfd_video_formats attribute: a single record
// describing the native resolution index/family, whether a custom
// preferred display mode is supported, and the H.264 capability masks.
type VideoFormat struct {
	Native                   uint8
	PreferredDisplayMode     bool
	Profile                  H264Profile
	Level                    H264Level
	CEASupport               uint32
	VESASupport              uint32
	HHSupport                uint32
	Latency                  uint8
	MinSliceSize             uint32
	SliceEncParams           uint32
	FrameRateControlSupport  uint8
	MaxHres                  uint16
	MaxVres                  uint16
}

func parseHex32(s string) uint32 {
	v, _ := strconv.ParseUint(s, 16, 32)
	return uint32(v)
}

func parseHex8(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}

func parseHex16(s string) uint16 {
	v, _ := strconv.ParseUint(s, 16, 16)
	return uint16(v)
}

// Read parses the value portion of a wfd_video_formats line.
func (v *VideoFormat) Read(value string) {
	f := fields(value)
	if len(f) == 0 {
		return
	}

	get := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return "0"
	}

	v.Native = parseHex8(get(0))
	v.PreferredDisplayMode = parseHex8(get(1)) == 1
	v.Profile = H264Profile(parseHex32(get(2)))
	v.Level = H264Level(parseHex32(get(3)))
	v.CEASupport = parseHex32(get(4))
	v.VESASupport = parseHex32(get(5))
	v.HHSupport = parseHex32(get(6))
	v.Latency = parseHex8(get(7))
	v.MinSliceSize = parseHex32(get(8))
	v.SliceEncParams = parseHex32(get(9))
	v.FrameRateControlSupport = parseHex8(get(10))
	v.MaxHres = parseHex16(get(11))
	v.MaxVres = parseHex16(get(12))
}

// Write encodes the value portion of a wfd_video_formats line.
func (v VideoFormat) Write() string {
	pref := 0
	if v.PreferredDisplayMode {
		pref = 1
	}

	return fmt.Sprintf("%02x %02x %02x %02x %08x %08x %08x %02x %04x %04x %02x %04x %04x",
		v.Native, pref, v.Profile, v.Level,
		v.CEASupport, v.VESASupport, v.HHSupport,
		v.Latency, v.MinSliceSize, v.SliceEncParams, v.FrameRateControlSupport,
		v.MaxHres, v.MaxVres)
}

// Clone returns a deep copy.
func (v *VideoFormat) Clone() *VideoFormat {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// NativeFamilyValue returns the resolution family encoded in Native's low 3 bits.
func (v VideoFormat) NativeFamilyValue() NativeFamily {
	return NativeFamily(v.Native & 0x7)
}

// Video3DFormat is the wfd_3d_video_formats attribute. It mirrors
// VideoFormat but carries a single 64-bit video_3d_capability mask in
// place of the per-family CEA/VESA/HH masks.
type Video3DFormat struct {
	Native                  uint8
	PreferredDisplayMode    bool
	Profile                 H264Profile
	Level                   H264Level
	Video3DCapability       uint64
	Latency                 uint8
	MinSliceSize            uint32
	SliceEncParams          uint32
	FrameRateControlSupport uint8
	MaxHres                 uint16
	MaxVres                 uint16
}

// Read parses the value portion of a wfd_3d_video_formats line.
func (v *Video3DFormat) Read(value string) {
	f := fields(value)
	if len(f) == 0 {
		return
	}

	get := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return "0"
	}

	v.Native = parseHex8(get(0))
	v.PreferredDisplayMode = parseHex8(get(1)) == 1
	v.Profile = H264Profile(parseHex32(get(2)))
	v.Level = H264Level(parseHex32(get(3)))
	cap64, _ := strconv.ParseUint(get(4), 16, 64)
	v.Video3DCapability = cap64
	v.Latency = parseHex8(get(5))
	v.MinSliceSize = parseHex32(get(6))
	v.SliceEncParams = parseHex32(get(7))
	v.FrameRateControlSupport = parseHex8(get(8))
	v.MaxHres = parseHex16(get(9))
	v.MaxVres = parseHex16(get(10))
}

// Write encodes the value portion of a wfd_3d_video_formats line.
func (v Video3DFormat) Write() string {
	pref := 0
	if v.PreferredDisplayMode {
		pref = 1
	}

	return fmt.Sprintf("%02x %02x %02x %02x %016x %02x %04x %04x %02x %04x %04x",
		v.Native, pref, v.Profile, v.Level, v.Video3DCapability,
		v.Latency, v.MinSliceSize, v.SliceEncParams, v.FrameRateControlSupport,
		v.MaxHres, v.MaxVres)
}

// Clone returns a deep copy.
func (v *Video3DFormat) Clone() *Video3DFormat {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
