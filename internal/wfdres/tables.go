// Package wfdres holds the fixed Miracast negotiation tables and the
// audio/video capability-intersection algorithms used to pick a single
// codec and resolution the source and sink both support.
package wfdres

import "github.com/mirasrc/wfdsource/internal/wfdmsg"

// Mode is a single (width, height, framerate, interleaved) resolution
// entry from one of the CEA/VESA/HH fixed-enum tables.
type Mode struct {
	Width       uint32
	Height      uint32
	FrameRate   uint32
	Interleaved bool
}

// CEATable maps a CEA resolution bit index (0 = LSB) to its mode. Order is
// fixed by the Miracast standard.
var CEATable = [17]Mode{
	{640, 480, 60, false},
	{720, 480, 60, false},
	{720, 480, 60, true},
	{720, 576, 50, false},
	{720, 576, 50, true},
	{1280, 720, 30, false},
	{1280, 720, 60, false},
	{1920, 1080, 30, false},
	{1920, 1080, 60, false},
	{1920, 1080, 60, true},
	{1280, 720, 25, false},
	{1280, 720, 50, false},
	{1920, 1080, 25, false},
	{1920, 1080, 50, false},
	{1920, 1080, 50, true},
	{1280, 720, 24, false},
	{1920, 1080, 24, false},
}

// VESATable maps a VESA resolution bit index to its mode.
var VESATable = [30]Mode{
	{800, 600, 30, false},
	{800, 600, 60, false},
	{1024, 768, 30, false},
	{1024, 768, 60, false},
	{1152, 864, 30, false},
	{1152, 864, 60, false},
	{1280, 768, 30, false},
	{1280, 768, 60, false},
	{1280, 800, 30, false},
	{1280, 800, 60, false},
	{1360, 768, 30, false},
	{1360, 768, 60, false},
	{1366, 768, 30, false},
	{1366, 768, 60, false},
	{1280, 1024, 30, false},
	{1280, 1024, 60, false},
	{1400, 1050, 30, false},
	{1400, 1050, 60, false},
	{1440, 900, 30, false},
	{1440, 900, 60, false},
	{1600, 900, 30, false},
	{1600, 900, 60, false},
	{1600, 1200, 30, false},
	{1600, 1200, 60, false},
	{1680, 1024, 30, false},
	{1680, 1024, 60, false},
	{1680, 1050, 30, false},
	{1680, 1050, 60, false},
	{1920, 1200, 30, false},
	{1920, 1200, 60, false},
}

// HHTable maps a handheld (HH) resolution bit index to its mode. The HH
// family never reports interleaved video.
var HHTable = [12]Mode{
	{800, 480, 30, false},
	{800, 480, 60, false},
	{854, 480, 30, false},
	{854, 480, 60, false},
	{864, 480, 30, false},
	{864, 480, 60, false},
	{640, 360, 30, false},
	{640, 360, 60, false},
	{960, 540, 30, false},
	{960, 540, 60, false},
	{848, 480, 30, false},
	{848, 480, 60, false},
}

func tableFor(family wfdmsg.NativeFamily) []Mode {
	switch family {
	case wfdmsg.NativeFamilyCEA:
		return CEATable[:]
	case wfdmsg.NativeFamilyVESA:
		return VESATable[:]
	case wfdmsg.NativeFamilyHH:
		return HHTable[:]
	default:
		return nil
	}
}
