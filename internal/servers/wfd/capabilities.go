package wfd

import "github.com/mirasrc/wfdsource/internal/wfdmsg"

// Capabilities is the set of audio/video parameters this source advertises
// during negotiation: a fixed, configured description of what this
// particular source instance can do.
type Capabilities struct {
	AudioFormats wfdmsg.AudioFormat
	AudioFreq    wfdmsg.AudioFreq

	NativeFamily wfdmsg.NativeFamily
	VideoMask    uint32
}

// DefaultCapabilities advertises AAC at 48kHz and CEA 1280x720p30 (bit 5)
// plus 640x480p60 (bit 0), a conservative baseline most sinks negotiate
// successfully.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		AudioFormats: wfdmsg.AudioFormatAAC,
		AudioFreq:    wfdmsg.AudioFreq48000,
		NativeFamily: wfdmsg.NativeFamilyCEA,
		VideoMask:    0x21,
	}
}
