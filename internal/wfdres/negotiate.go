package wfdres

import (
	"math/bits"

	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/wfdmsg"
)

// audioPriority lists the audio formats in source-preference order,
// highest priority first: LPCM, then AAC, then AC3.
var audioPriority = []wfdmsg.AudioFormat{
	wfdmsg.AudioFormatLPCM,
	wfdmsg.AudioFormatAAC,
	wfdmsg.AudioFormatAC3,
}

// NegotiatedAudio is the result of negotiating an audio codec, sample
// rate, and channel count between a source-supported set and a
// sink-advertised set.
type NegotiatedAudio struct {
	Format   wfdmsg.AudioFormat
	Freq     wfdmsg.AudioFreq
	Channels wfdmsg.AudioChannels
	Latency  uint8
}

// NegotiateAudio picks the highest-priority codec present in both
// sourceFormats and sinkFormats (LPCM > AAC > AC3), then the preferred
// sample rate (48000 over 44100) common to both sides. Channels always
// clamp to 2, matching the source's behavior of always negotiating down
// to stereo regardless of what the sink advertises. Latency is
// propagated from the sink's advertised value for the chosen codec.
func NegotiateAudio(
	sourceFormats wfdmsg.AudioFormat, sourceFreq wfdmsg.AudioFreq,
	sinkFormats wfdmsg.AudioFormat, sinkFreq wfdmsg.AudioFreq, sinkLatency uint8,
) (NegotiatedAudio, error) {
	var chosen wfdmsg.AudioFormat
	for _, f := range audioPriority {
		if sourceFormats&f != 0 && sinkFormats&f != 0 {
			chosen = f
			break
		}
	}

	if chosen == 0 {
		return NegotiatedAudio{}, events.ErrNegotiationFailure{Kind: events.NoCommonAudioCodec{}}
	}

	freq := wfdmsg.AudioFreq48000
	if sourceFreq&wfdmsg.AudioFreq48000 == 0 || sinkFreq&wfdmsg.AudioFreq48000 == 0 {
		freq = wfdmsg.AudioFreq44100
	}

	return NegotiatedAudio{
		Format:   chosen,
		Freq:     freq,
		Channels: wfdmsg.AudioChannels2,
		Latency:  sinkLatency,
	}, nil
}

// ModeBits returns the wfd_audio_codecs modes mask for the negotiated
// frequency/channel combination, as written into M4's body.
func (n NegotiatedAudio) ModeBits() uint32 {
	return 1 << wfdmsg.CodecModeBit(n.Freq, n.Channels)
}

// NegotiatedVideo is the result of negotiating a single resolution
// between a source-supported mask and a sink-supported mask within one
// native family.
type NegotiatedVideo struct {
	Family wfdmsg.NativeFamily
	Bit    uint32
	Mode   Mode
}

// NegotiateVideo scans sourceMask & sinkMask MSB-first (as a 32-bit
// field) and returns the highest set common bit mapped through the fixed
// family table. Profile is fixed at Baseline and level at 3.1 by the
// caller; this function only resolves the resolution.
func NegotiateVideo(family wfdmsg.NativeFamily, sourceMask, sinkMask uint32) (NegotiatedVideo, error) {
	common := sourceMask & sinkMask
	if common == 0 {
		return NegotiatedVideo{}, events.ErrNegotiationFailure{Kind: events.NoCommonVideoResolution{}}
	}

	bitIndex := bits.Len32(common) - 1

	table := tableFor(family)
	if table == nil || bitIndex >= len(table) {
		return NegotiatedVideo{}, events.ErrNegotiationFailure{Kind: events.NoCommonVideoResolution{}}
	}

	return NegotiatedVideo{
		Family: family,
		Bit:    uint32(bitIndex),
		Mode:   table[bitIndex],
	}, nil
}
