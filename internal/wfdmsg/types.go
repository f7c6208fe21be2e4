// Package wfdmsg implements the WFD parameter message codec: the
// line-oriented "attr: value" text format carried in the bodies of RTSP
// GET_PARAMETER and SET_PARAMETER requests during Miracast capability
// negotiation.
package wfdmsg

// AudioFormat is a bitmask of supported audio codecs.
type AudioFormat uint32

// audio formats, in source-preference priority order (highest first).
const (
	AudioFormatLPCM AudioFormat = 1 << iota
	AudioFormatAAC
	AudioFormatAC3
)

func (f AudioFormat) String() string {
	switch f {
	case AudioFormatLPCM:
		return "LPCM"
	case AudioFormatAAC:
		return "AAC"
	case AudioFormatAC3:
		return "AC3"
	default:
		return "unknown"
	}
}

func audioFormatFromString(s string) AudioFormat {
	switch s {
	case "LPCM":
		return AudioFormatLPCM
	case "AAC":
		return AudioFormatAAC
	case "AC3":
		return AudioFormatAC3
	default:
		return 0
	}
}

// AudioFreq is a bitmask of supported sample rates.
type AudioFreq uint32

// sample rates.
const (
	AudioFreq44100 AudioFreq = 1 << iota
	AudioFreq48000
)

// AudioChannels is a bitmask of supported channel counts.
type AudioChannels uint32

// channel counts.
const (
	AudioChannels2 AudioChannels = 1 << iota
	AudioChannels4
	AudioChannels6
	AudioChannels8
)

// VideoCodec is a bitmask of supported video codecs.
type VideoCodec uint32

// VideoCodecH264 is the only video codec WFD carries.
const VideoCodecH264 VideoCodec = 1

// NativeFamily is the resolution-table family a native index refers to.
type NativeFamily uint8

// resolution families.
const (
	NativeFamilyCEA NativeFamily = iota
	NativeFamilyVESA
	NativeFamilyHH
)

// H264Profile is a bitmask of supported H.264 profiles.
type H264Profile uint32

// H.264 profiles.
const (
	H264ProfileBase H264Profile = 1 << iota
	H264ProfileHigh
)

// H264Level is a bitmask of supported H.264 levels.
type H264Level uint32

// H.264 levels.
const (
	H264Level31 H264Level = 1
	H264Level32 H264Level = 2
	H264Level4  H264Level = 4
	H264Level41 H264Level = 8
	H264Level42 H264Level = 16
)

// HDCPVersion is the negotiated HDCP2 content-protection version.
type HDCPVersion int

// HDCP versions.
const (
	HDCPVersionNone HDCPVersion = iota
	HDCPVersion2_0
	HDCPVersion2_1
)

func hdcpVersionFromString(s string) HDCPVersion {
	switch s {
	case "HDCP2.0":
		return HDCPVersion2_0
	case "HDCP2.1":
		return HDCPVersion2_1
	default:
		return HDCPVersionNone
	}
}

func (v HDCPVersion) String() string {
	switch v {
	case HDCPVersion2_0:
		return "HDCP2.0"
	case HDCPVersion2_1:
		return "HDCP2.1"
	default:
		return "none"
	}
}

// TriggerMethod is the method carried by wfd_trigger_method.
type TriggerMethod int

// trigger methods.
const (
	TriggerMethodSetup TriggerMethod = iota
	TriggerMethodPause
	TriggerMethodTeardown
	TriggerMethodPlay
)

func (m TriggerMethod) String() string {
	switch m {
	case TriggerMethodPause:
		return "PAUSE"
	case TriggerMethodTeardown:
		return "TEARDOWN"
	case TriggerMethodPlay:
		return "PLAY"
	default:
		return "SETUP"
	}
}

func triggerMethodFromString(s string) (TriggerMethod, bool) {
	switch s {
	case "SETUP":
		return TriggerMethodSetup, true
	case "PAUSE":
		return TriggerMethodPause, true
	case "TEARDOWN":
		return TriggerMethodTeardown, true
	case "PLAY":
		return TriggerMethodPlay, true
	default:
		return 0, false
	}
}
