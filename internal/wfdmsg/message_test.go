package wfdmsg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	m := New()
	m.AudioCodecs = &AudioCodecs{Codecs: []AudioCodecEntry{
		{Format: AudioFormatAAC, Modes: 1, Latency: 0},
	}}
	m.ClientRTPPorts = &ClientRTPPorts{
		Profile: "RTP/AVP/UDP;unicast",
		Port0:   19000,
		Port1:   0,
		Mode:    "mode=play",
	}
	m.Standby = &Standby{}

	out := m.Serialize()
	back := ParseBuffer(out)

	require.NotNil(t, back.AudioCodecs)
	require.Equal(t, m.AudioCodecs.Codecs, back.AudioCodecs.Codecs)
	require.NotNil(t, back.ClientRTPPorts)
	require.Equal(t, *m.ClientRTPPorts, *back.ClientRTPPorts)
	require.NotNil(t, back.Standby)
}

func TestSerializeNamesOnly(t *testing.T) {
	m := NamesOnly(AttrAudioCodecs, AttrVideoFormats, AttrClientRTPPorts)
	out := string(m.SerializeNamesOnly())

	require.Equal(t, "wfd_audio_codecs\r\nwfd_video_formats\r\nwfd_client_rtp_ports\r\n", out)
}

func TestAudioCodecNegotiationScenario(t *testing.T) {
	// Source prefers AAC; sink advertises LPCM|AAC with 48kHz/2ch/latency 0.
	entry := AudioCodecEntry{
		Format:  AudioFormatAAC,
		Modes:   1 << CodecModeBit(AudioFreq48000, AudioChannels2),
		Latency: 0,
	}
	codecs := &AudioCodecs{Codecs: []AudioCodecEntry{entry}}

	require.Equal(t, "AAC 00000001 00", codecs.Write())
}

func TestDisplayEdidUnsupportedOnNoneToken(t *testing.T) {
	e := &DisplayEdid{}
	e.Read("none")
	require.False(t, e.Supported)
}

func TestDisplayEdidZeroBlockCount(t *testing.T) {
	e := &DisplayEdid{}
	e.Read("0000")
	require.False(t, e.Supported)
	require.Empty(t, e.Payload)
}

func TestDisplayEdidResolutionExtraction(t *testing.T) {
	payload := make([]byte, 128)
	// bytes are 0-indexed in the payload slice, matching the EDID
	// standard's absolute byte offsets 56, 58, 59, 61.
	payload[56] = 0x80 // hres low byte
	payload[58] = 0x70 // hres high nibble (1920 = 0x780)
	payload[59] = 0x38 // vres low byte
	payload[61] = 0x40 // vres high nibble (1080 = 0x438)

	e := &DisplayEdid{Supported: true, BlockCount: 1, Payload: payload}
	hres, vres, ok := e.Resolution()
	require.True(t, ok)
	require.Equal(t, 1920, hres)
	require.Equal(t, 1080, vres)
}

func TestDisplayEdidRoundTrip(t *testing.T) {
	payload := strings.Repeat("ab", 128)
	e := &DisplayEdid{}
	e.Read("0001 " + payload)
	require.True(t, e.Supported)
	require.Equal(t, uint8(1), e.BlockCount)

	out := e.Write()
	back := &DisplayEdid{}
	back.Read(out)
	require.Equal(t, e.Payload, back.Payload)
}

func TestContentProtectionNonDestructiveParse(t *testing.T) {
	input := "HDCP2.1 port=554"
	c := &ContentProtection{}
	c.Read(input)
	require.Equal(t, "HDCP2.1 port=554", input) // Read must not mutate its argument
	require.Equal(t, HDCPVersion2_1, c.HDCPVersion)
	require.Equal(t, uint16(554), c.Port)
}

func TestVideoFormatNativeFamily(t *testing.T) {
	v := &VideoFormat{}
	v.Read("01 00 02 02 00000041 00000000 00000000 00 0000 0000 00 0000 0000")
	require.Equal(t, NativeFamilyVESA, v.NativeFamilyValue())
	require.Equal(t, uint32(0x41), v.CEASupport)
}

func TestMalformedLineDoesNotAbortParsing(t *testing.T) {
	buf := []byte("wfd_standby\r\nnot_a_valid_line_without_colon_marker_zzz\r\nwfd_idr_request\r\n")
	m := ParseBuffer(buf)
	require.NotNil(t, m.Standby)
	require.NotNil(t, m.IdrRequest)
}

func TestUnknownAttributeIgnored(t *testing.T) {
	buf := []byte("wfd_something_future: 1 2 3\r\nwfd_standby\r\n")
	m := ParseBuffer(buf)
	require.NotNil(t, m.Standby)
}
