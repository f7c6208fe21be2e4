package wfdres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/wfdmsg"
)

func TestNegotiateAudioScenario(t *testing.T) {
	// Source prefers AAC; sink advertises LPCM|AAC with FREQ_48000,
	// CHANNEL_2, latency 0. Expected: AAC, 48000, 2ch.
	result, err := NegotiateAudio(
		wfdmsg.AudioFormatAAC, wfdmsg.AudioFreq48000,
		wfdmsg.AudioFormatLPCM|wfdmsg.AudioFormatAAC, wfdmsg.AudioFreq48000, 0,
	)
	require.NoError(t, err)
	require.Equal(t, wfdmsg.AudioFormatAAC, result.Format)
	require.Equal(t, wfdmsg.AudioFreq48000, result.Freq)
	require.Equal(t, wfdmsg.AudioChannels2, result.Channels)
	require.Equal(t, uint32(1), result.ModeBits())
}

func TestNegotiateAudioPrefersLPCMOverAAC(t *testing.T) {
	result, err := NegotiateAudio(
		wfdmsg.AudioFormatLPCM|wfdmsg.AudioFormatAAC, wfdmsg.AudioFreq48000,
		wfdmsg.AudioFormatLPCM|wfdmsg.AudioFormatAAC|wfdmsg.AudioFormatAC3, wfdmsg.AudioFreq48000, 0,
	)
	require.NoError(t, err)
	require.Equal(t, wfdmsg.AudioFormatLPCM, result.Format)
}

func TestNegotiateAudioFallsBackTo44100(t *testing.T) {
	result, err := NegotiateAudio(
		wfdmsg.AudioFormatAAC, wfdmsg.AudioFreq44100,
		wfdmsg.AudioFormatAAC, wfdmsg.AudioFreq44100|wfdmsg.AudioFreq48000, 0,
	)
	require.NoError(t, err)
	require.Equal(t, wfdmsg.AudioFreq44100, result.Freq)
}

func TestNegotiateAudioNoCommonCodec(t *testing.T) {
	_, err := NegotiateAudio(
		wfdmsg.AudioFormatAC3, wfdmsg.AudioFreq48000,
		wfdmsg.AudioFormatLPCM, wfdmsg.AudioFreq48000, 0,
	)
	var failure events.ErrNegotiationFailure
	require.True(t, errors.As(err, &failure))
	var noCodec events.NoCommonAudioCodec
	require.True(t, errors.As(err, &noCodec))
}

func TestNegotiateVideoScenario(t *testing.T) {
	// Source supports CEA_1280x720P30 (bit5) | CEA_640x480P60 (bit0).
	// Sink supports CEA_1920x1080P60 (bit8) | CEA_1280x720P30 (bit5).
	sourceMask := uint32(1<<5 | 1<<0)
	sinkMask := uint32(1<<8 | 1<<5)

	result, err := NegotiateVideo(wfdmsg.NativeFamilyCEA, sourceMask, sinkMask)
	require.NoError(t, err)
	require.Equal(t, uint32(5), result.Bit)
	require.Equal(t, Mode{1280, 720, 30, false}, result.Mode)
}

func TestNegotiateVideoNoCommonResolution(t *testing.T) {
	_, err := NegotiateVideo(wfdmsg.NativeFamilyCEA, 1<<0, 1<<1)
	var failure events.ErrNegotiationFailure
	require.True(t, errors.As(err, &failure))
	var noRes events.NoCommonVideoResolution
	require.True(t, errors.As(err, &noRes))
}

func TestNegotiateVideoVESAAndHH(t *testing.T) {
	result, err := NegotiateVideo(wfdmsg.NativeFamilyVESA, 1<<29, 1<<29)
	require.NoError(t, err)
	require.Equal(t, Mode{1920, 1200, 60, false}, result.Mode)

	result, err = NegotiateVideo(wfdmsg.NativeFamilyHH, 1<<11, 1<<11)
	require.NoError(t, err)
	require.Equal(t, Mode{848, 480, 60, false}, result.Mode)
}
