package mediafactory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirasrc/wfdsource/internal/wfdmsg"
)

func TestNoopCreateMediaReturnsUsableHandle(t *testing.T) {
	var f Factory = Noop{}

	f.SetAudioCodec(wfdmsg.AudioFormatAAC)
	f.SetNegotiatedResolution(Resolution{Width: 1280, Height: 720})

	handle, err := f.CreateMedia("/wfd1.0/streamid=0")
	require.NoError(t, err)
	require.NotNil(t, handle)

	seq, bytesSent := handle.SenderStats()
	require.Zero(t, seq)
	require.Zero(t, bytesSent)

	require.NotPanics(t, func() {
		handle.OnRTCPPacket(func(stream string, payload []byte) {})
		handle.Close()
	})
}
