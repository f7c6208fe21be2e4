package mediafactory

import "github.com/mirasrc/wfdsource/internal/wfdmsg"

// Noop is a Factory that performs no actual media processing. It exists so
// internal/core can wire together a runnable server when no concrete
// pipeline (encoders, muxer, RTP payloader, capture source) has been
// plugged in; the real pipeline remains an external collaborator.
type Noop struct{}

// SetAudioCodec implements Factory.
func (Noop) SetAudioCodec(wfdmsg.AudioFormat) {}

// SetNegotiatedResolution implements Factory.
func (Noop) SetNegotiatedResolution(Resolution) {}

// CreateMedia implements Factory.
func (Noop) CreateMedia(string) (MediaHandle, error) {
	return noopHandle{}, nil
}

type noopHandle struct{}

func (noopHandle) OnRTCPPacket(func(stream string, payload []byte)) {}

func (noopHandle) SenderStats() (uint32, uint64) { return 0, 0 }

func (noopHandle) Close() {}
