// Package mediafactory defines the interface the WFD session state machine
// uses to hand off a negotiated audio/video configuration to the concrete
// media pipeline (encoders, muxer, RTP payloader, capture source). The
// pipeline itself is explicitly external to this module; this package
// only carries the shape the session depends on, without implementing it.
package mediafactory

import (
	"github.com/mirasrc/wfdsource/internal/wfdmsg"
)

// Resolution is the (width, height) pair the session negotiates for the
// streamed video, before framerate/interlace are folded into the pipeline's
// own configuration.
type Resolution struct {
	Width  uint16
	Height uint16
}

// MediaHandle is returned by Factory.CreateMedia. It exposes per-stream
// RTCP hooks so the session can subscribe to RTP/RTCP statistics without
// knowing anything about how the stream is implemented.
type MediaHandle interface {
	// OnRTCPPacket registers a callback invoked with the raw payload of
	// every RTCP packet the stream receives from the sink. The session
	// decodes receiver reports out of these payloads itself (see
	// internal/servers/wfd/stats.go), the way it would decode any other
	// wire structure it consumes.
	OnRTCPPacket(func(stream string, payload []byte))

	// SenderStats reports the stream's outbound counters: the last RTP
	// sequence number sent and the total payload bytes sent. The
	// session's periodic stats timer polls this to log per-tick deltas.
	SenderStats() (seqNum uint32, bytesSent uint64)

	// Close tears down the media handle; called when the session closes.
	Close()
}

// Factory is the pluggable media factory a WFD session configures during
// negotiation and invokes on SETUP. The factory owns everything downstream
// of the negotiated parameters: encoder selection, muxing, RTP
// payloading, and the capture/file source.
type Factory interface {
	// SetAudioCodec is called once negotiation selects an audio codec,
	// right after the M3 response is parsed.
	SetAudioCodec(codec wfdmsg.AudioFormat)

	// SetNegotiatedResolution is called while building M4, after video
	// resolution negotiation picks a single mode.
	SetNegotiatedResolution(res Resolution)

	// CreateMedia is invoked by the transport when the sink's SETUP
	// request arrives for url.
	CreateMedia(url string) (MediaHandle, error)
}
