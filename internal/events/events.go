// Package events defines the error and event kinds a WFD session can
// raise, following gortsplib's liberrors idiom of one exported struct type
// per kind rather than sentinel values or error codes.
package events

import "fmt"

// ErrInvalidArgument covers a null pointer, an out-of-range port, an
// EDID block count above 256, or a malformed address.
type ErrInvalidArgument struct {
	Reason string
}

// Error implements the error interface.
func (e ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// ErrParseError means a WFD body could not be tokenized, or a required
// attribute was absent when negotiation needed it.
type ErrParseError struct {
	Attribute string
}

// Error implements the error interface.
func (e ErrParseError) Error() string {
	return fmt.Sprintf("parse error in %s", e.Attribute)
}

// NoCommonAudioCodec means the source and sink audio-codec masks don't
// intersect.
type NoCommonAudioCodec struct{}

// Error implements the error interface.
func (e NoCommonAudioCodec) Error() string {
	return "no common audio codec"
}

// NoCommonVideoResolution means the source and sink resolution masks
// don't intersect for the negotiated native family.
type NoCommonVideoResolution struct{}

// Error implements the error interface.
func (e NoCommonVideoResolution) Error() string {
	return "no common video resolution"
}

// ErrNegotiationFailure wraps a NoCommonAudioCodec or
// NoCommonVideoResolution failure.
type ErrNegotiationFailure struct {
	Kind error
}

// Error implements the error interface.
func (e ErrNegotiationFailure) Error() string {
	return fmt.Sprintf("negotiation failed: %v", e.Kind)
}

// Unwrap allows errors.As to match the wrapped Kind directly.
func (e ErrNegotiationFailure) Unwrap() error {
	return e.Kind
}

// ErrProtocolViolation means a request arrived in the wrong handshake
// state, e.g. SETUP before M4 completed.
type ErrProtocolViolation struct {
	Detail string
}

// Error implements the error interface.
func (e ErrProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation: %s", e.Detail)
}

// ErrPoolExhausted means the address pool found no range matching an
// acquire request.
type ErrPoolExhausted struct{}

// Error implements the error interface.
func (e ErrPoolExhausted) Error() string {
	return "address pool exhausted"
}

// ErrKeepAliveTimeout is emitted as an event when a session doesn't
// observe a keep-alive response within the grace period; it always
// terminates the session.
type ErrKeepAliveTimeout struct{}

// Error implements the error interface.
func (e ErrKeepAliveTimeout) Error() string {
	return "keep-alive timeout"
}

// ErrTransportError wraps an error surfaced from the RTSP transport
// library; always fatal for the session.
type ErrTransportError struct {
	Err error
}

// Error implements the error interface.
func (e ErrTransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap allows errors.As/errors.Is to reach the underlying transport error.
func (e ErrTransportError) Unwrap() error {
	return e.Err
}

// Event is a session-lifecycle notification delivered on the embedder's
// event channel, one variant per notification kind. Delivery is
// best-effort: a session never blocks on a full channel.
type Event interface {
	isEvent()
}

// EventOptionsRequest is raised after the sink's OPTIONS request has been
// answered, i.e. the second handshake exchange completed.
type EventOptionsRequest struct {
	SessionID string
}

func (EventOptionsRequest) isEvent() {}

// EventPlayingDone is raised when a session enters the streaming state
// after the sink's PLAY request.
type EventPlayingDone struct {
	SessionID string
}

func (EventPlayingDone) isEvent() {}

// EventKeepAliveFail is raised when a keep-alive cycle goes unanswered
// past the grace period; the session closes right after raising it.
type EventKeepAliveFail struct {
	SessionID string
}

func (EventKeepAliveFail) isEvent() {}
