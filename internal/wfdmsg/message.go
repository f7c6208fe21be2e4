package wfdmsg

import "strings"

// attribute names, as they appear on the wire.
const (
	attrAudioCodecs            = "wfd_audio_codecs"
	attrVideoFormats           = "wfd_video_formats"
	attr3DVideoFormats         = "wfd_3d_video_formats"
	attrContentProtection      = "wfd_content_protection"
	attrDisplayEdid            = "wfd_display_edid"
	attrCoupledSink            = "wfd_coupled_sink"
	attrTriggerMethod          = "wfd_trigger_method"
	attrPresentationURL        = "wfd_presentation_URL"
	attrClientRTPPorts         = "wfd_client_rtp_ports"
	attrRoute                  = "wfd_route"
	attrI2C                    = "wfd_I2C"
	attrAVFormatChangeTiming   = "wfd_av_format_change_timing"
	attrPreferredDisplayMode   = "wfd_preferred_display_mode"
	attrStandbyResumeCapable   = "wfd_standby_resume_capability"
	attrStandby                = "wfd_standby"
	attrConnectorType          = "wfd_connector_type"
	attrIdrRequest             = "wfd_idr_request"
)

// orderedAttrs lists every recognized attribute in wire serialization order.
var orderedAttrs = []string{
	attrAudioCodecs,
	attrVideoFormats,
	attr3DVideoFormats,
	attrContentProtection,
	attrDisplayEdid,
	attrCoupledSink,
	attrTriggerMethod,
	attrPresentationURL,
	attrClientRTPPorts,
	attrRoute,
	attrI2C,
	attrAVFormatChangeTiming,
	attrPreferredDisplayMode,
	attrStandbyResumeCapable,
	attrStandby,
	attrConnectorType,
	attrIdrRequest,
}

// Message is a typed in-memory representation of a WFD parameter message. A
// nil field means the attribute is absent; a non-nil field, even if it
// carries zero values, means the attribute's line is emitted on Serialize.
type Message struct {
	AudioCodecs            *AudioCodecs
	VideoFormats           *VideoFormat
	Video3DFormats         *Video3DFormat
	ContentProtection      *ContentProtection
	DisplayEdid            *DisplayEdid
	CoupledSink            *CoupledSink
	TriggerMethod          *TriggerMethodAttr
	PresentationURL        *PresentationURL
	ClientRTPPorts         *ClientRTPPorts
	Route                  *Route
	I2C                    *I2C
	AVFormatChangeTiming   *AVFormatChangeTiming
	PreferredDisplayMode   *PreferredDisplayMode
	StandbyResumeCapable   *StandbyResumeCapability
	Standby                *Standby
	ConnectorType          *ConnectorType
	IdrRequest             *IdrRequest
}

// New returns an empty message with no attributes set.
func New() *Message {
	return &Message{}
}

// present reports whether an attribute is set, by wire name.
func (m *Message) present(name string) bool {
	switch name {
	case attrAudioCodecs:
		return m.AudioCodecs != nil
	case attrVideoFormats:
		return m.VideoFormats != nil
	case attr3DVideoFormats:
		return m.Video3DFormats != nil
	case attrContentProtection:
		return m.ContentProtection != nil
	case attrDisplayEdid:
		return m.DisplayEdid != nil
	case attrCoupledSink:
		return m.CoupledSink != nil
	case attrTriggerMethod:
		return m.TriggerMethod != nil
	case attrPresentationURL:
		return m.PresentationURL != nil
	case attrClientRTPPorts:
		return m.ClientRTPPorts != nil
	case attrRoute:
		return m.Route != nil
	case attrI2C:
		return m.I2C != nil
	case attrAVFormatChangeTiming:
		return m.AVFormatChangeTiming != nil
	case attrPreferredDisplayMode:
		return m.PreferredDisplayMode != nil
	case attrStandbyResumeCapable:
		return m.StandbyResumeCapable != nil
	case attrStandby:
		return m.Standby != nil
	case attrConnectorType:
		return m.ConnectorType != nil
	case attrIdrRequest:
		return m.IdrRequest != nil
	default:
		return false
	}
}

// splitLines breaks a buffer into CRLF- or LF-terminated lines, dropping
// the terminators and any trailing empty line.
func splitLines(buf []byte) []string {
	s := string(buf)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// fields splits a value on whitespace, ignoring the comma separators used
// between list elements; callers that need list semantics split on comma
// first.
func fields(s string) []string {
	return strings.Fields(s)
}
