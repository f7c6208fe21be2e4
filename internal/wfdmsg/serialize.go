package wfdmsg

import "strings"

// Serialize renders every present attribute as "name: value\r\n", in the
// fixed order WFD parameter negotiation expects.
func (m *Message) Serialize() []byte {
	var b strings.Builder

	for _, attr := range orderedAttrs {
		if !m.present(attr) {
			continue
		}

		b.WriteString(attr)
		if value := m.valueOf(attr); value != "" {
			b.WriteString(": ")
			b.WriteString(value)
		} else {
			b.WriteString(":")
		}
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}

// SerializeNamesOnly renders every present attribute as "name\r\n" with no
// value, as used by M3's GET_PARAMETER capability query.
func (m *Message) SerializeNamesOnly() []byte {
	var b strings.Builder

	for _, attr := range orderedAttrs {
		if !m.present(attr) {
			continue
		}
		b.WriteString(attr)
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}

// valueOf returns the wire value for a present attribute. Valueless flags
// (wfd_standby, wfd_idr_request) return "".
func (m *Message) valueOf(attr string) string {
	switch attr {
	case attrAudioCodecs:
		return m.AudioCodecs.Write()
	case attrVideoFormats:
		return m.VideoFormats.Write()
	case attr3DVideoFormats:
		return m.Video3DFormats.Write()
	case attrContentProtection:
		return m.ContentProtection.Write()
	case attrDisplayEdid:
		return m.DisplayEdid.Write()
	case attrCoupledSink:
		return m.CoupledSink.Write()
	case attrTriggerMethod:
		return m.TriggerMethod.Write()
	case attrPresentationURL:
		return m.PresentationURL.Write()
	case attrClientRTPPorts:
		return m.ClientRTPPorts.Write()
	case attrRoute:
		return m.Route.Write()
	case attrI2C:
		return m.I2C.Write()
	case attrAVFormatChangeTiming:
		return m.AVFormatChangeTiming.Write()
	case attrPreferredDisplayMode:
		return m.PreferredDisplayMode.Write()
	case attrStandbyResumeCapable:
		return m.StandbyResumeCapable.Write()
	case attrConnectorType:
		return m.ConnectorType.Write()
	default:
		return ""
	}
}

// NamesOnly returns a new message in which each of the named attributes is
// present with its zero value, suitable for feeding SerializeNamesOnly.
// Unrecognized names are ignored.
func NamesOnly(attrs ...string) *Message {
	m := New()
	for _, attr := range attrs {
		switch attr {
		case attrAudioCodecs:
			m.AudioCodecs = &AudioCodecs{}
		case attrVideoFormats:
			m.VideoFormats = &VideoFormat{}
		case attr3DVideoFormats:
			m.Video3DFormats = &Video3DFormat{}
		case attrContentProtection:
			m.ContentProtection = &ContentProtection{}
		case attrDisplayEdid:
			m.DisplayEdid = &DisplayEdid{}
		case attrCoupledSink:
			m.CoupledSink = &CoupledSink{}
		case attrTriggerMethod:
			m.TriggerMethod = &TriggerMethodAttr{}
		case attrPresentationURL:
			m.PresentationURL = &PresentationURL{}
		case attrClientRTPPorts:
			m.ClientRTPPorts = &ClientRTPPorts{}
		case attrRoute:
			m.Route = &Route{}
		case attrI2C:
			m.I2C = &I2C{}
		case attrAVFormatChangeTiming:
			m.AVFormatChangeTiming = &AVFormatChangeTiming{}
		case attrPreferredDisplayMode:
			m.PreferredDisplayMode = &PreferredDisplayMode{}
		case attrStandbyResumeCapable:
			m.StandbyResumeCapable = &StandbyResumeCapability{}
		case attrStandby:
			m.Standby = &Standby{}
		case attrConnectorType:
			m.ConnectorType = &ConnectorType{}
		case attrIdrRequest:
			m.IdrRequest = &IdrRequest{}
		}
	}
	return m
}

// Attribute name exports, for callers (e.g. the session state machine)
// building M3's names-only query without hardcoding wire strings.
const (
	AttrAudioCodecs          = attrAudioCodecs
	AttrVideoFormats         = attrVideoFormats
	Attr3DVideoFormats       = attr3DVideoFormats
	AttrContentProtection    = attrContentProtection
	AttrDisplayEdid          = attrDisplayEdid
	AttrCoupledSink          = attrCoupledSink
	AttrTriggerMethod        = attrTriggerMethod
	AttrPresentationURL      = attrPresentationURL
	AttrClientRTPPorts       = attrClientRTPPorts
	AttrRoute                = attrRoute
	AttrI2C                  = attrI2C
	AttrAVFormatChangeTiming = attrAVFormatChangeTiming
	AttrPreferredDisplayMode = attrPreferredDisplayMode
	AttrStandbyResumeCapable = attrStandbyResumeCapable
	AttrStandby              = attrStandby
	AttrConnectorType        = attrConnectorType
	AttrIdrRequest           = attrIdrRequest
)
