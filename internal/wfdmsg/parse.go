package wfdmsg

import "strings"

// ParseBuffer parses a buffer of CRLF-terminated "attr: value" lines into a
// Message. Unknown attributes are silently ignored for forward
// compatibility. Malformed lines never abort parsing of the lines that
// follow; an attribute parsed partially keeps whatever fields it managed
// to read, with missing numeric fields defaulting to zero.
func ParseBuffer(data []byte) *Message {
	m := New()

	for _, line := range splitLines(data) {
		if line == "" {
			continue
		}

		attr, value, _ := strings.Cut(line, ":")
		value = strings.TrimLeft(value, " ")

		switch attr {
		case attrAudioCodecs:
			v := &AudioCodecs{}
			v.Read(value)
			m.AudioCodecs = v

		case attrVideoFormats:
			v := &VideoFormat{}
			v.Read(value)
			m.VideoFormats = v

		case attr3DVideoFormats:
			v := &Video3DFormat{}
			v.Read(value)
			m.Video3DFormats = v

		case attrContentProtection:
			v := &ContentProtection{}
			v.Read(value)
			m.ContentProtection = v

		case attrDisplayEdid:
			v := &DisplayEdid{}
			v.Read(value)
			m.DisplayEdid = v

		case attrCoupledSink:
			v := &CoupledSink{}
			v.Read(value)
			m.CoupledSink = v

		case attrTriggerMethod:
			v := &TriggerMethodAttr{}
			v.Read(value)
			m.TriggerMethod = v

		case attrPresentationURL:
			v := &PresentationURL{}
			v.Read(value)
			m.PresentationURL = v

		case attrClientRTPPorts:
			v := &ClientRTPPorts{}
			v.Read(value)
			m.ClientRTPPorts = v

		case attrRoute:
			v := &Route{}
			v.Read(value)
			m.Route = v

		case attrI2C:
			v := &I2C{}
			v.Read(value)
			m.I2C = v

		case attrAVFormatChangeTiming:
			v := &AVFormatChangeTiming{}
			v.Read(value)
			m.AVFormatChangeTiming = v

		case attrPreferredDisplayMode:
			v := &PreferredDisplayMode{}
			v.Read(value)
			m.PreferredDisplayMode = v

		case attrStandbyResumeCapable:
			v := &StandbyResumeCapability{}
			v.Read(value)
			m.StandbyResumeCapable = v

		case attrStandby:
			m.Standby = &Standby{}

		case attrConnectorType:
			v := &ConnectorType{}
			v.Read(value)
			m.ConnectorType = v

		case attrIdrRequest:
			m.IdrRequest = &IdrRequest{}
		}
	}

	return m
}
