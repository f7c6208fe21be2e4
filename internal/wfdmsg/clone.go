package wfdmsg

// Clone returns a deep copy of m. Messages own all their owned strings and
// payload buffers; Clone never aliases Message-owned memory with m.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}

	return &Message{
		AudioCodecs:          m.AudioCodecs.Clone(),
		VideoFormats:         m.VideoFormats.Clone(),
		Video3DFormats:       m.Video3DFormats.Clone(),
		ContentProtection:    m.ContentProtection.Clone(),
		DisplayEdid:          m.DisplayEdid.Clone(),
		CoupledSink:          m.CoupledSink.Clone(),
		TriggerMethod:        m.TriggerMethod.Clone(),
		PresentationURL:      m.PresentationURL.Clone(),
		ClientRTPPorts:       m.ClientRTPPorts.Clone(),
		Route:                m.Route.Clone(),
		I2C:                  m.I2C.Clone(),
		AVFormatChangeTiming: m.AVFormatChangeTiming.Clone(),
		PreferredDisplayMode: m.PreferredDisplayMode.Clone(),
		StandbyResumeCapable: m.StandbyResumeCapable.Clone(),
		Standby:              m.Standby.Clone(),
		ConnectorType:        m.ConnectorType.Clone(),
		IdrRequest:           m.IdrRequest.Clone(),
	}
}
