package wfdmsg

import "strings"

// StandbyResumeCapability is the wfd_standby_resume_capability attribute.
type StandbyResumeCapability struct {
	Supported bool
}

// Read parses the value portion of a wfd_standby_resume_capability line.
func (s *StandbyResumeCapability) Read(value string) {
	s.Supported = strings.TrimSpace(value) == "supported"
}

// Write encodes the value portion of a wfd_standby_resume_capability line.
func (s StandbyResumeCapability) Write() string {
	if s.Supported {
		return "supported"
	}
	return "none"
}

// Clone returns a deep copy.
func (s *StandbyResumeCapability) Clone() *StandbyResumeCapability {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
