package wfdmsg

import (
	"fmt"
	"strconv"
)

// ClientRTPPorts is the wfd_client_rtp_ports attribute.
type ClientRTPPorts struct {
	Profile string
	Port0   uint16
	Port1   uint16
	Mode    string
}

// Read parses the value portion of a wfd_client_rtp_ports line. Ports
// parse as base-10 decimal; port 0 is accepted and propagated without
// interpretation.
func (c *ClientRTPPorts) Read(value string) {
	f := fields(value)
	if len(f) > 0 {
		c.Profile = f[0]
	}
	if len(f) > 1 {
		if v, err := strconv.ParseUint(f[1], 10, 16); err == nil {
			c.Port0 = uint16(v)
		}
	}
	if len(f) > 2 {
		if v, err := strconv.ParseUint(f[2], 10, 16); err == nil {
			c.Port1 = uint16(v)
		}
	}
	if len(f) > 3 {
		c.Mode = f[3]
	}
}

// Write encodes the value portion of a wfd_client_rtp_ports line.
func (c ClientRTPPorts) Write() string {
	return fmt.Sprintf("%s %d %d %s", c.Profile, c.Port0, c.Port1, c.Mode)
}

// Clone returns a deep copy.
func (c *ClientRTPPorts) Clone() *ClientRTPPorts {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
