package wfdmsg

import "fmt"

// CoupledSink is the wfd_coupled_sink attribute.
type CoupledSink struct {
	Status      uint8
	SinkAddress string
}

// Read parses the value portion of a wfd_coupled_sink line.
func (c *CoupledSink) Read(value string) {
	f := fields(value)
	if len(f) == 0 {
		return
	}

	c.Status = parseHex8(f[0])
	if len(f) > 1 {
		c.SinkAddress = f[1]
	}
}

// Write encodes the value portion of a wfd_coupled_sink line.
func (c CoupledSink) Write() string {
	return fmt.Sprintf("%02x %s", c.Status, c.SinkAddress)
}

// Clone returns a deep copy.
func (c *CoupledSink) Clone() *CoupledSink {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
