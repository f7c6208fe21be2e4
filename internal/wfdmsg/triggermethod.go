package wfdmsg

import "strings"

// TriggerMethodAttr is the wfd_trigger_method attribute.
type TriggerMethodAttr struct {
	Method TriggerMethod
}

// Read parses the value portion of a wfd_trigger_method line.
func (t *TriggerMethodAttr) Read(value string) {
	value = strings.TrimSpace(value)
	if m, ok := triggerMethodFromString(value); ok {
		t.Method = m
	}
}

// Write encodes the value portion of a wfd_trigger_method line.
func (t TriggerMethodAttr) Write() string {
	return t.Method.String()
}

// Clone returns a deep copy.
func (t *TriggerMethodAttr) Clone() *TriggerMethodAttr {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
