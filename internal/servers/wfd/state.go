package wfd

// State is one node of the source-side RTSP handshake state machine.
type State int

// states, in the order the handshake passes through them.
const (
	StateInit State = iota
	StateM1Sent
	StateM2Wait
	StateM2Done
	StateM3Sent
	StateM3Done
	StateM4Sent
	StateM4Done
	StateSetupWait
	StateStreaming
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateM1Sent:
		return "M1_SENT"
	case StateM2Wait:
		return "M2_WAIT"
	case StateM2Done:
		return "M2_DONE"
	case StateM3Sent:
		return "M3_SENT"
	case StateM3Done:
		return "M3_DONE"
	case StateM4Sent:
		return "M4_SENT"
	case StateM4Done:
		return "M4_DONE"
	case StateSetupWait:
		return "SETUP_WAIT"
	case StateStreaming:
		return "STREAMING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
