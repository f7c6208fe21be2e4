package wfdmsg

// RTSPTransport is the wire transport carried inside wfd_client_rtp_ports'
// profile string, e.g. "RTP/AVP/UDP;unicast".
type RTSPTransport int

// transports.
const (
	RTSPTransportRTP RTSPTransport = iota
	RTSPTransportRDT
)

// RTSPProfile is the RTP profile component of the same string.
type RTSPProfile int

// profiles.
const (
	RTSPProfileAVP RTSPProfile = iota
	RTSPProfileSAVP
)

// RTSPLowerTransport is the delivery mode component.
type RTSPLowerTransport int

// lower transports.
const (
	RTSPLowerTransportUDPUnicast RTSPLowerTransport = iota
	RTSPLowerTransportUDPMulticast
	RTSPLowerTransportTCPUnicast
	RTSPLowerTransportHTTP
)

func (t RTSPLowerTransport) String() string {
	switch t {
	case RTSPLowerTransportUDPMulticast:
		return "UDP;multicast"
	case RTSPLowerTransportTCPUnicast:
		return "TCP;unicast"
	case RTSPLowerTransportHTTP:
		return "HTTP"
	default:
		return "UDP;unicast"
	}
}

// ClientRTPProfileString builds the profile field of wfd_client_rtp_ports
// from a transport/profile/lower-transport triple, e.g. "RTP/AVP/UDP;unicast".
func ClientRTPProfileString(t RTSPTransport, p RTSPProfile, lt RTSPLowerTransport) string {
	transport := "RTP"
	if t == RTSPTransportRDT {
		transport = "RDT"
	}
	profile := "AVP"
	if p == RTSPProfileSAVP {
		profile = "SAVP"
	}
	return transport + "/" + profile + "/" + lt.String()
}
