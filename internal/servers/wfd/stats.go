package wfd

import (
	"sync"
	"time"

	"github.com/pion/rtcp"

	"github.com/mirasrc/wfdsource/internal/logger"
)

// rtpStats is the session's RTP/RTCP statistics record. It is guarded by
// its own lock because the media handle's RTCP callback (running on
// whatever goroutine the pipeline uses) and the periodic stats timer
// (running on the session's dispatcher) both touch it.
type rtpStats struct {
	mu sync.Mutex

	lastSeqNum    uint32
	lastBytesSent uint64

	fractionLost   uint8
	cumulativeLost uint32
	maxSeqNum      uint32
	jitter         uint32
	lsr            uint32
	dlsr           uint32
	rtt            time.Duration
}

// onRTCPPacket decodes an RTCP packet received for stream and folds any
// receiver reports it carries into the session's statistics: fraction
// lost, cumulative lost, highest sequence number, jitter, and the last
// sender-report/delay pair needed for round-trip estimation.
func (s *session) onRTCPPacket(stream string, payload []byte) {
	packets, err := rtcp.Unmarshal(payload)
	if err != nil {
		s.Log(logger.Debug, "failed to decode RTCP packet on %s: %v", stream, err)
		return
	}

	for _, pkt := range packets {
		rr, ok := pkt.(*rtcp.ReceiverReport)
		if !ok || len(rr.Reports) == 0 {
			continue
		}

		for _, report := range rr.Reports {
			s.recordReceiverReport(report)
		}
	}
}

func (s *session) recordReceiverReport(report rtcp.ReceptionReport) {
	now := time.Now()

	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	s.stats.fractionLost = report.FractionLost
	s.stats.cumulativeLost += uint32(report.FractionLost)
	s.stats.maxSeqNum = report.LastSequenceNumber
	s.stats.jitter = report.Jitter
	s.stats.lsr = report.LastSenderReport
	s.stats.dlsr = report.Delay

	// RFC 3550 round-trip estimate: arrival time minus LSR minus DLSR,
	// all in 16.16 fixed-point NTP seconds. Skip it until the sink has
	// echoed at least one sender report.
	if report.LastSenderReport != 0 {
		elapsed := ntpTime32(now) - report.LastSenderReport - report.Delay
		s.stats.rtt = time.Duration(elapsed) * time.Second / 65536
	}
}

// ntpTime32 returns the middle 32 bits of the 64-bit NTP timestamp for t:
// 16.16 fixed-point seconds since the NTP epoch (1900-01-01).
func ntpTime32(t time.Time) uint32 {
	secs := uint64(t.Unix()) + 2208988800
	frac := uint64(t.Nanosecond()) << 32 / uint64(time.Second)
	return uint32(secs<<16 | frac>>16)
}

// logStatsDelta runs on the dispatcher's 2-second periodic timer. It
// polls the media handle's outbound counters, prints deltas of (seqnum,
// bytes-sent) and the last receiver-report snapshot without blocking the
// dispatcher loop — the lock is only held long enough to swap the
// baseline and copy out the snapshot.
func (s *session) logStatsDelta() {
	var seq uint32
	var bytesSent uint64
	if s.media != nil {
		seq, bytesSent = s.media.SenderStats()
	}

	s.stats.mu.Lock()
	deltaSeq := seq - s.stats.lastSeqNum
	deltaBytes := bytesSent - s.stats.lastBytesSent
	s.stats.lastSeqNum = seq
	s.stats.lastBytesSent = bytesSent
	fractionLost := s.stats.fractionLost
	cumulative := s.stats.cumulativeLost
	maxSeq := s.stats.maxSeqNum
	jitter := s.stats.jitter
	rtt := s.stats.rtt
	s.stats.mu.Unlock()

	s.statsLog.Log(logger.Debug, "[session %v] rtp stats: seq=%d (+%d) bytesSent=%d (+%d) rrMaxSeq=%d fractionLost=%d cumulativeLost=%d jitter=%d rtt=%v",
		s.uuid, seq, deltaSeq, bytesSent, deltaBytes, maxSeq, fractionLost, cumulative, jitter, rtt)
}
