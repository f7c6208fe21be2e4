package wfd

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/pion/rtcp"
	"github.com/stretchr/testify/require"

	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/logger"
	"github.com/mirasrc/wfdsource/internal/mediafactory"
	"github.com/mirasrc/wfdsource/internal/wfdmsg"
)

// fakeFactory records what the session tells it during negotiation and
// SETUP, without running any real media pipeline.
type fakeFactory struct {
	audioCodec wfdmsg.AudioFormat
	resolution mediafactory.Resolution
	created    string
}

func (f *fakeFactory) SetAudioCodec(codec wfdmsg.AudioFormat) { f.audioCodec = codec }

func (f *fakeFactory) SetNegotiatedResolution(res mediafactory.Resolution) { f.resolution = res }

func (f *fakeFactory) CreateMedia(url string) (mediafactory.MediaHandle, error) {
	f.created = url
	return fakeMediaHandle{}, nil
}

type fakeMediaHandle struct{}

func (fakeMediaHandle) OnRTCPPacket(func(stream string, payload []byte)) {}
func (fakeMediaHandle) SenderStats() (uint32, uint64)                    { return 4200, 123456 }
func (fakeMediaHandle) Close()                                           {}

type testLogger struct{}

func (testLogger) Log(level logger.Level, format string, args ...interface{}) {}

func newTestSession(t *testing.T, factory mediafactory.Factory) *session {
	t.Helper()

	client, server := net.Pipe()
	t.Cleanup(func() { client.Close() })

	// drain whatever the session writes, so handlers that send a request
	// of their own (e.g. onOptions triggering M3) don't block the test.
	go io.Copy(io.Discard, client) //nolint:errcheck

	c := newConn(server, &Server{Parent: testLogger{}})
	s := newSession(c, nil, factory, DefaultCapabilities(), 0, nil, testLogger{})
	return s
}

func TestNegotiatePicksHighestPriorityCommonAudioCodec(t *testing.T) {
	ff := &fakeFactory{}
	s := newTestSession(t, ff)

	s.sinkAudioFormats = wfdmsg.AudioFormatLPCM | wfdmsg.AudioFormatAAC
	s.sinkAudioFreq = wfdmsg.AudioFreq48000
	s.sinkVideoFormat = &wfdmsg.VideoFormat{CEASupport: 0x21}

	require.NoError(t, s.negotiate())

	// the default capabilities offer AAC only, so AAC is the
	// highest-priority codec both sides share.
	require.Equal(t, wfdmsg.AudioFormatAAC, s.audio.Format)
	require.Equal(t, wfdmsg.AudioFormatAAC, ff.audioCodec)
}

func TestNegotiateFallsBackToDefaultFrequenciesWhenSinkOmitsThem(t *testing.T) {
	ff := &fakeFactory{}
	s := newTestSession(t, ff)

	s.sinkAudioFormats = wfdmsg.AudioFormatAAC
	// sinkAudioFreq left at zero, as it would be if wfd_audio_codecs
	// never arrived with the sink's frequency bits set.
	s.sinkVideoFormat = &wfdmsg.VideoFormat{CEASupport: 0x21}

	require.NoError(t, s.negotiate())
	require.Equal(t, wfdmsg.AudioFormatAAC, s.audio.Format)
}

func TestNegotiateVideoUsesCEAMaskWhenNoSinkVideoFormatArrived(t *testing.T) {
	ff := &fakeFactory{}
	s := newTestSession(t, ff)
	s.sinkAudioFormats = wfdmsg.AudioFormatAAC

	err := s.negotiate()
	require.Error(t, err, "no sink video format means no common resolution bit")
}

func TestOnOptionsRejectsWrongState(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.state = StateInit

	res, err := s.onOptions(&base.Request{})
	require.NoError(t, err)
	require.Equal(t, base.StatusMethodNotValidInThisState, res.StatusCode)
}

func TestOnGetParameterAlwaysReturnsOK(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})

	res, err := s.onGetParameter(&base.Request{})
	require.NoError(t, err)
	require.Equal(t, base.StatusOK, res.StatusCode)

	res, err = s.onGetParameter(&base.Request{Content: []byte("wfd_idr_request")})
	require.NoError(t, err)
	require.Equal(t, base.StatusOK, res.StatusCode)
}

func TestOnSetupRejectsBeforeM4(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.state = StateInit

	_, err := s.onSetup(&base.Request{URL: wildcardURL()})
	require.Error(t, err)
}

func TestOnSetupCreatesMediaAtTheAdvertisedStreamPath(t *testing.T) {
	ff := &fakeFactory{}
	s := newTestSession(t, ff)
	s.state = StateSetupWait

	res, err := s.onSetup(&base.Request{URL: wildcardURL()})
	require.NoError(t, err)
	require.Equal(t, base.StatusOK, res.StatusCode)
	require.Equal(t, wfdStreamPath, ff.created)
	require.NotNil(t, s.media)
}

func TestWildcardURLRendersAsterisk(t *testing.T) {
	require.Equal(t, "*", wildcardURL().String())
}

func TestNormalizePathIgnoresRequestURI(t *testing.T) {
	require.Equal(t, wfdStreamPath, normalizePath(wildcardURL()))
	require.Equal(t, wfdStreamPath, normalizePath(nil))
}

func TestRecordReceiverReportComputesRTT(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})

	// a sender report echoed from one second ago, with no sink-side delay.
	lsr := ntpTime32(time.Now()) - 65536

	s.recordReceiverReport(rtcp.ReceptionReport{
		FractionLost:       3,
		LastSequenceNumber: 900,
		Jitter:             7,
		LastSenderReport:   lsr,
		Delay:              0,
	})

	require.Equal(t, uint8(3), s.stats.fractionLost)
	require.Equal(t, uint32(900), s.stats.maxSeqNum)
	require.Equal(t, lsr, s.stats.lsr)
	require.InDelta(t, float64(time.Second), float64(s.stats.rtt), float64(500*time.Millisecond))
}

func TestRecordReceiverReportSkipsRTTWithoutSenderReport(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})

	s.recordReceiverReport(rtcp.ReceptionReport{
		FractionLost:       1,
		LastSequenceNumber: 10,
		LastSenderReport:   0,
		Delay:              100,
	})

	require.Zero(t, s.stats.rtt)
}

func TestLogStatsDeltaPollsSenderStats(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.media = fakeMediaHandle{}

	s.logStatsDelta()

	require.Equal(t, uint32(4200), s.stats.lastSeqNum)
	require.Equal(t, uint64(123456), s.stats.lastBytesSent)
}

func TestHandleEventIgnoresStaleKeepAliveGeneration(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})

	// A keep-alive response has already resolved one keep-alive cycle,
	// bumping the generation past what a late timer callback captured.
	s.kaGeneration = 1

	stop := s.handleEvent(sessionEvent{kind: eventKeepAliveSend, gen: 0})
	require.False(t, stop)
	require.False(t, s.kaOutstanding, "a stale-generation send must not arm a new keep-alive")
}

func TestHandleEventKeepAliveTimeoutClosesSessionWhenStillOutstanding(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.kaOutstanding = true
	s.kaGeneration = 3

	stop := s.handleEvent(sessionEvent{kind: eventKeepAliveTimeout, gen: 3})
	require.True(t, stop)
}

func TestHandleEventKeepAliveTimeoutIsNoopIfAlreadyResolved(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.kaOutstanding = false
	s.kaGeneration = 3

	stop := s.handleEvent(sessionEvent{kind: eventKeepAliveTimeout, gen: 3})
	require.False(t, stop)
}

func TestHandleResponseWithoutOutstandingKeepAliveKeepsGeneration(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.m1Done = true
	s.m3Done = true
	s.m4Done = true
	s.kaGeneration = 2

	// the trigger OK arrives while a keep-alive armed at generation 2 is
	// still pending; the generation must survive so the send still fires.
	require.NoError(t, s.handleResponse(&base.Response{StatusCode: base.StatusOK}))
	require.Equal(t, 2, s.kaGeneration)
	require.False(t, s.kaOutstanding)
}

func TestHandleResponseResolvesOutstandingKeepAlive(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	s.m1Done = true
	s.m3Done = true
	s.m4Done = true
	s.timeout = time.Minute
	s.kaOutstanding = true
	s.kaGeneration = 2

	require.NoError(t, s.handleResponse(&base.Response{StatusCode: base.StatusOK}))
	require.False(t, s.kaOutstanding)
	require.Equal(t, 3, s.kaGeneration)
}

func TestIsFatalClassifiesErrorKinds(t *testing.T) {
	require.True(t, isFatal(events.ErrNegotiationFailure{Kind: events.NoCommonAudioCodec{}}))
	require.True(t, isFatal(events.ErrTransportError{Err: errors.New("broken pipe")}))
	require.False(t, isFatal(events.ErrProtocolViolation{Detail: "SETUP before M4"}))
}

func TestSessionEmitsLifecycleEvents(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	ch := make(chan events.Event, 4)
	s.eventsOut = ch

	s.state = StateM2Wait
	res, err := s.onOptions(&base.Request{})
	require.NoError(t, err)
	require.Equal(t, base.StatusOK, res.StatusCode)

	select {
	case ev := <-ch:
		require.IsType(t, events.EventOptionsRequest{}, ev)
	default:
		t.Fatal("expected an options-request event")
	}
}

func TestKeepAliveTimeoutEmitsFailEvent(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	ch := make(chan events.Event, 1)
	s.eventsOut = ch
	s.kaOutstanding = true
	s.kaGeneration = 1

	stop := s.handleEvent(sessionEvent{kind: eventKeepAliveTimeout, gen: 1})
	require.True(t, stop)

	select {
	case ev := <-ch:
		require.Equal(t, events.EventKeepAliveFail{SessionID: s.uuid.String()}, ev)
	default:
		t.Fatal("expected a keep-alive-fail event")
	}
}

func TestHandleM3ResponseNegotiatesAndSendsM4(t *testing.T) {
	ff := &fakeFactory{}
	s := newTestSession(t, ff)
	s.m1Done = true
	s.state = StateM3Sent

	body := "wfd_audio_codecs: AAC 00000001 00\r\n" +
		"wfd_video_formats: 00 00 01 01 00000021 00000000 00000000 00 0000 0000 00 0000 0000\r\n" +
		"wfd_client_rtp_ports: RTP/AVP/UDP;unicast 19000 0 mode=play\r\n"

	err := s.handleResponse(&base.Response{
		StatusCode: base.StatusOK,
		Content:    []byte(body),
	})
	require.NoError(t, err)

	require.True(t, s.m3Done)
	require.Equal(t, StateM4Sent, s.state)
	require.Equal(t, wfdmsg.AudioFormatAAC, ff.audioCodec)
	require.Equal(t, mediafactory.Resolution{Width: 1280, Height: 720}, ff.resolution)
	require.Equal(t, uint16(19000), s.port0)
}

func TestEmitNeverBlocksOnFullChannel(t *testing.T) {
	s := newTestSession(t, &fakeFactory{})
	ch := make(chan events.Event, 1)
	s.eventsOut = ch
	ch <- events.EventPlayingDone{SessionID: "occupied"}

	s.emit(events.EventKeepAliveFail{SessionID: s.uuid.String()})

	require.Equal(t, events.EventPlayingDone{SessionID: "occupied"}, <-ch)
}
