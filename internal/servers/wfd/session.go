package wfd

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/bluenviron/gortsplib/v5/pkg/headers"
	"github.com/google/uuid"

	"github.com/mirasrc/wfdsource/internal/addrpool"
	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/logger"
	"github.com/mirasrc/wfdsource/internal/mediafactory"
	"github.com/mirasrc/wfdsource/internal/wfdmsg"
	"github.com/mirasrc/wfdsource/internal/wfdres"
)

const (
	wfdControlURL  = "rtsp://localhost/wfd1.0"
	wfdStreamPath  = "/wfd1.0/streamid=0"
	statsInterval  = 2 * time.Second
	keepAliveGrace = 5 * time.Second
)

func wildcardURL() *base.URL {
	u := &url.URL{Path: "*"}
	return (*base.URL)(u)
}

// isFatal reports whether a response-handling error must close the
// session. Negotiation failures terminate the handshake and transport
// errors terminate the connection; protocol violations are reported and
// otherwise ignored.
func isFatal(err error) bool {
	var negErr events.ErrNegotiationFailure
	var transErr events.ErrTransportError
	return errors.As(err, &negErr) || errors.As(err, &transErr)
}

// negotiatedAudio is the session's negotiated audio configuration.
type negotiatedAudio struct {
	Format   wfdmsg.AudioFormat
	Freq     wfdmsg.AudioFreq
	Channels wfdmsg.AudioChannels
	BitWidth uint8
	Latency  uint8
}

// negotiatedVideo is the session's negotiated video configuration.
type negotiatedVideo struct {
	Codec            wfdmsg.VideoCodec
	Family           wfdmsg.NativeFamily
	Bit              uint32
	Profile          wfdmsg.H264Profile
	Level            wfdmsg.H264Level
	MaxWidth         uint16
	MaxHeight        uint16
	Latency          uint8
	MinSliceSize     uint32
	SliceEncParams   uint32
	FrameRateControl uint8
	FrameRate        uint32
	Interleaved      bool
}

type edidSummary struct {
	Supported bool
	HRes      int
	VRes      int
}

type hdcpSummary struct {
	Enabled bool
	Version wfdmsg.HDCPVersion
	Port    uint16
}

// session is the per-connection WFD handshake orchestrator. It is created
// when the transport accepts a connection and destroyed when that
// connection closes; every field it owns is mutated
// only from the dispatcher goroutine running run(), except the stats
// block and the keep-alive flag, which have their own locks because a
// timer callback and the response/request handlers both touch them.
type session struct {
	uuid    uuid.UUID
	conn    *conn
	pool    *addrpool.Pool
	factory mediafactory.Factory
	log     logger.Writer
	caps    Capabilities
	timeout time.Duration

	state State

	m1Done, m3Done, m4Done bool

	kaMu          sync.Mutex
	kaOutstanding bool
	kaGeneration  int

	sinkAudioFormats  wfdmsg.AudioFormat
	sinkAudioFreq     wfdmsg.AudioFreq
	sinkAudioChannels wfdmsg.AudioChannels
	sinkAudioLatency  uint8

	sinkVideoFormat *wfdmsg.VideoFormat

	audio negotiatedAudio
	video negotiatedVideo
	edid  edidSummary
	hdcp  hdcpSummary

	port0, port1 uint16
	poolHandle   *addrpool.Range

	sinkHost string

	stats    rtpStats
	statsLog logger.Writer

	media mediafactory.MediaHandle

	eventsOut chan<- events.Event
	events    chan sessionEvent
	frames    chan frame
	done      chan struct{}
	closeOnce sync.Once
}

type sessionEventKind int

const (
	eventKeepAliveSend sessionEventKind = iota
	eventKeepAliveTimeout
	eventStatsTick
)

type sessionEvent struct {
	kind sessionEventKind
	gen  int
}

func newSession(c *conn, pool *addrpool.Pool, factory mediafactory.Factory, caps Capabilities,
	timeout time.Duration, eventsOut chan<- events.Event, log logger.Writer,
) *session {
	return &session{
		uuid:      uuid.New(),
		conn:      c,
		pool:      pool,
		factory:   factory,
		caps:      caps,
		timeout:   timeout,
		log:       log,
		statsLog:  logger.NewLimitedLogger(log),
		state:     StateInit,
		sinkHost:  remoteHost(c),
		eventsOut: eventsOut,
		events:    make(chan sessionEvent, 4),
		frames:    make(chan frame, 4),
		done:      make(chan struct{}),
	}
}

// emit delivers an event to the embedder's channel without ever blocking
// the dispatcher; with no subscriber, or a full channel, the event is
// dropped.
func (s *session) emit(ev events.Event) {
	if s.eventsOut == nil {
		return
	}
	select {
	case s.eventsOut <- ev:
	default:
	}
}

// Log implements logger.Writer.
func (s *session) Log(level logger.Level, format string, args ...interface{}) {
	s.log.Log(level, "[session %v] "+format, append([]interface{}{s.uuid}, args...)...)
}

// run drives the handshake to completion and then services the streaming
// state until the connection closes or a keep-alive cycle fails. It is the
// single dispatcher goroutine: only it touches s.state, the handshake
// flags, and the connection's write path.
func (s *session) run() {
	defer s.cleanup()

	go s.conn.readLoop(s.frames)

	if err := s.sendM1(); err != nil {
		s.Log(logger.Error, "failed to send M1: %v", err)
		return
	}

	for {
		select {
		case <-s.done:
			return

		case f := <-s.frames:
			if f.err != nil {
				s.Log(logger.Info, "connection closed: %v", f.err)
				return
			}
			if f.res != nil {
				if err := s.handleResponse(f.res); err != nil {
					s.Log(logger.Warn, "%v", err)
					if isFatal(err) {
						return
					}
				}
			} else {
				s.handleRequestFrame(f.req)
			}
			if s.state == StateClosed {
				return
			}

		case ev := <-s.events:
			if s.handleEvent(ev) {
				return
			}
		}
	}
}

func (s *session) cleanup() {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	if s.poolHandle != nil {
		s.pool.Release(s.poolHandle)
		s.poolHandle = nil
	}
	if s.media != nil {
		s.media.Close()
	}
	s.conn.Close()
	s.state = StateClosed
}

// ---- M1 ----

func (s *session) sendM1() error {
	req := &base.Request{
		Method: base.Options,
		URL:    wildcardURL(),
		Header: base.Header{
			"Require": base.HeaderValue{"org.wfa.wfd1.0"},
		},
	}
	s.state = StateM1Sent
	return s.conn.writeRequest(req)
}

// ---- response routing ----

func (s *session) handleResponse(res *base.Response) error {
	switch {
	case !s.m1Done:
		return s.handleM1Response(res)
	case !s.m3Done:
		return s.handleM3Response(res)
	case !s.m4Done:
		return s.handleM4Response(res)
	default:
		s.kaMu.Lock()
		outstanding := s.kaOutstanding
		if outstanding {
			s.kaOutstanding = false
			s.kaGeneration++
		}
		s.kaMu.Unlock()

		if outstanding {
			s.scheduleKeepAlive()
		}
		// a response with no keep-alive outstanding is the M5/trigger OK,
		// which carries no further state of its own; it must not touch the
		// generation counter, or a keep-alive armed by an earlier PLAY
		// would be invalidated before it ever fired.
		return nil
	}
}

func (s *session) handleM1Response(res *base.Response) error {
	if res.StatusCode != base.StatusOK {
		return events.ErrProtocolViolation{Detail: fmt.Sprintf("M1 response status %d", res.StatusCode)}
	}
	s.m1Done = true
	s.state = StateM2Wait
	return nil
}

func (s *session) handleM3Response(res *base.Response) error {
	if res.StatusCode != base.StatusOK {
		return events.ErrProtocolViolation{Detail: fmt.Sprintf("M3 response status %d", res.StatusCode)}
	}

	msg := wfdmsg.ParseBuffer(res.Body)

	if msg.AudioCodecs != nil {
		for _, e := range msg.AudioCodecs.Codecs {
			s.sinkAudioFormats |= e.Format
			s.sinkAudioLatency = e.Latency
			if e.Modes&(uint32(1)<<wfdmsg.CodecModeBit(wfdmsg.AudioFreq48000, wfdmsg.AudioChannels2)) != 0 {
				s.sinkAudioFreq |= wfdmsg.AudioFreq48000
			}
			if e.Modes&(uint32(1)<<wfdmsg.CodecModeBit(wfdmsg.AudioFreq44100, wfdmsg.AudioChannels2)) != 0 {
				s.sinkAudioFreq |= wfdmsg.AudioFreq44100
			}
		}
	}

	if msg.VideoFormats != nil {
		s.sinkVideoFormat = msg.VideoFormats
	}

	if msg.ContentProtection != nil {
		s.hdcp = hdcpSummary{
			Enabled: msg.ContentProtection.HDCPVersion != wfdmsg.HDCPVersionNone,
			Version: msg.ContentProtection.HDCPVersion,
			Port:    msg.ContentProtection.Port,
		}
	}

	if msg.DisplayEdid != nil {
		hres, vres, ok := msg.DisplayEdid.Resolution()
		s.edid = edidSummary{Supported: ok, HRes: hres, VRes: vres}
	}

	if msg.ClientRTPPorts != nil {
		s.port0 = msg.ClientRTPPorts.Port0
		s.port1 = msg.ClientRTPPorts.Port1
	}

	if err := s.negotiate(); err != nil {
		return err
	}

	s.m3Done = true
	s.state = StateM3Done

	return s.sendM4()
}

func (s *session) negotiate() error {
	sinkFormats := s.sinkAudioFormats
	sinkFreq := s.sinkAudioFreq
	if sinkFreq == 0 {
		sinkFreq = wfdmsg.AudioFreq48000 | wfdmsg.AudioFreq44100
	}

	na, err := wfdres.NegotiateAudio(s.caps.AudioFormats, s.caps.AudioFreq, sinkFormats, sinkFreq, s.sinkAudioLatency)
	if err != nil {
		return err
	}
	s.audio = negotiatedAudio{
		Format:   na.Format,
		Freq:     na.Freq,
		Channels: na.Channels,
		BitWidth: 16,
		Latency:  na.Latency,
	}
	s.factory.SetAudioCodec(na.Format)

	var sinkVideoMask uint32
	var latency uint8
	var minSlice, sliceEnc uint32
	var frc uint8
	if s.sinkVideoFormat != nil {
		switch s.caps.NativeFamily {
		case wfdmsg.NativeFamilyVESA:
			sinkVideoMask = s.sinkVideoFormat.VESASupport
		case wfdmsg.NativeFamilyHH:
			sinkVideoMask = s.sinkVideoFormat.HHSupport
		default:
			sinkVideoMask = s.sinkVideoFormat.CEASupport
		}
		latency = s.sinkVideoFormat.Latency
		minSlice = s.sinkVideoFormat.MinSliceSize
		sliceEnc = s.sinkVideoFormat.SliceEncParams
		frc = s.sinkVideoFormat.FrameRateControlSupport
	}

	nv, err := wfdres.NegotiateVideo(s.caps.NativeFamily, s.caps.VideoMask, sinkVideoMask)
	if err != nil {
		return err
	}

	s.video = negotiatedVideo{
		Codec:            wfdmsg.VideoCodecH264,
		Family:           nv.Family,
		Bit:              nv.Bit,
		Profile:          wfdmsg.H264ProfileBase,
		Level:            wfdmsg.H264Level31,
		MaxWidth:         uint16(nv.Mode.Width),
		MaxHeight:        uint16(nv.Mode.Height),
		Latency:          latency,
		MinSliceSize:     minSlice,
		SliceEncParams:   sliceEnc,
		FrameRateControl: frc,
		FrameRate:        nv.Mode.FrameRate,
		Interleaved:      nv.Mode.Interleaved,
	}
	s.factory.SetNegotiatedResolution(mediafactory.Resolution{Width: s.video.MaxWidth, Height: s.video.MaxHeight})

	return nil
}

// ---- M4 ----

func (s *session) sendM4() error {
	if s.port0 == 0 && s.port1 == 0 {
		handle, err := s.pool.Acquire(addrpool.FlagIPv4|addrpool.FlagEvenPort, 2)
		if err != nil {
			return err
		}
		s.poolHandle = handle
		s.port0 = handle.Min.Port
		s.port1 = handle.Min.Port + 1
	}

	host := s.localHost()

	msg := wfdmsg.New()
	msg.PresentationURL = &wfdmsg.PresentationURL{
		URL0: fmt.Sprintf("rtsp://%s/wfd1.0/streamid=0", host),
		URL1: "none",
	}
	msg.AudioCodecs = &wfdmsg.AudioCodecs{Codecs: []wfdmsg.AudioCodecEntry{
		{Format: s.audio.Format, Modes: uint32(1) << wfdmsg.CodecModeBit(s.audio.Freq, s.audio.Channels), Latency: s.audio.Latency},
	}}
	msg.VideoFormats = &wfdmsg.VideoFormat{
		Native:                  uint8(s.video.Family),
		Profile:                 s.video.Profile,
		Level:                   s.video.Level,
		Latency:                 s.video.Latency,
		MinSliceSize:            s.video.MinSliceSize,
		SliceEncParams:          s.video.SliceEncParams,
		FrameRateControlSupport: s.video.FrameRateControl,
		MaxHres:                 s.video.MaxWidth,
		MaxVres:                 s.video.MaxHeight,
	}
	switch s.video.Family {
	case wfdmsg.NativeFamilyVESA:
		msg.VideoFormats.VESASupport = 1 << s.video.Bit
	case wfdmsg.NativeFamilyHH:
		msg.VideoFormats.HHSupport = 1 << s.video.Bit
	default:
		msg.VideoFormats.CEASupport = 1 << s.video.Bit
	}
	msg.ClientRTPPorts = &wfdmsg.ClientRTPPorts{
		Profile: wfdmsg.ClientRTPProfileString(wfdmsg.RTSPTransportRTP, wfdmsg.RTSPProfileAVP, wfdmsg.RTSPLowerTransportUDPUnicast),
		Port0:   s.port0,
		Port1:   s.port1,
		Mode:    "mode=play",
	}

	req := &base.Request{
		Method: base.SetParameter,
		URL:    mustURL(wfdControlURL),
		Header: base.Header{
			"Content-Type": base.HeaderValue{"text/parameters"},
		},
		Body: msg.Serialize(),
	}

	s.state = StateM4Sent
	return s.conn.writeRequest(req)
}

func (s *session) handleM4Response(res *base.Response) error {
	if res.StatusCode != base.StatusOK {
		return events.ErrProtocolViolation{Detail: fmt.Sprintf("M4 response status %d", res.StatusCode)}
	}
	s.m4Done = true
	s.state = StateM4Done
	return s.sendM5(wfdmsg.TriggerMethodSetup)
}

// sendM5 sends the trigger method; also used post-handshake for PAUSE,
// TEARDOWN, and PLAY.
func (s *session) sendM5(method wfdmsg.TriggerMethod) error {
	msg := wfdmsg.New()
	msg.TriggerMethod = &wfdmsg.TriggerMethodAttr{Method: method}

	req := &base.Request{
		Method: base.SetParameter,
		URL:    mustURL(wfdControlURL),
		Header: base.Header{
			"Content-Type": base.HeaderValue{"text/parameters"},
		},
		Body: msg.Serialize(),
	}

	if method == wfdmsg.TriggerMethodSetup {
		s.state = StateSetupWait
	}
	return s.conn.writeRequest(req)
}

// ---- request dispatch (inbound SETUP/PLAY/PAUSE/TEARDOWN/OPTIONS/...) ----

func (s *session) handleRequestFrame(req *base.Request) {
	cseq := req.Header["CSeq"]

	res, err := s.dispatchRequest(req)
	if err != nil {
		s.Log(logger.Warn, "%v", err)
	}
	if res == nil {
		return
	}
	if werr := s.conn.writeResponse(res, cseq); werr != nil {
		s.Log(logger.Error, "failed to write response: %v", werr)
		return
	}

	// the capability query must go out after the sink's OPTIONS has been
	// answered, never before.
	if req.Method == base.Options && s.state == StateM2Done {
		if err := s.sendM3(); err != nil {
			s.Log(logger.Error, "failed to send M3: %v", err)
		}
	}
}

func (s *session) dispatchRequest(req *base.Request) (*base.Response, error) {
	switch req.Method {
	case base.Options:
		return s.onOptions(req)

	case base.GetParameter:
		return s.onGetParameter(req)

	case base.SetParameter:
		return s.onSetParameter(req)

	case base.Setup:
		return s.onSetup(req)

	case base.Play:
		return s.onPlay(req)

	case base.Pause:
		return s.onPause(req)

	case base.Teardown:
		return s.onTeardown(req)

	default:
		return &base.Response{StatusCode: base.StatusBadRequest}, events.ErrProtocolViolation{
			Detail: fmt.Sprintf("unsupported method %s", req.Method),
		}
	}
}

// onOptions answers the sink's M2 OPTIONS with the standard method list
// plus the WFD extension token.
func (s *session) onOptions(req *base.Request) (*base.Response, error) {
	if s.state != StateM2Wait {
		return &base.Response{StatusCode: base.StatusMethodNotValidInThisState}, nil
	}

	s.state = StateM2Done
	s.emit(events.EventOptionsRequest{SessionID: s.uuid.String()})

	header := base.Header{
		"Public": base.HeaderValue{
			strings.Join([]string{
				"OPTIONS", "DESCRIBE", "SETUP", "TEARDOWN", "PLAY", "PAUSE",
				"GET_PARAMETER", "SET_PARAMETER",
			}, ", ") + ", org.wfa.wfd1.0",
		},
	}
	if ua, ok := req.Header["User-Agent"]; ok {
		header["User-Agent"] = ua
	}

	return &base.Response{
		StatusCode: base.StatusOK,
		Header:     header,
	}, nil
}

// sendM3 queries the sink's capabilities by name only.
func (s *session) sendM3() error {
	msg := wfdmsg.NamesOnly(
		wfdmsg.AttrAudioCodecs,
		wfdmsg.AttrVideoFormats,
		wfdmsg.Attr3DVideoFormats,
		wfdmsg.AttrContentProtection,
		wfdmsg.AttrDisplayEdid,
		wfdmsg.AttrClientRTPPorts,
	)

	req := &base.Request{
		Method: base.GetParameter,
		URL:    mustURL(wfdControlURL),
		Header: base.Header{
			"Content-Type": base.HeaderValue{"text/parameters"},
		},
		Body: msg.SerializeNamesOnly(),
	}

	s.state = StateM3Sent
	return s.conn.writeRequest(req)
}

// onGetParameter answers an inbound GET_PARAMETER. The sink may send this
// with an empty body as its own keep-alive probe; either way the source
// has no additional parameters to report back, so both forms get a bare
// 200.
func (s *session) onGetParameter(_ *base.Request) (*base.Response, error) {
	return &base.Response{StatusCode: base.StatusOK}, nil
}

// onSetParameter answers an inbound SET_PARAMETER, e.g. a
// wfd_idr_request-only body.
func (s *session) onSetParameter(_ *base.Request) (*base.Response, error) {
	return &base.Response{StatusCode: base.StatusOK}, nil
}

func (s *session) onSetup(req *base.Request) (*base.Response, error) {
	if s.state != StateSetupWait {
		return &base.Response{StatusCode: base.StatusMethodNotValidInThisState},
			events.ErrProtocolViolation{Detail: "SETUP before M4"}
	}

	path := normalizePath(req.URL)

	media, err := s.factory.CreateMedia(path)
	if err != nil {
		return &base.Response{StatusCode: base.StatusInternalServerError}, err
	}
	s.media = media
	s.media.OnRTCPPacket(s.onRTCPPacket)

	timeoutSeconds := uint(s.timeout.Seconds())
	sessionHeader := headers.Session{Session: s.uuid.String(), Timeout: &timeoutSeconds}

	return &base.Response{
		StatusCode: base.StatusOK,
		Header: base.Header{
			"Session": sessionHeader.Marshal(),
		},
	}, nil
}

func (s *session) onPlay(_ *base.Request) (*base.Response, error) {
	if s.state != StateSetupWait && s.state != StateStreaming {
		return &base.Response{StatusCode: base.StatusMethodNotValidInThisState},
			events.ErrProtocolViolation{Detail: "PLAY before SETUP"}
	}

	if s.state != StateStreaming {
		s.state = StateStreaming
		s.scheduleKeepAlive()
		s.scheduleStatsTick()
		s.emit(events.EventPlayingDone{SessionID: s.uuid.String()})
	}

	return &base.Response{StatusCode: base.StatusOK}, nil
}

func (s *session) onPause(_ *base.Request) (*base.Response, error) {
	return &base.Response{StatusCode: base.StatusOK}, nil
}

func (s *session) onTeardown(_ *base.Request) (*base.Response, error) {
	res := &base.Response{StatusCode: base.StatusOK}
	s.closeOnce.Do(func() { close(s.done) })
	return res, nil
}

// normalizePath maps any request URI to the single stream path this
// source exposes.
func normalizePath(_ *base.URL) string {
	return wfdStreamPath
}

// remoteHost extracts the sink's host address from the accepted connection.
func remoteHost(c *conn) string {
	if tcpAddr, ok := c.nc.RemoteAddr().(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	host, _, err := net.SplitHostPort(c.nc.RemoteAddr().String())
	if err == nil {
		return host
	}
	return c.nc.RemoteAddr().String()
}

func (s *session) localHost() string {
	if tcpAddr, ok := s.conn.nc.LocalAddr().(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	host, _, err := net.SplitHostPort(s.conn.nc.LocalAddr().String())
	if err == nil {
		return host
	}
	return "localhost"
}

// ---- keep-alive and stats timers ----

func (s *session) scheduleKeepAlive() {
	interval := s.timeout - keepAliveGrace
	if interval <= 0 {
		interval = keepAliveGrace
	}

	s.kaMu.Lock()
	gen := s.kaGeneration
	s.kaMu.Unlock()

	time.AfterFunc(interval, func() {
		select {
		case s.events <- sessionEvent{kind: eventKeepAliveSend, gen: gen}:
		case <-s.done:
		}
	})
}

func (s *session) scheduleStatsTick() {
	var tick func()
	tick = func() {
		time.AfterFunc(statsInterval, func() {
			select {
			case s.events <- sessionEvent{kind: eventStatsTick}:
				tick()
			case <-s.done:
			}
		})
	}
	tick()
}

// handleEvent processes a timer-originated event on the dispatcher
// goroutine; it returns true if the session should stop running.
func (s *session) handleEvent(ev sessionEvent) bool {
	switch ev.kind {
	case eventKeepAliveSend:
		s.kaMu.Lock()
		if ev.gen != s.kaGeneration {
			s.kaMu.Unlock()
			return false
		}
		s.kaOutstanding = true
		gen := s.kaGeneration
		s.kaMu.Unlock()

		if err := s.sendKeepAlive(); err != nil {
			s.Log(logger.Error, "failed to send M16: %v", err)
			return true
		}

		time.AfterFunc(keepAliveGrace, func() {
			select {
			case s.events <- sessionEvent{kind: eventKeepAliveTimeout, gen: gen}:
			case <-s.done:
			}
		})
		return false

	case eventKeepAliveTimeout:
		s.kaMu.Lock()
		stillOutstanding := s.kaOutstanding && ev.gen == s.kaGeneration
		s.kaMu.Unlock()

		if stillOutstanding {
			s.Log(logger.Warn, "%v", events.ErrKeepAliveTimeout{})
			s.emit(events.EventKeepAliveFail{SessionID: s.uuid.String()})
			return true
		}
		return false

	case eventStatsTick:
		s.logStatsDelta()
		return false

	default:
		return false
	}
}

func (s *session) sendKeepAlive() error {
	req := &base.Request{
		Method: base.GetParameter,
		URL:    mustURL(wfdControlURL),
	}
	return s.conn.writeRequest(req)
}
