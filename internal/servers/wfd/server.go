// Package wfd implements the WFD (Miracast) source-side RTSP control
// plane: a TCP listener that, for each accepted sink connection, drives
// the M1-M7/M16 capability-negotiation handshake and hands the negotiated
// parameters to a media factory. Unlike a conventional RTSP server, this
// side of the connection is the one that issues OPTIONS/GET_PARAMETER/
// SET_PARAMETER requests of its own, the role Miracast assigns to the
// source rather than the connecting sink.
package wfd

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mirasrc/wfdsource/internal/addrpool"
	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/logger"
	"github.com/mirasrc/wfdsource/internal/mediafactory"
)

type serverParent interface {
	logger.Writer
}

// Server listens for Miracast sink connections and runs one session per
// connection.
type Server struct {
	Address        string
	SessionTimeout time.Duration
	Capabilities   Capabilities
	Pool           *addrpool.Pool
	Factory        mediafactory.Factory
	// EventsChan, when non-nil, receives session-lifecycle events
	// (options request answered, playing, keep-alive failure). Sessions
	// never block on it.
	EventsChan chan<- events.Event
	Parent     serverParent

	ctx       context.Context
	ctxCancel func()
	wg        sync.WaitGroup
	listener  net.Listener

	mutex    sync.Mutex
	sessions map[uuid.UUID]*session
}

// Initialize starts listening and accepting connections.
func (s *Server) Initialize() error {
	s.ctx, s.ctxCancel = context.WithCancel(context.Background())
	s.sessions = make(map[uuid.UUID]*session)

	ln, err := net.Listen("tcp", s.Address)
	if err != nil {
		return err
	}
	s.listener = ln

	s.Log(logger.Info, "listener opened on %s", s.Address)

	s.wg.Add(1)
	go s.run()

	return nil
}

// Log implements logger.Writer.
func (s *Server) Log(level logger.Level, format string, args ...interface{}) {
	s.Parent.Log(level, "[WFD] "+format, args...)
}

// Close stops accepting new connections and waits for existing sessions
// to exit.
func (s *Server) Close() {
	s.Log(logger.Info, "listener is closing")
	s.ctxCancel()
	s.listener.Close()
	s.wg.Wait()
}

func (s *Server) run() {
	defer s.wg.Done()

	for {
		nc, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
				s.Log(logger.Error, "accept error: %v", err)
				return
			}
		}

		s.wg.Add(1)
		go s.handleConn(nc)
	}
}

func (s *Server) handleConn(nc net.Conn) {
	defer s.wg.Done()

	c := newConn(nc, s)
	se := newSession(c, s.Pool, s.Factory, s.Capabilities, s.SessionTimeout, s.EventsChan, s)

	s.mutex.Lock()
	s.sessions[se.uuid] = se
	s.mutex.Unlock()

	se.Log(logger.Info, "opened from %s", se.sinkHost)
	se.run()
	se.Log(logger.Info, "closed")

	s.mutex.Lock()
	delete(s.sessions, se.uuid)
	s.mutex.Unlock()
}

// SessionCount reports the number of sessions currently active; used by
// tests and, were an API surface added later, by monitoring.
func (s *Server) SessionCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.sessions)
}
