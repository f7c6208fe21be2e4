package wfd

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/google/uuid"

	"github.com/mirasrc/wfdsource/internal/logger"
)

// frame is one parsed unit off the wire: either an inbound request or the
// response to a request the session previously sent. Exactly one of req,
// res is non-nil, unless err is set.
type frame struct {
	req *base.Request
	res *base.Response
	err error
}

// conn wraps the TCP connection accepted from a sink. It owns the wire
// reader/writer and is the only thing allowed to touch them: a dedicated
// reader goroutine turns bytes into frames, and the session's dispatcher
// goroutine (the single place request parsing, response parsing,
// negotiation, and outbound writes happen) drains them alongside its
// timers.
type conn struct {
	uuid   uuid.UUID
	nc     net.Conn
	br     *bufio.Reader
	bw     *bufio.Writer
	parent *Server

	mu      sync.Mutex
	cseqOut int
}

func newConn(nc net.Conn, parent *Server) *conn {
	return &conn{
		uuid:   uuid.New(),
		nc:     nc,
		br:     bufio.NewReaderSize(nc, 4096),
		bw:     bufio.NewWriterSize(nc, 4096),
		parent: parent,
	}
}

// Log implements logger.Writer.
func (c *conn) Log(level logger.Level, format string, args ...interface{}) {
	c.parent.Log(level, "[conn %v] "+format, append([]interface{}{c.nc.RemoteAddr()}, args...)...)
}

// writeRequest sends req with the next outbound CSeq. It does not wait for
// a response; the reader goroutine will surface it as a frame in due
// course through the session's response-routing logic.
func (c *conn) writeRequest(req *base.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cseqOut++
	if req.Header == nil {
		req.Header = base.Header{}
	}
	req.Header["CSeq"] = base.HeaderValue{strconv.Itoa(c.cseqOut)}

	byts, err := req.Marshal()
	if err != nil {
		return err
	}
	if _, err := c.bw.Write(byts); err != nil {
		return err
	}
	return c.bw.Flush()
}

// writeResponse answers an inbound request, echoing its CSeq.
func (c *conn) writeResponse(res *base.Response, cseq base.HeaderValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Header == nil {
		res.Header = base.Header{}
	}
	if cseq != nil {
		res.Header["CSeq"] = cseq
	}

	byts, err := res.Marshal()
	if err != nil {
		return err
	}
	if _, err := c.bw.Write(byts); err != nil {
		return err
	}
	return c.bw.Flush()
}

// readLoop runs on its own goroutine, decoding one frame at a time and
// pushing it to out. It exits (closing nothing) when the connection
// errors or is closed by the dispatcher.
func (c *conn) readLoop(out chan<- frame) {
	for {
		isResponse, err := c.peekIsResponse()
		if err != nil {
			out <- frame{err: err}
			return
		}

		if isResponse {
			var res base.Response
			if err := res.Unmarshal(c.br); err != nil {
				out <- frame{err: err}
				return
			}
			out <- frame{res: &res}
			continue
		}

		var req base.Request
		if err := req.Unmarshal(c.br); err != nil {
			out <- frame{err: err}
			return
		}
		out <- frame{req: &req}
	}
}

// peekIsResponse distinguishes a response ("RTSP/1.0 ...") from a request
// ("OPTIONS ...") by its first five bytes, without consuming them.
func (c *conn) peekIsResponse() (bool, error) {
	b, err := c.br.Peek(5)
	if err != nil {
		return false, err
	}
	return string(b) == "RTSP/", nil
}

func (c *conn) Close() error {
	return c.nc.Close()
}

func mustURL(raw string) *base.URL {
	u, err := base.ParseURL(raw)
	if err != nil {
		panic(fmt.Sprintf("wfd: invalid built-in URL %q: %v", raw, err))
	}
	return u
}
