package wfd

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/bluenviron/gortsplib/v5/pkg/base"
	"github.com/stretchr/testify/require"
)

func TestConnReadLoopDistinguishesRequestsFromResponses(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := newConn(server, &Server{Parent: testLogger{}})
	frames := make(chan frame, 2)
	go c.readLoop(frames)

	req := &base.Request{
		Method: base.Options,
		URL:    wildcardURL(),
		Header: base.Header{"CSeq": base.HeaderValue{"1"}},
	}
	res := &base.Response{
		StatusCode: base.StatusOK,
		Header:     base.Header{"CSeq": base.HeaderValue{"2"}},
	}

	go func() {
		bw := bufio.NewWriter(client)
		_ = req.Write(bw)
		_ = bw.Flush()
		_ = res.Write(bw)
		_ = bw.Flush()
	}()

	f1 := requireFrame(t, frames)
	require.NotNil(t, f1.req)
	require.Nil(t, f1.res)

	f2 := requireFrame(t, frames)
	require.NotNil(t, f2.res)
	require.Nil(t, f2.req)
}

func requireFrame(t *testing.T, frames <-chan frame) frame {
	t.Helper()
	select {
	case f := <-frames:
		require.NoError(t, f.err)
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return frame{}
	}
}
