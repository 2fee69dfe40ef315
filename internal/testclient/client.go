// Package testclient is a minimal RESP client used only by this
// module's own test suite to drive a running server end to end over a
// real TCP connection, the same role the teacher's separate go-client
// submodule plays for its own integration tests — trimmed down here to
// the handful of calls the test suite actually needs instead of a
// full client API surface.
package testclient

import (
	"bufio"
	"net"
	"time"

	"github.com/vkeydb/vkeydb/internal/resp"
)

// Client is a bare-bones synchronous RESP connection: send one command,
// read back one reply, repeat. It does not pipeline.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// Dial connects to addr with a bounded handshake timeout.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, r: bufio.NewReader(conn), w: bufio.NewWriter(conn)}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// SetDeadline bounds the next Do call, useful for tests exercising
// blocking commands (BLPOP/BRPOP/BLMOVE) that would otherwise hang
// forever on an unmet condition.
func (c *Client) SetDeadline(t time.Time) error { return c.conn.SetDeadline(t) }

// Do sends one command (as plain string arguments) and returns the
// decoded reply.
func (c *Client) Do(args ...string) (*resp.Value, error) {
	items := make([]*resp.Value, len(args))
	for i, a := range args {
		items[i] = resp.NewBulk([]byte(a))
	}
	enc := resp.NewEncoder(c.w)
	if err := enc.Encode(resp.NewArray(items)); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return resp.DecodeReply(c.r)
}
