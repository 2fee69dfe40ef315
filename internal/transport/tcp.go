// Package transport wires the RESP codec, the executor, and a
// session's lifecycle onto a raw net.Conn: one goroutine per connection
// reading requests and writing replies, with a second writer path for
// frames pushed asynchronously (pub/sub messages, MONITOR's feed,
// SUBSCRIBE confirmations).
//
// Grounded on the teacher's connection-handling loop (one goroutine per
// net.Conn, reading newline-delimited commands off a bufio.Reader and
// writing replies back immediately), generalized from the teacher's
// single global AppState onto server.Server/session.Session/
// executor.Executor and from its ad hoc reply writing onto resp.Encoder.
package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/vkeydb/vkeydb/internal/executor"
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/session"
)

// Server accepts TCP connections and runs each one against a shared
// server.Server/executor.Executor pair.
type Server struct {
	Addr     string
	App      *server.Server
	Executor *executor.Executor
	Log      *logger.Logger

	listener net.Listener
}

// Listen binds Addr, recording the resolved address (useful when Addr
// requests an ephemeral port via ":0") for Serve to accept connections
// on afterward.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.Addr = ln.Addr().String()
	return nil
}

// Serve accepts connections on the listener bound by Listen until ctx
// is cancelled or Close is called. Call Listen first.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	if s.Log != nil {
		s.Log.Info("listening on %s", s.Addr)
	}

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.serve(ctx, conn)
	}
}

// ListenAndServe binds Addr and serves until ctx is cancelled or Close
// is called; the common case for cmd/vkeydb-server.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// serve drives one client connection end to end: registers it in the
// client table, runs the read/execute/reply loop, and tears down its
// pub/sub subscriptions and client-table entry on exit.
func (s *Server) serve(parent context.Context, raw net.Conn) {
	ci := s.App.RegisterClient(raw.RemoteAddr().String())
	defer s.App.UnregisterClient(ci.ID)
	if s.Log != nil {
		s.Log.Info("client %d connected from %s", ci.ID, ci.Addr)
		defer s.Log.Info("client %d disconnected", ci.ID)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	defer raw.Close()
	ci.Kill = func() { raw.Close() }

	conn := &connHandler{
		raw:  raw,
		sess: session.New(ci.ID),
		app:  s.App,
		exec: s.Executor,
		ctx:  ctx,
		ci:   ci,
		enc:  resp.NewEncoder(bufio.NewWriter(raw)),
	}

	// A connection needs no explicit AUTH when the default user has no
	// password set, matching requirepass-unset behavior: only a
	// configured password gates commands behind AUTH/HELLO.
	if u, ok := s.App.ACL.Get("default"); ok && u.NoPass {
		conn.sess.Authenticate("default")
	}

	defer s.App.PubSub.DisconnectClient(conn.sess.ID)
	defer s.App.PubSub.Unsubscribe(handlers.MonitorChannel, conn.sess.ID)

	conn.run()
}

// connHandler holds one connection's decode/execute/encode state. All
// writes to enc go through writeMu so a pub/sub push can never land in
// the middle of a command reply's frame.
type connHandler struct {
	raw  net.Conn
	sess *session.Session
	app  *server.Server
	exec *executor.Executor
	ci   *server.ClientInfo

	ctx context.Context

	writeMu sync.Mutex
	enc     *resp.Encoder
}

func (c *connHandler) run() {
	reader := bufio.NewReader(c.raw)
	dec := resp.NewDecoder(reader)

	for {
		req, err := dec.ReadRequest()
		if err != nil {
			if err != io.EOF {
				c.writeError(err)
			}
			return
		}
		if len(req.Args) == 0 {
			continue
		}

		hctx := &handlers.Context{
			Server:  c.app,
			Session: c.sess,
			Deliver: c.deliverMessage,
			Push:    c.push,
			Ctx:     c.ctx,
		}

		c.ci.LastCmd = string(req.Args[0])
		reply := c.exec.Execute(hctx, req.Args)
		c.ci.DB = c.sess.DB
		if reply != nil {
			if err := c.push(reply); err != nil {
				return
			}
		}

		if upperEquals(req.Args[0], "QUIT") {
			return
		}
	}
}

func upperEquals(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		ub := b[i]
		if ub >= 'a' && ub <= 'z' {
			ub -= 'a' - 'A'
		}
		if ub != s[i] {
			return false
		}
	}
	return true
}

// push writes one reply/pushed frame, serialized against concurrent
// pub/sub deliveries on the same connection.
func (c *connHandler) push(v *resp.Value) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.enc.SetRESP3(c.sess.Resp3)
	if err := c.enc.Encode(v); err != nil {
		return err
	}
	return c.enc.Flush()
}

func (c *connHandler) writeError(err error) {
	c.push(resp.NewError("ERR", err.Error()))
}

// deliverMessage implements pubsub.Publisher for this connection: it
// builds the "message"/"pmessage" frame PUBLISH's fan-out expects and
// pushes it asynchronously, the same shape SUBSCRIBE's own confirm()
// frames use.
func (c *connHandler) deliverMessage(channel, pattern string, payload []byte) {
	var frame *resp.Value
	if pattern == "" {
		frame = resp.NewArray([]*resp.Value{
			resp.NewBulkString("message"),
			resp.NewBulkString(channel),
			resp.NewBulk(payload),
		})
	} else {
		frame = resp.NewArray([]*resp.Value{
			resp.NewBulkString("pmessage"),
			resp.NewBulkString(pattern),
			resp.NewBulkString(channel),
			resp.NewBulk(payload),
		})
	}
	c.push(frame)
}

// DialTimeout opens a plain TCP client connection to addr, giving up
// after timeout.
func DialTimeout(addr string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp", addr, timeout)
}
