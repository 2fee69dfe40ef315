package transport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/command"
	"github.com/vkeydb/vkeydb/internal/executor"
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
)

func startTestServer(t *testing.T) string {
	t.Helper()
	app := server.New(4, logger.Default())
	exec := executor.New(command.Default(), handlers.Default())
	srv := &Server{Addr: "127.0.0.1:0", App: app, Executor: exec}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Serve(ctx)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv.Addr
}

func TestTCPRoundTripPingAndSetGet(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	w := bufio.NewWriter(conn)
	r := bufio.NewReader(conn)

	writeCommand(t, w, "PING")
	reply := readReply(t, r)
	assert.Equal(t, "PONG", reply.Str)

	writeCommand(t, w, "SET", "foo", "bar")
	reply = readReply(t, r)
	assert.Equal(t, "OK", reply.Str)

	writeCommand(t, w, "GET", "foo")
	reply = readReply(t, r)
	assert.Equal(t, "bar", string(reply.Bulk))
}

func TestTCPQuitClosesConnection(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	w := bufio.NewWriter(conn)
	r := bufio.NewReader(conn)

	writeCommand(t, w, "QUIT")
	reply := readReply(t, r)
	assert.Equal(t, "OK", reply.Str)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	_, err = r.Read(buf)
	assert.Error(t, err)
}

func writeCommand(t *testing.T, w *bufio.Writer, parts ...string) {
	t.Helper()
	enc := resp.NewEncoder(w)
	items := make([]*resp.Value, len(parts))
	for i, p := range parts {
		items[i] = resp.NewBulk([]byte(p))
	}
	require.NoError(t, enc.Encode(resp.NewArray(items)))
	require.NoError(t, enc.Flush())
}

func readReply(t *testing.T, r *bufio.Reader) *resp.Value {
	t.Helper()
	v, err := resp.DecodeReply(r)
	require.NoError(t, err)
	return v
}
