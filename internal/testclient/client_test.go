package testclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/command"
	"github.com/vkeydb/vkeydb/internal/executor"
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/transport"
)

func startServer(t *testing.T) string {
	t.Helper()
	app := server.New(4, logger.Default())
	exec := executor.New(command.Default(), handlers.Default())
	srv := &transport.Server{Addr: "127.0.0.1:0", App: app, Executor: exec}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	go srv.Serve(ctx)
	return srv.Addr
}

func TestClientIncrAndMultiExec(t *testing.T) {
	addr := startServer(t)
	c, err := Dial(addr)
	require.NoError(t, err)
	defer c.Close()

	reply, err := c.Do("SET", "counter", "10")
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Str)

	reply, err = c.Do("INCR", "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(11), reply.Int)

	reply, err = c.Do("MULTI")
	require.NoError(t, err)
	assert.Equal(t, "OK", reply.Str)

	reply, err = c.Do("INCR", "counter")
	require.NoError(t, err)
	assert.Equal(t, "QUEUED", reply.Str)

	reply, err = c.Do("EXEC")
	require.NoError(t, err)
	require.Len(t, reply.Arr, 1)
	assert.Equal(t, int64(12), reply.Arr[0].Int)
}
