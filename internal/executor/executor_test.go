package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/acl"
	"github.com/vkeydb/vkeydb/internal/command"
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/session"
)

func newTestSetup(t *testing.T) (*Executor, *handlers.Context) {
	t.Helper()
	srv := server.New(16, logger.Default())
	sess := session.New(1)
	sess.Authenticate("default")
	ctx := &handlers.Context{
		Server:  srv,
		Session: sess,
		Deliver: func(channel, pattern string, payload []byte) {},
		Push:    func(*resp.Value) {},
		Ctx:     context.Background(),
	}
	ex := New(command.Default(), handlers.Default())
	return ex, ctx
}

func tokens(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}

func TestExecuteRunsSimpleCommand(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("SET", "foo", "bar"))
	require.NotNil(t, reply)
	assert.Equal(t, "OK", reply.Str)

	reply = ex.Execute(c, tokens("GET", "foo"))
	require.NotNil(t, reply)
	assert.Equal(t, "bar", string(reply.Bulk))
}

func TestExecuteResolvesSubcommand(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("CONFIG", "SET", "maxmemory", "100"))
	require.NotNil(t, reply)
	assert.Equal(t, "OK", reply.Str)

	reply = ex.Execute(c, tokens("CONFIG", "GET", "maxmemory"))
	require.NotNil(t, reply)
	require.Len(t, reply.Arr, 2)
	assert.Equal(t, "100", string(reply.Arr[1].Bulk))
}

func TestExecuteRejectsWrongArity(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("GET"))
	require.NotNil(t, reply)
	assert.Equal(t, "ERR", reply.ErrCode)
}

func TestExecuteRejectsUnauthenticated(t *testing.T) {
	ex, c := newTestSetup(t)
	c.Session = session.New(2)
	reply := ex.Execute(c, tokens("GET", "foo"))
	require.NotNil(t, reply)
	assert.Equal(t, "NOAUTH", reply.ErrCode)

	reply = ex.Execute(c, tokens("PING"))
	require.NotNil(t, reply)
	assert.Equal(t, "PONG", reply.Str)
}

func TestExecuteRejectsNoPermUser(t *testing.T) {
	ex, c := newTestSetup(t)
	restricted := acl.NewUser("restricted")
	restricted.NoPass = true
	restricted.Categories = acl.CatRead
	c.Server.ACL.Put(restricted)
	c.Session.Authenticate("restricted")

	reply := ex.Execute(c, tokens("GET", "foo"))
	require.NotNil(t, reply)
	assert.Equal(t, "NOPERM", reply.ErrCode)
}

func TestMultiExecQueuesAndReplaysCommands(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("MULTI"))
	assert.Equal(t, "OK", reply.Str)

	reply = ex.Execute(c, tokens("SET", "a", "1"))
	assert.Equal(t, "QUEUED", reply.Str)

	reply = ex.Execute(c, tokens("INCR", "a"))
	assert.Equal(t, "QUEUED", reply.Str)

	reply = ex.Execute(c, tokens("EXEC"))
	require.NotNil(t, reply)
	require.Len(t, reply.Arr, 2)
	assert.Equal(t, "OK", reply.Arr[0].Str)
	assert.Equal(t, int64(2), reply.Arr[1].Int)
}

func TestExecWithoutMultiErrors(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("EXEC"))
	require.NotNil(t, reply)
	assert.Equal(t, "ERR", reply.ErrCode)
}

func TestWatchAbortsExecOnKeyChange(t *testing.T) {
	ex, c := newTestSetup(t)
	ex.Execute(c, tokens("SET", "k", "1"))
	ex.Execute(c, tokens("WATCH", "k"))
	ex.Execute(c, tokens("MULTI"))
	ex.Execute(c, tokens("GET", "k"))

	other := &handlers.Context{
		Server:  c.Server,
		Session: session.New(99),
		Deliver: func(string, string, []byte) {},
		Push:    func(*resp.Value) {},
		Ctx:     context.Background(),
	}
	other.Session.Authenticate("default")
	ex.Execute(other, tokens("SET", "k", "2"))

	reply := ex.Execute(c, tokens("EXEC"))
	require.NotNil(t, reply)
	assert.True(t, reply.ArrNil)
}

func TestDiscardClearsQueueWithoutRunning(t *testing.T) {
	ex, c := newTestSetup(t)
	ex.Execute(c, tokens("MULTI"))
	ex.Execute(c, tokens("SET", "x", "1"))
	reply := ex.Execute(c, tokens("DISCARD"))
	assert.Equal(t, "OK", reply.Str)

	reply = ex.Execute(c, tokens("EXISTS", "x"))
	require.NotNil(t, reply)
	assert.Equal(t, int64(0), reply.Int)
}

func TestMalformedQueuedCommandAbortsTransaction(t *testing.T) {
	ex, c := newTestSetup(t)
	ex.Execute(c, tokens("MULTI"))
	reply := ex.Execute(c, tokens("GET"))
	assert.Equal(t, "ERR", reply.ErrCode)

	reply = ex.Execute(c, tokens("EXEC"))
	require.NotNil(t, reply)
	assert.Equal(t, "EXECABORT", reply.ErrCode)
}

func TestClientReplySkipSuppressesNextReplyOnly(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("CLIENT", "REPLY", "SKIP"))
	assert.Nil(t, reply)

	reply = ex.Execute(c, tokens("SET", "a", "1"))
	assert.Nil(t, reply)

	reply = ex.Execute(c, tokens("GET", "a"))
	require.NotNil(t, reply)
	assert.Equal(t, "1", string(reply.Bulk))
}

func TestUnknownCommandReturnsError(t *testing.T) {
	ex, c := newTestSetup(t)
	reply := ex.Execute(c, tokens("NOSUCHCOMMAND", "x"))
	require.NotNil(t, reply)
	assert.Equal(t, "ERR", reply.ErrCode)
}
