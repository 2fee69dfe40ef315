package handlers

import (
	"context"
	"testing"

	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/session"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	s := server.New(16, logger.Default())
	sess := session.New(1)
	sess.DB = 0
	return &Context{
		Server:  s,
		Session: sess,
		Deliver: func(channel, pattern string, payload []byte) {},
		Push:    func(*resp.Value) {},
		Ctx:     context.Background(),
	}
}

func bargs(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}
