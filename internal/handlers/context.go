// Package handlers implements the per-command execution logic (§4.F/
// §4.G's "execute" step): one function per command, each a thin
// adapter from RESP argument bytes onto the store/database/acl/pubsub
// operations those packages already expose.
//
// Grounded file-for-file on the teacher's handler_*.go files (one file
// per value kind: handler_string.go, handler_list.go, handler_hash.go,
// handler_set.go, handler_zset.go, plus handler_key.go/handler_
// connection.go/handler_transaction.go/handler_pubsub.go for the
// non-value-kind commands), generalized from the teacher's common.Item
// onto store.Value and from the teacher's single global Database onto
// the per-session selected logical database.
package handlers

import (
	"context"

	"github.com/vkeydb/vkeydb/internal/database"
	"github.com/vkeydb/vkeydb/internal/pubsub"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
	"github.com/vkeydb/vkeydb/internal/session"
)

// Context bundles everything one command invocation needs: the shared
// server state, the calling session, that session's pub/sub delivery
// function, a raw push hook for frames sent outside the normal
// request/reply pairing (subscribe confirmations, pub/sub messages),
// and a context.Context cancelled on disconnect so blocking commands
// unpark cleanly.
type Context struct {
	Server  *server.Server
	Session *session.Session
	Deliver pubsub.Publisher
	Push    func(*resp.Value)
	Ctx     context.Context
}

// DB returns the logical database the session currently has selected.
func (c *Context) DB() *database.Database {
	return c.Server.DBs.Get(c.Session.DB)
}

// Handler is one command's execution function: args are the command's
// arguments (not including the command name itself). Handlers return a
// *resp.Value reply directly, including type-mismatch/syntax errors (built
// with toError). The only Go error a handler returns is ErrWrongArgs, which
// the executor turns into a "wrong number of arguments" reply.
type Handler func(c *Context, args [][]byte) (*resp.Value, error)
