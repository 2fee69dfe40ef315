package executor

import (
	"github.com/vkeydb/vkeydb/internal/handlers"
	"github.com/vkeydb/vkeydb/internal/resp"
)

// execTransaction implements EXEC (§4.E): abort with EXECABORT if the
// session queued a malformed command, abort with a null array if any
// WATCHed key changed since WATCH, otherwise replay the queue in order.
// Individual command failures inside the batch don't abort it — only
// the watched-key check and the dirty flag can.
func (e *Executor) execTransaction(c *handlers.Context) *resp.Value {
	if !c.Session.Queueing() {
		return resp.NewError("ERR", "EXEC without MULTI")
	}

	if c.Session.IsDirty() {
		c.Session.EndMulti()
		c.Session.Unwatch()
		return resp.NewError("EXECABORT", "Transaction discarded because of previous errors.")
	}

	for _, w := range c.Session.Watches() {
		if c.Server.DBs.Get(w.DB).Version(w.Key) != w.Version {
			c.Session.EndMulti()
			c.Session.Unwatch()
			return resp.NewNullArray()
		}
	}

	queued := c.Session.EndMulti()
	c.Session.Unwatch()

	replies := make([]*resp.Value, len(queued))
	for i, q := range queued {
		replies[i] = e.runOne(c, q.Name, q.Args)
	}
	return resp.NewArray(replies)
}
