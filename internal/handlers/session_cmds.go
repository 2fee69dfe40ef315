// Grounded on the teacher's handler_connection.go/handler_transaction.go
// (AUTH/PING/ECHO/SELECT, MULTI/EXEC/DISCARD/WATCH over common.Client),
// generalized onto session.Session's explicit state machine.
package handlers

import (
	"strconv"
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/session"
)

func hAuth(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, ErrWrongArgs
	}
	username, password := "default", string(args[0])
	if len(args) == 2 {
		username, password = string(args[0]), string(args[1])
	}
	u, ok := c.Server.ACL.Get(username)
	if !ok || !u.CheckPassword(password) {
		return resp.NewError("WRONGPASS", "invalid username-password pair or user is disabled"), nil
	}
	c.Session.Authenticate(username)
	return resp.OK(), nil
}

func hHello(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) >= 1 {
		ver := string(args[0])
		switch ver {
		case "2":
			c.Session.Resp3 = false
		case "3":
			c.Session.Resp3 = true
		default:
			return resp.NewError("NOPROTO", "unsupported protocol version"), nil
		}
	}
	if len(args) >= 2 && strings.EqualFold(string(args[1]), "AUTH") {
		if len(args) < 4 {
			return resp.NewError("ERR", "syntax error"), nil
		}
		u, ok := c.Server.ACL.Get(string(args[2]))
		if !ok || !u.CheckPassword(string(args[3])) {
			return resp.NewError("WRONGPASS", "invalid username-password pair or user is disabled"), nil
		}
		c.Session.Authenticate(string(args[2]))
	}
	if !c.Session.IsAuthed() {
		return resp.NewError("NOAUTH", "Authentication required."), nil
	}
	entries := []resp.MapEntry{
		{Key: resp.NewBulkString("server"), Val: resp.NewBulkString("vkeydb")},
		{Key: resp.NewBulkString("version"), Val: resp.NewBulkString("1.0.0")},
		{Key: resp.NewBulkString("proto"), Val: resp.NewInteger(protoVersion(c))},
		{Key: resp.NewBulkString("id"), Val: resp.NewInteger(c.Session.ID)},
		{Key: resp.NewBulkString("mode"), Val: resp.NewBulkString("standalone")},
		{Key: resp.NewBulkString("role"), Val: resp.NewBulkString("master")},
		{Key: resp.NewBulkString("modules"), Val: resp.NewArray(nil)},
	}
	return resp.NewMap(entries), nil
}

func protoVersion(c *Context) int64 {
	if c.Session.Resp3 {
		return 3
	}
	return 2
}

func hPing(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) > 1 {
		return nil, ErrWrongArgs
	}
	if c.Session.InSubscriberMode() && !c.Session.Resp3 {
		payload := []byte("")
		if len(args) == 1 {
			payload = args[0]
		}
		return resp.NewArray([]*resp.Value{resp.NewBulkString("pong"), resp.NewBulk(payload)}), nil
	}
	if len(args) == 1 {
		return resp.NewBulk(args[0]), nil
	}
	return resp.NewSimpleString("PONG"), nil
}

func hEcho(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	return resp.NewBulk(args[0]), nil
}

func hSelect(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	n, err := strconv.Atoi(string(args[0]))
	if err != nil || n < 0 || n >= c.Server.DBs.Count() {
		return resp.NewError("ERR", "DB index is out of range"), nil
	}
	c.Session.DB = n
	return resp.OK(), nil
}

func hReset(c *Context, args [][]byte) (*resp.Value, error) {
	c.Server.PubSub.DisconnectClient(c.Session.ID)
	c.Session.Reset()
	return resp.NewSimpleString("RESET"), nil
}

// hQuit replies OK; the transport layer is responsible for closing the
// connection after delivering this reply, the same split the teacher's
// connection handler makes between acking QUIT and tearing down the
// socket.
func hQuit(c *Context, args [][]byte) (*resp.Value, error) {
	return resp.OK(), nil
}

func hMulti(c *Context, args [][]byte) (*resp.Value, error) {
	if err := c.Session.StartMulti(); err != nil {
		return resp.NewError("ERR", strings.TrimPrefix(err.Error(), "ERR ")), nil
	}
	return resp.OK(), nil
}

func hDiscard(c *Context, args [][]byte) (*resp.Value, error) {
	if !c.Session.Queueing() {
		return resp.NewError("ERR", "DISCARD without MULTI"), nil
	}
	c.Session.EndMulti()
	c.Session.Unwatch()
	return resp.OK(), nil
}

func hWatch(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	if c.Session.Queueing() {
		return resp.NewError("ERR", "WATCH inside MULTI is not allowed"), nil
	}
	db := c.DB()
	for _, k := range args {
		c.Session.Watch(c.Session.DB, string(k), db.Version(string(k)))
	}
	return resp.OK(), nil
}

func hUnwatch(c *Context, args [][]byte) (*resp.Value, error) {
	c.Session.Unwatch()
	return resp.OK(), nil
}

func hClientReply(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	switch strings.ToUpper(string(args[0])) {
	case "ON":
		c.Session.ReplyMode = session.ReplyOn
		return resp.OK(), nil
	case "OFF":
		c.Session.ReplyMode = session.ReplyOff
		return nil, nil
	case "SKIP":
		c.Session.ReplyMode = session.ReplySkipNext
		return nil, nil
	default:
		return toError(ErrWrongArgs), nil
	}
}
