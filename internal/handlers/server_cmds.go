// Grounded on the teacher's handler_config.go/handler_info.go (CONFIG
// GET/SET, INFO reading/writing AppState.Config), generalized onto the
// schema-driven config.Config and server.Server's client table.
package handlers

import (
	"strconv"
	"strings"

	"github.com/vkeydb/vkeydb/internal/acl"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/server"
)

func hConfigGet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	matches := c.Server.Config.Match(string(args[0]), globMatchConfig)
	out := make([]*resp.Value, 0, len(matches)*2)
	for k, v := range matches {
		out = append(out, resp.NewBulkString(k), resp.NewBulkString(v))
	}
	return resp.NewArray(out), nil
}

func globMatchConfig(pattern, s string) bool {
	return acl.GlobMatch(pattern, s)
}

func hConfigSet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 || len(args)%2 != 0 {
		return nil, ErrWrongArgs
	}
	for i := 0; i < len(args); i += 2 {
		key, val := string(args[i]), string(args[i+1])
		if err := c.Server.Config.Set(key, val); err != nil {
			return toError(err), nil
		}
		if strings.EqualFold(key, "requirepass") {
			syncRequirePass(c.Server, val)
		}
	}
	return resp.OK(), nil
}

// syncRequirePass keeps the default ACL user's password in step with the
// requirepass config key, the single gate the teacher's AppState used to
// have directly, now generalized onto the multi-user acl.Table (the
// default user is still the one AUTH with no username targets).
func syncRequirePass(s *server.Server, password string) {
	s.ACL.SetRequirePass(password)
}

func hCommand(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 0 {
		switch strings.ToUpper(string(args[0])) {
		case "COUNT":
			return resp.NewInteger(int64(len(registryNames()))), nil
		case "DOCS":
			return resp.NewArray(nil), nil
		}
	}
	names := registryNames()
	out := make([]*resp.Value, len(names))
	for i, n := range names {
		out[i] = resp.NewBulkString(n)
	}
	return resp.NewArray(out), nil
}

func hClientList(c *Context, args [][]byte) (*resp.Value, error) {
	var b strings.Builder
	for _, ci := range c.Server.Clients() {
		b.WriteString(formatClientInfo(ci))
		b.WriteString("\n")
	}
	return resp.NewBulkString(b.String()), nil
}

func hClientInfo(c *Context, args [][]byte) (*resp.Value, error) {
	ci, ok := c.Server.Client(c.Session.ID)
	if !ok {
		return resp.NewBulkString(""), nil
	}
	return resp.NewBulkString(formatClientInfo(ci)), nil
}

func formatClientInfo(ci *server.ClientInfo) string {
	return "id=" + strconv.FormatInt(ci.ID, 10) + " addr=" + ci.Addr + " name=" + ci.Name + " db=" + strconv.Itoa(ci.DB)
}

func hClientGetName(c *Context, args [][]byte) (*resp.Value, error) {
	if c.Session.Name == "" {
		return resp.NewNullBulk(), nil
	}
	return resp.NewBulkString(c.Session.Name), nil
}

func hClientSetName(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	c.Session.Name = string(args[0])
	if ci, ok := c.Server.Client(c.Session.ID); ok {
		ci.Name = c.Session.Name
	}
	return resp.OK(), nil
}

func hClientNoEvict(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	c.Session.NoEvict = strings.EqualFold(string(args[0]), "ON")
	return resp.OK(), nil
}

func hClientNoTouch(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	c.Session.NoTouch = strings.EqualFold(string(args[0]), "ON")
	return resp.OK(), nil
}

func hClientKill(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	addr := string(args[0])
	killed := 0
	for _, ci := range c.Server.Clients() {
		if ci.Addr == addr && ci.Kill != nil {
			ci.Kill()
			killed++
		}
	}
	return resp.NewInteger(int64(killed)), nil
}

func hInfo(c *Context, args [][]byte) (*resp.Value, error) {
	return resp.NewVerbatim("txt", c.Server.InfoSections()), nil
}
