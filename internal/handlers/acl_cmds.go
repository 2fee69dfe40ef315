// ACL's user-management surface (§1, §4.D, §9). The teacher has only a
// single requirepass string; this is new, grounded directly on
// acl.Table/acl.User's rule model and written the way the connection
// handlers in session_cmds.go already read/modify session and server
// state from parsed argument tokens.
package handlers

import (
	"strings"

	"github.com/vkeydb/vkeydb/internal/acl"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

// hACLWhoAmI etc. are the per-subcommand handlers the registry binds
// "ACL <SUB>" to; the executor strips the subcommand token the same way
// it does for CONFIG/CLIENT/XGROUP, so each of these sees only its own
// arguments.
func hACLWhoAmI(c *Context, args [][]byte) (*resp.Value, error) {
	return resp.NewBulkString(c.Session.User), nil
}

func hACLList(c *Context, args [][]byte) (*resp.Value, error) {
	return aclList(c)
}

func hACLCat(c *Context, args [][]byte) (*resp.Value, error) {
	return aclCat(), nil
}

func hACLGetUser(c *Context, args [][]byte) (*resp.Value, error) {
	return aclGetUser(c, args)
}

func hACLSetUser(c *Context, args [][]byte) (*resp.Value, error) {
	return aclSetUser(c, args)
}

func hACLDelUser(c *Context, args [][]byte) (*resp.Value, error) {
	return aclDelUser(c, args)
}

func hACLUsers(c *Context, args [][]byte) (*resp.Value, error) {
	return stringArray(c.Server.ACL.Names()), nil
}

func aclList(c *Context) (*resp.Value, error) {
	names := c.Server.ACL.Names()
	out := make([]*resp.Value, 0, len(names))
	for _, name := range names {
		u, ok := c.Server.ACL.Get(name)
		if !ok {
			continue
		}
		out = append(out, resp.NewBulkString(describeUser(u)))
	}
	return resp.NewArray(out), nil
}

func describeUser(u *acl.User) string {
	var b strings.Builder
	b.WriteString("user ")
	b.WriteString(u.Name)
	if u.NoPass {
		b.WriteString(" nopass")
	}
	if u.Enabled {
		b.WriteString(" on")
	} else {
		b.WriteString(" off")
	}
	if u.AllCommands {
		b.WriteString(" +@all")
	}
	if u.AllKeys {
		b.WriteString(" ~*")
	}
	if u.AllChannels {
		b.WriteString(" &*")
	}
	return b.String()
}

func aclCat() *resp.Value {
	names := []string{
		"keyspace", "read", "write", "string", "list", "hash", "set",
		"sortedset", "stream", "connection", "transaction", "pubsub",
		"admin", "dangerous", "fast", "slow", "blocking",
	}
	return stringArray(names)
}

func aclGetUser(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	u, ok := c.Server.ACL.Get(string(args[0]))
	if !ok {
		return resp.NewNullArray(), nil
	}
	flags := []*resp.Value{resp.NewBulkString("on")}
	if !u.Enabled {
		flags[0] = resp.NewBulkString("off")
	}
	if u.NoPass {
		flags = append(flags, resp.NewBulkString("nopass"))
	}
	keys := "~*"
	if !u.AllKeys {
		keys = strings.Join(u.KeyPatterns, " ")
	}
	channels := "&*"
	if !u.AllChannels {
		channels = strings.Join(u.ChanPatterns, " ")
	}
	return resp.NewMap([]resp.MapEntry{
		{Key: resp.NewBulkString("flags"), Val: resp.NewArray(flags)},
		{Key: resp.NewBulkString("keys"), Val: resp.NewBulkString(keys)},
		{Key: resp.NewBulkString("channels"), Val: resp.NewBulkString(channels)},
	}), nil
}

// aclSetUser applies a small but common subset of the real ACL SETUSER
// rule grammar: on/off, nopass, >password, ~pattern, &pattern,
// +command/-command, +@category/-@category, allkeys, allchannels,
// allcommands.
func aclSetUser(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	name := string(args[0])
	u, ok := c.Server.ACL.Get(name)
	if !ok {
		u = acl.NewUser(name)
		u.Enabled = false
	}
	for _, tok := range args[1:] {
		rule := string(tok)
		switch {
		case rule == "on":
			u.Enabled = true
		case rule == "off":
			u.Enabled = false
		case rule == "nopass":
			u.NoPass = true
		case rule == "resetpass":
			u.NoPass = false
			u.PassHashes = map[uint64]bool{}
		case strings.HasPrefix(rule, ">"):
			u.NoPass = false
			u.SetPassword(rule[1:])
		case rule == "allkeys":
			u.AllKeys = true
		case strings.HasPrefix(rule, "~"):
			u.KeyPatterns = append(u.KeyPatterns, rule[1:])
		case rule == "allchannels":
			u.AllChannels = true
		case strings.HasPrefix(rule, "&"):
			u.ChanPatterns = append(u.ChanPatterns, rule[1:])
		case rule == "allcommands":
			u.AllCommands = true
		case rule == "nocommands":
			u.AllCommands = false
		case strings.HasPrefix(rule, "+") || strings.HasPrefix(rule, "-"):
			u.CommandRules = append(u.CommandRules, acl.Rule{
				Allow:   rule[0] == '+',
				Pattern: rule[1:],
			})
		default:
			return toError(store.ErrSyntax), nil
		}
	}
	c.Server.ACL.Put(u)
	return resp.OK(), nil
}

func aclDelUser(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	n := 0
	for _, a := range args {
		if c.Server.ACL.Delete(string(a)) {
			n++
		}
	}
	return resp.NewInteger(int64(n)), nil
}
