package executor

import (
	"strings"

	"github.com/vkeydb/vkeydb/internal/command"
	"github.com/vkeydb/vkeydb/internal/handlers"
)

// checkACL evaluates spec's command/key/channel rules against the
// session's authenticated user, grounded on acl.User's
// AllowCommand/AllowKey/AllowChannel (§4.D). The default user created by
// acl.NewTable is all-access, so an ordinary session with no ACL SETUSER
// calls never trips this.
func (e *Executor) checkACL(c *handlers.Context, spec *command.Spec, name string, args [][]byte) bool {
	user, ok := c.Server.ACL.Get(c.Session.User)
	if !ok {
		user, ok = c.Server.ACL.Get("default")
		if !ok {
			return false
		}
	}

	if !user.AllowCommand(name, spec.Categories) {
		return false
	}

	for _, k := range keyPositions(spec.Keys, args) {
		if !user.AllowKey(k) {
			return false
		}
	}

	for _, ch := range channelArgs(name, args) {
		if !user.AllowChannel(ch) {
			return false
		}
	}

	return true
}

// keyPositions translates a command.KeyPositions rule into the actual
// key strings found in args. Position 1 in the rule means args[0]
// (args never include the command name or a stripped subcommand token);
// Last == -1 means "every Step'th argument to the end"; Step == 0 means
// the command touches no keys.
func keyPositions(kp command.KeyPositions, args [][]byte) []string {
	if kp.Step == 0 || kp.Movable {
		return nil
	}
	first := kp.First - 1
	if first < 0 || first >= len(args) {
		return nil
	}
	last := kp.Last - 1
	if kp.Last < 0 {
		last = len(args) - 1
	}
	if last >= len(args) {
		last = len(args) - 1
	}
	out := make([]string, 0, (last-first)/kp.Step+1)
	for i := first; i <= last; i += kp.Step {
		out = append(out, string(args[i]))
	}
	return out
}

// channelArgs extracts the channel (or pattern) names a pub/sub command
// touches, for ACL's &pattern checks; every other command has none.
func channelArgs(name string, args [][]byte) []string {
	switch name {
	case "SUBSCRIBE", "UNSUBSCRIBE", "PSUBSCRIBE", "PUNSUBSCRIBE":
		out := make([]string, len(args))
		for i, a := range args {
			out[i] = string(a)
		}
		return out
	case "PUBLISH":
		if len(args) > 0 {
			return []string{string(args[0])}
		}
	}
	return nil
}

// broadcastMonitor publishes the just-executed command line to
// handlers.MonitorChannel so any connection running MONITOR sees it,
// mirroring MONITOR's "every command, verbatim" feed.
func (e *Executor) broadcastMonitor(c *handlers.Context, name string, args [][]byte) {
	if c.Server.PubSub == nil {
		return
	}
	var b strings.Builder
	b.WriteString(name)
	for _, a := range args {
		b.WriteByte(' ')
		b.Write(a)
	}
	c.Server.PubSub.Publish(handlers.MonitorChannel, []byte(b.String()))
}
