// MONITOR streams every command the server executes to subscribed
// clients, adapted from the teacher's WriterMonitorLog (a single
// fan-out writer AppState held directly) onto pubsub.Registry's
// existing channel fan-out instead of a bespoke broadcaster — a
// reserved channel name plays the role of the teacher's monitor list.
package handlers

import (
	"github.com/vkeydb/vkeydb/internal/resp"
)

// MonitorChannel is the pubsub.Registry channel the executor publishes
// every executed command line to; it is never reachable from PUBLISH
// since channel names a client can PUBLISH to come from client input and
// this one is reserved.
const MonitorChannel = "__monitor__"

// monitorChannel keeps the package-local call sites (and this package's
// own tests) reading naturally lowercase.
const monitorChannel = MonitorChannel

func hMonitor(c *Context, args [][]byte) (*resp.Value, error) {
	push := c.Push
	c.Server.PubSub.Subscribe(monitorChannel, c.Session.ID, func(channel, pattern string, payload []byte) {
		if push != nil {
			push(resp.NewSimpleString(string(payload)))
		}
	})
	return resp.OK(), nil
}
