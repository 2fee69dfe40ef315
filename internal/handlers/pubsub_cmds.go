// Grounded on the teacher's handler_pubsub.go (SUBSCRIBE/PUBLISH over
// AppState's channel map), generalized onto pubsub.Registry's
// channel+pattern fan-out and session.Session's subscriber-mode and
// channel/pattern tracking.
package handlers

import (
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
)

// confirm pushes one SUBSCRIBE/UNSUBSCRIBE/PSUBSCRIBE/PUNSUBSCRIBE reply
// frame; Redis sends one of these per channel argument rather than a
// single aggregated reply, so handlers push them directly instead of
// returning one *resp.Value.
func confirm(c *Context, kind, name string, count int) {
	var nameVal *resp.Value
	if name == "" {
		nameVal = resp.NewNullBulk()
	} else {
		nameVal = resp.NewBulkString(name)
	}
	c.Push(resp.NewArray([]*resp.Value{
		resp.NewBulkString(kind), nameVal, resp.NewInteger(int64(count)),
	}))
}

func hSubscribe(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	c.Session.EnterSubscriberMode()
	for _, ch := range args {
		channel := string(ch)
		n := c.Server.PubSub.Subscribe(channel, c.Session.ID, c.Deliver)
		c.Session.TrackChannel(channel)
		confirm(c, "subscribe", channel, n)
	}
	return nil, nil
}

func hUnsubscribe(c *Context, args [][]byte) (*resp.Value, error) {
	channels := args
	if len(channels) == 0 {
		for _, ch := range c.Server.PubSub.UnsubscribeAllChannels(c.Session.ID) {
			channels = append(channels, []byte(ch))
		}
	}
	if len(channels) == 0 {
		confirm(c, "unsubscribe", "", c.Session.SubscriptionCount())
		c.Session.LeaveSubscriberModeIfIdle()
		return nil, nil
	}
	for _, ch := range channels {
		channel := string(ch)
		n := c.Server.PubSub.Unsubscribe(channel, c.Session.ID)
		c.Session.UntrackChannel(channel)
		confirm(c, "unsubscribe", channel, n)
	}
	c.Session.LeaveSubscriberModeIfIdle()
	return nil, nil
}

func hPSubscribe(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	c.Session.EnterSubscriberMode()
	for _, p := range args {
		pattern := string(p)
		n := c.Server.PubSub.PSubscribe(pattern, c.Session.ID, c.Deliver)
		c.Session.TrackPattern(pattern)
		confirm(c, "psubscribe", pattern, n)
	}
	return nil, nil
}

func hPUnsubscribe(c *Context, args [][]byte) (*resp.Value, error) {
	patterns := args
	if len(patterns) == 0 {
		for _, p := range c.Server.PubSub.UnsubscribeAllPatterns(c.Session.ID) {
			patterns = append(patterns, []byte(p))
		}
	}
	if len(patterns) == 0 {
		confirm(c, "punsubscribe", "", c.Session.SubscriptionCount())
		c.Session.LeaveSubscriberModeIfIdle()
		return nil, nil
	}
	for _, p := range patterns {
		pattern := string(p)
		n := c.Server.PubSub.PUnsubscribe(pattern, c.Session.ID)
		c.Session.UntrackPattern(pattern)
		confirm(c, "punsubscribe", pattern, n)
	}
	c.Session.LeaveSubscriberModeIfIdle()
	return nil, nil
}

func hPublish(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	if string(args[0]) == MonitorChannel {
		return resp.NewInteger(0), nil
	}
	n := c.Server.PubSub.Publish(string(args[0]), args[1])
	return resp.NewInteger(int64(n)), nil
}

func hPubSub(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	switch strings.ToUpper(string(args[0])) {
	case "CHANNELS":
		pattern := ""
		if len(args) > 1 {
			pattern = string(args[1])
		}
		return stringArray(c.Server.PubSub.ChannelsMatching(pattern)), nil
	case "NUMSUB":
		counts := c.Server.PubSub.NumSub(bytesSlice(args[1:]))
		out := make([]*resp.Value, 0, len(args[1:])*2)
		for _, ch := range args[1:] {
			out = append(out, resp.NewBulkString(string(ch)), resp.NewInteger(int64(counts[string(ch)])))
		}
		return resp.NewArray(out), nil
	case "NUMPAT":
		return resp.NewInteger(int64(c.Server.PubSub.NumPat())), nil
	default:
		return toError(ErrWrongArgs), nil
	}
}
