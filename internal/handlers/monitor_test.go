package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/resp"
)

func TestMonitorSubscribesToBroadcastChannel(t *testing.T) {
	c := newTestContext(t)
	var pushed []string
	c.Push = func(v *resp.Value) { pushed = append(pushed, v.Str) }

	v, err := hMonitor(c, bargs())
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)

	n := c.Server.PubSub.Publish(monitorChannel, []byte("SET foo bar"))
	assert.Equal(t, 1, n)
	require.Len(t, pushed, 1)
	assert.Equal(t, "SET foo bar", pushed[0])
}
