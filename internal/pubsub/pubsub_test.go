package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivery struct {
	channel, pattern string
	payload          string
}

func TestSubscribeAndPublishExactChannel(t *testing.T) {
	r := NewRegistry()
	var got []delivery
	n := r.Subscribe("news", 1, func(channel, pattern string, payload []byte) {
		got = append(got, delivery{channel, pattern, string(payload)})
	})
	assert.Equal(t, 1, n)

	receivers := r.Publish("news", []byte("hello"))
	assert.Equal(t, 1, receivers)
	require.Len(t, got, 1)
	assert.Equal(t, "news", got[0].channel)
	assert.Equal(t, "", got[0].pattern)
	assert.Equal(t, "hello", got[0].payload)
}

func TestPublishDeliversExactThenPattern(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Subscribe("news.sports", 1, func(channel, pattern string, payload []byte) {
		order = append(order, "exact")
	})
	r.PSubscribe("news.*", 2, func(channel, pattern string, payload []byte) {
		order = append(order, "pattern")
	})

	receivers := r.Publish("news.sports", []byte("x"))
	assert.Equal(t, 2, receivers)
	assert.Equal(t, []string{"exact", "pattern"}, order)
}

func TestUnsubscribeAllChannels(t *testing.T) {
	r := NewRegistry()
	noop := func(string, string, []byte) {}
	r.Subscribe("a", 1, noop)
	r.Subscribe("b", 1, noop)

	removed := r.UnsubscribeAllChannels(1)
	assert.ElementsMatch(t, []string{"a", "b"}, removed)
	assert.Equal(t, 0, r.Publish("a", []byte("x")))
}

func TestDisconnectClientClearsChannelsAndPatterns(t *testing.T) {
	r := NewRegistry()
	noop := func(string, string, []byte) {}
	r.Subscribe("a", 1, noop)
	r.PSubscribe("p*", 1, noop)

	r.DisconnectClient(1)
	assert.Equal(t, 0, r.Publish("a", []byte("x")))
	assert.Equal(t, 0, r.NumPat())
}

func TestNumSubAndChannelsMatching(t *testing.T) {
	r := NewRegistry()
	noop := func(string, string, []byte) {}
	r.Subscribe("a", 1, noop)
	r.Subscribe("a", 2, noop)
	r.Subscribe("b", 1, noop)

	counts := r.NumSub([]string{"a", "b", "c"})
	assert.Equal(t, map[string]int{"a": 2, "b": 1, "c": 0}, counts)

	assert.ElementsMatch(t, []string{"a", "b"}, r.ChannelsMatching("*"))
}
