package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshToAuthedTransition(t *testing.T) {
	s := New(1)
	assert.False(t, s.IsAuthed())
	s.Authenticate("default")
	assert.True(t, s.IsAuthed())
	assert.Equal(t, ModeAuthed, s.Mode)
}

func TestMultiQueueingLifecycle(t *testing.T) {
	s := New(1)
	s.Authenticate("default")

	require.NoError(t, s.StartMulti())
	assert.True(t, s.Queueing())

	err := s.StartMulti()
	assert.ErrorIs(t, err, ErrMultiNested)

	s.Enqueue(QueuedCommand{Name: "SET", Args: [][]byte{[]byte("a"), []byte("1")}})
	s.MarkDirty()
	assert.True(t, s.IsDirty())

	queued := s.EndMulti()
	require.Len(t, queued, 1)
	assert.Equal(t, "SET", queued[0].Name)
	assert.False(t, s.Queueing())
	assert.Equal(t, ModeAuthed, s.Mode)
}

func TestSubscriberModeEntryAndExit(t *testing.T) {
	s := New(1)
	s.Authenticate("default")
	s.EnterSubscriberMode()
	s.TrackChannel("news")
	assert.True(t, s.InSubscriberMode())

	s.UntrackChannel("news")
	s.LeaveSubscriberModeIfIdle()
	assert.False(t, s.InSubscriberMode())
}

func TestWatchTracksPerDatabaseVersions(t *testing.T) {
	s := New(1)
	s.Watch(0, "a", 3)
	s.Watch(1, "a", 5)

	watches := s.Watches()
	byDB := map[int]uint64{}
	for _, w := range watches {
		assert.Equal(t, "a", w.Key)
		byDB[w.DB] = w.Version
	}
	assert.Equal(t, uint64(3), byDB[0])
	assert.Equal(t, uint64(5), byDB[1])

	s.Unwatch()
	assert.Empty(t, s.Watches())
}

func TestResetReturnsToFreshAndClearsEverything(t *testing.T) {
	s := New(1)
	s.Authenticate("default")
	s.DB = 3
	s.Watch(3, "k", 1)
	require.NoError(t, s.StartMulti())
	s.EnterSubscriberMode()
	s.TrackChannel("c")

	s.Reset()
	assert.Equal(t, ModeFresh, s.Mode)
	assert.Equal(t, 0, s.DB)
	assert.Empty(t, s.Watches())
	assert.Equal(t, 0, s.SubscriptionCount())
}
