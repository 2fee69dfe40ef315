package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/logger"
	"github.com/vkeydb/vkeydb/internal/store"
)

func TestNewWiresNDatabasesAndRunID(t *testing.T) {
	s := New(16, logger.Default())
	assert.Equal(t, 16, s.DBs.Count())
	require.NotEmpty(t, s.RunID)
}

func TestClientTableLifecycle(t *testing.T) {
	s := New(1, logger.Default())
	ci := s.RegisterClient("127.0.0.1:1234")
	require.NotZero(t, ci.ID)

	got, ok := s.Client(ci.ID)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1:1234", got.Addr)
	assert.Len(t, s.Clients(), 1)

	s.UnregisterClient(ci.ID)
	_, ok = s.Client(ci.ID)
	assert.False(t, ok)
	assert.Len(t, s.Clients(), 0)
}

func TestMutationWakesBlockingWaiters(t *testing.T) {
	s := New(1, logger.Default())
	db := s.DBs.Get(0)

	db.Set("list", store.NewList(), false)
	waiter := db.RegisterWaiter("list", "left", 1, 0)
	require.NotNil(t, waiter)

	require.NoError(t, db.Mutate("list", store.KindList, store.NewList, func(v *store.Value) error {
		_, err := v.PushRight([]byte("x"))
		return err
	}))
	// onMutate -> blocking.NotifyKey must not panic even though nothing is
	// actually parked in blocking's wake registry for this waiter (it was
	// registered directly against the database, not through Park).
	db.RemoveWaiter("list", waiter)
}

func TestInfoSectionsContainsExpectedHeaders(t *testing.T) {
	s := New(1, logger.Default())
	s.DBs.Get(0).Set("a", store.NewString([]byte("1")), false)

	info := s.InfoSections()
	assert.True(t, strings.Contains(info, "# Server"))
	assert.True(t, strings.Contains(info, "# Keyspace"))
	assert.True(t, strings.Contains(info, "db0:keys=1"))
}
