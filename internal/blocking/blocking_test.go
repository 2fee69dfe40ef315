package blocking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/database"
	"github.com/vkeydb/vkeydb/internal/store"
)

func newWiredDatabase() *database.Database {
	db := database.New(0)
	db.OnMutate = NotifyKey
	return db
}

func TestParkReturnsImmediatelyWhenAttemptAlreadySucceeds(t *testing.T) {
	db := newWiredDatabase()
	result, ok := Park(context.Background(), db, []string{"list"}, "left", 1, time.Second, func() (any, bool) {
		return "ready", true
	})
	assert.True(t, ok)
	assert.Equal(t, "ready", result)
}

func TestParkWakesOnMutation(t *testing.T) {
	db := newWiredDatabase()
	done := make(chan struct{})
	var got any

	go func() {
		result, ok := Park(context.Background(), db, []string{"list"}, "left", 1, 2*time.Second, func() (any, bool) {
			v, exists := db.Get("list")
			if !exists {
				return nil, false
			}
			popped, err := v.PopLeft(1)
			if err != nil || len(popped) == 0 {
				return nil, false
			}
			return popped[0], true
		})
		got = result
		assert.True(t, ok)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond) // let Park register its waiter
	db.Set("list", store.NewList(), false)
	require.NoError(t, db.Mutate("list", store.KindList, store.NewList, func(v *store.Value) error {
		_, err := v.PushRight([]byte("x"))
		return err
	}))

	select {
	case <-done:
		assert.Equal(t, []byte("x"), got)
	case <-time.After(time.Second):
		t.Fatal("Park never woke up on mutation")
	}
}

func TestParkTimesOut(t *testing.T) {
	db := newWiredDatabase()
	start := time.Now()
	_, ok := Park(context.Background(), db, []string{"nope"}, "left", 1, 30*time.Millisecond, func() (any, bool) {
		return nil, false
	})
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestParkServesOldestWaiterFirst(t *testing.T) {
	db := newWiredDatabase()
	var order []int
	var mu sync.Mutex

	startedFirst := make(chan struct{})
	finished := make(chan struct{}, 2)

	attemptFor := func(id int) Attempt {
		return func() (any, bool) {
			v, exists := db.Get("list")
			if !exists {
				return nil, false
			}
			popped, err := v.PopLeft(1)
			if err != nil || len(popped) == 0 {
				return nil, false
			}
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			return popped[0], true
		}
	}

	go func() {
		Park(context.Background(), db, []string{"list"}, "left", 1, time.Second, attemptFor(1))
		finished <- struct{}{}
	}()
	time.Sleep(15 * time.Millisecond)
	close(startedFirst)
	go func() {
		Park(context.Background(), db, []string{"list"}, "left", 2, time.Second, attemptFor(2))
		finished <- struct{}{}
	}()
	time.Sleep(15 * time.Millisecond)

	db.Set("list", store.NewList(), false)
	require.NoError(t, db.Mutate("list", store.KindList, store.NewList, func(v *store.Value) error {
		_, err := v.PushRight([]byte("a"))
		return err
	}))

	<-finished
	require.NoError(t, db.Mutate("list", store.KindList, store.NewList, func(v *store.Value) error {
		_, err := v.PushRight([]byte("b"))
		return err
	}))
	<-finished

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 2)
	assert.Equal(t, 1, order[0], "earliest registrant must win the race")
}
