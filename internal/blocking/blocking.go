// Package blocking implements the blocking-command coordinator (§4.I):
// BLPOP/BRPOP/BLMOVE park a session against one or more keys, and get
// woken when a mutation makes one of them satisfiable, served
// oldest-registrant-first. WAIT and XREAD do not park.
//
// The teacher has no blocking commands at all (its handler_list.go is
// pop-or-nothing). This package is new, grounded in the spec's
// description of the wake protocol and wired directly onto
// database.Database's waiter index (§4.C), which already orders waiters
// by registration sequence the way this coordinator requires.
package blocking

import (
	"context"
	"time"

	"github.com/vkeydb/vkeydb/internal/database"
)

// Attempt is the non-blocking operation a parked waiter retries each
// time its key is mutated; it returns ok=true once it succeeds, along
// with whatever the blocking command needs to reply with.
type Attempt func() (result any, ok bool)

// Park blocks the calling goroutine (which the server runs one per
// connection, so blocking a command only blocks that one connection)
// until attempt succeeds, ctx is done, or timeout elapses (timeout <= 0
// means wait forever, matching BLPOP's 0-timeout meaning).
//
// attempt is tried once immediately (the non-blocking fast path every
// blocking command must offer per spec.md), and again every time wake is
// signaled by NotifyKey; this avoids parking at all when data is already
// available.
func Park(ctx context.Context, db *database.Database, keys []string, direction string, sessionID int64, timeout time.Duration, attempt Attempt) (any, bool) {
	if result, ok := attempt(); ok {
		return result, true
	}

	wake := make(chan struct{}, 1)
	var waiters []*database.Waiter
	for _, k := range keys {
		waiters = append(waiters, registerWaiter(db, k, direction, sessionID, wake))
	}
	defer func() {
		for i, k := range keys {
			db.RemoveWaiter(k, waiters[i])
			registry.remove(waiters[i])
		}
	}()

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-wake:
			if result, ok := attempt(); ok {
				return result, true
			}
		case <-deadline:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

// registry maps a *database.Waiter to the channel Park is select-ing
// on; NotifyKey uses this to signal the oldest compatible waiter for a
// mutated key without database needing to know blocking exists.
var registry = newWakeRegistry()

func registerWaiter(db *database.Database, key, direction string, sessionID int64, wake chan struct{}) *database.Waiter {
	w := db.RegisterWaiter(key, direction, sessionID, 0)
	registry.put(w, wake)
	return w
}

// NotifyKey is called through Database.OnMutate (which server.New wires
// to it) after every successful write to key, waking the single oldest waiter parked on
// that key so it can retry its attempt. Only one waiter is woken per
// call: if the mutation satisfies more than one, later notifications
// (from the woken waiter's own retried write, if any) wake the rest in
// turn.
func NotifyKey(db *database.Database, key string) {
	waiters := db.WaitersFor(key)
	if len(waiters) == 0 {
		return
	}
	registry.wake(waiters[0])
}
