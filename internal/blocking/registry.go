package blocking

import (
	"sync"

	"github.com/vkeydb/vkeydb/internal/database"
)

// wakeRegistry maps a live *database.Waiter to the channel its Park call
// is listening on. Kept separate from database.Waiter itself so that
// package stays free of any notion of "how a waiter gets woken".
type wakeRegistry struct {
	mu sync.Mutex
	m  map[*database.Waiter]chan struct{}
}

func newWakeRegistry() *wakeRegistry {
	return &wakeRegistry{m: map[*database.Waiter]chan struct{}{}}
}

func (r *wakeRegistry) put(w *database.Waiter, ch chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[w] = ch
}

func (r *wakeRegistry) remove(w *database.Waiter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, w)
}

func (r *wakeRegistry) wake(w *database.Waiter) {
	r.mu.Lock()
	ch, ok := r.m[w]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}
