package database

import "sort"

// ActiveExpire samples up to sampleSize keys carrying a TTL and evicts
// those already due, repeating while more than 25% of a sample was due,
// and returns how many were removed in total. This generalizes
// the teacher's ActiveExpire sweep (which walked its whole Store under
// Mu on a timer) into the random-sampling approach the spec calls for,
// so a database with millions of keys doesn't pay an O(n) scan every
// cycle just to find the handful that expired.
func (db *Database) ActiveExpire(sampleSize int) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	total := 0
	for {
		candidates := make([]string, 0, sampleSize)
		for k, it := range db.store {
			if it.hasTTL() {
				candidates = append(candidates, k)
				if len(candidates) >= sampleSize {
					break
				}
			}
		}
		now := nowMs()
		removed := 0
		for _, k := range candidates {
			if it, ok := db.store[k]; ok && it.expired(now) {
				delete(db.store, k)
				removed++
			}
		}
		total += removed
		if removed*4 <= len(candidates) {
			return total
		}
	}
}

// RegisterWaiter parks a blocking-command registration for key, returning
// it so the caller can later pass it to RemoveWaiter on timeout or
// disconnect. Waiters for the same key are served oldest-first (§4.I).
func (db *Database) RegisterWaiter(key, direction string, sessionID int64, deadline int64) *Waiter {
	db.waitersMu.Lock()
	defer db.waitersMu.Unlock()
	db.waiterSeq++
	w := &Waiter{SessionID: sessionID, Key: key, Direction: direction, Seq: db.waiterSeq}
	_ = deadline
	db.waiters[key] = append(db.waiters[key], w)
	return w
}

// RemoveWaiter removes w from key's waiter list, a no-op if already gone
// (it may have just been satisfied by a concurrent mutation).
func (db *Database) RemoveWaiter(key string, w *Waiter) {
	db.waitersMu.Lock()
	defer db.waitersMu.Unlock()
	list := db.waiters[key]
	for i, cand := range list {
		if cand == w {
			db.waiters[key] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// WaitersFor returns key's parked waiters, oldest registration first, a
// snapshot safe to iterate without holding any lock.
func (db *Database) WaitersFor(key string) []*Waiter {
	db.waitersMu.Lock()
	defer db.waitersMu.Unlock()
	list := db.waiters[key]
	if len(list) == 0 {
		return nil
	}
	out := make([]*Waiter, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}
