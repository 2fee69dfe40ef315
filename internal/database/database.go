// Package database implements the per-logical-database keyspace (§4.C):
// the key->Value store, the expiry index, WATCH modification versions,
// and the blocking-waiter index, with lazy and active expiry.
//
// This generalizes the teacher's database.Database (a single global
// map[string]*common.Item behind one RWMutex, with a Watchers map for
// optimistic locking) into one instance per logical database, each still
// built the teacher's way: a plain map guarded by an RWMutex, no fancier
// indexing structure than that.
package database

import (
	"sync"
	"time"

	"github.com/vkeydb/vkeydb/internal/store"
)

// Item is one keyspace entry: a Value plus its optional absolute expiry
// and access bookkeeping (refreshed by Get, Set and Touch).
type Item struct {
	Value        *store.Value
	ExpireAtMs   int64 // 0 = no TTL
	LastAccessed time.Time
	AccessCount  int64
}

func (it *Item) hasTTL() bool { return it.ExpireAtMs > 0 }

func (it *Item) expired(nowMs int64) bool {
	return it.hasTTL() && it.ExpireAtMs <= nowMs
}

// Waiter is a parked blocking-command registration (§4.I). The
// Coordinator package owns satisfying/timing these out; Database only
// stores and indexes them by key.
type Waiter struct {
	SessionID int64
	Key       string
	Direction string // "left" | "right", meaningful for list pops
	Deadline  time.Time
	Seq       int64 // registration order, used to break ties (earliest wins)
}

// Database is one logical keyspace: index N of the server's database
// array (§3).
type Database struct {
	ID int

	mu    sync.RWMutex
	store map[string]*Item

	versions map[string]uint64 // WATCH modification versions, invariant 6

	waitersMu  sync.Mutex
	waiters    map[string][]*Waiter
	waiterSeq  int64

	// OnMutate is invoked (outside the database's own lock) after every
	// successful write to key, letting the blocking coordinator attempt
	// to satisfy parked waiters without this package depending on it.
	OnMutate func(db *Database, key string)
}

func New(id int) *Database {
	return &Database{
		ID:       id,
		store:    make(map[string]*Item),
		versions: make(map[string]uint64),
		waiters:  make(map[string][]*Waiter),
	}
}

func nowMs() int64 { return time.Now().UnixMilli() }

// expireIfDue deletes key if its TTL has passed (lazy expiry, §4.C).
// Caller must hold mu for write; the public wrappers all do.
func (db *Database) expireIfDue(key string) {
	it, ok := db.store[key]
	if !ok {
		return
	}
	if it.expired(nowMs()) {
		delete(db.store, key)
	}
}

// Get returns the item for key if it exists and is not expired.
func (db *Database) Get(key string) (*store.Value, bool) {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	if !ok {
		db.mu.Unlock()
		return nil, false
	}
	it.LastAccessed = time.Now()
	it.AccessCount++
	v := it.Value
	db.mu.Unlock()
	return v, true
}

// GetItem is like Get but also returns TTL bookkeeping, used by OBJECT/TTL.
func (db *Database) GetItem(key string) (*Item, bool) {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	db.mu.Unlock()
	return it, ok
}

// Set stores value under key, replacing any previous value and clearing
// any previous TTL unless keepTTL is true.
func (db *Database) Set(key string, value *store.Value, keepTTL bool) {
	db.mu.Lock()
	var expireAt int64
	if keepTTL {
		if old, ok := db.store[key]; ok {
			expireAt = old.ExpireAtMs
		}
	}
	db.store[key] = &Item{Value: value, ExpireAtMs: expireAt, LastAccessed: time.Now()}
	db.mu.Unlock()
	db.NotifyMutation(key)
}

// Mutate fetches key's value for in-place mutation (e.g. LPUSH
// creating a fresh list), calling create() if absent, and stores the
// result back. If fn succeeds and leaves the value Empty(), the key is
// deleted.
func (db *Database) Mutate(key string, kind store.Kind, create func() *store.Value, fn func(v *store.Value) error) error {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	if !ok {
		it = &Item{Value: create()}
		db.store[key] = it
	} else if it.Value.Kind != kind {
		db.mu.Unlock()
		return store.ErrWrongType
	}
	err := fn(it.Value)
	if err == nil && it.Value.Empty() {
		delete(db.store, key)
	}
	db.mu.Unlock()
	if err == nil {
		db.NotifyMutation(key)
	}
	return err
}

// Delete removes key, returning whether it existed.
func (db *Database) Delete(key string) bool {
	db.mu.Lock()
	db.expireIfDue(key)
	_, ok := db.store[key]
	if ok {
		delete(db.store, key)
	}
	db.mu.Unlock()
	if ok {
		db.NotifyMutation(key)
	}
	return ok
}

// Rename moves src's value (and TTL) to dst, overwriting dst.
func (db *Database) Rename(src, dst string) bool {
	db.mu.Lock()
	db.expireIfDue(src)
	it, ok := db.store[src]
	if !ok {
		db.mu.Unlock()
		return false
	}
	delete(db.store, src)
	db.store[dst] = it
	db.mu.Unlock()
	db.NotifyMutation(src)
	db.NotifyMutation(dst)
	return true
}

func (db *Database) Exists(key string) bool {
	db.mu.Lock()
	db.expireIfDue(key)
	_, ok := db.store[key]
	db.mu.Unlock()
	return ok
}

// Expire sets key's absolute expiry (ms epoch); 0 clears it (PERSIST).
func (db *Database) Expire(key string, atMs int64) bool {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	if !ok {
		db.mu.Unlock()
		return false
	}
	it.ExpireAtMs = atMs
	db.mu.Unlock()
	db.NotifyMutation(key)
	return true
}

func (db *Database) Persist(key string) bool {
	db.mu.Lock()
	it, ok := db.store[key]
	if !ok || it.ExpireAtMs == 0 {
		db.mu.Unlock()
		return false
	}
	it.ExpireAtMs = 0
	db.mu.Unlock()
	db.NotifyMutation(key)
	return true
}

// TTLMillis returns remaining TTL in ms, -1 if no TTL, -2 if missing.
func (db *Database) TTLMillis(key string) int64 {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	defer db.mu.Unlock()
	if !ok {
		return -2
	}
	if !it.hasTTL() {
		return -1
	}
	remain := it.ExpireAtMs - nowMs()
	if remain < 0 {
		remain = 0
	}
	return remain
}

// Touch refreshes LRU bookkeeping without altering TTL (used by TOUCH).
func (db *Database) Touch(key string) bool {
	db.mu.Lock()
	db.expireIfDue(key)
	it, ok := db.store[key]
	if ok {
		it.LastAccessed = time.Now()
	}
	db.mu.Unlock()
	return ok
}

func (db *Database) Size() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.store)
}

func (db *Database) Flush() {
	db.mu.Lock()
	keys := make([]string, 0, len(db.store))
	for k := range db.store {
		keys = append(keys, k)
	}
	db.store = make(map[string]*Item)
	db.mu.Unlock()
	for _, k := range keys {
		db.NotifyMutation(k)
	}
}

// Keys returns all live key names matching an optional glob pattern.
func (db *Database) Keys(pattern string) []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	now := nowMs()
	out := []string{}
	for k, it := range db.store {
		if it.expired(now) {
			continue
		}
		if pattern == "" || pattern == "*" || globMatch(pattern, k) {
			out = append(out, k)
		}
	}
	return out
}

// NotifyMutation bumps key's WATCH version and invokes OnMutate, if set,
// to let the blocking coordinator try to satisfy parked waiters (§4.C,
// invariant 6).
func (db *Database) NotifyMutation(key string) {
	db.mu.Lock()
	db.versions[key]++
	db.mu.Unlock()
	if db.OnMutate != nil {
		db.OnMutate(db, key)
	}
}

// Version returns key's current WATCH version (0 if never mutated).
func (db *Database) Version(key string) uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.versions[key]
}

// globMatch implements Redis-style glob matching (*, ?, [set], \escape),
// used by KEYS and SCAN; acl keeps its own copy for key/channel patterns.
func globMatch(pattern, s string) bool {
	return globMatchBytes([]byte(pattern), []byte(s))
}

func globMatchBytes(pattern, s []byte) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) > 1 && pattern[1] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globMatchBytes(pattern[1:], s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			s = s[1:]
			pattern = pattern[1:]
		case '[':
			if len(s) == 0 {
				return false
			}
			end := indexByte(pattern, ']')
			if end < 0 {
				return matchLiteral(pattern, s)
			}
			set := pattern[1:end]
			negate := len(set) > 0 && set[0] == '^'
			if negate {
				set = set[1:]
			}
			matched := matchCharClass(set, s[0])
			if matched == negate {
				return false
			}
			s = s[1:]
			pattern = pattern[end+1:]
		case '\\':
			if len(pattern) < 2 {
				return false
			}
			if len(s) == 0 || s[0] != pattern[1] {
				return false
			}
			s = s[1:]
			pattern = pattern[2:]
		default:
			if len(s) == 0 || s[0] != pattern[0] {
				return false
			}
			s = s[1:]
			pattern = pattern[1:]
		}
	}
	return len(s) == 0
}

func matchLiteral(pattern, s []byte) bool {
	return len(s) > 0 && s[0] == pattern[0] && globMatchBytes(pattern[1:], s[1:])
}

func matchCharClass(set, c byte) bool {
	for i := 0; i < len(set); i++ {
		if i+2 < len(set) && set[i+1] == '-' {
			if set[i] <= c && c <= set[i+2] {
				return true
			}
			i += 2
			continue
		}
		if set[i] == c {
			return true
		}
	}
	return false
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
