package database

// Registry is the server-wide array of logical databases selected with
// SELECT (§3), generalizing the teacher's package-level InitDBS/appstate
// global into an owned, constructable value instead of process globals.
type Registry struct {
	dbs []*Database
}

// NewRegistry builds n logical databases, each wired with onMutate so
// WATCH/blocking notifications reach every database uniformly.
func NewRegistry(n int, onMutate func(db *Database, key string)) *Registry {
	r := &Registry{dbs: make([]*Database, n)}
	for i := 0; i < n; i++ {
		d := New(i)
		d.OnMutate = onMutate
		r.dbs[i] = d
	}
	return r
}

func (r *Registry) Count() int { return len(r.dbs) }

// Get returns logical database index, or nil if index is out of range.
func (r *Registry) Get(index int) *Database {
	if index < 0 || index >= len(r.dbs) {
		return nil
	}
	return r.dbs[index]
}

// FlushAll clears every logical database (FLUSHALL).
func (r *Registry) FlushAll() {
	for _, d := range r.dbs {
		d.Flush()
	}
}

// TotalKeys sums key counts across all logical databases (INFO keyspace).
func (r *Registry) TotalKeys() int {
	total := 0
	for _, d := range r.dbs {
		total += d.Size()
	}
	return total
}
