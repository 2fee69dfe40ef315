// Package command implements the command registry (§4.F): static,
// declarative per-command metadata (arity, flags, ACL categories,
// key-position rule) plus a small combinator library for binding
// argument lists against a declarative grammar.
//
// The teacher has no registry at all — handlers.go dispatches on a bare
// switch over the command name string, re-deriving arity/flag checks ad
// hoc inside each handler. This package is new, grounded in the spec's
// description of what a registry entry carries; the combinator grammar
// in grammar.go is demonstrated in full on SET (whose NX/XX/EX/PX/
// KEEPTTL option set is the canonical case for it) while most other
// commands bind their handful of positional arguments directly, the way
// the teacher's handlers already do, now backed by this registry for
// arity/flag/ACL/key-position metadata instead of nothing.
package command

import "github.com/vkeydb/vkeydb/internal/acl"

// Flag is one bit of a command's declared behavior.
type Flag uint32

const (
	FlagReadonly Flag = 1 << iota
	FlagWrite
	FlagAdmin
	FlagPubSub
	FlagNoScript
	FlagLoading
	FlagStale
	FlagFast
	FlagMovableKeys
	FlagBlocking
)

// Arity describes how many arguments (after the command name) a command
// accepts. Min is required; Max == -1 means unbounded (variadic).
type Arity struct {
	Min, Max int
}

func (a Arity) Accepts(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Max < 0 || n <= a.Max
}

// KeyPositions describes where a command's key arguments sit. Step == 0
// with First == 0 means "no keys" (e.g. PING). Movable is set for
// commands like SORT/GEORADIUS whose key positions need a callback;
// vkeydb's implemented command set doesn't include any, but the field is
// kept so the registry models the concept spec.md names.
type KeyPositions struct {
	First, Last, Step int
	Movable           bool
}

// Spec is one command's static metadata entry.
type Spec struct {
	Name       string
	Subcommand string // e.g. "CREATE" for "XGROUP CREATE"
	Arity      Arity
	Flags      Flag
	Categories acl.Category
	Keys       KeyPositions
}

func (s *Spec) Is(f Flag) bool { return s.Flags&f != 0 }

// Registry is the static table of all known commands, keyed by upper
// case name (and "NAME SUBCOMMAND" for commands with subcommand tokens).
type Registry struct {
	specs map[string]*Spec
}

func NewRegistry() *Registry {
	return &Registry{specs: map[string]*Spec{}}
}

func (r *Registry) Register(s *Spec) {
	r.specs[key(s.Name, s.Subcommand)] = s
}

func key(name, sub string) string {
	if sub == "" {
		return name
	}
	return name + " " + sub
}

// Lookup finds a command's spec, first trying "name sub" then bare name
// so container commands (CONFIG, CLIENT, ACL, XGROUP, ...) resolve their
// subcommand-specific arity/flags when known, and fall back to a generic
// entry otherwise.
func (r *Registry) Lookup(name, sub string) (*Spec, bool) {
	if sub != "" {
		if s, ok := r.specs[key(name, sub)]; ok {
			return s, true
		}
	}
	s, ok := r.specs[name]
	return s, ok
}

func (r *Registry) All() []*Spec {
	out := make([]*Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	return out
}
