// Package acl implements the user/permission model (§1, §4.D, §9):
// per-user command allow/deny rules, key patterns (~pattern), channel
// patterns (&pattern), and a command-category bitset.
//
// Grounded on the teacher's package-level `requirepass` single-password
// gate (conf.go/appstate.go), generalized here into a proper multi-user
// table the way spec.md's ACL module wants, matched with the same glob
// rules KEYS/CONFIG GET already use (database.globMatch's algorithm,
// duplicated here rather than imported so acl has no dependency on
// database — both are grounded in the same Redis glob-match behavior).
package acl

import "github.com/cespare/xxhash/v2"

// Category is a bit in a command's ACL category set (+@read, +@write, ...).
type Category uint32

const (
	CatKeyspace Category = 1 << iota
	CatRead
	CatWrite
	CatString
	CatList
	CatHash
	CatSet
	CatSortedSet
	CatStream
	CatConnection
	CatTransaction
	CatPubSub
	CatAdmin
	CatDangerous
	CatFast
	CatSlow
	CatBlocking
)

var categoryNames = map[string]Category{
	"keyspace": CatKeyspace, "read": CatRead, "write": CatWrite,
	"string": CatString, "list": CatList, "hash": CatHash, "set": CatSet,
	"sortedset": CatSortedSet, "stream": CatStream, "connection": CatConnection,
	"transaction": CatTransaction, "pubsub": CatPubSub, "admin": CatAdmin,
	"dangerous": CatDangerous, "fast": CatFast, "slow": CatSlow, "blocking": CatBlocking,
}

func CategoryByName(name string) (Category, bool) {
	c, ok := categoryNames[name]
	return c, ok
}

// Rule is one +pattern/-pattern entry in a user's command list; Pattern
// is either an exact command name or "@category".
type Rule struct {
	Allow   bool
	Pattern string
}

// User is one ACL principal: a set of password hashes (NoPass accepts any
// password; with NoPass unset and no hashes, no password is accepted), command
// rules evaluated in order (last match wins, Redis ACL semantics), key
// patterns, channel patterns, and the category bitset commands are
// checked against when no explicit command rule matches.
type User struct {
	Name        string
	Enabled     bool
	NoPass      bool
	PassHashes  map[uint64]bool // xxhash of accepted passwords
	CommandRules []Rule
	AllCommands bool // "allcommands" shorthand; still overridable by later -rules
	KeyPatterns []string
	AllKeys     bool
	ChanPatterns []string
	AllChannels bool
	Categories  Category
}

func NewUser(name string) *User {
	return &User{Name: name, Enabled: true, PassHashes: map[uint64]bool{}}
}

func hashPassword(pw string) uint64 { return xxhash.Sum64String(pw) }

func (u *User) SetPassword(pw string) { u.PassHashes[hashPassword(pw)] = true }

func (u *User) CheckPassword(pw string) bool {
	if u.NoPass {
		return true
	}
	return u.PassHashes[hashPassword(pw)]
}

// AllowCommand evaluates whether u may run commandName in the given
// category set, applying rules in registration order so later rules
// override earlier ones, with AllCommands/Categories as the base case.
func (u *User) AllowCommand(commandName string, categories Category) bool {
	allowed := u.AllCommands || (u.Categories&categories) != 0
	for _, r := range u.CommandRules {
		if matchesRule(r.Pattern, commandName, categories) {
			allowed = r.Allow
		}
	}
	return allowed
}

func matchesRule(pattern, commandName string, categories Category) bool {
	if len(pattern) > 0 && pattern[0] == '@' {
		cat, ok := categoryNames[pattern[1:]]
		return ok && categories&cat != 0
	}
	return pattern == commandName
}

// AllowKey evaluates whether u may touch keyName, per ~pattern rules.
func (u *User) AllowKey(keyName string) bool {
	if u.AllKeys {
		return true
	}
	for _, p := range u.KeyPatterns {
		if GlobMatch(p, keyName) {
			return true
		}
	}
	return false
}

// AllowChannel evaluates whether u may (P)SUBSCRIBE/PUBLISH to channel,
// per &pattern rules.
func (u *User) AllowChannel(channel string) bool {
	if u.AllChannels {
		return true
	}
	for _, p := range u.ChanPatterns {
		if GlobMatch(p, channel) {
			return true
		}
	}
	return false
}

// Table is the server-wide set of ACL users, keyed by name.
type Table struct {
	users map[string]*User
}

func NewTable() *Table {
	t := &Table{users: map[string]*User{}}
	def := NewUser("default")
	def.NoPass = true
	def.AllCommands = true
	def.AllKeys = true
	def.AllChannels = true
	t.users["default"] = def
	return t
}

func (t *Table) Get(name string) (*User, bool) {
	u, ok := t.users[name]
	return u, ok
}

func (t *Table) Put(u *User) { t.users[u.Name] = u }

func (t *Table) Delete(name string) bool {
	if name == "default" {
		return false
	}
	_, ok := t.users[name]
	delete(t.users, name)
	return ok
}

// SetRequirePass keeps the default user (the one AUTH with no username
// targets) in step with a requirepass-style single password gate: empty
// clears it back to nopass, non-empty replaces whatever password was set
// before.
func (t *Table) SetRequirePass(password string) {
	u, ok := t.Get("default")
	if !ok {
		u = NewUser("default")
		u.AllCommands, u.AllKeys, u.AllChannels = true, true, true
	}
	if password == "" {
		u.NoPass = true
	} else {
		u.NoPass = false
		u.PassHashes = map[uint64]bool{}
		u.SetPassword(password)
	}
	t.Put(u)
}

func (t *Table) Names() []string {
	out := make([]string, 0, len(t.users))
	for n := range t.users {
		out = append(out, n)
	}
	return out
}
