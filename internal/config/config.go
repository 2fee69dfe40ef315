// Package config implements the server's CONFIG GET/SET surface (§4.D):
// a schema-validated, string-keyed map with typed accessors.
//
// Grounded on the teacher's conf.go, which parses a redis.conf-style line
// file ("key value" per line, '#' comments) into a typed Config struct.
// We keep that line-oriented file format and parsing loop, but replace
// the fixed struct with a schema-driven map so CONFIG GET/SET can work
// against arbitrary keys the way spec.md §4.D requires, and use
// spf13/cast for the typed accessors instead of hand-rolled strconv call
// sites at every read.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Kind constrains what CONFIG SET will accept for a given key.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindEnum
)

// Field is one schema entry: a config key's type, default, and (for
// KindEnum) the allowed value set.
type Field struct {
	Key     string
	Kind    Kind
	Default string
	Enum    []string // allowed values, lowercase, when Kind == KindEnum
}

// ErrInvalidConfig is returned by Set for an unknown key or a value that
// fails its field's schema validation (spec.md §4.D: "InvalidConfig on
// unknown keys unless schema says ignore").
type ErrInvalidConfig struct {
	Key, Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("ERR Invalid config key or value: %s (%s)", e.Key, e.Reason)
}

// DefaultSchema is the CONFIG surface spec.md §4.D names explicitly.
func DefaultSchema() []Field {
	return []Field{
		{Key: "maxmemory", Kind: KindInt, Default: "0"},
		{Key: "maxmemory-policy", Kind: KindEnum, Default: "noeviction", Enum: []string{
			"noeviction", "allkeys-lru", "allkeys-lfu", "allkeys-random",
			"volatile-lru", "volatile-lfu", "volatile-random", "volatile-ttl",
		}},
		{Key: "timeout", Kind: KindInt, Default: "0"},
		{Key: "tcp-keepalive", Kind: KindInt, Default: "300"},
		{Key: "databases", Kind: KindInt, Default: "16"},
		{Key: "requirepass", Kind: KindString, Default: ""},
		{Key: "appendonly", Kind: KindBool, Default: "no"},
		{Key: "loglevel", Kind: KindEnum, Default: "info", Enum: []string{"debug", "info", "warn", "error"}},
		{Key: "notify-keyspace-events", Kind: KindString, Default: ""},
	}
}

// Config is the live, mutable configuration map, guarded by a single
// RWMutex the way the teacher's AppState protects its fields.
type Config struct {
	mu     sync.RWMutex
	schema map[string]Field
	values map[string]string
}

func New(schema []Field) *Config {
	c := &Config{schema: map[string]Field{}, values: map[string]string{}}
	for _, f := range schema {
		c.schema[f.Key] = f
		c.values[f.Key] = f.Default
	}
	return c
}

// Get returns the raw string value for key and whether it's a known key.
func (c *Config) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Match returns all key/value pairs whose key matches a CONFIG GET glob
// pattern (reusing the same glob rules as KEYS/ACL patterns).
func (c *Config) Match(pattern string, matcher func(pattern, s string) bool) map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := map[string]string{}
	for k, v := range c.values {
		if pattern == "" || pattern == "*" || matcher(pattern, k) {
			out[k] = v
		}
	}
	return out
}

// Set validates and stores value under key per its schema Kind.
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.schema[key]
	if !ok {
		return &ErrInvalidConfig{Key: key, Reason: "unknown parameter"}
	}
	switch f.Kind {
	case KindInt:
		if _, err := cast.ToInt64E(value); err != nil {
			return &ErrInvalidConfig{Key: key, Reason: "not an integer"}
		}
	case KindBool:
		if _, err := cast.ToBoolE(normalizeBool(value)); err != nil {
			return &ErrInvalidConfig{Key: key, Reason: "not a boolean"}
		}
	case KindEnum:
		lower := strings.ToLower(value)
		if !contains(f.Enum, lower) {
			return &ErrInvalidConfig{Key: key, Reason: "not one of " + strings.Join(f.Enum, "|")}
		}
		value = lower
	}
	c.values[key] = value
	return nil
}

func normalizeBool(s string) string {
	switch strings.ToLower(s) {
	case "yes":
		return "true"
	case "no":
		return "false"
	default:
		return s
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Int, Bool and String are typed accessors for internal callers (the
// executor, database sweepers, transport) that need a key's value
// already coerced rather than parsed ad hoc at each call site.
func (c *Config) Int(key string) int64 {
	v, _ := c.Get(key)
	return cast.ToInt64(v)
}

func (c *Config) Bool(key string) bool {
	v, _ := c.Get(key)
	return cast.ToBool(normalizeBool(v))
}

func (c *Config) String(key string) string {
	v, _ := c.Get(key)
	return v
}

// LoadFile parses a redis.conf-style file (one "key value..." directive
// per line, blank lines and '#' comments ignored) into c, the same
// format and loop shape as the teacher's conf.go loader.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			continue
		}
		key := strings.TrimSpace(fields[0])
		value := strings.Trim(strings.TrimSpace(fields[1]), `"`)
		if err := c.Set(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
