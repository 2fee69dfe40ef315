package acl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// GlobMatch implements the same *,?,[set],\escape glob rules as KEYS and
// CONFIG GET, duplicated from database.globMatch rather than imported
// (acl intentionally has no dependency on database) and memoized here
// since ACL checks run on every single command dispatch, unlike KEYS
// which runs once per call.
var matchCache sync.Map // map[uint64]bool keyed by xxhash of pattern+0+s

func GlobMatch(pattern, s string) bool {
	key := cacheKey(pattern, s)
	if v, ok := matchCache.Load(key); ok {
		return v.(bool)
	}
	result := globMatchBytes([]byte(pattern), []byte(s))
	matchCache.Store(key, result)
	return result
}

func cacheKey(pattern, s string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(pattern)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(s)
	return h.Sum64()
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

func matchCharClass(set []byte, c byte) bool {
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
