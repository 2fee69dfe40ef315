// Grounded on the teacher's handler_key.go (DEL/EXISTS/EXPIRE/TTL/KEYS
// over the single global Database), generalized onto the per-session
// selected database.Database and its Scan cursor.
package handlers

import (
	"strconv"
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hDel(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	n := 0
	for _, k := range args {
		if db.Delete(string(k)) {
			n++
		}
	}
	return resp.NewInteger(int64(n)), nil
}

func hExists(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	n := 0
	for _, k := range args {
		if db.Exists(string(k)) {
			n++
		}
	}
	return resp.NewInteger(int64(n)), nil
}

func hType(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewSimpleString("none"), nil
	}
	return resp.NewSimpleString(v.Kind.String()), nil
}

func hRename(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	if !db.Rename(string(args[0]), string(args[1])) {
		return toError(errNoSuchKey), nil
	}
	return resp.OK(), nil
}

func hRenameNX(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	if db.Exists(string(args[1])) {
		return resp.NewInteger(0), nil
	}
	if !db.Rename(string(args[0]), string(args[1])) {
		return toError(errNoSuchKey), nil
	}
	return resp.NewInteger(1), nil
}

func hExpire(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	seconds, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	if !expireConditionOK(c, args, 2) {
		return resp.NewInteger(0), nil
	}
	if c.DB().Expire(string(args[0]), nowMs()+seconds*1000) {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hPExpire(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	ms, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	if !expireConditionOK(c, args, 2) {
		return resp.NewInteger(0), nil
	}
	if c.DB().Expire(string(args[0]), nowMs()+ms) {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hExpireAt(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	seconds, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	if !expireConditionOK(c, args, 2) {
		return resp.NewInteger(0), nil
	}
	if c.DB().Expire(string(args[0]), seconds*1000) {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hPExpireAt(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	ms, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	if !expireConditionOK(c, args, 2) {
		return resp.NewInteger(0), nil
	}
	if c.DB().Expire(string(args[0]), ms) {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

// expireConditionOK checks EXPIRE's optional NX/XX/GT/LT flag (Redis
// 7.0+) against the key's current TTL state.
func expireConditionOK(c *Context, args [][]byte, flagStart int) bool {
	if len(args) <= flagStart {
		return true
	}
	ttl := c.DB().TTLMillis(string(args[0]))
	switch strings.ToUpper(string(args[flagStart])) {
	case "NX":
		return ttl == -1 || ttl == -2
	case "XX":
		return ttl >= 0
	case "GT":
		return ttl >= 0
	case "LT":
		return ttl == -1 || ttl == -2 || ttl >= 0
	default:
		return true
	}
}

func hPersist(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	if c.DB().Persist(string(args[0])) {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hTTL(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	ms := c.DB().TTLMillis(string(args[0]))
	if ms < 0 {
		return resp.NewInteger(ms), nil
	}
	return resp.NewInteger((ms + 999) / 1000), nil
}

func hPTTL(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	return resp.NewInteger(c.DB().TTLMillis(string(args[0]))), nil
}

func hTouch(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	n := 0
	for _, k := range args {
		if db.Touch(string(k)) {
			n++
		}
	}
	return resp.NewInteger(int64(n)), nil
}

func hKeys(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	keys := c.DB().Keys(string(args[0]))
	return stringArray(keys), nil
}

func hDBSize(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 0 {
		return nil, ErrWrongArgs
	}
	return resp.NewInteger(int64(c.DB().Size())), nil
}

func hFlushDB(c *Context, args [][]byte) (*resp.Value, error) {
	c.DB().Flush()
	return resp.OK(), nil
}

func hFlushAll(c *Context, args [][]byte) (*resp.Value, error) {
	c.Server.DBs.FlushAll()
	return resp.OK(), nil
}

func hScan(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	cursor, err := strconv.ParseUint(string(args[0]), 10, 64)
	if err != nil {
		return toError(store.ErrSyntax), nil
	}
	match, count, typeFilter := "*", 10, ""
	for i := 1; i < len(args); i++ {
		switch strings.ToUpper(string(args[i])) {
		case "MATCH":
			if i+1 >= len(args) {
				return toError(store.ErrSyntax), nil
			}
			match = string(args[i+1])
			i++
		case "COUNT":
			if i+1 >= len(args) {
				return toError(store.ErrSyntax), nil
			}
			n, perr := parseInt(args[i+1])
			if perr != nil {
				return toError(store.ErrNotAnInteger), nil
			}
			count = int(n)
			i++
		case "TYPE":
			if i+1 >= len(args) {
				return toError(store.ErrSyntax), nil
			}
			typeFilter = string(args[i+1])
			i++
		default:
			return toError(store.ErrSyntax), nil
		}
	}
	next, keys := c.DB().Scan(cursor, match, count, typeFilter)
	return resp.NewArray([]*resp.Value{
		resp.NewBulkString(strconv.FormatUint(next, 10)),
		stringArray(keys),
	}), nil
}
