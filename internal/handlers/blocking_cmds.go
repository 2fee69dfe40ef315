// Package-level blocking command handlers (§4.I). The teacher has no
// blocking commands at all, so these are new, grounded in blocking.Park
// and written the way the existing non-blocking list handlers in
// list.go already use database.Database.Mutate, just retried through
// Park instead of run once.
package handlers

import (
	"strconv"
	"time"

	"github.com/vkeydb/vkeydb/internal/blocking"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func parseTimeoutSeconds(b []byte) (time.Duration, error) {
	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil || secs < 0 {
		return 0, store.ErrNotAFloat
	}
	if secs == 0 {
		return 0, nil
	}
	return time.Duration(secs * float64(time.Second)), nil
}

type keyValPair struct {
	key string
	val []byte
}

func hBPop(right bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 2 {
			return nil, ErrWrongArgs
		}
		keys := bytesSlice(args[:len(args)-1])
		timeout, err := parseTimeoutSeconds(args[len(args)-1])
		if err != nil {
			return toError(err), nil
		}
		db := c.DB()

		var typeErr error
		attempt := func() (any, bool) {
			for _, key := range keys {
				var popped [][]byte
				merr := db.Mutate(key, store.KindList, store.NewList, func(v *store.Value) error {
					var e error
					if right {
						popped, e = v.PopRight(1)
					} else {
						popped, e = v.PopLeft(1)
					}
					return e
				})
				if merr != nil {
					typeErr = merr
					return nil, false
				}
				if len(popped) > 0 {
					return keyValPair{key: key, val: popped[0]}, true
				}
			}
			return nil, false
		}

		direction := "left"
		if right {
			direction = "right"
		}
		result, ok := blocking.Park(c.Ctx, db, keys, direction, c.Session.ID, timeout, attempt)
		if typeErr != nil {
			return toError(typeErr), nil
		}
		if !ok {
			return resp.NewNullArray(), nil
		}
		pair := result.(keyValPair)
		return resp.NewArray([]*resp.Value{resp.NewBulkString(pair.key), resp.NewBulk(pair.val)}), nil
	}
}

func hBLMove(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 5 {
		return nil, ErrWrongArgs
	}
	timeout, err := parseTimeoutSeconds(args[4])
	if err != nil {
		return toError(err), nil
	}
	db := c.DB()
	srcKey := string(args[0])

	var innerErr error
	attempt := func() (any, bool) {
		v, ok := hLMove(c, args[:4])
		if v == nil && ok == nil {
			return nil, false
		}
		innerErr = ok
		if ok != nil {
			return nil, false
		}
		if v.Kind == resp.KindBulkString && v.BulkNil {
			return nil, false
		}
		return v, true
	}
	result, ok := blocking.Park(c.Ctx, db, []string{srcKey}, "left", c.Session.ID, timeout, attempt)
	if innerErr != nil {
		return toError(innerErr), nil
	}
	if !ok {
		return resp.NewNullBulk(), nil
	}
	return result.(*resp.Value), nil
}

func hWait(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	// A single-node store has no replicas to wait for; report zero
	// acknowledged replicas immediately, matching a standalone Redis
	// instance with no attached replicas.
	return resp.NewInteger(0), nil
}
