// Grounded on the teacher's handler_string.go (GET/SET/INCR family over
// common.Item.Str), generalized onto store.Value's String operator set.
package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hGet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewBulk(v.Bytes), nil
}

func hSet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	key, value := string(args[0]), args[1]

	nx, xx, keepTTL, withGet := false, false, false, false
	var expireAtMs int64
	for i := 2; i < len(args); i++ {
		switch strings.ToUpper(string(args[i])) {
		case "NX":
			nx = true
		case "XX":
			xx = true
		case "KEEPTTL":
			keepTTL = true
		case "GET":
			withGet = true
		case "EX", "PX", "EXAT", "PXAT":
			if i+1 >= len(args) {
				return toError(store.ErrSyntax), nil
			}
			n, err := parseInt(args[i+1])
			if err != nil {
				return toError(store.ErrSyntax), nil
			}
			expireAtMs = resolveExpiry(strings.ToUpper(string(args[i])), n)
			i++
		default:
			return toError(store.ErrSyntax), nil
		}
	}
	if nx && xx {
		return toError(store.ErrSyntax), nil
	}

	db := c.DB()
	existing, exists := db.Get(key)
	if nx && exists {
		if withGet {
			return replyGetOld(existing)
		}
		return resp.NewNullBulk(), nil
	}
	if xx && !exists {
		if withGet {
			return resp.NewNullBulk(), nil
		}
		return resp.NewNullBulk(), nil
	}

	var oldReply *resp.Value
	if withGet {
		r, err := replyGetOld(existing)
		if err != nil {
			return nil, err
		}
		oldReply = r
	}

	db.Set(key, store.NewString(append([]byte(nil), value...)), keepTTL)
	if expireAtMs != 0 {
		db.Expire(key, expireAtMs)
	}
	if withGet {
		return oldReply, nil
	}
	return resp.OK(), nil
}

func replyGetOld(existing *store.Value) (*resp.Value, error) {
	if existing == nil {
		return resp.NewNullBulk(), nil
	}
	if existing.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewBulk(existing.Bytes), nil
}

func resolveExpiry(token string, n int64) int64 {
	now := nowMs()
	switch token {
	case "EX":
		return now + n*1000
	case "PX":
		return now + n
	case "EXAT":
		return n * 1000
	case "PXAT":
		return n
	default:
		return 0
	}
}

func hMGet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	out := make([]*resp.Value, len(args))
	for i, k := range args {
		v, ok := db.Get(string(k))
		if !ok || v.Kind != store.KindString {
			out[i] = resp.NewNullBulk()
			continue
		}
		out[i] = resp.NewBulk(v.Bytes)
	}
	return resp.NewArray(out), nil
}

func hMSet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 || len(args)%2 != 0 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	for i := 0; i < len(args); i += 2 {
		db.Set(string(args[i]), store.NewString(append([]byte(nil), args[i+1]...)), false)
	}
	return resp.OK(), nil
}

func hAppend(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	var n int
	err := c.DB().Mutate(string(args[0]), store.KindString, func() *store.Value { return store.NewString(nil) }, func(v *store.Value) error {
		newN, err := v.Append(args[1])
		n = newN
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(int64(n)), nil
}

func hStrlen(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(len(v.Bytes))), nil
}

func hGetRange(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	start, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrSyntax), nil
	}
	end, err := parseInt(args[2])
	if err != nil {
		return toError(store.ErrSyntax), nil
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewBulk(nil), nil
	}
	if v.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	out, err := v.GetRange(int(start), int(end))
	if err != nil {
		return toError(err), nil
	}
	return resp.NewBulk(out), nil
}

func hSetRange(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	offset, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrSyntax), nil
	}
	var n int
	mutErr := c.DB().Mutate(string(args[0]), store.KindString, func() *store.Value { return store.NewString(nil) }, func(v *store.Value) error {
		newN, err := v.SetRange(int(offset), args[2])
		n = newN
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewInteger(int64(n)), nil
}

func hIncrBy(delta int64) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) != 1 {
			return nil, ErrWrongArgs
		}
		var n int64
		err := c.DB().Mutate(string(args[0]), store.KindString, func() *store.Value { return store.NewString([]byte("0")) }, func(v *store.Value) error {
			newN, err := v.IncrBy(delta)
			n = newN
			return err
		})
		if err != nil {
			return toError(err), nil
		}
		return resp.NewInteger(n), nil
	}
}

func hIncrByN(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	delta, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	return hIncrBy(delta)(c, args[:1])
}

func hDecrByN(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	delta, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	return hIncrBy(-delta)(c, args[:1])
}

func hIncrByFloat(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	delta, err := parseFloat(args[1])
	if err != nil {
		return toError(store.ErrNotAFloat), nil
	}
	var f float64
	mutErr := c.DB().Mutate(string(args[0]), store.KindString, func() *store.Value { return store.NewString([]byte("0")) }, func(v *store.Value) error {
		newF, err := v.IncrByFloat(delta)
		f = newF
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewBulkString(formatFloat(f)), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func nowMs() int64 { return time.Now().UnixMilli() }

func hBitCount(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 && len(args) != 3 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	var start, end int64
	haveRange := len(args) == 3
	if haveRange {
		var err error
		start, err = parseInt(args[1])
		if err != nil {
			return toError(store.ErrNotAnInteger), nil
		}
		end, err = parseInt(args[2])
		if err != nil {
			return toError(store.ErrNotAnInteger), nil
		}
	}
	n, err := v.BitCount(int(start), int(end), haveRange)
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(n), nil
}

func hBitPos(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	target, err := parseInt(args[1])
	if err != nil || (target != 0 && target != 1) {
		return toError(store.ErrSyntax), nil
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		if target == 0 {
			return resp.NewInteger(0), nil
		}
		return resp.NewInteger(-1), nil
	}
	if v.Kind != store.KindString {
		return toError(store.ErrWrongType), nil
	}
	var start, end int64
	haveRange := len(args) >= 3
	if len(args) >= 3 {
		start, err = parseInt(args[2])
		if err != nil {
			return toError(store.ErrNotAnInteger), nil
		}
	}
	if len(args) >= 4 {
		end, err = parseInt(args[3])
		if err != nil {
			return toError(store.ErrNotAnInteger), nil
		}
	} else if haveRange {
		end = int64(len(v.Bytes) - 1)
	}
	n, perr := v.BitPos(int(target), int(start), int(end), haveRange)
	if perr != nil {
		return toError(perr), nil
	}
	return resp.NewInteger(n), nil
}

func hBitOp(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	opName := strings.ToUpper(string(args[0]))
	dest := string(args[1])
	var op store.BitOpKind
	switch opName {
	case "AND":
		op = store.BitOpAnd
	case "OR":
		op = store.BitOpOr
	case "XOR":
		op = store.BitOpXor
	case "NOT":
		op = store.BitOpNot
		if len(args) != 3 {
			return toError(store.ErrSyntax), nil
		}
	default:
		return toError(store.ErrSyntax), nil
	}

	db := c.DB()
	srcKeys := args[2:]
	srcs := make([][]byte, len(srcKeys))
	for i, k := range srcKeys {
		v, ok := db.Get(string(k))
		if !ok {
			continue
		}
		if v.Kind != store.KindString {
			return toError(store.ErrWrongType), nil
		}
		srcs[i] = v.Bytes
	}
	result := store.BitOp(op, srcs)
	if len(result) == 0 {
		db.Delete(dest)
	} else {
		db.Set(dest, store.NewString(result), false)
	}
	return resp.NewInteger(int64(len(result))), nil
}
