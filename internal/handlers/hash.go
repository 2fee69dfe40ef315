// Grounded on the teacher's handler_hash.go (HSET/HGET/HGETALL over
// common.Item.Hash), generalized onto store.Value's Hash operator set.
package handlers

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/vkeydb/vkeydb/internal/acl"
	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hHSet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return nil, ErrWrongArgs
	}
	created := 0
	err := c.DB().Mutate(string(args[0]), store.KindHash, store.NewHash, func(v *store.Value) error {
		for i := 1; i < len(args); i += 2 {
			isNew, err := v.HSet(string(args[i]), args[i+1])
			if err != nil {
				return err
			}
			if isNew {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(int64(created)), nil
}

func hHSetNX(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	var set bool
	err := c.DB().Mutate(string(args[0]), store.KindHash, store.NewHash, func(v *store.Value) error {
		exists, err := v.HExists(string(args[1]))
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		_, err = v.HSet(string(args[1]), args[2])
		set = err == nil
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	if set {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hHGet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	val, found, err := v.HGet(string(args[1]))
	if err != nil {
		return toError(err), nil
	}
	if !found {
		return resp.NewNullBulk(), nil
	}
	return resp.NewBulk(val), nil
}

func hHMGet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	out := make([]*resp.Value, len(args)-1)
	if !ok {
		for i := range out {
			out[i] = resp.NewNullBulk()
		}
		return resp.NewArray(out), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	for i, f := range args[1:] {
		val, found, _ := v.HGet(string(f))
		if !found {
			out[i] = resp.NewNullBulk()
		} else {
			out[i] = resp.NewBulk(val)
		}
	}
	return resp.NewArray(out), nil
}

func hHDel(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	key := string(args[0])
	v, ok := db.Get(key)
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	removed, err := v.HDel(bytesSlice(args[1:])...)
	if err != nil {
		return toError(err), nil
	}
	if len(v.Hash) == 0 {
		db.Delete(key)
	} else {
		db.NotifyMutation(key)
	}
	return resp.NewInteger(int64(removed)), nil
}

func hHExists(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	exists, err := v.HExists(string(args[1]))
	if err != nil {
		return toError(err), nil
	}
	if exists {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hHLen(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(len(v.Hash))), nil
}

func hHKeys(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	keys, err := v.HKeys()
	if err != nil {
		return toError(err), nil
	}
	out := make([]*resp.Value, len(keys))
	for i, k := range keys {
		out[i] = resp.NewBulkString(k)
	}
	return resp.NewArray(out), nil
}

func hHVals(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	vals, err := v.HVals()
	if err != nil {
		return toError(err), nil
	}
	return arrayOfBulk(vals), nil
}

func hHGetAll(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	entries, err := v.HGetAll()
	if err != nil {
		return toError(err), nil
	}
	out := make([]*resp.Value, 0, len(entries)*2)
	for _, e := range entries {
		out = append(out, resp.NewBulkString(e.Field), resp.NewBulk(e.Value))
	}
	return resp.NewArray(out), nil
}

func hHIncrBy(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	delta, err := parseInt(args[2])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	var n int64
	mutErr := c.DB().Mutate(string(args[0]), store.KindHash, store.NewHash, func(v *store.Value) error {
		newN, err := v.HIncrBy(string(args[1]), delta)
		n = newN
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewInteger(n), nil
}

func hHIncrByFloat(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	delta, err := parseFloat(args[2])
	if err != nil {
		return toError(store.ErrNotAFloat), nil
	}
	var f float64
	mutErr := c.DB().Mutate(string(args[0]), store.KindHash, store.NewHash, func(v *store.Value) error {
		newF, err := v.HIncrByFloat(string(args[1]), delta)
		f = newF
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewBulkString(formatFloat(f)), nil
}

func hHRandField(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		if len(args) == 1 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	if len(args) == 1 {
		entries, err := v.HRandField(0, false, rand.Intn)
		if err != nil || len(entries) == 0 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewBulkString(entries[0].Field), nil
	}
	n, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	withValues := len(args) == 3
	entries, err := v.HRandField(int(n), withValues, rand.Intn)
	if err != nil {
		return toError(err), nil
	}
	out := make([]*resp.Value, 0, len(entries)*2)
	for _, e := range entries {
		out = append(out, resp.NewBulkString(e.Field))
		if withValues {
			out = append(out, resp.NewBulk(e.Value))
		}
	}
	return resp.NewArray(out), nil
}

// hHScan mirrors the keyspace scan's cursor convention: the cursor is an
// offset into a deterministic sort of the hash's fields rather than a
// stable bucket position, since store.Value keeps no bucket layout to
// resume from.
func hHScan(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	cursor, err := strconv.ParseUint(string(args[1]), 10, 64)
	if err != nil {
		return toError(store.ErrSyntax), nil
	}
	match, count, noValues := "*", 10, false
	for i := 2; i < len(args); i++ {
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
		case "NOVALUES":
			noValues = true
		default:
			return toError(store.ErrSyntax), nil
		}
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray([]*resp.Value{resp.NewBulkString("0"), resp.NewArray(nil)}), nil
	}
	if v.Kind != store.KindHash {
		return toError(store.ErrWrongType), nil
	}
	entries, err := v.HGetAll()
	if err != nil {
		return toError(err), nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Field < entries[j].Field })

	start := int(cursor)
	if start > len(entries) {
		start = len(entries)
	}
	end := start + count
	if end > len(entries) {
		end = len(entries)
	}
	next := uint64(0)
	if end < len(entries) {
		next = uint64(end)
	}

	out := make([]*resp.Value, 0, (end-start)*2)
	for _, e := range entries[start:end] {
		if !acl.GlobMatch(match, e.Field) {
			continue
		}
		out = append(out, resp.NewBulkString(e.Field))
		if !noValues {
			out = append(out, resp.NewBulk(e.Value))
		}
	}
	return resp.NewArray([]*resp.Value{
		resp.NewBulkString(strconv.FormatUint(next, 10)),
		resp.NewArray(out),
	}), nil
}
