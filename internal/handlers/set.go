// Grounded on the teacher's handler_set.go (SADD/SMEMBERS over
// common.Item.Set), generalized onto store.Value's Set operator set and
// the package-level SUnion/SInter/SDiff set-algebra helpers.
package handlers

import (
	"math/rand"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hSAdd(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	var n int
	err := c.DB().Mutate(string(args[0]), store.KindSet, store.NewSet, func(v *store.Value) error {
		newN, err := v.SAdd(bytesSlice(args[1:])...)
		n = newN
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(int64(n)), nil
}

func hSRem(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	key := string(args[0])
	v, ok := db.Get(key)
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	n, err := v.SRem(bytesSlice(args[1:])...)
	if err != nil {
		return toError(err), nil
	}
	if len(v.Set) == 0 {
		db.Delete(key)
	} else {
		db.NotifyMutation(key)
	}
	return resp.NewInteger(int64(n)), nil
}

func hSIsMember(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	isMember, err := v.SIsMember(string(args[1]))
	if err != nil {
		return toError(err), nil
	}
	if isMember {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hSMIsMember(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	out := make([]*resp.Value, len(args)-1)
	if !ok {
		for i := range out {
			out[i] = resp.NewInteger(0)
		}
		return resp.NewArray(out), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	for i, m := range args[1:] {
		isMember, _ := v.SIsMember(string(m))
		if isMember {
			out[i] = resp.NewInteger(1)
		} else {
			out[i] = resp.NewInteger(0)
		}
	}
	return resp.NewArray(out), nil
}

func hSCard(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(len(v.Set))), nil
}

func hSMembers(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	members, err := v.SMembers()
	if err != nil {
		return toError(err), nil
	}
	return stringArray(members), nil
}

func hSRandMember(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		if len(args) == 1 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	if len(args) == 1 {
		members, err := v.SRandMember(1, rand.Intn)
		if err != nil || len(members) == 0 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewBulkString(members[0]), nil
	}
	count, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	members, err := v.SRandMember(int(count), rand.Intn)
	if err != nil {
		return toError(err), nil
	}
	return stringArray(members), nil
}

func hSPop(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	key := string(args[0])
	v, ok := db.Get(key)
	if !ok {
		if len(args) == 2 {
			return resp.NewArray(nil), nil
		}
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindSet {
		return toError(store.ErrWrongType), nil
	}
	count := 1
	withCount := len(args) == 2
	if withCount {
		n, err := parseInt(args[1])
		if err != nil {
			return toError(store.ErrNotAnInteger), nil
		}
		count = int(n)
	}
	members, err := v.SRandMember(count, rand.Intn)
	if err != nil {
		return toError(err), nil
	}
	if len(members) > 0 {
		if _, err := v.SRem(members...); err != nil {
			return toError(err), nil
		}
		if len(v.Set) == 0 {
			db.Delete(key)
		} else {
			db.NotifyMutation(key)
		}
	}
	if withCount {
		return stringArray(members), nil
	}
	if len(members) == 0 {
		return resp.NewNullBulk(), nil
	}
	return resp.NewBulkString(members[0]), nil
}

func hSetOp(op func(...*store.Value) ([]string, error)) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 1 {
			return nil, ErrWrongArgs
		}
		sets, err := resolveSets(c, args)
		if err != nil {
			return toError(err), nil
		}
		members, err := op(sets...)
		if err != nil {
			return toError(err), nil
		}
		return stringArray(members), nil
	}
}

func hSetOpStore(op func(...*store.Value) ([]string, error)) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 2 {
			return nil, ErrWrongArgs
		}
		destKey := string(args[0])
		sets, err := resolveSets(c, args[1:])
		if err != nil {
			return toError(err), nil
		}
		members, err := op(sets...)
		if err != nil {
			return toError(err), nil
		}
		db := c.DB()
		if len(members) == 0 {
			db.Delete(destKey)
		} else {
			db.Set(destKey, store.SetFromMembers(members), false)
		}
		return resp.NewInteger(int64(len(members))), nil
	}
}

func resolveSets(c *Context, keys [][]byte) ([]*store.Value, error) {
	db := c.DB()
	out := make([]*store.Value, 0, len(keys))
	for _, k := range keys {
		v, ok := db.Get(string(k))
		if !ok {
			out = append(out, store.NewSet())
			continue
		}
		if v.Kind != store.KindSet {
			return nil, store.ErrWrongType
		}
		out = append(out, v)
	}
	return out, nil
}

func stringArray(items []string) *resp.Value {
	out := make([]*resp.Value, len(items))
	for i, s := range items {
		out[i] = resp.NewBulkString(s)
	}
	return resp.NewArray(out)
}
