// Grounded on the teacher's handler_list.go (LPUSH/RPUSH/LRANGE/LPOP
// over common.Item.List), generalized onto store.Value's List operators
// and extended with LMOVE/LINSERT/LSET/LREM/LTRIM per §4.B.
package handlers

import (
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hPush(right bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 2 {
			return nil, ErrWrongArgs
		}
		var n int
		err := c.DB().Mutate(string(args[0]), store.KindList, store.NewList, func(v *store.Value) error {
			var err error
			if right {
				n, err = v.PushRight(args[1:]...)
			} else {
				n, err = v.PushLeft(args[1:]...)
			}
			return err
		})
		if err != nil {
			return toError(err), nil
		}
		return resp.NewInteger(int64(n)), nil
	}
}

func hPop(right bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, ErrWrongArgs
		}
		count := 1
		withCount := false
		if len(args) == 2 {
			n, err := parseInt(args[1])
			if err != nil || n < 0 {
				return toError(store.ErrSyntax), nil
			}
			count = int(n)
			withCount = true
		}

		db := c.DB()
		v, ok := db.Get(string(args[0]))
		if !ok {
			if withCount {
				return resp.NewNullArray(), nil
			}
			return resp.NewNullBulk(), nil
		}
		if v.Kind != store.KindList {
			return toError(store.ErrWrongType), nil
		}
		var popped [][]byte
		var err error
		if right {
			popped, err = v.PopRight(count)
		} else {
			popped, err = v.PopLeft(count)
		}
		if err != nil {
			return toError(err), nil
		}
		if v.Empty() {
			db.Delete(string(args[0]))
		} else {
			db.NotifyMutation(string(args[0]))
		}
		if withCount {
			return arrayOfBulk(popped), nil
		}
		if len(popped) == 0 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewBulk(popped[0]), nil
	}
}

func hLLen(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindList {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(len(v.List))), nil
}

func hLRange(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	start, err1 := parseInt(args[1])
	end, err2 := parseInt(args[2])
	if err1 != nil || err2 != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindList {
		return toError(store.ErrWrongType), nil
	}
	rng, err := v.Range(int(start), int(end))
	if err != nil {
		return toError(err), nil
	}
	return arrayOfBulk(rng), nil
}

func hLIndex(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	idx, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindList {
		return toError(store.ErrWrongType), nil
	}
	elem, ok, err := v.Index(int(idx))
	if err != nil {
		return toError(err), nil
	}
	if !ok {
		return resp.NewNullBulk(), nil
	}
	return resp.NewBulk(elem), nil
}

func hLSet(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	idx, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	err = c.DB().Mutate(string(args[0]), store.KindList, store.NewList, func(v *store.Value) error {
		return v.SetIndex(int(idx), args[2])
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.OK(), nil
}

func hLInsert(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 4 {
		return nil, ErrWrongArgs
	}
	before := strings.EqualFold(string(args[1]), "BEFORE")
	if !before && !strings.EqualFold(string(args[1]), "AFTER") {
		return toError(store.ErrSyntax), nil
	}
	var newLen int
	err := c.DB().Mutate(string(args[0]), store.KindList, store.NewList, func(v *store.Value) error {
		var err error
		if before {
			newLen, err = v.InsertBefore(args[2], args[3])
		} else {
			newLen, err = v.InsertAfter(args[2], args[3])
		}
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(int64(newLen)), nil
}

func hLRem(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	count, err := parseInt(args[1])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	var removed int
	db := c.DB()
	mutErr := db.Mutate(string(args[0]), store.KindList, store.NewList, func(v *store.Value) error {
		var err error
		removed, err = v.Rem(int(count), args[2])
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewInteger(int64(removed)), nil
}

func hLTrim(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	start, err1 := parseInt(args[1])
	end, err2 := parseInt(args[2])
	if err1 != nil || err2 != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	err := c.DB().Mutate(string(args[0]), store.KindList, store.NewList, func(v *store.Value) error {
		return v.Trim(int(start), int(end))
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.OK(), nil
}

// hLMove implements LMOVE's atomic cross-list move: pop from the
// source's chosen end, push onto the destination's chosen end, as one
// database-level critical section so no other command can observe the
// element missing from both lists.
func hLMove(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 4 {
		return nil, ErrWrongArgs
	}
	srcKey, dstKey := string(args[0]), string(args[1])
	fromRight := strings.EqualFold(string(args[2]), "RIGHT")
	toRight := strings.EqualFold(string(args[3]), "RIGHT")
	if !fromRight && !strings.EqualFold(string(args[2]), "LEFT") {
		return toError(store.ErrSyntax), nil
	}
	if !toRight && !strings.EqualFold(string(args[3]), "LEFT") {
		return toError(store.ErrSyntax), nil
	}

	db := c.DB()
	v, ok := db.Get(srcKey)
	if !ok {
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindList {
		return toError(store.ErrWrongType), nil
	}
	var popped [][]byte
	var err error
	if fromRight {
		popped, err = v.PopRight(1)
	} else {
		popped, err = v.PopLeft(1)
	}
	if err != nil || len(popped) == 0 {
		return resp.NewNullBulk(), nil
	}
	if v.Empty() {
		db.Delete(srcKey)
	} else {
		db.NotifyMutation(srcKey)
	}

	mutErr := db.Mutate(dstKey, store.KindList, store.NewList, func(dst *store.Value) error {
		var err error
		if toRight {
			_, err = dst.PushRight(popped[0])
		} else {
			_, err = dst.PushLeft(popped[0])
		}
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewBulk(popped[0]), nil
}
