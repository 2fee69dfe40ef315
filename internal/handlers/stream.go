// Grounded on the teacher's handler_stream.go (XADD/XRANGE/XREAD over
// common.Item.Stream), generalized onto store.Value's Stream operator
// set and the consumer-group PEL it maintains (§4.B).
package handlers

import (
	"strconv"
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func parseStreamID(b []byte, defaultSeq int64) (store.StreamID, error) {
	s := string(b)
	parts := strings.SplitN(s, "-", 2)
	ms, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return store.StreamID{}, store.ErrSyntax
	}
	if len(parts) == 1 {
		return store.StreamID{Ms: ms, Seq: defaultSeq}, nil
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return store.StreamID{}, store.ErrSyntax
	}
	return store.StreamID{Ms: ms, Seq: seq}, nil
}

func hXAdd(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 4 {
		return nil, ErrWrongArgs
	}
	idToken := string(args[1])
	fieldArgs := args[2:]
	if len(fieldArgs)%2 != 0 {
		return nil, ErrWrongArgs
	}
	fields := make([]store.FieldValue, 0, len(fieldArgs)/2)
	for i := 0; i < len(fieldArgs); i += 2 {
		fields = append(fields, store.FieldValue{Field: string(fieldArgs[i]), Value: fieldArgs[i+1]})
	}

	autoID := idToken == "*"
	var id store.StreamID
	if !autoID {
		var err error
		id, err = parseStreamID(args[1], 0)
		if err != nil {
			return toError(err), nil
		}
	}

	var newID store.StreamID
	err := c.DB().Mutate(string(args[0]), store.KindStream, store.NewStream, func(v *store.Value) error {
		got, err := v.XAdd(id, autoID, nowMs(), fields)
		newID = got
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.NewBulkString(newID.String()), nil
}

func hXLen(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindStream {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(len(v.Stream.Entries))), nil
}

func hXRange(rev bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 3 {
			return nil, ErrWrongArgs
		}
		startArg, endArg := args[1], args[2]
		if rev {
			startArg, endArg = args[2], args[1]
		}
		start, end, err := parseRangeBounds(startArg, endArg)
		if err != nil {
			return toError(err), nil
		}
		count := -1
		if len(args) >= 5 && strings.EqualFold(string(args[3]), "COUNT") {
			n, perr := parseInt(args[4])
			if perr != nil {
				return toError(store.ErrNotAnInteger), nil
			}
			count = int(n)
		}
		v, ok := c.DB().Get(string(args[0]))
		if !ok {
			return resp.NewArray(nil), nil
		}
		if v.Kind != store.KindStream {
			return toError(store.ErrWrongType), nil
		}
		entries, err := v.XRange(start, end, rev, count)
		if err != nil {
			return toError(err), nil
		}
		return entriesArray(entries), nil
	}
}

func parseRangeBounds(startArg, endArg []byte) (store.StreamID, store.StreamID, error) {
	var start, end store.StreamID
	if string(startArg) == "-" {
		start = store.StreamID{Ms: 0, Seq: 0}
	} else {
		s, err := parseStreamID(startArg, 0)
		if err != nil {
			return start, end, err
		}
		start = s
	}
	if string(endArg) == "+" {
		end = store.StreamID{Ms: 1<<63 - 1, Seq: 1<<63 - 1}
	} else {
		e, err := parseStreamID(endArg, 1<<63-1)
		if err != nil {
			return start, end, err
		}
		end = e
	}
	return start, end, nil
}

func entriesArray(entries []store.StreamEntry) *resp.Value {
	out := make([]*resp.Value, len(entries))
	for i, e := range entries {
		fieldVals := make([]*resp.Value, 0, len(e.Fields)*2)
		for _, fv := range e.Fields {
			fieldVals = append(fieldVals, resp.NewBulkString(fv.Field), resp.NewBulk(fv.Value))
		}
		out[i] = resp.NewArray([]*resp.Value{
			resp.NewBulkString(e.ID.String()),
			resp.NewArray(fieldVals),
		})
	}
	return resp.NewArray(out)
}

// hXRead implements XREAD and always answers at once: the BLOCK option is
// not acted on, so a read with nothing new returns immediately instead of
// waiting for entries.
func hXRead(c *Context, args [][]byte) (*resp.Value, error) {
	streamsIdx := -1
	count := -1
	for i, a := range args {
		switch strings.ToUpper(string(a)) {
		case "COUNT":
			if i+1 >= len(args) {
				return toError(store.ErrSyntax), nil
			}
			n, err := parseInt(args[i+1])
			if err != nil {
				return toError(store.ErrNotAnInteger), nil
			}
			count = int(n)
		case "STREAMS":
			streamsIdx = i
		}
	}
	if streamsIdx < 0 {
		return toError(store.ErrSyntax), nil
	}
	rest := args[streamsIdx+1:]
	if len(rest)%2 != 0 {
		return nil, ErrWrongArgs
	}
	n := len(rest) / 2
	keys := rest[:n]
	ids := rest[n:]

	db := c.DB()
	out := make([]*resp.Value, 0, n)
	for i, k := range keys {
		after, err := parseStreamID(ids[i], 0)
		if err != nil {
			return toError(err), nil
		}
		v, ok := db.Get(string(k))
		if !ok || v.Kind != store.KindStream {
			continue
		}
		entries, err := v.XReadAfter(after, count)
		if err != nil {
			return toError(err), nil
		}
		if len(entries) == 0 {
			continue
		}
		out = append(out, resp.NewArray([]*resp.Value{
			resp.NewBulkString(string(k)),
			entriesArray(entries),
		}))
	}
	if len(out) == 0 {
		return resp.NewNullArray(), nil
	}
	return resp.NewArray(out), nil
}

func hXGroupCreate(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	mkstream := false
	for _, a := range args[3:] {
		if strings.EqualFold(string(a), "MKSTREAM") {
			mkstream = true
		}
	}
	var start store.StreamID
	if string(args[2]) == "$" {
		db := c.DB()
		if v, ok := db.Get(string(args[0])); ok && v.Kind == store.KindStream {
			start = v.Stream.LastID
		}
	} else {
		s, err := parseStreamID(args[2], 0)
		if err != nil {
			return toError(err), nil
		}
		start = s
	}

	create := store.NewStream
	if !mkstream {
		if _, ok := c.DB().Get(string(args[0])); !ok {
			return toError(store.ErrWrongType), nil
		}
	}
	err := c.DB().Mutate(string(args[0]), store.KindStream, create, func(v *store.Value) error {
		return v.XGroupCreate(string(args[1]), start, mkstream)
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.OK(), nil
}

func hXGroupSetID(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	var id store.StreamID
	if string(args[2]) == "$" {
		if v, ok := c.DB().Get(string(args[0])); ok && v.Kind == store.KindStream {
			id = v.Stream.LastID
		}
	} else {
		s, err := parseStreamID(args[2], 0)
		if err != nil {
			return toError(err), nil
		}
		id = s
	}
	err := c.DB().Mutate(string(args[0]), store.KindStream, store.NewStream, func(v *store.Value) error {
		return v.XGroupSetID(string(args[1]), id)
	})
	if err != nil {
		return toError(err), nil
	}
	return resp.OK(), nil
}

func hXGroupDestroy(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	var removed bool
	err := c.DB().Mutate(string(args[0]), store.KindStream, store.NewStream, func(v *store.Value) error {
		r, err := v.XGroupDestroy(string(args[1]))
		removed = r
		return err
	})
	if err != nil {
		return toError(err), nil
	}
	if removed {
		return resp.NewInteger(1), nil
	}
	return resp.NewInteger(0), nil
}

func hXClaim(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 5 {
		return nil, ErrWrongArgs
	}
	group, consumer := string(args[1]), string(args[2])
	minIdle, err := parseInt(args[3])
	if err != nil {
		return toError(store.ErrNotAnInteger), nil
	}
	var ids []store.StreamID
	for _, a := range args[4:] {
		id, perr := parseStreamID(a, 0)
		if perr != nil {
			break
		}
		ids = append(ids, id)
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewArray(nil), nil
	}
	if v.Kind != store.KindStream {
		return toError(store.ErrWrongType), nil
	}
	entries, cerr := v.XClaim(group, consumer, ids, minIdle, nowMs())
	if cerr != nil {
		return toError(cerr), nil
	}
	return entriesArray(entries), nil
}

func hXAck(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	ids := make([]store.StreamID, len(args)-2)
	for i, a := range args[2:] {
		id, err := parseStreamID(a, 0)
		if err != nil {
			return toError(err), nil
		}
		ids[i] = id
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return toError(store.ErrNoSuchGroup), nil
	}
	if v.Kind != store.KindStream {
		return toError(store.ErrWrongType), nil
	}
	n, err := v.XAck(string(args[1]), ids)
	if err != nil {
		return toError(err), nil
	}
	return resp.NewInteger(int64(n)), nil
}

func hXReadGroup(c *Context, args [][]byte) (*resp.Value, error) {
	var group, consumer string
	streamsIdx := -1
	count := -1
	for i := 0; i < len(args); i++ {
		switch strings.ToUpper(string(args[i])) {
		case "GROUP":
			if i+2 >= len(args) {
				return nil, ErrWrongArgs
			}
			group = string(args[i+1])
			consumer = string(args[i+2])
			i += 2
		case "COUNT":
			n, err := parseInt(args[i+1])
			if err != nil {
				return toError(store.ErrNotAnInteger), nil
			}
			count = int(n)
			i++
		case "STREAMS":
			streamsIdx = i
		}
	}
	if streamsIdx < 0 || group == "" {
		return toError(store.ErrSyntax), nil
	}
	rest := args[streamsIdx+1:]
	n := len(rest) / 2
	keys := rest[:n]

	db := c.DB()
	out := make([]*resp.Value, 0, n)
	for _, k := range keys {
		var entries []store.StreamEntry
		err := db.Mutate(string(k), store.KindStream, store.NewStream, func(v *store.Value) error {
			e, err := v.XReadGroup(group, consumer, count, nowMs())
			entries = e
			return err
		})
		if err != nil {
			return toError(err), nil
		}
		if len(entries) == 0 {
			continue
		}
		out = append(out, resp.NewArray([]*resp.Value{
			resp.NewBulkString(string(k)),
			entriesArray(entries),
		}))
	}
	if len(out) == 0 {
		return resp.NewNullArray(), nil
	}
	return resp.NewArray(out), nil
}
