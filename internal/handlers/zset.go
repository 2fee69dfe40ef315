// Grounded on the teacher's handler_zset.go (ZADD/ZRANGE/ZSCORE over
// common.Item.ZSet), generalized onto store.SortedSet's ordered-member
// operator set (§4.B).
package handlers

import (
	"math"
	"strings"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

func hZAdd(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	flags := store.AddFlags{}
	i := 1
	for i < len(args) {
		switch strings.ToUpper(string(args[i])) {
		case "NX":
			flags.NX = true
		case "XX":
			flags.XX = true
		case "GT":
			flags.GT = true
		case "LT":
			flags.LT = true
		case "CH":
			flags.CH = true
		case "INCR":
			flags.INCR = true
		default:
			goto pairs
		}
		i++
	}
pairs:
	rest := args[i:]
	if len(rest) == 0 || len(rest)%2 != 0 {
		return nil, ErrWrongArgs
	}
	if flags.NX && (flags.GT || flags.LT) {
		return toError(store.ErrSyntax), nil
	}

	added, changed := 0, 0
	var lastScore float64
	err := c.DB().Mutate(string(args[0]), store.KindZSet, store.NewZSet, func(v *store.Value) error {
		for j := 0; j < len(rest); j += 2 {
			score, perr := parseFloat(rest[j])
			if perr != nil {
				return store.ErrNotAFloat
			}
			newScore, wasAdded, wasChanged, err := v.ZSet.Add(string(rest[j+1]), score, flags)
			if err != nil {
				return err
			}
			lastScore = newScore
			if wasAdded {
				added++
			}
			if wasChanged {
				changed++
			}
		}
		return nil
	})
	if err != nil {
		return toError(err), nil
	}
	if flags.INCR {
		if added == 0 && changed == 0 {
			return resp.NewNullBulk(), nil
		}
		return resp.NewBulkString(formatFloat(lastScore)), nil
	}
	if flags.CH {
		return resp.NewInteger(int64(changed)), nil
	}
	return resp.NewInteger(int64(added)), nil
}

func hZRem(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 2 {
		return nil, ErrWrongArgs
	}
	db := c.DB()
	key := string(args[0])
	v, ok := db.Get(key)
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindZSet {
		return toError(store.ErrWrongType), nil
	}
	n := v.ZSet.Rem(bytesSlice(args[1:])...)
	if v.ZSet.Len() == 0 {
		db.Delete(key)
	} else {
		db.NotifyMutation(key)
	}
	return resp.NewInteger(int64(n)), nil
}

func hZScore(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 2 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewNullBulk(), nil
	}
	if v.Kind != store.KindZSet {
		return toError(store.ErrWrongType), nil
	}
	score, found := v.ZSet.Score(string(args[1]))
	if !found {
		return resp.NewNullBulk(), nil
	}
	return resp.NewBulkString(formatFloat(score)), nil
}

func hZCard(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	v, ok := c.DB().Get(string(args[0]))
	if !ok {
		return resp.NewInteger(0), nil
	}
	if v.Kind != store.KindZSet {
		return toError(store.ErrWrongType), nil
	}
	return resp.NewInteger(int64(v.ZSet.Len())), nil
}

func hZRank(rev bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) != 2 {
			return nil, ErrWrongArgs
		}
		v, ok := c.DB().Get(string(args[0]))
		if !ok {
			return resp.NewNullBulk(), nil
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		rank, found := v.ZSet.Rank(string(args[1]), rev)
		if !found {
			return resp.NewNullBulk(), nil
		}
		return resp.NewInteger(int64(rank)), nil
	}
}

func hZRange(rev bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 3 {
			return nil, ErrWrongArgs
		}
		start, err1 := parseInt(args[1])
		end, err2 := parseInt(args[2])
		if err1 != nil || err2 != nil {
			return toError(store.ErrNotAnInteger), nil
		}
		withScores := false
		for _, a := range args[3:] {
			if strings.EqualFold(string(a), "WITHSCORES") {
				withScores = true
			}
		}
		v, ok := c.DB().Get(string(args[0]))
		if !ok {
			return resp.NewArray(nil), nil
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		members := v.ZSet.RangeByRank(int(start), int(end), rev)
		return membersArray(members, withScores), nil
	}
}

func hZRangeByScore(rev bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 3 {
			return nil, ErrWrongArgs
		}
		minArg, maxArg := args[1], args[2]
		if rev {
			minArg, maxArg = args[2], args[1]
		}
		r, err := parseScoreRange(minArg, maxArg)
		if err != nil {
			return toError(err), nil
		}
		withScores := false
		offset, count := 0, -1
		for i := 3; i < len(args); i++ {
			switch strings.ToUpper(string(args[i])) {
			case "WITHSCORES":
				withScores = true
			case "LIMIT":
				if i+2 >= len(args) {
					return toError(store.ErrSyntax), nil
				}
				o, e1 := parseInt(args[i+1])
				n, e2 := parseInt(args[i+2])
				if e1 != nil || e2 != nil {
					return toError(store.ErrNotAnInteger), nil
				}
				offset, count = int(o), int(n)
				i += 2
			default:
				return toError(store.ErrSyntax), nil
			}
		}
		v, ok := c.DB().Get(string(args[0]))
		if !ok {
			return resp.NewArray(nil), nil
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		members := v.ZSet.RangeByScore(r, rev, offset, count)
		return membersArray(members, withScores), nil
	}
}

func parseScoreRange(minArg, maxArg []byte) (store.ScoreRange, error) {
	r := store.ScoreRange{}
	var err error
	r.Min, r.MinExcl, err = parseBound(minArg, math.Inf(-1))
	if err != nil {
		return r, err
	}
	r.Max, r.MaxExcl, err = parseBound(maxArg, math.Inf(1))
	if err != nil {
		return r, err
	}
	return r, nil
}

func parseBound(b []byte, infDefault float64) (float64, bool, error) {
	s := string(b)
	switch s {
	case "-inf":
		return math.Inf(-1), false, nil
	case "+inf", "inf":
		return math.Inf(1), false, nil
	}
	excl := false
	if strings.HasPrefix(s, "(") {
		excl = true
		s = s[1:]
	}
	f, err := parseFloat([]byte(s))
	if err != nil {
		return infDefault, false, store.ErrNotAFloat
	}
	return f, excl, nil
}

func hZRangeByLex(rev bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 3 {
			return nil, ErrWrongArgs
		}
		minArg, maxArg := args[1], args[2]
		if rev {
			minArg, maxArg = args[2], args[1]
		}
		r, err := parseLexRange(minArg, maxArg)
		if err != nil {
			return toError(err), nil
		}
		offset, count := 0, -1
		for i := 3; i < len(args); i++ {
			switch strings.ToUpper(string(args[i])) {
			case "LIMIT":
				if i+2 >= len(args) {
					return toError(store.ErrSyntax), nil
				}
				o, e1 := parseInt(args[i+1])
				n, e2 := parseInt(args[i+2])
				if e1 != nil || e2 != nil {
					return toError(store.ErrNotAnInteger), nil
				}
				offset, count = int(o), int(n)
				i += 2
			default:
				return toError(store.ErrSyntax), nil
			}
		}
		v, ok := c.DB().Get(string(args[0]))
		if !ok {
			return resp.NewArray(nil), nil
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		members := v.ZSet.RangeByLex(r, rev, offset, count)
		return membersArray(members, false), nil
	}
}

func parseLexRange(minArg, maxArg []byte) (store.LexRange, error) {
	r := store.LexRange{}
	var err error
	r.Min, r.MinExcl, r.MinInf, err = parseLexBound(minArg)
	if err != nil {
		return r, err
	}
	r.Max, r.MaxExcl, r.MaxInf, err = parseLexBound(maxArg)
	if err != nil {
		return r, err
	}
	return r, nil
}

// parseLexBound parses one ZRANGEBYLEX endpoint: "-"/"+" for unbounded,
// "[value" inclusive, or "(value" exclusive.
func parseLexBound(b []byte) (string, bool, int8, error) {
	s := string(b)
	switch s {
	case "-":
		return "", false, -1, nil
	case "+":
		return "", false, 1, nil
	}
	if len(s) == 0 {
		return "", false, 0, store.ErrSyntax
	}
	switch s[0] {
	case '[':
		return s[1:], false, 0, nil
	case '(':
		return s[1:], true, 0, nil
	default:
		return "", false, 0, store.ErrSyntax
	}
}

func hZIncrBy(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 3 {
		return nil, ErrWrongArgs
	}
	delta, err := parseFloat(args[1])
	if err != nil {
		return toError(store.ErrNotAFloat), nil
	}
	var newScore float64
	mutErr := c.DB().Mutate(string(args[0]), store.KindZSet, store.NewZSet, func(v *store.Value) error {
		s, _, _, err := v.ZSet.Add(string(args[2]), delta, store.AddFlags{INCR: true})
		newScore = s
		return err
	})
	if mutErr != nil {
		return toError(mutErr), nil
	}
	return resp.NewBulkString(formatFloat(newScore)), nil
}

func hZPop(fromMax bool) Handler {
	return func(c *Context, args [][]byte) (*resp.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, ErrWrongArgs
		}
		count := 1
		if len(args) == 2 {
			n, err := parseInt(args[1])
			if err != nil {
				return toError(store.ErrNotAnInteger), nil
			}
			count = int(n)
		}
		db := c.DB()
		key := string(args[0])
		v, ok := db.Get(key)
		if !ok {
			return resp.NewArray(nil), nil
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		var popped []store.Member
		if fromMax {
			popped = v.ZSet.PopMax(count)
		} else {
			popped = v.ZSet.PopMin(count)
		}
		if v.ZSet.Len() == 0 {
			db.Delete(key)
		} else {
			db.NotifyMutation(key)
		}
		return membersArray(popped, true), nil
	}
}

func membersArray(members []store.Member, withScores bool) *resp.Value {
	out := make([]*resp.Value, 0, len(members)*2)
	for _, m := range members {
		out = append(out, resp.NewBulkString(m.Name))
		if withScores {
			out = append(out, resp.NewBulkString(formatFloat(m.Score)))
		}
	}
	return resp.NewArray(out)
}

func hZUnionStore(c *Context, args [][]byte) (*resp.Value, error) {
	return zSetOpStore(c, args, store.Union)
}

func hZInterStore(c *Context, args [][]byte) (*resp.Value, error) {
	return zSetOpStore(c, args, store.Inter)
}

func zSetOpStore(c *Context, args [][]byte, op func([]*store.SortedSet, []float64, store.Aggregate) *store.SortedSet) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	destKey := string(args[0])
	numKeys, err := parseInt(args[1])
	if err != nil || int(numKeys) < 1 || 2+int(numKeys) > len(args) {
		return toError(store.ErrSyntax), nil
	}
	n := int(numKeys)
	keys := args[2 : 2+n]
	rest := args[2+n:]

	weights := make([]float64, 0, n)
	agg := store.AggSum
	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(string(rest[i])) {
		case "WEIGHTS":
			for j := 0; j < n && i+1 < len(rest); j++ {
				i++
				w, err := parseFloat(rest[i])
				if err != nil {
					return toError(store.ErrNotAFloat), nil
				}
				weights = append(weights, w)
			}
		case "AGGREGATE":
			if i+1 >= len(rest) {
				return toError(store.ErrSyntax), nil
			}
			i++
			switch strings.ToUpper(string(rest[i])) {
			case "SUM":
				agg = store.AggSum
			case "MIN":
				agg = store.AggMin
			case "MAX":
				agg = store.AggMax
			default:
				return toError(store.ErrSyntax), nil
			}
		default:
			return toError(store.ErrSyntax), nil
		}
	}

	db := c.DB()
	sets := make([]*store.SortedSet, n)
	for i, k := range keys {
		v, ok := db.Get(string(k))
		if !ok {
			sets[i] = store.NewZSet().ZSet
			continue
		}
		if v.Kind != store.KindZSet {
			return toError(store.ErrWrongType), nil
		}
		sets[i] = v.ZSet
	}

	result := op(sets, weights, agg)
	if result.Len() == 0 {
		db.Delete(destKey)
	} else {
		db.Set(destKey, result.ToValue(), false)
	}
	return resp.NewInteger(int64(result.Len())), nil
}
