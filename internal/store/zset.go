package store

import (
	"math"
	"sort"
)

// SortedSet keeps members unique, each with a double score, totally
// ordered by (score asc, member lex asc) per §3/§4.B. It's implemented as
// a map for O(1) score lookup plus a slice kept sorted on mutation —
// simpler than a skip list and adequate at the sizes this in-memory store
// targets; every mutating op is O(n) or O(n log n), and Rank and the
// range queries walk the sorted slice, O(n).
type SortedSet struct {
	scores  map[string]float64
	members []string // kept sorted by (score, member)
}

func newSortedSet() *SortedSet {
	return &SortedSet{scores: map[string]float64{}}
}

func (z *SortedSet) Len() int { return len(z.members) }

func (z *SortedSet) Score(member string) (float64, bool) {
	s, ok := z.scores[member]
	return s, ok
}

func (z *SortedSet) less(a, b string) bool {
	sa, sb := z.scores[a], z.scores[b]
	if sa != sb {
		return sa < sb
	}
	return a < b
}

func (z *SortedSet) insertSorted(member string) {
	i := sort.Search(len(z.members), func(i int) bool { return z.less(member, z.members[i]) || z.members[i] == member })
	z.members = append(z.members, "")
	copy(z.members[i+1:], z.members[i:])
	z.members[i] = member
}

func (z *SortedSet) removeSorted(member string) {
	for i, m := range z.members {
		if m == member {
			z.members = append(z.members[:i], z.members[i+1:]...)
			return
		}
	}
}

// AddFlags mirrors ZADD's NX/XX/GT/LT/CH/INCR option set (§4.B).
type AddFlags struct {
	NX, XX, GT, LT, CH, INCR bool
}

// Add applies ZADD semantics for one member/score pair. Returns the
// resulting score (meaningful for INCR) and whether the member was newly
// added (for the non-CH reply count) or changed (for CH).
func (z *SortedSet) Add(member string, score float64, flags AddFlags) (newScore float64, added bool, changed bool, err error) {
	old, existed := z.scores[member]

	if flags.NX && existed {
		return old, false, false, nil
	}
	if flags.XX && !existed {
		return 0, false, false, nil
	}

	target := score
	if flags.INCR {
		target = old + score
	}
	if existed {
		if flags.GT && target <= old {
			return old, false, false, nil
		}
		if flags.LT && target >= old {
			return old, false, false, nil
		}
	}

	if existed {
		if target != old {
			z.removeSorted(member)
			z.scores[member] = target
			z.insertSorted(member)
			changed = true
		}
	} else {
		z.scores[member] = target
		z.insertSorted(member)
		added = true
		changed = true
	}
	return target, added, changed, nil
}

func (z *SortedSet) Rem(members ...string) int {
	removed := 0
	for _, m := range members {
		if _, ok := z.scores[m]; ok {
			delete(z.scores, m)
			z.removeSorted(m)
			removed++
		}
	}
	return removed
}

// Rank returns the 0-based rank of member, ascending or (if rev) descending.
func (z *SortedSet) Rank(member string, rev bool) (int, bool) {
	for i, m := range z.members {
		if m == member {
			if rev {
				return len(z.members) - 1 - i, true
			}
			return i, true
		}
	}
	return 0, false
}

type Member struct {
	Name  string
	Score float64
}

// RangeByRank returns members in [start,end] inclusive (negative = from
// tail), in ascending or descending order.
func (z *SortedSet) RangeByRank(start, end int, rev bool) []Member {
	n := len(z.members)
	start = clampIndex(start, n)
	end = clampIndex(end, n)
	if end >= n {
		end = n - 1
	}
	if start > end || n == 0 {
		return nil
	}
	out := make([]Member, 0, end-start+1)
	if rev {
		for i := n - 1 - start; i >= n-1-end; i-- {
			m := z.members[i]
			out = append(out, Member{Name: m, Score: z.scores[m]})
		}
	} else {
		for i := start; i <= end; i++ {
			m := z.members[i]
			out = append(out, Member{Name: m, Score: z.scores[m]})
		}
	}
	return out
}

// ScoreRange bounds a by-score query; Inf fields support +inf/-inf.
type ScoreRange struct {
	Min, Max         float64
	MinExcl, MaxExcl bool
}

func (r ScoreRange) contains(s float64) bool {
	if r.MinExcl {
		if s <= r.Min {
			return false
		}
	} else if s < r.Min {
		return false
	}
	if r.MaxExcl {
		if s >= r.Max {
			return false
		}
	} else if s > r.Max {
		return false
	}
	return true
}

// RangeByScore returns members with score in r, ascending or descending,
// with an optional LIMIT offset/count (count<0 means unlimited).
func (z *SortedSet) RangeByScore(r ScoreRange, rev bool, offset, count int) []Member {
	var ordered []string
	if rev {
		ordered = reversed(z.members)
	} else {
		ordered = z.members
	}
	out := []Member{}
	skipped := 0
	for _, m := range ordered {
		s := z.scores[m]
		if !r.contains(s) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, Member{Name: m, Score: s})
		if count >= 0 && len(out) >= count {
			break
		}
	}
	return out
}

// LexRange bounds a by-lex query over members that all share a score
// (caller's responsibility per ZRANGEBYLEX semantics).
type LexRange struct {
	Min, Max         string // "-" / "+" sentinels handled by caller as ""/ not set
	MinInf, MaxInf   int8   // -1 = -inf(-), 0 = bounded, +1 = +inf(+)
	MinExcl, MaxExcl bool
}

func (r LexRange) contains(m string) bool {
	if r.MinInf == 0 {
		if r.MinExcl {
			if m <= r.Min {
				return false
			}
		} else if m < r.Min {
			return false
		}
	} else if r.MinInf > 0 {
		return false
	}
	if r.MaxInf == 0 {
		if r.MaxExcl {
			if m >= r.Max {
				return false
			}
		} else if m > r.Max {
			return false
		}
	} else if r.MaxInf < 0 {
		return false
	}
	return true
}

func (z *SortedSet) RangeByLex(r LexRange, rev bool, offset, count int) []Member {
	var ordered []string
	if rev {
		ordered = reversed(z.members)
	} else {
		ordered = z.members
	}
	out := []Member{}
	skipped := 0
	for _, m := range ordered {
		if !r.contains(m) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, Member{Name: m, Score: z.scores[m]})
		if count >= 0 && len(out) >= count {
			break
		}
	}
	return out
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// PopMin/PopMax remove and return up to count members from either end.
func (z *SortedSet) PopMin(count int) []Member {
	return z.pop(count, false)
}

func (z *SortedSet) PopMax(count int) []Member {
	return z.pop(count, true)
}

func (z *SortedSet) pop(count int, fromMax bool) []Member {
	if count > len(z.members) {
		count = len(z.members)
	}
	out := make([]Member, 0, count)
	for i := 0; i < count; i++ {
		var m string
		if fromMax {
			m = z.members[len(z.members)-1]
		} else {
			m = z.members[0]
		}
		out = append(out, Member{Name: m, Score: z.scores[m]})
		z.Rem(m)
	}
	return out
}

// Aggregate combines scores for ZUNIONSTORE/ZINTERSTORE-style ops.
type Aggregate int

const (
	AggSum Aggregate = iota
	AggMin
	AggMax
)

func aggregate(agg Aggregate, a, b float64) float64 {
	switch agg {
	case AggMin:
		return math.Min(a, b)
	case AggMax:
		return math.Max(a, b)
	default:
		return a + b
	}
}

// Union combines N sorted sets with per-set weights and the given
// aggregation, returning a fresh SortedSet (ZUNIONSTORE semantics, §4.B).
func Union(sets []*SortedSet, weights []float64, agg Aggregate) *SortedSet {
	out := newSortedSet()
	for i, s := range sets {
		w := weight(weights, i)
		for m, sc := range s.scores {
			scaled := sc * w
			if cur, ok := out.scores[m]; ok {
				out.removeSorted(m)
				out.scores[m] = aggregate(agg, cur, scaled)
			} else {
				out.scores[m] = scaled
			}
			out.insertSorted(m)
		}
	}
	return out
}

// Inter intersects N sorted sets with weights/aggregation.
func Inter(sets []*SortedSet, weights []float64, agg Aggregate) *SortedSet {
	out := newSortedSet()
	if len(sets) == 0 {
		return out
	}
	for m, sc := range sets[0].scores {
		acc := sc * weight(weights, 0)
		inAll := true
		for i := 1; i < len(sets); i++ {
			sc2, ok := sets[i].scores[m]
			if !ok {
				inAll = false
				break
			}
			acc = aggregate(agg, acc, sc2*weight(weights, i))
		}
		if inAll {
			out.scores[m] = acc
			out.insertSorted(m)
		}
	}
	return out
}

func weight(weights []float64, i int) float64 {
	if i < len(weights) {
		return weights[i]
	}
	return 1
}

func (z *SortedSet) ToValue() *Value {
	return &Value{Kind: KindZSet, ZSet: z}
}
