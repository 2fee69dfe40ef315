package store

// Thin type-checked wrappers binding *Value (KindZSet) to *SortedSet, so
// handlers call through Value the same way they do for every other kind.

func (v *Value) ZAdd(member string, score float64, flags AddFlags) (float64, bool, bool, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return 0, false, false, err
	}
	return v.ZSet.Add(member, score, flags)
}

func (v *Value) ZScore(member string) (float64, bool, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return 0, false, err
	}
	s, ok := v.ZSet.Score(member)
	return s, ok, nil
}

func (v *Value) ZRem(members ...string) (int, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return 0, err
	}
	return v.ZSet.Rem(members...), nil
}

func (v *Value) ZRank(member string, rev bool) (int, bool, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return 0, false, err
	}
	r, ok := v.ZSet.Rank(member, rev)
	return r, ok, nil
}

func (v *Value) ZRangeByRank(start, end int, rev bool) ([]Member, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return nil, err
	}
	return v.ZSet.RangeByRank(start, end, rev), nil
}

func (v *Value) ZRangeByScore(r ScoreRange, rev bool, offset, count int) ([]Member, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return nil, err
	}
	return v.ZSet.RangeByScore(r, rev, offset, count), nil
}

func (v *Value) ZRangeByLex(r LexRange, rev bool, offset, count int) ([]Member, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return nil, err
	}
	return v.ZSet.RangeByLex(r, rev, offset, count), nil
}

func (v *Value) ZPopMin(count int) ([]Member, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return nil, err
	}
	return v.ZSet.PopMin(count), nil
}

func (v *Value) ZPopMax(count int) ([]Member, error) {
	if err := typeCheck(v, KindZSet); err != nil {
		return nil, err
	}
	return v.ZSet.PopMax(count), nil
}
