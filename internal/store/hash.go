package store

import "strconv"

// HSet sets field to value, returning true if the field was newly created.
func (v *Value) HSet(field string, value []byte) (bool, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return false, err
	}
	_, existed := v.Hash[field]
	if !existed {
		v.HOrder = append(v.HOrder, field)
	}
	v.Hash[field] = value
	return !existed, nil
}

func (v *Value) HGet(field string) ([]byte, bool, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return nil, false, err
	}
	val, ok := v.Hash[field]
	return val, ok, nil
}

func (v *Value) HDel(fields ...string) (int, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range fields {
		if _, ok := v.Hash[f]; ok {
			delete(v.Hash, f)
			removed++
			for i, o := range v.HOrder {
				if o == f {
					v.HOrder = append(v.HOrder[:i], v.HOrder[i+1:]...)
					break
				}
			}
		}
	}
	return removed, nil
}

func (v *Value) HExists(field string) (bool, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return false, err
	}
	_, ok := v.Hash[field]
	return ok, nil
}

// HIncrBy atomically increments field's integer view by delta, creating
// the field at 0 if absent.
func (v *Value) HIncrBy(field string, delta int64) (int64, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return 0, err
	}
	cur := int64(0)
	if raw, ok := v.Hash[field]; ok {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, ErrNotAnInteger
		}
		cur = n
	}
	next := cur + delta
	if _, existed := v.Hash[field]; !existed {
		v.HOrder = append(v.HOrder, field)
	}
	v.Hash[field] = []byte(strconv.FormatInt(next, 10))
	return next, nil
}

func (v *Value) HIncrByFloat(field string, delta float64) (float64, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return 0, err
	}
	cur := 0.0
	if raw, ok := v.Hash[field]; ok {
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0, ErrNotAFloat
		}
		cur = f
	}
	next := cur + delta
	if _, existed := v.Hash[field]; !existed {
		v.HOrder = append(v.HOrder, field)
	}
	v.Hash[field] = []byte(strconv.FormatFloat(next, 'f', -1, 64))
	return next, nil
}

// HKeys/HVals/HGetAll iterate in insertion order (HSCAN's order is only a
// non-guaranteed hint per §4.B, but for the common single-shot commands
// we return insertion order, matching the teacher's map iteration intent
// generalized to be deterministic).
func (v *Value) HKeys() ([]string, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return nil, err
	}
	out := make([]string, len(v.HOrder))
	copy(out, v.HOrder)
	return out, nil
}

func (v *Value) HVals() ([][]byte, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(v.HOrder))
	for _, f := range v.HOrder {
		out = append(out, v.Hash[f])
	}
	return out, nil
}

type HashEntry struct {
	Field string
	Value []byte
}

func (v *Value) HGetAll() ([]HashEntry, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return nil, err
	}
	out := make([]HashEntry, 0, len(v.HOrder))
	for _, f := range v.HOrder {
		out = append(out, HashEntry{Field: f, Value: v.Hash[f]})
	}
	return out, nil
}

// HRandField returns up to n distinct field names (or all, if n<=0 means
// "just one" at the caller's discretion — the handler layer maps the
// HRANDFIELD count semantics onto this).
func (v *Value) HRandField(n int, withValues bool, rnd func(int) int) ([]HashEntry, error) {
	if err := typeCheck(v, KindHash); err != nil {
		return nil, err
	}
	if len(v.HOrder) == 0 {
		return nil, nil
	}
	if n <= 0 {
		idx := rnd(len(v.HOrder))
		f := v.HOrder[idx]
		return []HashEntry{{Field: f, Value: v.Hash[f]}}, nil
	}
	if n >= len(v.HOrder) {
		return v.HGetAll()
	}
	perm := make([]int, len(v.HOrder))
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rnd(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	out := make([]HashEntry, 0, n)
	for _, idx := range perm[:n] {
		f := v.HOrder[idx]
		out = append(out, HashEntry{Field: f, Value: v.Hash[f]})
	}
	_ = withValues
	return out, nil
}
