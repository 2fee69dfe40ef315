package store

import "bytes"

// PushLeft/PushRight push one or more elements to the head/tail (§4.B).
func (v *Value) PushLeft(elems ...[]byte) (int, error) {
	if err := typeCheck(v, KindList); err != nil {
		return 0, err
	}
	for _, e := range elems {
		v.List = append([][]byte{e}, v.List...)
	}
	return len(v.List), nil
}

func (v *Value) PushRight(elems ...[]byte) (int, error) {
	if err := typeCheck(v, KindList); err != nil {
		return 0, err
	}
	v.List = append(v.List, elems...)
	return len(v.List), nil
}

// PopLeft/PopRight remove and return up to count elements from the head/
// tail. Returns fewer than count if the list runs out.
func (v *Value) PopLeft(count int) ([][]byte, error) {
	if err := typeCheck(v, KindList); err != nil {
		return nil, err
	}
	if count > len(v.List) {
		count = len(v.List)
	}
	out := v.List[:count]
	v.List = v.List[count:]
	return out, nil
}

func (v *Value) PopRight(count int) ([][]byte, error) {
	if err := typeCheck(v, KindList); err != nil {
		return nil, err
	}
	n := len(v.List)
	if count > n {
		count = n
	}
	out := make([][]byte, count)
	for i := 0; i < count; i++ {
		out[i] = v.List[n-1-i]
	}
	v.List = v.List[:n-count]
	return out, nil
}

// Index returns the element at idx, Redis-style (negative = from tail).
func (v *Value) Index(idx int) ([]byte, bool, error) {
	if err := typeCheck(v, KindList); err != nil {
		return nil, false, err
	}
	n := len(v.List)
	if idx < 0 {
		idx = n + idx
	}
	if idx < 0 || idx >= n {
		return nil, false, nil
	}
	return v.List[idx], true, nil
}

// Range returns elements [start,end] inclusive (negative = from tail),
// empty if out of range (§4.B).
func (v *Value) Range(start, end int) ([][]byte, error) {
	if err := typeCheck(v, KindList); err != nil {
		return nil, err
	}
	n := len(v.List)
	start = clampIndex(start, n)
	end = clampIndex(end, n)
	if end >= n {
		end = n - 1
	}
	if start > end || n == 0 {
		return [][]byte{}, nil
	}
	out := make([][]byte, end-start+1)
	copy(out, v.List[start:end+1])
	return out, nil
}

// SetIndex overwrites the element at idx (LSET).
func (v *Value) SetIndex(idx int, elem []byte) error {
	if err := typeCheck(v, KindList); err != nil {
		return err
	}
	n := len(v.List)
	if idx < 0 {
		idx = n + idx
	}
	if idx < 0 || idx >= n {
		return ErrOutOfRange
	}
	v.List[idx] = elem
	return nil
}

// InsertBefore/InsertAfter insert elem relative to the first occurrence
// of pivot. Returns the new length, or -1 if pivot was not found.
func (v *Value) InsertBefore(pivot, elem []byte) (int, error) {
	return v.insert(pivot, elem, 0)
}

func (v *Value) InsertAfter(pivot, elem []byte) (int, error) {
	return v.insert(pivot, elem, 1)
}

func (v *Value) insert(pivot, elem []byte, offset int) (int, error) {
	if err := typeCheck(v, KindList); err != nil {
		return 0, err
	}
	for i, e := range v.List {
		if bytes.Equal(e, pivot) {
			at := i + offset
			v.List = append(v.List[:at], append([][]byte{elem}, v.List[at:]...)...)
			return len(v.List), nil
		}
	}
	return -1, nil
}

// Rem removes elements equal to elem. count>0 removes the first count
// occurrences head-to-tail; count<0 removes |count| occurrences
// tail-to-head; count==0 removes all occurrences (§4.B).
func (v *Value) Rem(count int, elem []byte) (int, error) {
	if err := typeCheck(v, KindList); err != nil {
		return 0, err
	}
	removed := 0
	if count >= 0 {
		limit := count
		if limit == 0 {
			limit = len(v.List)
		}
		out := v.List[:0]
		for _, e := range v.List {
			if removed < limit && bytes.Equal(e, elem) {
				removed++
				continue
			}
			out = append(out, e)
		}
		v.List = out
	} else {
		limit := -count
		out := make([][]byte, 0, len(v.List))
		for i := len(v.List) - 1; i >= 0; i-- {
			e := v.List[i]
			if removed < limit && bytes.Equal(e, elem) {
				removed++
				continue
			}
			out = append([][]byte{e}, out...)
		}
		v.List = out
	}
	return removed, nil
}

// Trim keeps only [start,end] inclusive (negative = from tail), emptying
// the list if the range is invalid.
func (v *Value) Trim(start, end int) error {
	if err := typeCheck(v, KindList); err != nil {
		return err
	}
	kept, err := v.Range(start, end)
	if err != nil {
		return err
	}
	v.List = kept
	return nil
}
