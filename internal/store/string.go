package store

import (
	"strconv"
)

// GetRange returns the byte slice [start,end] inclusive, with Redis's
// negative-index-from-tail semantics, clamped to the string's bounds.
func (v *Value) GetRange(start, end int) ([]byte, error) {
	if err := typeCheck(v, KindString); err != nil {
		return nil, err
	}
	n := len(v.Bytes)
	start = clampIndex(start, n)
	end = clampIndex(end, n)
	if start > end || n == 0 {
		return []byte{}, nil
	}
	if end >= n {
		end = n - 1
	}
	return append([]byte{}, v.Bytes[start:end+1]...), nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		i = n + i
		if i < 0 {
			i = 0
		}
	}
	return i
}

// SetRange overwrites v's bytes starting at offset with value, zero
// padding any gap, and returns the new total length (§4.B).
func (v *Value) SetRange(offset int, value []byte) (int, error) {
	if err := typeCheck(v, KindString); err != nil {
		return 0, err
	}
	end := offset + len(value)
	if end > len(v.Bytes) {
		grown := make([]byte, end)
		copy(grown, v.Bytes)
		v.Bytes = grown
	}
	copy(v.Bytes[offset:], value)
	return len(v.Bytes), nil
}

// Append appends value to v's bytes and returns the new total length.
func (v *Value) Append(value []byte) (int, error) {
	if err := typeCheck(v, KindString); err != nil {
		return 0, err
	}
	v.Bytes = append(v.Bytes, value...)
	return len(v.Bytes), nil
}

// Int parses the string payload as a base-10 int64 (§4.B's "integer view").
func (v *Value) Int() (int64, error) {
	if err := typeCheck(v, KindString); err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(v.Bytes), 10, 64)
	if err != nil {
		return 0, ErrNotAnInteger
	}
	return n, nil
}

func (v *Value) Float() (float64, error) {
	if err := typeCheck(v, KindString); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(string(v.Bytes), 64)
	if err != nil {
		return 0, ErrNotAFloat
	}
	return f, nil
}

// IncrBy atomically increments the integer view by delta and rewrites
// Bytes to the decimal result.
func (v *Value) IncrBy(delta int64) (int64, error) {
	cur, err := v.intOrZero()
	if err != nil {
		return 0, err
	}
	next := cur + delta
	v.Bytes = []byte(strconv.FormatInt(next, 10))
	return next, nil
}

// IncrByFloat atomically increments the float view by delta.
func (v *Value) IncrByFloat(delta float64) (float64, error) {
	cur, err := v.floatOrZero()
	if err != nil {
		return 0, err
	}
	next := cur + delta
	v.Bytes = []byte(strconv.FormatFloat(next, 'f', -1, 64))
	return next, nil
}

func (v *Value) intOrZero() (int64, error) {
	if len(v.Bytes) == 0 {
		return 0, nil
	}
	return v.Int()
}

func (v *Value) floatOrZero() (float64, error) {
	if len(v.Bytes) == 0 {
		return 0, nil
	}
	return v.Float()
}

