package handlers

import (
	"errors"
	"strconv"

	"github.com/vkeydb/vkeydb/internal/resp"
	"github.com/vkeydb/vkeydb/internal/store"
)

// ErrWrongArgs is returned by handlers that find a fixed-shape argument
// list doesn't parse, mirroring Redis's "wrong number of arguments".
var ErrWrongArgs = errors.New("wrong number of arguments")

// errNoSuchKey is RENAME's "no such key" error when the source is absent.
var errNoSuchKey = errors.New("no such key")

// toError converts a Go error from the store/database layer into the
// RESP error reply it should produce, so handler bodies can just
// propagate errors and let the executor do the formatting.
func toError(err error) *resp.Value {
	switch {
	case errors.Is(err, store.ErrWrongType):
		return resp.NewError("WRONGTYPE", "Operation against a key holding the wrong kind of value")
	case errors.Is(err, store.ErrNotAnInteger):
		return resp.NewError("ERR", "value is not an integer or out of range")
	case errors.Is(err, store.ErrNotAFloat):
		return resp.NewError("ERR", "value is not a valid float")
	case errors.Is(err, store.ErrSyntax):
		return resp.NewError("ERR", "syntax error")
	case errors.Is(err, store.ErrOutOfRange):
		return resp.NewError("ERR", "index out of range")
	default:
		return resp.NewError("ERR", err.Error())
	}
}

func parseInt(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

func parseFloat(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}

func bytesSlice(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

func arrayOfBulk(items [][]byte) *resp.Value {
	vals := make([]*resp.Value, len(items))
	for i, it := range items {
		if it == nil {
			vals[i] = resp.NewNullBulk()
		} else {
			vals[i] = resp.NewBulk(it)
		}
	}
	return resp.NewArray(vals)
}
