package store

import "errors"

// Typed value-model errors (§7). The executor/handlers translate these
// into RESP error replies with the matching code.
var (
	ErrWrongType    = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrNotAnInteger = errors.New("ERR value is not an integer or out of range")
	ErrNotAFloat    = errors.New("ERR value is not a valid float")
	ErrOutOfRange   = errors.New("ERR index out of range")
	ErrSyntax       = errors.New("ERR syntax error")
	ErrNoSuchKey    = errors.New("ERR no such key")
)
