// Package resp implements the RESP2/RESP3 wire protocol: decoding client
// requests and encoding typed replies.
//
// The Value type mirrors the teacher's common.Value but generalizes its
// fixed five-variant tag into the full RESP3 reply surface (§4.A of the
// spec): SimpleString, Error, Integer, BulkString, Array, Map, Set,
// Double, Boolean, BigNumber, Verbatim and Push. Construction goes through
// the New* helpers below, matching the teacher's NewStringValue/
// NewBulkValue/NewArrayValue/NewIntegerValue/NewErrorValue constructors.
package resp

import "fmt"

// Kind identifies which RESP reply variant a Value holds.
type Kind int

const (
	KindSimpleString Kind = iota
	KindError
	KindInteger
	KindBulkString
	KindArray
	KindNull // RESP2 "$-1" / "*-1"; RESP3 "_\r\n"
	KindMap
	KindSet
	KindDouble
	KindBoolean
	KindBigNumber
	KindVerbatim
	KindPush
)

// Value is a typed reply. The request decoder does not produce Values: it
// returns a Request holding the arguments as plain byte slices.
type Value struct {
	Kind Kind

	Str string // SimpleString, Verbatim format prefix stashed in VerbatimFmt
	Err string // Error: "CODE message" (NewError prefixes the code; it is also kept in ErrCode)

	ErrCode string // optional structured error code, e.g. "WRONGTYPE"; Err holds the full message

	Int int64 // Integer
	Bln bool  // Boolean

	Dbl float64 // Double

	Bulk    []byte // BulkString payload
	BulkNil bool   // true => null bulk string

	BigNum string // BigNumber, decimal textual representation

	VerbatimFmt string // Verbatim 3-byte format, e.g. "txt"

	Arr    []*Value // Array, Set, Push elements
	ArrNil bool     // true => null array

	Map []MapEntry // Map entries, order preserved
}

// MapEntry is one key/value pair of a RESP3 Map reply.
type MapEntry struct {
	Key *Value
	Val *Value
}

func NewSimpleString(s string) *Value { return &Value{Kind: KindSimpleString, Str: s} }

func NewError(code, msg string) *Value {
	full := msg
	if code != "" {
		full = code + " " + msg
	}
	return &Value{Kind: KindError, Err: full, ErrCode: code}
}

func NewInteger(i int64) *Value { return &Value{Kind: KindInteger, Int: i} }

func NewBulk(b []byte) *Value { return &Value{Kind: KindBulkString, Bulk: b} }

func NewBulkString(s string) *Value { return &Value{Kind: KindBulkString, Bulk: []byte(s)} }

func NewNullBulk() *Value { return &Value{Kind: KindBulkString, BulkNil: true} }

func NewArray(items []*Value) *Value { return &Value{Kind: KindArray, Arr: items} }

func NewNullArray() *Value { return &Value{Kind: KindArray, ArrNil: true} }

func NewNull() *Value { return &Value{Kind: KindNull} }

func NewMap(entries []MapEntry) *Value { return &Value{Kind: KindMap, Map: entries} }

func NewSet(items []*Value) *Value { return &Value{Kind: KindSet, Arr: items} }

func NewDouble(f float64) *Value { return &Value{Kind: KindDouble, Dbl: f} }

func NewBoolean(b bool) *Value { return &Value{Kind: KindBoolean, Bln: b} }

func NewBigNumber(decimal string) *Value { return &Value{Kind: KindBigNumber, BigNum: decimal} }

func NewVerbatim(format, text string) *Value {
	return &Value{Kind: KindVerbatim, VerbatimFmt: format, Str: text}
}

func NewPush(items []*Value) *Value { return &Value{Kind: KindPush, Arr: items} }

// OK is the canonical "+OK\r\n" reply.
func OK() *Value { return NewSimpleString("OK") }

// AsString returns the textual content of a request element (bulk or
// simple string), used by handlers that bind argument bytes as strings.
func (v *Value) AsString() string {
	switch v.Kind {
	case KindBulkString:
		return string(v.Bulk)
	case KindSimpleString:
		return v.Str
	default:
		return fmt.Sprintf("%v", v)
	}
}
