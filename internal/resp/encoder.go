package resp

import (
	"bufio"
	"math"
	"strconv"
)

// Encoder serializes Value replies as RESP2 or RESP3 bytes onto a
// buffered writer. One Encoder is created per session and carries the
// negotiated protocol version (set by HELLO).
type Encoder struct {
	w    *bufio.Writer
	resp3 bool
}

func NewEncoder(w *bufio.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetRESP3 switches the encoder's downgrade behavior for RESP3-only
// variants (Map/Set/Double/Boolean/BigNumber/Verbatim/Push), per §4.A.
func (e *Encoder) SetRESP3(on bool) { e.resp3 = on }

func (e *Encoder) RESP3() bool { return e.resp3 }

func (e *Encoder) Flush() error { return e.w.Flush() }

// Encode writes v to the underlying writer without flushing.
func (e *Encoder) Encode(v *Value) error {
	switch v.Kind {
	case KindSimpleString:
		return e.writeLine('+', v.Str)
	case KindError:
		return e.writeLine('-', v.Err)
	case KindInteger:
		return e.writeLine(':', strconv.FormatInt(v.Int, 10))
	case KindBulkString:
		return e.encodeBulk(v)
	case KindNull:
		if e.resp3 {
			_, err := e.w.WriteString("_\r\n")
			return err
		}
		_, err := e.w.WriteString("$-1\r\n")
		return err
	case KindArray:
		return e.encodeArray(v)
	case KindMap:
		return e.encodeMap(v)
	case KindSet:
		return e.encodeSet(v)
	case KindDouble:
		return e.encodeDouble(v)
	case KindBoolean:
		return e.encodeBoolean(v)
	case KindBigNumber:
		return e.encodeBigNumber(v)
	case KindVerbatim:
		return e.encodeVerbatim(v)
	case KindPush:
		return e.encodePush(v)
	default:
		return newProtoErr("unknown reply kind %d", v.Kind)
	}
}

func (e *Encoder) writeLine(prefix byte, s string) error {
	if err := e.w.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.w.WriteString(s); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

func (e *Encoder) encodeBulk(v *Value) error {
	if v.BulkNil {
		if e.resp3 {
			_, err := e.w.WriteString("_\r\n")
			return err
		}
		_, err := e.w.WriteString("$-1\r\n")
		return err
	}
	if _, err := e.w.WriteString("$" + strconv.Itoa(len(v.Bulk)) + "\r\n"); err != nil {
		return err
	}
	if _, err := e.w.Write(v.Bulk); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

func (e *Encoder) encodeArray(v *Value) error {
	if v.ArrNil {
		if e.resp3 {
			_, err := e.w.WriteString("_\r\n")
			return err
		}
		_, err := e.w.WriteString("*-1\r\n")
		return err
	}
	if _, err := e.w.WriteString("*" + strconv.Itoa(len(v.Arr)) + "\r\n"); err != nil {
		return err
	}
	for _, el := range v.Arr {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap writes a RESP3 "%" map, or downgrades to a flat RESP2 array
// of alternating key/value (§4.A).
func (e *Encoder) encodeMap(v *Value) error {
	if !e.resp3 {
		flat := make([]*Value, 0, len(v.Map)*2)
		for _, kv := range v.Map {
			flat = append(flat, kv.Key, kv.Val)
		}
		return e.encodeArray(&Value{Kind: KindArray, Arr: flat})
	}
	if _, err := e.w.WriteString("%" + strconv.Itoa(len(v.Map)) + "\r\n"); err != nil {
		return err
	}
	for _, kv := range v.Map {
		if err := e.Encode(kv.Key); err != nil {
			return err
		}
		if err := e.Encode(kv.Val); err != nil {
			return err
		}
	}
	return nil
}

// encodeSet writes a RESP3 "~" set, or downgrades to a RESP2 array.
func (e *Encoder) encodeSet(v *Value) error {
	if !e.resp3 {
		return e.encodeArray(&Value{Kind: KindArray, Arr: v.Arr, ArrNil: v.ArrNil})
	}
	if v.ArrNil {
		_, err := e.w.WriteString("_\r\n")
		return err
	}
	if _, err := e.w.WriteString("~" + strconv.Itoa(len(v.Arr)) + "\r\n"); err != nil {
		return err
	}
	for _, el := range v.Arr {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	return nil
}

// encodeDouble writes a RESP3 "," double, or downgrades to a RESP2 bulk
// decimal string (§4.A).
func (e *Encoder) encodeDouble(v *Value) error {
	s := formatDouble(v.Dbl)
	if !e.resp3 {
		return e.encodeBulk(&Value{Kind: KindBulkString, Bulk: []byte(s)})
	}
	return e.writeLine(',', s)
}

func formatDouble(f float64) string {
	switch {
	case f != f: // NaN
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// encodeBoolean writes a RESP3 "#" boolean, or downgrades to Integer 0/1.
func (e *Encoder) encodeBoolean(v *Value) error {
	if !e.resp3 {
		n := int64(0)
		if v.Bln {
			n = 1
		}
		return e.writeLine(':', strconv.FormatInt(n, 10))
	}
	c := "f"
	if v.Bln {
		c = "t"
	}
	_, err := e.w.WriteString("#" + c + "\r\n")
	return err
}

func (e *Encoder) encodeBigNumber(v *Value) error {
	if !e.resp3 {
		return e.encodeBulk(&Value{Kind: KindBulkString, Bulk: []byte(v.BigNum)})
	}
	return e.writeLine('(', v.BigNum)
}

func (e *Encoder) encodeVerbatim(v *Value) error {
	if !e.resp3 {
		return e.encodeBulk(&Value{Kind: KindBulkString, Bulk: []byte(v.Str)})
	}
	payload := v.VerbatimFmt + ":" + v.Str
	if _, err := e.w.WriteString("=" + strconv.Itoa(len(payload)) + "\r\n"); err != nil {
		return err
	}
	if _, err := e.w.WriteString(payload); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

// encodePush writes a RESP3 ">" out-of-band push, or downgrades to a
// plain RESP2 array (pub/sub messages look like ordinary arrays there).
func (e *Encoder) encodePush(v *Value) error {
	if !e.resp3 {
		return e.encodeArray(&Value{Kind: KindArray, Arr: v.Arr})
	}
	if _, err := e.w.WriteString(">" + strconv.Itoa(len(v.Arr)) + "\r\n"); err != nil {
		return err
	}
	for _, el := range v.Arr {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	return nil
}
