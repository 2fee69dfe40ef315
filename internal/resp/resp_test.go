package resp

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeToBytes(t *testing.T, v *Value, resp3 bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	enc := NewEncoder(w)
	enc.SetRESP3(resp3)
	require.NoError(t, enc.Encode(v))
	require.NoError(t, enc.Flush())
	return buf.Bytes()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Value{
		NewSimpleString("OK"),
		NewError("ERR", "boom"),
		NewInteger(42),
		NewBulkString("hello"),
		NewNullBulk(),
		NewArray([]*Value{NewInteger(1), NewBulkString("two")}),
		NewNullArray(),
	}
	for _, v := range cases {
		raw := encodeToBytes(t, v, false)
		got, err := DecodeReply(bufio.NewReader(bytes.NewReader(raw)))
		require.NoError(t, err)
		assert.Equal(t, v.Kind, got.Kind)
	}
}

func TestEncodeRESP3Variants(t *testing.T) {
	m := NewMap([]MapEntry{{Key: NewBulkString("a"), Val: NewInteger(1)}})
	raw3 := encodeToBytes(t, m, true)
	assert.Equal(t, byte('%'), raw3[0])

	raw2 := encodeToBytes(t, m, false)
	assert.Equal(t, byte('*'), raw2[0])

	b := NewBoolean(true)
	assert.Equal(t, "#t\r\n", string(encodeToBytes(t, b, true)))
	assert.Equal(t, ":1\r\n", string(encodeToBytes(t, b, false)))
}

// chunkedReader drip-feeds bytes one at a time with artificial pauses, to
// exercise the decoder's restartability (testable property #2): the same
// logical stream split at arbitrary boundaries must parse identically to
// feeding it whole.
type chunkedReader struct {
	data []byte
	pos  int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := copy(p[:1], c.data[c.pos:c.pos+1])
	c.pos += n
	return n, nil
}

func TestDecoderRestartableAcrossChunkBoundaries(t *testing.T) {
	raw := []byte("*2\r\n$3\r\nGET\r\n$1\r\nx\r\n*1\r\n$4\r\nPING\r\n")

	whole := NewDecoder(bufio.NewReader(bytes.NewReader(raw)))
	var wholeReqs [][][]byte
	for {
		req, err := whole.ReadRequest()
		if err != nil {
			break
		}
		wholeReqs = append(wholeReqs, req.Args)
	}

	chunked := NewDecoder(bufio.NewReader(&chunkedReader{data: raw}))
	var chunkedReqs [][][]byte
	for {
		req, err := chunked.ReadRequest()
		if err != nil {
			break
		}
		chunkedReqs = append(chunkedReqs, req.Args)
	}

	require.Equal(t, len(wholeReqs), len(chunkedReqs))
	for i := range wholeReqs {
		require.Equal(t, len(wholeReqs[i]), len(chunkedReqs[i]))
		for j := range wholeReqs[i] {
			assert.Equal(t, string(wholeReqs[i][j]), string(chunkedReqs[i][j]))
		}
	}
}

func TestInlineCommand(t *testing.T) {
	d := NewDecoder(bufio.NewReader(bytes.NewReader([]byte("PING\r\n"))))
	req, err := d.ReadRequest()
	require.NoError(t, err)
	require.Len(t, req.Args, 1)
	assert.Equal(t, "PING", string(req.Args[0]))
}

func TestProtocolErrorOnBadLength(t *testing.T) {
	d := NewDecoder(bufio.NewReader(bytes.NewReader([]byte("*2\r\n$abc\r\nxy\r\n"))))
	_, err := d.ReadRequest()
	require.Error(t, err)
	_, ok := err.(*ProtocolError)
	assert.True(t, ok)
}

func TestArrayRequestParsesArgs(t *testing.T) {
	raw := "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n"
	d := NewDecoder(bufio.NewReader(bytes.NewReader([]byte(raw))))
	req, err := d.ReadRequest()
	require.NoError(t, err)
	require.Len(t, req.Args, 3)
	assert.Equal(t, []string{"SET", "k", "v"}, []string{
		string(req.Args[0]), string(req.Args[1]), string(req.Args[2]),
	})
}

func TestMain_doesNotHang(t *testing.T) {
	// guards against accidental infinite loops in the fuzz-prone decoder path
	done := make(chan struct{})
	go func() {
		d := NewDecoder(bufio.NewReader(bytes.NewReader([]byte("*1\r\n$4\r\nPING\r\n"))))
		_, _ = d.ReadRequest()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("decoder hung")
	}
}
