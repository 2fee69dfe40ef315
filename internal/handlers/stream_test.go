package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXAddAutoIDAndXLen(t *testing.T) {
	c := newTestContext(t)
	id, err := hXAdd(c, bargs("s", "*", "field", "value"))
	require.NoError(t, err)
	assert.NotEmpty(t, string(id.Bulk))

	n, err := hXLen(c, bargs("s"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)
}

func TestXAddExplicitIDMustIncrease(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "5-0", "f", "v"))
	require.NoError(t, err)

	v, err := hXAdd(c, bargs("s", "4-0", "f", "v"))
	require.NoError(t, err)
	assert.Equal(t, "ERR", v.ErrCode)
}

func TestXRangeReturnsEntriesInOrder(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXAdd(c, bargs("s", "2-0", "f", "b"))
	require.NoError(t, err)

	v, err := hXRange(false)(c, bargs("s", "-", "+"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 2)
	assert.Equal(t, "1-0", string(v.Arr[0].Arr[0].Bulk))
}

func TestXReadReturnsEntriesAfterID(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXAdd(c, bargs("s", "2-0", "f", "b"))
	require.NoError(t, err)

	v, err := hXRead(c, bargs("STREAMS", "s", "1-0"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 1)
	entries := v.Arr[0].Arr[1]
	require.Len(t, entries.Arr, 1)
	assert.Equal(t, "2-0", string(entries.Arr[0].Arr[0].Bulk))
}

func TestXReadOnEmptyReturnsNullArray(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)

	v, err := hXRead(c, bargs("STREAMS", "s", "1-0"))
	require.NoError(t, err)
	assert.True(t, v.ArrNil)
}

func TestXGroupCreateAndXReadGroup(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)

	v, err := hXGroupCreate(c, bargs("s", "grp", "0"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)

	read, err := hXReadGroup(c, bargs("GROUP", "grp", "consumer1", "STREAMS", "s", ">"))
	require.NoError(t, err)
	require.Len(t, read.Arr, 1)
}

func TestXAckRemovesFromPending(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXGroupCreate(c, bargs("s", "grp", "0"))
	require.NoError(t, err)
	_, err = hXReadGroup(c, bargs("GROUP", "grp", "c1", "STREAMS", "s", ">"))
	require.NoError(t, err)

	n, err := hXAck(c, bargs("s", "grp", "1-0"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)
}

func TestXGroupSetIDMovesCursor(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXAdd(c, bargs("s", "2-0", "f", "b"))
	require.NoError(t, err)
	_, err = hXGroupCreate(c, bargs("s", "grp", "0"))
	require.NoError(t, err)

	v, err := hXGroupSetID(c, bargs("s", "grp", "1-0"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)

	read, err := hXReadGroup(c, bargs("GROUP", "grp", "c1", "STREAMS", "s", ">"))
	require.NoError(t, err)
	require.Len(t, read.Arr, 1)
	entries := read.Arr[0].Arr[1].Arr
	require.Len(t, entries, 1)
	assert.Equal(t, "2-0", string(entries[0].Arr[0].Bulk))
}

func TestXGroupDestroyRemovesGroup(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXGroupCreate(c, bargs("s", "grp", "0"))
	require.NoError(t, err)

	n, err := hXGroupDestroy(c, bargs("s", "grp"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	v, err := hXAck(c, bargs("s", "grp", "1-0"))
	require.NoError(t, err)
	assert.NotEmpty(t, v.ErrCode)
}

func TestXClaimTransfersPendingEntry(t *testing.T) {
	c := newTestContext(t)
	_, err := hXAdd(c, bargs("s", "1-0", "f", "a"))
	require.NoError(t, err)
	_, err = hXGroupCreate(c, bargs("s", "grp", "0"))
	require.NoError(t, err)
	_, err = hXReadGroup(c, bargs("GROUP", "grp", "c1", "STREAMS", "s", ">"))
	require.NoError(t, err)

	v, err := hXClaim(c, bargs("s", "grp", "c2", "0", "1-0"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 1)
	assert.Equal(t, "1-0", string(v.Arr[0].Arr[0].Bulk))
}
