package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/resp"
)

func TestPushAndRange(t *testing.T) {
	c := newTestContext(t)

	n, err := hPush(true)(c, bargs("mylist", "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Int)

	rng, err := hLRange(c, bargs("mylist", "0", "-1"))
	require.NoError(t, err)
	assert.Len(t, rng.Arr, 3)
	assert.Equal(t, []byte("a"), rng.Arr[0].Bulk)
	assert.Equal(t, []byte("c"), rng.Arr[2].Bulk)
}

func TestPushLeftReversesOrder(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(false)(c, bargs("mylist", "a", "b", "c"))
	require.NoError(t, err)

	rng, err := hLRange(c, bargs("mylist", "0", "-1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), rng.Arr[0].Bulk)
	assert.Equal(t, []byte("a"), rng.Arr[2].Bulk)
}

func TestPopRemovesEmptyKey(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("mylist", "only"))
	require.NoError(t, err)

	v, err := hPop(false)(c, bargs("mylist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("only"), v.Bulk)

	_, ok := c.DB().Get("mylist")
	assert.False(t, ok)
}

func TestPopWithCountOnMissingKey(t *testing.T) {
	c := newTestContext(t)
	v, err := hPop(true)(c, bargs("nosuch", "2"))
	require.NoError(t, err)
	assert.True(t, v.ArrNil)
}

func TestLIndexAndLSet(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("mylist", "a", "b", "c"))
	require.NoError(t, err)

	v, err := hLIndex(c, bargs("mylist", "1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), v.Bulk)

	ok, err := hLSet(c, bargs("mylist", "1", "B"))
	require.NoError(t, err)
	assert.Equal(t, resp.OK(), ok)

	v, err = hLIndex(c, bargs("mylist", "1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("B"), v.Bulk)
}

func TestLInsertBeforeAndAfter(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("mylist", "a", "c"))
	require.NoError(t, err)

	n, err := hLInsert(c, bargs("mylist", "BEFORE", "c", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Int)

	rng, _ := hLRange(c, bargs("mylist", "0", "-1"))
	assert.Equal(t, []byte("b"), rng.Arr[1].Bulk)
}

func TestLRemCounts(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("mylist", "a", "b", "a", "c", "a"))
	require.NoError(t, err)

	n, err := hLRem(c, bargs("mylist", "2", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.Int)

	rng, _ := hLRange(c, bargs("mylist", "0", "-1"))
	assert.Len(t, rng.Arr, 3)
}

func TestLTrimKeepsRange(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("mylist", "a", "b", "c", "d"))
	require.NoError(t, err)

	_, err = hLTrim(c, bargs("mylist", "1", "2"))
	require.NoError(t, err)

	rng, _ := hLRange(c, bargs("mylist", "0", "-1"))
	require.Len(t, rng.Arr, 2)
	assert.Equal(t, []byte("b"), rng.Arr[0].Bulk)
	assert.Equal(t, []byte("c"), rng.Arr[1].Bulk)
}

func TestLMoveBetweenLists(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("src", "a", "b", "c"))
	require.NoError(t, err)

	v, err := hLMove(c, bargs("src", "dst", "RIGHT", "LEFT"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), v.Bulk)

	srcRng, _ := hLRange(c, bargs("src", "0", "-1"))
	assert.Len(t, srcRng.Arr, 2)

	dstRng, _ := hLRange(c, bargs("dst", "0", "-1"))
	require.Len(t, dstRng.Arr, 1)
	assert.Equal(t, []byte("c"), dstRng.Arr[0].Bulk)
}

func TestLMoveOnMissingSourceReturnsNil(t *testing.T) {
	c := newTestContext(t)
	v, err := hLMove(c, bargs("nosuch", "dst", "LEFT", "RIGHT"))
	require.NoError(t, err)
	assert.True(t, v.BulkNil)
}

func TestLLenAndWrongType(t *testing.T) {
	c := newTestContext(t)
	_, err := hSet(c, bargs("str", "value"))
	require.NoError(t, err)

	v, err := hLLen(c, bargs("str"))
	require.NoError(t, err)
	assert.Equal(t, "WRONGTYPE", v.ErrCode)
}
