package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBLPopReturnsImmediatelyWhenDataPresent(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("list1", "a", "b"))
	require.NoError(t, err)

	v, err := hBPop(false)(c, bargs("list1", "0.2"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 2)
	assert.Equal(t, "list1", string(v.Arr[0].Bulk))
	assert.Equal(t, "a", string(v.Arr[1].Bulk))
}

func TestBLPopTimesOutOnEmptyKey(t *testing.T) {
	c := newTestContext(t)
	v, err := hBPop(false)(c, bargs("nosuch", "0.05"))
	require.NoError(t, err)
	assert.True(t, v.ArrNil)
}

func TestBRPopPopsFromTail(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("list1", "a", "b", "c"))
	require.NoError(t, err)

	v, err := hBPop(true)(c, bargs("list1", "0.2"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(v.Arr[1].Bulk))
}

func TestBLMoveMovesImmediately(t *testing.T) {
	c := newTestContext(t)
	_, err := hPush(true)(c, bargs("src", "x"))
	require.NoError(t, err)

	v, err := hBLMove(c, bargs("src", "dst", "LEFT", "RIGHT", "0.2"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(v.Bulk))

	got, _ := hLRange(c, bargs("dst", "0", "-1"))
	require.Len(t, got.Arr, 1)
	assert.Equal(t, "x", string(got.Arr[0].Bulk))
}

func TestBLMoveTimesOutOnEmptySource(t *testing.T) {
	c := newTestContext(t)
	v, err := hBLMove(c, bargs("nosrc", "dst", "LEFT", "RIGHT", "0.05"))
	require.NoError(t, err)
	assert.True(t, v.BulkNil)
}

func TestWaitReturnsZeroReplicas(t *testing.T) {
	c := newTestContext(t)
	v, err := hWait(c, bargs("0", "100"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int)
}
