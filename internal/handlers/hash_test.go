package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSetAndHGet(t *testing.T) {
	c := newTestContext(t)
	n, err := hHSet(c, bargs("h", "f1", "v1", "f2", "v2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.Int)

	v, err := hHGet(c, bargs("h", "f1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v.Bulk)
}

func TestHSetNXSkipsExisting(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "f1", "v1"))
	require.NoError(t, err)

	n, err := hHSetNX(c, bargs("h", "f1", "v2"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int)

	v, _ := hHGet(c, bargs("h", "f1"))
	assert.Equal(t, []byte("v1"), v.Bulk)
}

func TestHDelRemovesKeyWhenEmpty(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "f1", "v1"))
	require.NoError(t, err)

	n, err := hHDel(c, bargs("h", "f1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	_, ok := c.DB().Get("h")
	assert.False(t, ok)
}

func TestHGetAllPreservesInsertionOrder(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "a", "1", "b", "2"))
	require.NoError(t, err)

	v, err := hHGetAll(c, bargs("h"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 4)
	assert.Equal(t, "a", string(v.Arr[0].Bulk))
	assert.Equal(t, "b", string(v.Arr[2].Bulk))
}

func TestHIncrByCreatesFieldAtZero(t *testing.T) {
	c := newTestContext(t)
	n, err := hHIncrBy(c, bargs("h", "ctr", "5"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n.Int)
}

func TestHExistsAndHLen(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "f1", "v1"))
	require.NoError(t, err)

	e, _ := hHExists(c, bargs("h", "f1"))
	assert.Equal(t, int64(1), e.Int)

	l, _ := hHLen(c, bargs("h"))
	assert.Equal(t, int64(1), l.Int)
}

func TestHGetOnWrongType(t *testing.T) {
	c := newTestContext(t)
	_, err := hSet(c, bargs("s", "v"))
	require.NoError(t, err)

	v, err := hHGet(c, bargs("s", "f"))
	require.NoError(t, err)
	assert.Equal(t, "WRONGTYPE", v.ErrCode)
}

func TestHScanReturnsAllFieldsAcrossCursors(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "a", "1", "b", "2", "c", "3"))
	require.NoError(t, err)

	seen := map[string]string{}
	cursor := "0"
	for {
		v, err := hHScan(c, bargs("h", cursor, "COUNT", "1"))
		require.NoError(t, err)
		require.Len(t, v.Arr, 2)
		cursor = string(v.Arr[0].Bulk)
		items := v.Arr[1].Arr
		for i := 0; i < len(items); i += 2 {
			seen[string(items[i].Bulk)] = string(items[i+1].Bulk)
		}
		if cursor == "0" {
			break
		}
	}
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, seen)
}

func TestHScanMatchFiltersFields(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "foo1", "1", "bar1", "2", "foo2", "3"))
	require.NoError(t, err)

	v, err := hHScan(c, bargs("h", "0", "MATCH", "foo*", "COUNT", "100"))
	require.NoError(t, err)
	items := v.Arr[1].Arr
	require.Len(t, items, 4)
	assert.Equal(t, "foo1", string(items[0].Bulk))
	assert.Equal(t, "foo2", string(items[2].Bulk))
}

func TestHScanNoValuesOmitsValues(t *testing.T) {
	c := newTestContext(t)
	_, err := hHSet(c, bargs("h", "a", "1"))
	require.NoError(t, err)

	v, err := hHScan(c, bargs("h", "0", "NOVALUES"))
	require.NoError(t, err)
	require.Len(t, v.Arr[1].Arr, 1)
	assert.Equal(t, "a", string(v.Arr[1].Arr[0].Bulk))
}

func TestHScanOnMissingKeyReturnsEmpty(t *testing.T) {
	c := newTestContext(t)
	v, err := hHScan(c, bargs("nosuch", "0"))
	require.NoError(t, err)
	assert.Equal(t, "0", string(v.Arr[0].Bulk))
	assert.Empty(t, v.Arr[1].Arr)
}
