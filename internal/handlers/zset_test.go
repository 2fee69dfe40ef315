package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZAddAndZScore(t *testing.T) {
	c := newTestContext(t)
	n, err := hZAdd(c, bargs("z", "1", "a", "2", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.Int)

	v, err := hZScore(c, bargs("z", "a"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(v.Bulk))
}

func TestZAddNXSkipsExisting(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "1", "a"))
	require.NoError(t, err)

	n, err := hZAdd(c, bargs("z", "NX", "5", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int)

	v, _ := hZScore(c, bargs("z", "a"))
	assert.Equal(t, "1", string(v.Bulk))
}

func TestZRangeAscendingWithScores(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "3", "c", "1", "a", "2", "b"))
	require.NoError(t, err)

	v, err := hZRange(false)(c, bargs("z", "0", "-1", "WITHSCORES"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 6)
	assert.Equal(t, "a", string(v.Arr[0].Bulk))
	assert.Equal(t, "1", string(v.Arr[1].Bulk))
	assert.Equal(t, "c", string(v.Arr[4].Bulk))
}

func TestZRangeByScoreWithLimit(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "1", "a", "2", "b", "3", "c"))
	require.NoError(t, err)

	v, err := hZRangeByScore(false)(c, bargs("z", "1", "3", "LIMIT", "1", "1"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 1)
	assert.Equal(t, "b", string(v.Arr[0].Bulk))
}

func TestZRankAndZRevRank(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "1", "a", "2", "b", "3", "c"))
	require.NoError(t, err)

	v, err := hZRank(false)(c, bargs("z", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)

	v, err = hZRank(true)(c, bargs("z", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int)
}

func TestZIncrBy(t *testing.T) {
	c := newTestContext(t)
	v, err := hZIncrBy(c, bargs("z", "5", "a"))
	require.NoError(t, err)
	assert.Equal(t, "5", string(v.Bulk))

	v, err = hZIncrBy(c, bargs("z", "2.5", "a"))
	require.NoError(t, err)
	assert.Equal(t, "7.5", string(v.Bulk))
}

func TestZPopMinRemovesLowestScore(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "3", "c", "1", "a", "2", "b"))
	require.NoError(t, err)

	v, err := hZPop(false)(c, bargs("z"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 2)
	assert.Equal(t, "a", string(v.Arr[0].Bulk))
}

func TestZUnionStoreSumsScores(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z1", "1", "a", "2", "b"))
	require.NoError(t, err)
	_, err = hZAdd(c, bargs("z2", "3", "b", "4", "c"))
	require.NoError(t, err)

	n, err := hZUnionStore(c, bargs("dest", "2", "z1", "z2"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Int)

	v, err := hZScore(c, bargs("dest", "b"))
	require.NoError(t, err)
	assert.Equal(t, "5", string(v.Bulk))
}

func TestZRemDeletesKeyWhenEmpty(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "1", "a"))
	require.NoError(t, err)

	n, err := hZRem(c, bargs("z", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	_, ok := c.DB().Get("z")
	assert.False(t, ok)
}

func TestZRangeByLexInclusiveBounds(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "0", "a", "0", "b", "0", "c", "0", "d"))
	require.NoError(t, err)

	v, err := hZRangeByLex(false)(c, bargs("z", "[b", "[c"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 2)
	assert.Equal(t, "b", string(v.Arr[0].Bulk))
	assert.Equal(t, "c", string(v.Arr[1].Bulk))
}

func TestZRangeByLexUnbounded(t *testing.T) {
	c := newTestContext(t)
	_, err := hZAdd(c, bargs("z", "0", "a", "0", "b", "0", "c"))
	require.NoError(t, err)

	v, err := hZRangeByLex(false)(c, bargs("z", "-", "+"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 3)
}
