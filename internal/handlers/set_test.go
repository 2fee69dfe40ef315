package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkeydb/vkeydb/internal/store"
)

func TestSAddAndSMembers(t *testing.T) {
	c := newTestContext(t)
	n, err := hSAdd(c, bargs("s", "a", "b", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.Int)

	v, err := hSMembers(c, bargs("s"))
	require.NoError(t, err)
	assert.Len(t, v.Arr, 2)
}

func TestSRemDeletesKeyWhenEmpty(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s", "a"))
	require.NoError(t, err)

	n, err := hSRem(c, bargs("s", "a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	_, ok := c.DB().Get("s")
	assert.False(t, ok)
}

func TestSIsMemberAndSCard(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s", "a", "b"))
	require.NoError(t, err)

	m, _ := hSIsMember(c, bargs("s", "a"))
	assert.Equal(t, int64(1), m.Int)

	card, _ := hSCard(c, bargs("s"))
	assert.Equal(t, int64(2), card.Int)
}

func TestSMIsMemberMixed(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s", "a"))
	require.NoError(t, err)

	v, err := hSMIsMember(c, bargs("s", "a", "z"))
	require.NoError(t, err)
	require.Len(t, v.Arr, 2)
	assert.Equal(t, int64(1), v.Arr[0].Int)
	assert.Equal(t, int64(0), v.Arr[1].Int)
}

func TestSUnionAcrossSets(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s1", "a", "b"))
	require.NoError(t, err)
	_, err = hSAdd(c, bargs("s2", "b", "c"))
	require.NoError(t, err)

	v, err := hSetOp(store.SUnion)(c, bargs("s1", "s2"))
	require.NoError(t, err)
	assert.Len(t, v.Arr, 3)
}

func TestSInterStoreWritesDestination(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s1", "a", "b"))
	require.NoError(t, err)
	_, err = hSAdd(c, bargs("s2", "b", "c"))
	require.NoError(t, err)

	n, err := hSetOpStore(store.SInter)(c, bargs("dest", "s1", "s2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	v, _ := hSMembers(c, bargs("dest"))
	require.Len(t, v.Arr, 1)
	assert.Equal(t, "b", string(v.Arr[0].Bulk))
}

func TestSPopRemovesMember(t *testing.T) {
	c := newTestContext(t)
	_, err := hSAdd(c, bargs("s", "only"))
	require.NoError(t, err)

	v, err := hSPop(c, bargs("s"))
	require.NoError(t, err)
	assert.Equal(t, []byte("only"), v.Bulk)

	_, ok := c.DB().Get("s")
	assert.False(t, ok)
}

func TestSMembersWrongType(t *testing.T) {
	c := newTestContext(t)
	_, err := hSet(c, bargs("str", "v"))
	require.NoError(t, err)

	v, err := hSMembers(c, bargs("str"))
	require.NoError(t, err)
	assert.Equal(t, "WRONGTYPE", v.ErrCode)
}
