package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACLWhoAmIReportsAuthedUser(t *testing.T) {
	c := newTestContext(t)
	c.Session.User = "default"
	v, err := hACLWhoAmI(c, bargs())
	require.NoError(t, err)
	assert.Equal(t, "default", string(v.Bulk))
}

func TestACLSetUserThenGetUser(t *testing.T) {
	c := newTestContext(t)
	v, err := hACLSetUser(c, bargs("alice", "on", ">secret", "~app:*", "+get", "+set"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)

	u, ok := c.Server.ACL.Get("alice")
	require.True(t, ok)
	assert.True(t, u.Enabled)
	assert.True(t, u.CheckPassword("secret"))
	assert.True(t, u.AllowKey("app:1"))
	assert.False(t, u.AllowKey("other:1"))
}

func TestACLDelUserRemovesUser(t *testing.T) {
	c := newTestContext(t)
	_, err := hACLSetUser(c, bargs("bob", "on", "nopass"))
	require.NoError(t, err)

	n, err := hACLDelUser(c, bargs("bob"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int)

	_, ok := c.Server.ACL.Get("bob")
	assert.False(t, ok)
}

func TestACLListIncludesDefaultUser(t *testing.T) {
	c := newTestContext(t)
	v, err := hACLList(c, bargs())
	require.NoError(t, err)
	require.Len(t, v.Arr, 1)
	assert.Contains(t, string(v.Arr[0].Bulk), "default")
}

func TestACLCatReturnsCategories(t *testing.T) {
	c := newTestContext(t)
	v, err := hACLCat(c, bargs())
	require.NoError(t, err)
	assert.NotEmpty(t, v.Arr)
}
