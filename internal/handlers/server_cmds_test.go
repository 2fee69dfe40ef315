package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetSetRoundTrip(t *testing.T) {
	c := newTestContext(t)
	v, err := hConfigSet(c, bargs("maxmemory", "100"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)

	got, err := hConfigGet(c, bargs("maxmemory"))
	require.NoError(t, err)
	require.Len(t, got.Arr, 2)
	assert.Equal(t, "100", string(got.Arr[1].Bulk))
}

func TestConfigSetRequirePassSyncsDefaultUser(t *testing.T) {
	c := newTestContext(t)
	_, err := hConfigSet(c, bargs("requirepass", "hunter2"))
	require.NoError(t, err)

	u, ok := c.Server.ACL.Get("default")
	require.True(t, ok)
	assert.False(t, u.NoPass)
	assert.True(t, u.CheckPassword("hunter2"))

	v, err := hAuth(c, bargs("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, "OK", v.Str)
}

func TestCommandCountMatchesRegistrySize(t *testing.T) {
	c := newTestContext(t)
	v, err := hCommand(c, bargs("COUNT"))
	require.NoError(t, err)
	assert.True(t, v.Int > 0)
	assert.Equal(t, int64(len(registryNames())), v.Int)
}
