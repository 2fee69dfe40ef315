package acl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUserAllowsEverything(t *testing.T) {
	table := NewTable()
	def, ok := table.Get("default")
	require.True(t, ok)
	assert.True(t, def.CheckPassword("anything"))
	assert.True(t, def.AllowCommand("get", CatRead))
	assert.True(t, def.AllowKey("any:key"))
	assert.True(t, def.AllowChannel("any-channel"))
}

func TestUserCommandRulesLastMatchWins(t *testing.T) {
	u := NewUser("alice")
	u.SetPassword("hunter2")
	u.CommandRules = []Rule{
		{Allow: true, Pattern: "@read"},
		{Allow: false, Pattern: "get"},
	}
	assert.True(t, u.AllowCommand("set", CatWrite|CatRead))
	assert.False(t, u.AllowCommand("get", CatRead))
	assert.True(t, u.CheckPassword("hunter2"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUserKeyAndChannelPatterns(t *testing.T) {
	u := NewUser("bob")
	u.KeyPatterns = []string{"session:*"}
	u.ChanPatterns = []string{"news.*"}
	assert.True(t, u.AllowKey("session:42"))
	assert.False(t, u.AllowKey("account:42"))
	assert.True(t, u.AllowChannel("news.sports"))
	assert.False(t, u.AllowChannel("chat.general"))
}

func TestTablePutGetDeleteProtectsDefault(t *testing.T) {
	table := NewTable()
	table.Put(NewUser("carol"))
	_, ok := table.Get("carol")
	require.True(t, ok)

	assert.False(t, table.Delete("default"))
	assert.True(t, table.Delete("carol"))
	_, ok = table.Get("carol")
	assert.False(t, ok)
}

func TestGlobMatchIsMemoizedAndCorrect(t *testing.T) {
	assert.True(t, GlobMatch("session:*", "session:42"))
	assert.True(t, GlobMatch("session:*", "session:42")) // hits cache path
	assert.False(t, GlobMatch("session:*", "account:42"))
	assert.True(t, GlobMatch("h[ae]llo", "hello"))
	assert.False(t, GlobMatch("h[ae]llo", "hillo"))
}
