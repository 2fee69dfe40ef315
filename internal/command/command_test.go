package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupBareAndSubcommand(t *testing.T) {
	r := Default()

	s, ok := r.Lookup("GET", "")
	require.True(t, ok)
	assert.True(t, s.Is(FlagReadonly))

	s, ok = r.Lookup("CONFIG", "GET")
	require.True(t, ok)
	assert.True(t, s.Is(FlagAdmin))

	_, ok = r.Lookup("NOSUCHCOMMAND", "")
	assert.False(t, ok)
}

func TestArityAccepts(t *testing.T) {
	a := Arity{Min: 2, Max: -1}
	assert.False(t, a.Accepts(1))
	assert.True(t, a.Accepts(2))
	assert.True(t, a.Accepts(100))

	bounded := Arity{Min: 1, Max: 2}
	assert.True(t, bounded.Accepts(1))
	assert.True(t, bounded.Accepts(2))
	assert.False(t, bounded.Accepts(3))
}

func bytesArgs(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestBindSetPlain(t *testing.T) {
	bound, err := Bind(SetGrammar, bytesArgs("k", "v"))
	require.NoError(t, err)
	assert.Equal(t, []byte("k"), bound["key"])
	assert.Equal(t, []byte("v"), bound["value"])
}

func TestBindSetWithExpireAndFlags(t *testing.T) {
	bound, err := Bind(SetGrammar, bytesArgs("k", "v", "NX", "EX", "10", "GET"))
	require.NoError(t, err)
	assert.Equal(t, true, bound["NX"])
	assert.Equal(t, true, bound["EX"])
	assert.Equal(t, int64(10), bound["seconds"])
	assert.Equal(t, true, bound["GET"])
}

func TestBindSetRejectsConflictingExpireTokens(t *testing.T) {
	_, err := Bind(SetGrammar, bytesArgs("k", "v", "EX", "10", "PX", "5"))
	require.Error(t, err)
	var syntaxErr *ErrSyntax
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestBindSetWithNonFirstExpireAlternative(t *testing.T) {
	bound, err := Bind(SetGrammar, bytesArgs("k", "v", "PX", "500"))
	require.NoError(t, err)
	assert.Equal(t, true, bound["PX"])
	assert.Equal(t, int64(500), bound["millis"])
	assert.Nil(t, bound["EX"])
}

func TestBindSetKeepTTLHasNoSubArgs(t *testing.T) {
	bound, err := Bind(SetGrammar, bytesArgs("k", "v", "KEEPTTL"))
	require.NoError(t, err)
	assert.Equal(t, true, bound["KEEPTTL"])
}

func TestBindRepeatingGroup(t *testing.T) {
	grammar := Grammar{
		Repeating("pairs", Positional("field", KindBytes), Positional("value", KindBytes)),
	}
	bound, err := Bind(grammar, bytesArgs("f1", "v1", "f2", "v2"))
	require.NoError(t, err)
	reps, ok := bound["pairs"].([]Bound)
	require.True(t, ok)
	require.Len(t, reps, 2)
	assert.Equal(t, []byte("f1"), reps[0]["field"])
	assert.Equal(t, []byte("v2"), reps[1]["value"])
}

func TestBindMissingRequiredPositional(t *testing.T) {
	_, err := Bind(Grammar{Positional("key", KindBytes), Positional("value", KindBytes)}, bytesArgs("only-key"))
	require.Error(t, err)
}

func TestBindIntegerParseFailure(t *testing.T) {
	_, err := Bind(Grammar{Positional("n", KindInteger)}, bytesArgs("not-a-number"))
	require.Error(t, err)
}
