package config

import (
	"testing"

	pkgerrors "compete/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	p, err := ParsePlatform("codeforces")
	require.NoError(t, err)
	assert.Equal(t, PlatformCodeforces, p)

	e, err := ParseEdition("2024")
	require.NoError(t, err)
	assert.Equal(t, Edition2024, e)

	k, err := ParseTargetKind("example")
	require.NoError(t, err)
	assert.Equal(t, TargetExampleBin, k)

	for _, bad := range []string{"AtCoder", "atcoder ", ""} {
		_, err := ParsePlatform(bad)
		require.Error(t, err, bad)
		assert.True(t, pkgerrors.Is(err, pkgerrors.InvalidValue))
	}

	_, err = ParseEdition("2019")
	require.Error(t, err)
	assert.Equal(t, "unknown variant `2019`, expected one of `2015`, `2018`, `2021`, `2024`", err.Error())
}

func TestFragment(t *testing.T) {
	frag, err := ParseFragment("proconio = { version = \"=0.4.3\", features = [\"derive\"] }\n")
	require.NoError(t, err)
	assert.False(t, frag.IsEmpty())
	dep, ok := frag.Table["proconio"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "=0.4.3", dep["version"])

	empty, err := ParseFragment("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = ParseFragment("proconio = ")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.InvalidFormat))
}

func TestFragmentFromTable(t *testing.T) {
	frag, err := FragmentFromTable(map[string]any{"itertools": "=0.10.5"})
	require.NoError(t, err)
	assert.Equal(t, frag.Text, frag.String())

	back, err := ParseFragment(frag.Text)
	require.NoError(t, err)
	assert.Equal(t, frag.Table, back.Table)

	none, err := FragmentFromTable(nil)
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())
	assert.Equal(t, "", none.Text)
}
