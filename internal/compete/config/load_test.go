package config

import (
	"testing"

	"compete/internal/compete/fsys"
	"compete/internal/compete/manifest"
	pkgerrors "compete/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWarnsOncePerUnusedKey(t *testing.T) {
	fs := fsys.Memory()
	require.NoError(t, fsys.Write(fs, "/w/compete.toml", minimal+"unknown = 1\n"))

	sink := &recordingSink{}
	cfg, err := Load(fs, "/w/compete.toml", sink)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"unused key in compete.toml: unknown"}, sink.warnings)
}

func TestLoadUnusedKeyInsideRejectedShapeIsNotReported(t *testing.T) {
	fs := fsys.Memory()
	require.NoError(t, fsys.Write(fs, "/w/compete.toml", minimal+`
[submit.transpile]
kind = "command"
args = ["cat", "{{ src_path }}"]
`))

	sink := &recordingSink{}
	_, err := Load(fs, "/w/compete.toml", sink)
	require.NoError(t, err)
	assert.Empty(t, sink.warnings)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fsys.Memory(), "/w/compete.toml", &recordingSink{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ConfigReadFailed))
	assert.Contains(t, err.Error(), "/w/compete.toml")
	assert.Equal(t, "/w/compete.toml", pkgerrors.GetError(err).Details["path"])
}

func TestLoadInvalidDocument(t *testing.T) {
	fs := fsys.Memory()
	require.NoError(t, fsys.Write(fs, "/w/compete.toml", "open = 1\n"))

	_, err := Load(fs, "/w/compete.toml", &recordingSink{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ConfigParseFailed))
	assert.Contains(t, err.Error(), "could not read a TOML file at `/w/compete.toml`")
	assert.Contains(t, err.Error(), "missing field `test-suite`")
	assert.Equal(t, "/w/compete.toml", pkgerrors.GetError(err).Details["path"])
}

func TestLoadForPackage(t *testing.T) {
	fs := fsys.Memory()
	require.NoError(t, fsys.Write(fs, "/w/compete.toml", minimal))

	pkg := &manifest.Package{Name: "abc100", ManifestPath: "/w/abc100/Cargo.toml"}
	cfg, path, err := LoadForPackage(fs, pkg, &recordingSink{})
	require.NoError(t, err)
	assert.Equal(t, "/w/compete.toml", path)
	assert.NotNil(t, cfg.TestSuite)

	_, _, err = LoadForPackage(fsys.Memory(), pkg, &recordingSink{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.ConfigNotFound))
}
