package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"compete/internal/compete/fsys"
	pkgerrors "compete/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	fs       fsys.FS
	out      bytes.Buffer
	errOut   bytes.Buffer
	cwd      string
	settings string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{fs: fsys.Memory(), cwd: "/w"}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	settingsPath := filepath.Join(t.TempDir(), "cli.yaml")
	if h.settings != "" {
		require.NoError(t, os.WriteFile(settingsPath, []byte(h.settings), 0o644))
	}
	a := &app{fs: h.fs, out: &h.out, errOut: &h.errOut, cwd: h.cwd}
	root := a.root()
	root.SetArgs(append([]string{"--settings", settingsPath, "--color", "never"}, args...))
	return root.ExecuteContext(context.Background())
}

const manifestText = `[package]
name = "abc100"

[package.metadata.cargo-compete.bin]
abc100-a = { alias = "a", problem = "https://atcoder.jp/contests/abc100/tasks/abc100_a" }
abc100-b = { alias = "b", problem = "https://atcoder.jp/contests/abc100/tasks/abc100_b" }
`

func TestInitThenCheck(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "init", "--platform", "yukicoder", "--toolchain", "1.70.0"))
	assert.Contains(t, h.errOut.String(), "Wrote /w/compete.toml")
	assert.True(t, fsys.Exists(h.fs, "/w/compete.toml"))

	require.NoError(t, h.run(t, "check"))
	out := h.out.String()
	assert.Contains(t, out, "config:     /w/compete.toml")
	assert.Contains(t, out, "new:        cargo-compete (yukicoder)")
	assert.Contains(t, out, "test:       profile=dev, toolchain=1.70.0")
	assert.Contains(t, out, "submit:     file, language-id=5054")
	assert.Contains(t, out, "edition:    2021")
	assert.Empty(t, h.errOut.String())
}

func TestInitRefusesToOverwrite(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "init"))

	err := h.run(t, "init")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ValidationFailed))
	assert.Equal(t, 2, pkgerrors.GetCode(err).ExitCode())
	assert.Contains(t, err.Error(), "/w/compete.toml` already exists")
	assert.Equal(t, "path", pkgerrors.GetError(err).Details["field"])

	require.NoError(t, h.run(t, "init", "--force", "--submit-via-binary"))
	require.NoError(t, h.run(t, "check"))
	assert.Contains(t, h.out.String(), "submit:     command, language-id=5054")
}

func TestInitFlagOverridesSettings(t *testing.T) {
	h := newHarness(t)
	h.settings = "init:\n  submitViaBinary: true\n"

	require.NoError(t, h.run(t, "init"))
	require.NoError(t, h.run(t, "check"))
	assert.Contains(t, h.out.String(), "submit:     command, language-id=5054")

	require.NoError(t, h.run(t, "init", "--force", "--submit-via-binary=false"))
	require.NoError(t, h.run(t, "check"))
	assert.Contains(t, h.out.String(), "submit:     file, language-id=5054")
}

func TestInitRejectsUnknownPlatform(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "init", "--platform", "topcoder")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.InvalidValue))
	assert.False(t, fsys.Exists(h.fs, "/w/compete.toml"))
}

func TestLocate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", ""))
	h.cwd = "/w/abc100/src"

	require.NoError(t, h.run(t, "locate"))
	assert.Equal(t, "/w/compete.toml\n", h.out.String())

	require.NoError(t, h.run(t, "locate", "--config", "./other.toml"))
	assert.Equal(t, "/w/abc100/src/other.toml\n", h.out.String())

	h.fs = fsys.Memory()
	err := h.run(t, "locate")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ConfigNotFound))
	assert.Equal(t, 3, pkgerrors.GetCode(err).ExitCode())
}

func TestRenderTestSuite(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "init"))
	require.NoError(t, fsys.Write(h.fs, "/w/abc100/Cargo.toml", manifestText))
	h.cwd = "/w/abc100"

	require.NoError(t, h.run(t, "render", "test-suite", "a"))
	assert.Equal(t, "/w/abc100/testcases/a.yml\n", h.out.String())

	err := h.run(t, "render", "test-suite", "z")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.NotFound))
	assert.Equal(t, "z", pkgerrors.GetError(err).Details["alias"])
}

func TestRenderNewPath(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", `test-suite = "{{ manifest_dir }}/testcases/{{ bin_alias }}.yml"

[new]
platform = "atcoder"
path = "./{{ package_name | kebabcase }}"
`))

	require.NoError(t, h.run(t, "render", "new-path", "FooBar"))
	assert.Equal(t, "./foo-bar\n", h.out.String())
}

func TestRenderNewPathWithoutContest(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", `test-suite = "{{ manifest_dir }}/testcases/{{ bin_alias }}.yml"

[new]
platform = "atcoder"
path = "./{% if contest %}{{ contest }}{% else %}{{ package_name | kebabcase }}{% endif %}"
`))

	require.NoError(t, h.run(t, "render", "new-path", "TypicalProblems90"))
	assert.Equal(t, "./typical-problems90\n", h.out.String())

	require.NoError(t, h.run(t, "render", "new-path", "TypicalProblems90", "--contest", "typical90"))
	assert.Equal(t, "./typical90\n", h.out.String())
}

func TestOpenUsesDeclaredSourcePaths(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", `test-suite = "{{ manifest_dir }}/testcases/{{ bin_alias }}.yml"
open = '["vim", "-p"] + (.paths | map(.src))'

[add]
url = "https://judge.yosupo.jp/problem/{{ args[0] }}"
bin-name = '{{ args[0] }}'
bin-src-path = './src/problems/{{ bin_alias }}.rs'
`))
	require.NoError(t, fsys.Write(h.fs, "/w/abc100/Cargo.toml", manifestText+`
[[bin]]
name = "abc100-a"
path = "src/main_a.rs"
`))
	h.cwd = "/w/abc100"

	require.NoError(t, h.run(t, "open", "a", "b"))
	assert.Equal(t, "vim -p /w/abc100/src/main_a.rs /w/abc100/src/problems/b.rs\n", h.out.String())
}

func TestOpen(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", `test-suite = "{{ manifest_dir }}/testcases/{{ bin_alias }}.yml"
open = '["vim", "-p"] + (.paths | map([.src, .test_suite]) | flatten)'
`))
	require.NoError(t, fsys.Write(h.fs, "/w/abc100/Cargo.toml", manifestText))
	h.cwd = "/w/abc100"

	require.NoError(t, h.run(t, "open", "a", "b"))
	want := strings.Join([]string{
		"vim", "-p",
		"/w/abc100/src/bin/abc100-a.rs", "/w/abc100/testcases/a.yml",
		"/w/abc100/src/bin/abc100-b.rs", "/w/abc100/testcases/b.yml",
	}, " ") + "\n"
	assert.Equal(t, want, h.out.String())
}

func TestCheckWarnsAboutDeprecatedShapes(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, fsys.Write(h.fs, "/w/template.rs", "fn main() {}\n"))
	require.NoError(t, fsys.Write(h.fs, "/w/compete.toml", `test-suite = "{{ manifest_dir }}/testcases/{{ bin_alias }}.yml"
stray = true

[new]
platform = "atcoder"
path = "./{{ package_name }}"

[new.template.dependencies]
kind = "inline"
content = ""

[new.template.src]
kind = "file"
path = "./template.rs"

[submit.transpile]
kind = "command"
args = ["cargo", "equip", "--bin", "{{ bin_name }}"]
`))

	require.NoError(t, h.run(t, "check"))
	warnings := h.errOut.String()
	assert.Contains(t, warnings, "warning: unused key in compete.toml: stray")
	assert.Contains(t, warnings, "warning: `submit.transpile` is deprecated")
	assert.Contains(t, warnings, "warning: `new.template` is deprecated")
	assert.Contains(t, h.out.String(), "submit:     command (submit.transpile)")
}
