package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"compete/pkg/utils/contextkey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerWritesContextFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compete.log")
	l, err := NewLogger(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), contextkey.Command, "check")
	ctx = context.WithValue(ctx, contextkey.ConfigPath, "/w/compete.toml")
	l.WithContext(ctx).Info("loaded configuration", zap.Int("warnings", 1))
	l.WithContext(ctx).Debug("dropped")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"loaded configuration"`)
	assert.Contains(t, out, `"command":"check"`)
	assert.Contains(t, out, `"config_path":"/w/compete.toml"`)
	assert.Contains(t, out, `"warnings":1`)
	assert.NotContains(t, out, "dropped")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNamedWithoutInitIsNop(t *testing.T) {
	prev := globalLogger
	globalLogger = nil
	defer func() { globalLogger = prev }()

	assert.NotPanics(t, func() {
		Named("shell").Warn("ignored")
		Info(context.Background(), "ignored")
	})
	assert.NoError(t, Sync())
}

func TestDebugfUsesGlobalLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	prev := globalLogger
	defer func() { globalLogger = prev }()
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: path}))

	ctx := context.WithValue(context.Background(), contextkey.Package, "abc100")
	Debugf(ctx, "located configuration at %s", "/w/compete.toml")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"located configuration at /w/compete.toml"`)
	assert.Contains(t, string(data), `"package":"abc100"`)
}
