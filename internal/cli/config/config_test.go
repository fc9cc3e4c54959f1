package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray dbnav.yaml is found.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.Duration("timeout", 0, "")
	fs.Int("port", 0, "")
	fs.Bool("watch", true, "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, DefaultBackendTimeout, cfg.Backend.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Alerts.Duration)
	assert.Equal(t, 5*time.Second, cfg.Alerts.ResultDuration)
	assert.Equal(t, DefaultUIPort, cfg.UI.Port)
	assert.True(t, cfg.UI.Watch)
	assert.False(t, cfg.UI.AutoOpen)
	assert.Equal(t, "auto", cfg.Output)
}

func TestLoad_Precedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
backend:
  url: http://file:1
  timeout: 10s
alerts:
  duration: 1s
ui:
  port: 9000
output: json
`), 0o600))
	t.Setenv("DBNAV_BACKEND__URL", "http://env:2")
	t.Setenv("DBNAV_UI__PORT", "9100")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--port", "9200", "-v"}))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, cfg.File)
	assert.Equal(t, "http://env:2", cfg.Backend.URL, "env beats file")
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout, "file beats defaults")
	assert.Equal(t, time.Second, cfg.Alerts.Duration)
	assert.Equal(t, 5*time.Second, cfg.Alerts.ResultDuration)
	assert.Equal(t, 9200, cfg.UI.Port, "flag beats env")
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	inTempDir(t)
	t.Setenv("DBNAV_OUTPUT", "yaml")

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.UI.Watch)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: https://remote:443\n"), 0o600))

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "https://remote:443", cfg.Backend.URL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{"bad scheme", "backend:\n  url: ftp://x\n", "http or https"},
		{"zero timeout", "backend:\n  timeout: 0s\n", "backend.timeout"},
		{"bad output", "output: xml\n", "output must be one of"},
		{"bad port", "ui:\n  port: 70000\n", "ui.port"},
		{"malformed yaml", "backend: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			path := filepath.Join(dir, ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	inTempDir(t)

	_, err := Load("does-not-exist.yaml", nil)

	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("chatty"))
}

func TestLoggerContext(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
