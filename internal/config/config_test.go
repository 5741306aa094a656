package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/ride-ledger/internal/config"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
)

func TestInitWritesDefaultOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v := viper.New()
	require.NoError(t, config.Init(v, "", applog.Discard()))

	path := filepath.Join(home, ".rl", "config.yaml")
	_, err := os.Stat(path)
	require.NoError(t, err, "default config should be written")

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".rl"), cfg.DataDir)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestInitReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rl.yaml")
	content := "data_dir: " + dir + "\nbackend: sqlite\nlogging:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	require.NoError(t, config.Init(v, path, applog.Discard()))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	opts := cfg.StorageOptions()
	assert.Equal(t, "sqlite", opts.Backend)
	assert.Equal(t, dir, opts.DataDir)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := config.Init(v, filepath.Join(t.TempDir(), "nope.yaml"), applog.Discard())
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RL_BACKEND", "memory")
	t.Setenv("RL_LOGGING_LEVEL", "error")

	v := viper.New()
	require.NoError(t, config.Init(v, "", applog.Discard()))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := config.Config{
		DataDir: "",
		Backend: "postgres",
		Logging: config.Logging{Level: "loud", Format: "xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "data_dir")
	assert.Contains(t, msg, "invalid backend 'postgres'")
	assert.Contains(t, msg, "logging.level")
	assert.Contains(t, msg, "logging.format")
}

func TestValidateMemoryNeedsNoDataDir(t *testing.T) {
	cfg := config.Config{Backend: "memory", Logging: config.Logging{Level: "info"}}
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/var/lib/rl", "/var/lib/rl"},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"~user/data", "~user/data"},
	}
	for _, tt := range tests {
		got, err := config.ExpandPath(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
