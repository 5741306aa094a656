// Package config loads rl settings from ~/.rl/config.yaml, RL_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/storage"
)

// EnvPrefix is the prefix of environment overrides, e.g. RL_BACKEND.
const EnvPrefix = "RL"

// Config is the root configuration for rl.
type Config struct {
	// DataDir holds the JSON record files and the default SQLite database.
	DataDir string `mapstructure:"data_dir"`
	// Backend is one of file, sqlite or memory.
	Backend string `mapstructure:"backend"`
	// SQLitePath overrides <data_dir>/ledger.db.
	SQLitePath string  `mapstructure:"sqlite_path"`
	Logging    Logging `mapstructure:"logging"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var backends = []string{storage.BackendFile, storage.BackendSQLite, storage.BackendMemory}

// configTemplate is the annotated config written on first run.
const configTemplate = `# rl configuration - ~/.rl/config.yaml
#
# All settings are optional. Every key can also be set through an RL_*
# environment variable (RL_BACKEND, RL_LOGGING_LEVEL, ...) or a flag.

# Directory holding entries.json, shifts.json and goals.json.
data_dir: ~/.rl

# Storage backend:
#   file   - one human-readable JSON file per collection (default)
#   sqlite - a single SQLite database
#   memory - nothing is persisted, handy for trying things out
backend: file

# SQLite database file. Empty means <data_dir>/ledger.db.
sqlite_path: ""

logging:
  # debug, info, warn or error
  level: warn
  # text or json
  format: text
`

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "~/.rl")
	v.SetDefault("backend", storage.BackendFile)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// DefaultPath returns ~/.rl/config.yaml.
func DefaultPath() (string, error) {
	base, err := storage.DefaultBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Init wires defaults, environment and the config file into v. An empty
// cfgFile means the default path, which is created with annotated defaults
// when missing. An explicit cfgFile must exist.
func Init(v *viper.Viper, cfgFile string, logger *applog.Logger) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if writeErr := writeDefault(path); writeErr != nil {
				logger.Warn("could not create config file", applog.FieldPath, path, applog.FieldError, writeErr)
				return nil
			}
			logger.Info("created default config", applog.FieldPath, path)
		}
		cfgFile = path
	}

	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w\nTip: delete the file to regenerate defaults", cfgFile, err)
	}
	return nil
}

// Load decodes v into a Config, expands "~" in paths and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	var err error
	if cfg.DataDir, err = ExpandPath(cfg.DataDir); err != nil {
		return Config{}, err
	}
	if cfg.SQLitePath, err = ExpandPath(cfg.SQLitePath); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DataDir) == "" && c.Backend != storage.BackendMemory {
		problems = append(problems, "data_dir cannot be empty")
	}
	if !slices.Contains(backends, c.Backend) {
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, backends))
	}
	if _, err := applog.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid logging.level '%s': must be debug, info, warn or error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid logging.format '%s': must be text or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

// StorageOptions maps the config onto storage.Open options.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{Backend: c.Backend, DataDir: c.DataDir, SQLitePath: c.SQLitePath}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
