// Package config resolves tripplan settings from defaults, an optional TOML
// file and TRIPPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	FileName          = "config.toml"
	DefaultDBFile     = "tripplan.db"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultNamespace  = "trip_planning_prefs"
	defaultHomeSubdir = ".tripplan"
)

// Config holds every setting. The TOML keys match the field tags.
type Config struct {
	DBPath    string `toml:"db_path"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Namespace string `toml:"namespace"`

	// LogTimestamps prefixes each log line with the time.
	LogTimestamps bool `toml:"log_timestamps"`

	// Source is the config file that was read, empty when none existed.
	Source string `toml:"-"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json", "logfmt"}
)

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:    filepath.Join(home, DefaultDBFile),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Namespace: DefaultNamespace,
	}
}

// Home returns $TRIPPLAN_HOME, or ~/.tripplan.
func Home(getenv func(string) string) (string, error) {
	if v := getenv("TRIPPLAN_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, defaultHomeSubdir), nil
}

// Load resolves the configuration for the current process environment.
func Load() (Config, error) {
	home, err := Home(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(home, os.Getenv)
}

// LoadFrom applies defaults, then home/config.toml if present, then the
// environment as read through getenv.
func LoadFrom(home string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig(home)

	path := filepath.Join(home, FileName)
	if err := loadFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := loadFromEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("reading %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Source = path
	return nil
}

func loadFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("TRIPPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("TRIPPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv("TRIPPLAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := getenv("TRIPPLAN_LOG_TIMESTAMPS"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TRIPPLAN_LOG_TIMESTAMPS %q is not a boolean", v)
		}
		cfg.LogTimestamps = on
	}
	if v := getenv("TRIPPLAN_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	return nil
}

// Validate rejects empty paths and unknown log settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path must not be empty")
	}
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("config: namespace must not be empty")
	}
	if !contains(validLevels, c.LogLevel) {
		return fmt.Errorf("config: log_level %q must be one of %s", c.LogLevel, strings.Join(validLevels, ", "))
	}
	if !contains(validFormats, c.LogFormat) {
		return fmt.Errorf("config: log_format %q must be one of %s", c.LogFormat, strings.Join(validFormats, ", "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
