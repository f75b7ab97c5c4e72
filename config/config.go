// Package config loads the settings of the command-line front end.
//
// Settings are read from a YAML file, by default config.yaml in the caja-actions directory of
// $XDG_CONFIG_HOME, and may be overridden by CACT_ prefixed environment variables such as
// CACT_LOG_LEVEL. Missing settings take their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Name is the name of the directories of the application.
const Name = "caja-actions"

const envPrefix = "CACT"

const (
	keyStoreDirs  = "store_dirs"
	keyLocale     = "locale"
	keyLogLevel   = "log_level"
	keyWatchDelay = "watch_delay"
)

// Config holds the settings.
type Config struct {
	// StoreDirs are the directories of the item store, the writable one first.
	StoreDirs []string `yaml:"store_dirs"`

	// Locale selects the localized data, such as fr_FR.UTF-8.
	Locale string `yaml:"locale,omitempty"`

	LogLevel   string        `yaml:"log_level"`
	WatchDelay time.Duration `yaml:"watch_delay"`
}

// DefaultPath returns the path of the configuration file in the user configuration directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, Name, "config.yaml")
}

// DefaultStoreDirs returns the caja-actions directory of the user data directory followed by
// those of the system data directories.
func DefaultStoreDirs() []string {
	dirs := []string{filepath.Join(xdg.DataHome, Name)}
	for _, dir := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(dir, Name))
	}

	return dirs
}

// defaultLocale returns the locale of the messages of the environment, as libc selects it.
func defaultLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}

	return ""
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyStoreDirs, DefaultStoreDirs())
	v.SetDefault(keyLocale, defaultLocale())
	v.SetDefault(keyLogLevel, zerolog.LevelInfoValue)
	v.SetDefault(keyWatchDelay, 100*time.Millisecond)

	return v
}

// Load reads the configuration file at path, DefaultPath if path is empty. A missing file is not
// an error unless path was given.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("Load: failed to read %s: %w", path, err)
		}
	}

	config := &Config{
		StoreDirs:  storeDirs(v),
		Locale:     v.GetString(keyLocale),
		LogLevel:   v.GetString(keyLogLevel),
		WatchDelay: v.GetDuration(keyWatchDelay),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return config, nil
}

// storeDirs returns the store directories. From the environment they form a list separated by
// the OS path list separator, like $XDG_DATA_DIRS.
func storeDirs(v *viper.Viper) []string {
	if value, ok := v.Get(keyStoreDirs).(string); ok {
		return filepath.SplitList(value)
	}

	return v.GetStringSlice(keyStoreDirs)
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if len(c.StoreDirs) == 0 {
		return errors.New("no store directory")
	}

	for _, dir := range c.StoreDirs {
		if !filepath.IsAbs(dir) {
			return fmt.Errorf("store directory %q is not absolute", dir)
		}
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if c.WatchDelay < 0 {
		return fmt.Errorf("negative watch delay %s", c.WatchDelay)
	}

	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	content, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("Save: failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}

// Logger returns a console logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
