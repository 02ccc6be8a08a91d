package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/studylog/config.yaml"

// EnvConfigPath names the environment variable that overrides DefaultConfigPath.
const EnvConfigPath = "STUDYLOG_CONFIG"

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDiskv    = "diskv"
)

// Config holds all studylog configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Retention RetentionConfig `yaml:"retention"`
	Insights  InsightsConfig  `yaml:"insights"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type StorageConfig struct {
	Driver            string `yaml:"driver"`
	Path              string `yaml:"path"`
	SQLiteFile        string `yaml:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
	DiskvDir          string `yaml:"diskv_dir"`
	PostgresDSN       string `yaml:"postgres_dsn"`
}

// CalendarConfig decides which zone day keys are resolved in. An empty
// Timezone or "Local" means the zone of the running process.
type CalendarConfig struct {
	Timezone string `yaml:"timezone"`
}

type RetentionConfig struct {
	Days int `yaml:"days"`
}

type InsightsConfig struct {
	WindowDays int `yaml:"window_days"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrCreate loads the config from $STUDYLOG_CONFIG or the default path.
// If the file does not exist, it creates the directory structure and writes
// defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ResolvePath("")
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// ResolvePath picks the config file location: override if set, then
// $STUDYLOG_CONFIG, then DefaultConfigPath. A leading ~ is expanded.
func ResolvePath(override string) (string, error) {
	path := override
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultConfigPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return path, nil
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// Validate rejects settings that would only fail later, at store open time.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverDiskv:
	default:
		return fmt.Errorf("unknown storage driver %q (want sqlite, postgres or diskv)", c.Storage.Driver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative")
	}
	if c.Insights.WindowDays < 0 {
		return fmt.Errorf("insights.window_days must not be negative")
	}
	return nil
}

// Location resolves Calendar.Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Calendar.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

// StorageDir returns Storage.Path with a leading ~ expanded.
func (c *Config) StorageDir() (string, error) {
	dir, err := homedir.Expand(c.Storage.Path)
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return dir, nil
}

// SQLitePath is the full path of the SQLite database file.
func (c *Config) SQLitePath() (string, error) {
	dir, err := c.StorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// DiskvPath is the base directory of the diskv store.
func (c *Config) DiskvPath() (string, error) {
	dir, err := c.StorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.DiskvDir), nil
}

// PostgresDSN returns Storage.PostgresDSN, falling back to $DATABASE_URL.
func (c *Config) PostgresDSN() string {
	if c.Storage.PostgresDSN != "" {
		return c.Storage.PostgresDSN
	}
	return os.Getenv("DATABASE_URL")
}

// LogPath returns where log output goes: "" for stderr, otherwise a file path
// resolved against the storage directory when relative.
func (c *Config) LogPath() (string, error) {
	file := strings.TrimSpace(c.Logging.File)
	if file == "" || file == "-" {
		return "", nil
	}
	file, err := homedir.Expand(file)
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if filepath.IsAbs(file) {
		return file, nil
	}
	dir, err := c.StorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}
