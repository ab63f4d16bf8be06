package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "stock.toml"

	// XDGConfigSubdir is the subdirectory under the XDG base dirs.
	XDGConfigSubdir = "stocktake"
)

// LoadError wraps a failure to load a specific config file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load resolves the configuration in order of precedence: an explicit
// path, the XDG config file, then stock.toml in the working directory.
// When nothing is found and createDefault is set, the default config
// is written out and returned. The second return is the path the
// config came from, empty when running on the in-memory default.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	xdgPath := xdgConfigPath()
	cwdPath := filepath.Join(".", DefaultConfigFileName)

	for _, path := range []string{xdgPath, cwdPath} {
		if path == "" || !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found; searched: " + xdgPath + ", " + cwdPath)
	}

	cfg := Default()

	target := cwdPath
	if xdgPath != "" {
		if err := os.MkdirAll(filepath.Dir(xdgPath), 0750); err == nil {
			target = xdgPath
		}
	}

	if err := Save(cfg, target); err != nil {
		// Unwritable location, run on the in-memory default
		return cfg, "", nil
	}
	return cfg, target, nil
}

func loadFromFile(path string) (*Config, error) {
	// Start from defaults so omitted values keep sensible settings
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	// A file that declares its own category list replaces the default
	// list rather than appending to it
	var probe struct {
		Categories []CategoryConfig `toml:"categories"`
	}
	if _, err := toml.Decode(string(data), &probe); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if len(probe.Categories) > 0 {
		cfg.Categories = nil
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a configuration to a TOML file, creating the directory
// as needed.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header := `# stocktake configuration file
#
# This file was auto-generated. Edit as needed.

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

// ConfigPath reports the configuration file path that Load would use.
func ConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	xdgPath := xdgConfigPath()
	cwdPath := filepath.Join(".", DefaultConfigFileName)

	for _, path := range []string{xdgPath, cwdPath} {
		if path != "" && fileExists(path) {
			return path
		}
	}

	if xdgPath != "" {
		return xdgPath
	}
	return cwdPath
}

// EnsureDataDir creates the directory holding the database file and
// returns the resolved database path. Relative paths land under the
// XDG data directory when one is available.
func EnsureDataDir(cfg *Config) (string, error) {
	dbPath := cfg.Database.Path

	if filepath.IsAbs(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return "", fmt.Errorf("creating database directory: %w", err)
		}
		return dbPath, nil
	}

	if data := xdgDataDir(); data != "" {
		dataDir := filepath.Join(data, XDGConfigSubdir)
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			// Unwritable, keep the relative path
			return dbPath, nil
		}
		return filepath.Join(dataDir, dbPath), nil
	}
	return dbPath, nil
}

// EnsureLogDir creates the log directory if needed and returns the
// log file path. An empty path disables file logging.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}

	if dir := filepath.Dir(logPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}
	return logPath, nil
}

// BackupDir returns the directory for database backups, next to the
// database file.
func BackupDir(cfg *Config) (string, error) {
	dbPath := cfg.Database.Path

	var backupDir string
	switch {
	case filepath.IsAbs(dbPath):
		backupDir = filepath.Join(filepath.Dir(dbPath), "backups")
	case xdgDataDir() != "":
		backupDir = filepath.Join(xdgDataDir(), XDGConfigSubdir, "backups")
	default:
		backupDir = "backups"
	}

	if err := os.MkdirAll(backupDir, 0750); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	return backupDir, nil
}

func xdgConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, XDGConfigSubdir, DefaultConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", XDGConfigSubdir, DefaultConfigFileName)
}

func xdgDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
