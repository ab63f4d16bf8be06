// Package config provides configuration management for stocktake.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"net/url"
)

// FallbackThreshold is used for categories without a configured default.
const FallbackThreshold = 5

// Config holds the complete application configuration.
type Config struct {
	Shop       ShopConfig       `toml:"shop"`
	Categories []CategoryConfig `toml:"categories"`
	Reorder    ReorderConfig    `toml:"reorder"`
	Display    DisplayConfig    `toml:"display"`
	Logging    LoggingConfig    `toml:"logging"`
	Database   DatabaseConfig   `toml:"database"`
}

// ShopConfig identifies the operation the inventory belongs to.
type ShopConfig struct {
	Name string `toml:"name"`
}

// CategoryConfig defines a known inventory category and the threshold
// applied to new items created without an explicit one. The array order
// in the TOML file is the display order.
type CategoryConfig struct {
	Name             string `toml:"name"`
	DefaultThreshold int    `toml:"default_threshold"`
}

// ReorderConfig controls order composition and sharing.
type ReorderConfig struct {
	OrderHeader  string `toml:"order_header"`
	ShareBaseURL string `toml:"share_base_url"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreen ColorScheme = "green"
	ColorSchemeAmber ColorScheme = "amber"
	ColorSchemeWhite ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level      LogLevel `toml:"level"`
	File       string   `toml:"file"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Shop.Name == "" {
		errs = append(errs, errors.New("shop: name is required"))
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
			continue
		}
		if seen[cat.Name] {
			errs = append(errs, fmt.Errorf("categories: duplicate name %q", cat.Name))
		}
		seen[cat.Name] = true
		if cat.DefaultThreshold < 0 {
			errs = append(errs, fmt.Errorf("categories[%d]: default_threshold must be non-negative", i))
		}
	}

	if err := c.Reorder.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("reorder: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the reorder configuration is valid.
func (r *ReorderConfig) Validate() error {
	var errs []error

	if r.OrderHeader == "" {
		errs = append(errs, errors.New("order_header is required"))
	}

	if r.ShareBaseURL != "" {
		if _, err := url.Parse(r.ShareBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid share_base_url: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreen: true,
		ColorSchemeAmber: true,
		ColorSchemeWhite: true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	if l.MaxSizeMB < 0 {
		errs = append(errs, errors.New("max_size_mb must be non-negative"))
	}

	if l.MaxBackups < 0 {
		errs = append(errs, errors.New("max_backups must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// DefaultThresholdFor returns the configured default threshold for a
// category, or the global fallback when the category is unknown.
func (c *Config) DefaultThresholdFor(category string) int {
	for _, cat := range c.Categories {
		if cat.Name == category {
			return cat.DefaultThreshold
		}
	}
	return FallbackThreshold
}

// CategoryNames returns the configured categories in display order.
func (c *Config) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Shop: ShopConfig{
			Name: "Food Truck",
		},
		Categories: []CategoryConfig{
			{Name: "Buns & Chips", DefaultThreshold: 10},
			{Name: "Veggies", DefaultThreshold: 5},
			{Name: "Meats & Poultry", DefaultThreshold: 5},
			{Name: "Cheeses", DefaultThreshold: 3},
			{Name: "Drinks", DefaultThreshold: 24},
			{Name: "Sauces & Condiments", DefaultThreshold: 6},
			{Name: "Packaging & Delivery", DefaultThreshold: 20},
			{Name: "Cleaning Materials", DefaultThreshold: 10},
			{Name: "Stationery", DefaultThreshold: 10},
			{Name: "Oils & Gas", DefaultThreshold: 5},
			{Name: "Salt & Spices", DefaultThreshold: 5},
			{Name: "Others", DefaultThreshold: 5},
		},
		Reorder: ReorderConfig{
			OrderHeader:  "Shopping order:",
			ShareBaseURL: "https://wa.me/?text=",
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreen,
			DateFormat:  "2006-01-02",
		},
		Logging: LoggingConfig{
			Level:      LogLevelInfo,
			File:       "logs/stocktake.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Database: DatabaseConfig{
			Path:                "stock.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 30,
		},
	}
}
