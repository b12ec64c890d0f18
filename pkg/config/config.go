package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/validation"
	"gopkg.in/yaml.v3"
)

// DefaultActions are the commands a bare invocation may run
var DefaultActions = []string{"dashboard", "list", "stats", "report"}

type Config struct {
	// Generation
	SampleSize        int      `yaml:"sample_size" validate:"min=1,max=100000"`
	Seed              uint64   `yaml:"seed"` // 0 draws a fresh seed every run
	TopN              int      `yaml:"top_n" validate:"min=0"`
	DefaultRiskLevels []string `yaml:"default_risk_levels" validate:"dive,oneof=CRITICAL HIGH MEDIUM critical high medium"`
	DefaultAction     string   `yaml:"default_action" validate:"oneof=dashboard list stats report"`

	// Logging
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	// Server
	ServerAddr        string `yaml:"server_addr" validate:"required"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes" validate:"min=0"`

	// Report
	ReportTheme string `yaml:"report_theme" validate:"oneof=chalk essos infographic macarons roma shine vintage walden westeros wonderland"`
	ReportFile  string `yaml:"report_file" validate:"required"`

	// Export
	DefaultExportFormat string `yaml:"default_export_format" validate:"oneof=json yaml csv"`

	// UI Settings
	DisplayDateFormat  string `yaml:"display_date_format"`
	ColorTheme         string `yaml:"color_theme" validate:"oneof=auto dark light"`
	SyntaxHighlighting bool   `yaml:"syntax_highlighting"`
	TableWidth         int    `yaml:"table_width" validate:"min=0"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms" validate:"min=0"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		SampleSize:          150,
		Seed:                0,
		TopN:                20,
		DefaultRiskLevels:   []string{"CRITICAL", "HIGH"},
		DefaultAction:       "dashboard",
		LogLevel:            "warn",
		LogFormat:           "console",
		ServerAddr:          ":8501",
		SessionTTLMinutes:   30,
		ReportTheme:         "chalk",
		ReportFile:          "report.html",
		DefaultExportFormat: "json",
		DisplayDateFormat:   "2006-01-02",
		ColorTheme:          "auto",
		SyntaxHighlighting:  true,
		TableWidth:          0,
		WatchDebounceMS:     500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	defaults := DefaultConfig()
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = defaults.SampleSize
	}
	if cfg.DefaultRiskLevels == nil {
		cfg.DefaultRiskLevels = defaults.DefaultRiskLevels
	}
	if cfg.DefaultAction == "" {
		cfg.DefaultAction = defaults.DefaultAction
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaults.LogFormat
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = defaults.ServerAddr
	}
	if cfg.ReportTheme == "" {
		cfg.ReportTheme = defaults.ReportTheme
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = defaults.ReportFile
	}
	if cfg.DefaultExportFormat == "" {
		cfg.DefaultExportFormat = defaults.DefaultExportFormat
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = defaults.DisplayDateFormat
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = defaults.ColorTheme
	}

	// Unknown default actions fall back rather than failing startup
	if !isValidDefaultAction(cfg.DefaultAction) {
		cfg.DefaultAction = defaults.DefaultAction
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field against its allowed values
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// WatchDebounce returns the file-watch debounce as a duration
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// SessionTTL returns how long server sessions live. Zero disables expiry.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// isValidDefaultAction checks if the default action is valid
func isValidDefaultAction(action string) bool {
	for _, valid := range DefaultActions {
		if action == valid {
			return true
		}
	}
	return false
}
