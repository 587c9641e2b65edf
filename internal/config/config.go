package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// BirthdayWindowDays is the default window for the upcoming-birthdays
	// query when the command carries no explicit day count.
	BirthdayWindowDays int `json:"birthday_window_days"`

	// SuggestionCutoff is the minimum Jaro-Winkler similarity for a command
	// keyword to be offered as a "did you mean" suggestion.
	SuggestionCutoff float64 `json:"suggestion_cutoff"`

	// SuggestionLimit caps how many suggestions are offered per command table.
	SuggestionLimit int `json:"suggestion_limit"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BirthdayWindowDays: 7,
		SuggestionCutoff:   0.7,
		SuggestionLimit:    3,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.pal.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// when non-zero.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.BirthdayWindowDays = overlay.BirthdayWindowDays
	if result.BirthdayWindowDays == 0 {
		result.BirthdayWindowDays = base.BirthdayWindowDays
	}

	result.SuggestionCutoff = overlay.SuggestionCutoff
	if result.SuggestionCutoff == 0 {
		result.SuggestionCutoff = base.SuggestionCutoff
	}

	result.SuggestionLimit = overlay.SuggestionLimit
	if result.SuggestionLimit == 0 {
		result.SuggestionLimit = base.SuggestionLimit
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	return result
}
