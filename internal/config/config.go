package config

import (
	"fmt"
	"slices"
)

// DefaultMaxEntries is the default history limit.
const DefaultMaxEntries = 1000

// Config is the complete richdoc configuration.
type Config struct {
	Document DocumentConfig `toml:"document"`
	History  HistoryConfig  `toml:"history"`
	Logging  LoggingConfig  `toml:"logging"`
	Schema   SchemaConfig   `toml:"schema"`
}

// DocumentConfig configures documents.
type DocumentConfig struct {
	// ReadOnly opens documents without allowing edits.
	ReadOnly bool `toml:"read_only"`
}

// HistoryConfig configures undo/redo.
type HistoryConfig struct {
	// MaxEntries limits the undo stack.
	MaxEntries int `toml:"max_entries"`
	// DeferredSelection restores selections after the next render
	// instead of immediately.
	DeferredSelection bool `toml:"deferred_selection"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// SchemaConfig declares the names a document may reference.
type SchemaConfig struct {
	Components []ComponentConfig `toml:"components"`
	Formatters []FormatterConfig `toml:"formatters"`
	Attributes []string          `toml:"attributes"`
}

// ComponentConfig declares one component definition.
type ComponentConfig struct {
	Name string `toml:"name"`
	// Type is "inline" or "block".
	Type string `toml:"type"`
}

// FormatterConfig declares one formatter.
type FormatterConfig struct {
	Name string `toml:"name"`
	// Kind is "inline" (the default) or "block".
	Kind     string `toml:"kind"`
	Columned bool   `toml:"columned"`
	Priority int    `toml:"priority"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries: DefaultMaxEntries,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks every setting and returns the first failure as a
// *ValidationError.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return &ValidationError{Path: "history.max_entries", Message: "must be positive", Value: c.History.MaxEntries}
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level}
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return &ValidationError{Path: "logging.format", Message: "unknown format", Value: c.Logging.Format}
	}
	return c.Schema.validate()
}

func (s *SchemaConfig) validate() error {
	seen := make(map[string]bool)
	for i, comp := range s.Components {
		path := fmt.Sprintf("schema.components[%d]", i)
		if comp.Name == "" {
			return &ValidationError{Path: path + ".name", Message: "must not be empty", Value: comp.Name}
		}
		if seen[comp.Name] {
			return &ValidationError{Path: path + ".name", Message: "duplicate component", Value: comp.Name}
		}
		seen[comp.Name] = true
		if comp.Type != "inline" && comp.Type != "block" {
			return &ValidationError{Path: path + ".type", Message: "must be inline or block", Value: comp.Type}
		}
	}

	clear(seen)
	for i, f := range s.Formatters {
		path := fmt.Sprintf("schema.formatters[%d]", i)
		if f.Name == "" {
			return &ValidationError{Path: path + ".name", Message: "must not be empty", Value: f.Name}
		}
		if seen[f.Name] {
			return &ValidationError{Path: path + ".name", Message: "duplicate formatter", Value: f.Name}
		}
		seen[f.Name] = true
		if f.Kind != "" && f.Kind != "inline" && f.Kind != "block" {
			return &ValidationError{Path: path + ".kind", Message: "must be inline or block", Value: f.Kind}
		}
	}

	clear(seen)
	for i, name := range s.Attributes {
		path := fmt.Sprintf("schema.attributes[%d]", i)
		if name == "" || seen[name] {
			return &ValidationError{Path: path, Message: "empty or duplicate attribute", Value: name}
		}
		seen[name] = true
	}
	return nil
}
