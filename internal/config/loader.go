package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RICHDOC_"

// FileSystem abstracts file reads for testing.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Loader reads a Config from a TOML file and the environment.
type Loader struct {
	fs        FileSystem
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader reading the real file system and environment.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}, lookupEnv: os.LookupEnv}
}

// NewLoaderWith creates a loader with a custom file system and
// environment lookup. A nil lookup disables environment overrides.
func NewLoaderWith(fsys FileSystem, lookupEnv func(string) (string, bool)) *Loader {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	return &Loader{fs: fsys, lookupEnv: lookupEnv}
}

// Load reads the configuration using the real file system.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path or a missing file yields the
// defaults.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := l.fs.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := parse(path, data, cfg); err != nil {
				return nil, err
			}
		}
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes TOML data into cfg, rejecting unknown keys.
func parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		perr.Line, perr.Column = decodeErr.Position()
	case errors.As(err, &strictErr):
		perr.Err = fmt.Errorf("%w: %w", ErrUnknownKey, err)
	}
	return perr
}

// envSetters maps environment variables (without prefix) to setters.
var envSetters = map[string]func(*Config, string) error{
	"READ_ONLY": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.Document.ReadOnly = b
		return err
	},
	"HISTORY_MAX_ENTRIES": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.History.MaxEntries = n
		return err
	},
	"HISTORY_DEFERRED_SELECTION": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.History.DeferredSelection = b
		return err
	},
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	"LOG_FORMAT": func(c *Config, v string) error {
		c.Logging.Format = v
		return nil
	},
}

// applyEnv overrides cfg from RICHDOC_* variables.
// Note: Empty string values are treated as set.
func (l *Loader) applyEnv(cfg *Config) error {
	for name, set := range envSetters {
		env := EnvPrefix + name
		val, ok := l.lookupEnv(env)
		if !ok {
			continue
		}
		if err := set(cfg, val); err != nil {
			return fmt.Errorf("environment %s: %w", env, err)
		}
	}
	return nil
}
