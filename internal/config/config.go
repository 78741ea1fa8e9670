// Package config loads codestepper settings from codestepper.toml and CODESTEPPER_* environment variables.
//
// Precedence, lowest first: built-in defaults, the TOML file, the environment. The merged result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/codalotl/codestepper/internal/classify"
	"github.com/codalotl/codestepper/internal/langtable"
	"github.com/codalotl/codestepper/internal/replay"
	"github.com/codalotl/codestepper/internal/revsource"
	"github.com/codalotl/codestepper/internal/watch"
)

// FileName is the config file looked up in the working directory when no explicit path is given.
const FileName = "codestepper.toml"

// Environment variables that override file values.
const (
	EnvReplaceThreshold  = "CODESTEPPER_REPLACE_THRESHOLD"
	EnvIgnoreSpaces      = "CODESTEPPER_IGNORE_SPACES"
	EnvParallelism       = "CODESTEPPER_PARALLELISM"
	EnvIgnoredExtensions = "CODESTEPPER_IGNORED_EXTENSIONS" // comma-separated
	EnvWatchDebounce     = "CODESTEPPER_WATCH_DEBOUNCE"     // Go duration, ex: "300ms"
)

// Config is the full set of user settings.
type Config struct {
	ReplaceThreshold  float64           `toml:"replace_threshold"`
	IgnoreSpaces      bool              `toml:"ignore_spaces"`
	Parallelism       int               `toml:"parallelism"` // 0: one worker per CPU
	IgnoredExtensions []string          `toml:"ignored_extensions"`
	CommentMarkers    map[string]string `toml:"comment_markers"` // language name -> marker
	Highlighters      map[string]string `toml:"highlighters"`    // language name -> highlighter
	WatchDebounce     time.Duration     `toml:"watch_debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ReplaceThreshold:  classify.DefaultPolicy.ReplaceThreshold,
		IgnoreSpaces:      classify.DefaultPolicy.IgnoreSpaces,
		IgnoredExtensions: append([]string(nil), revsource.DefaultIgnoredExtensions...),
		WatchDebounce:     watch.DefaultDebounce,
	}
}

// Load returns the merged and validated config. If path is empty, FileName in the working directory is used when it exists and defaults are used when it does
// not. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := cfg.loadTOML(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid config: %w", err)
	}
	return cfg, nil
}

// loadTOML decodes path over c. Keys c does not know are an error so that typos do not silently fall back to defaults.
func (c *Config) loadTOML(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides overwrites fields from set CODESTEPPER_* variables. A variable that does not parse is an error.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvReplaceThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvReplaceThreshold, err)
		}
		c.ReplaceThreshold = f
	}
	if v := os.Getenv(EnvIgnoreSpaces); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvIgnoreSpaces, err)
		}
		c.IgnoreSpaces = b
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvParallelism, err)
		}
		c.Parallelism = n
	}
	if v, ok := os.LookupEnv(EnvIgnoredExtensions); ok {
		c.IgnoredExtensions = []string{}
		for _, ext := range strings.Split(v, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				c.IgnoredExtensions = append(c.IgnoredExtensions, ext)
			}
		}
	}
	if v := os.Getenv(EnvWatchDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWatchDebounce, err)
		}
		c.WatchDebounce = d
	}
	return nil
}

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is every invalid field found by Validate.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate returns ValidateErrors listing every invalid field, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.ReplaceThreshold < 0 || c.ReplaceThreshold > 1 {
		errs = append(errs, ValidationError{Field: "replace_threshold", Message: fmt.Sprintf("%v is outside [0, 1]", c.ReplaceThreshold)})
	}
	if c.Parallelism < 0 {
		errs = append(errs, ValidationError{Field: "parallelism", Message: "must not be negative"})
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, ValidationError{Field: "watch_debounce", Message: "must not be negative"})
	}
	for _, ext := range c.IgnoredExtensions {
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			errs = append(errs, ValidationError{Field: "ignored_extensions", Message: fmt.Sprintf("invalid extension %q", ext)})
		}
	}
	for lang, marker := range c.CommentMarkers {
		if strings.TrimSpace(marker) == "" {
			errs = append(errs, ValidationError{Field: "comment_markers." + lang, Message: "marker is empty"})
		}
	}
	for lang, h := range c.Highlighters {
		if h == "" {
			errs = append(errs, ValidationError{Field: "highlighters." + lang, Message: "highlighter is empty"})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Policy returns the classification policy c configures.
func (c *Config) Policy() classify.Policy {
	return classify.Policy{ReplaceThreshold: c.ReplaceThreshold, IgnoreSpaces: c.IgnoreSpaces}
}

// Tables returns the built-in language tables with c's overrides applied.
func (c *Config) Tables() *langtable.Tables {
	return langtable.Default().WithOverrides(c.CommentMarkers, c.Highlighters)
}

// ReplayOptions returns timeline build options for c.
func (c *Config) ReplayOptions() replay.Options {
	policy := c.Policy()
	return replay.Options{Policy: &policy, Tables: c.Tables(), Parallelism: c.Parallelism}
}

// DirectoryOptions returns revision loading options for c.
func (c *Config) DirectoryOptions() revsource.DirectoryOptions {
	return revsource.DirectoryOptions{IgnoredExtensions: c.IgnoredExtensions, Concurrency: c.Parallelism}
}
