package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// File names looked up by Discover, in order.
const (
	FileTOML = "uki.toml"
	FileYAML = "uki.yaml"
	FileYML  = "uki.yml"
)

// Environment variables read by ApplyEnv and Resolve.
const (
	EnvConfig    = "UKI_CONFIG"
	EnvColor     = "UKI_COLOR"
	EnvLogLevel  = "UKI_LOG_LEVEL"
	EnvLogFormat = "UKI_LOG_FORMAT"
	EnvModule    = "UKI_MODULE"
	EnvHistory   = "UKI_HISTORY"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of the uki tool.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
	Parse       ParseConfig       `toml:"parse" yaml:"parse"`
	Log         LogConfig         `toml:"log" yaml:"log"`
	REPL        REPLConfig        `toml:"repl" yaml:"repl"`

	path string
}

// DiagnosticsConfig controls how diagnostics are displayed.
type DiagnosticsConfig struct {
	Color   string `toml:"color" yaml:"color"`     // auto | always | never
	Context int    `toml:"context" yaml:"context"` // source lines shown around the error, 0-5
}

// ParseConfig selects the parser mode.
type ParseConfig struct {
	Mode string `toml:"mode" yaml:"mode"` // program | module
}

// LogConfig configures the slog handler on stderr.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug | info | warn | error
	Format string `toml:"format" yaml:"format"` // text | json
}

// REPLConfig configures `uki repl`.
type REPLConfig struct {
	History string `toml:"history" yaml:"history"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{Color: "auto", Context: 1},
		Parse:       ParseConfig{Mode: "program"},
		Log:         LogConfig{Level: "warn", Format: "text"},
		REPL:        REPLConfig{History: "~/.uki_history"},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml are YAML, anything else TOML. Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	c.path = path
	return c, nil
}

// Discover walks up from dir and returns the first config file found.
func Discover(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range []string{FileTOML, FileYAML, FileYML} {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve picks the config file (explicit path, then $UKI_CONFIG, then
// Discover from dir), falls back to Default, applies the environment, then
// overrides (command-line flags), and validates the result once.
func Resolve(explicit, dir string, overrides ...func(*Config)) (*Config, error) {
	path := explicit
	if path == "" {
		env.Load()
		path = env.Str(EnvConfig)
	}
	if path == "" {
		path, _ = Discover(dir)
	}

	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	c.ApplyEnv()
	for _, o := range overrides {
		o(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides settings from UKI_* variables that are set. The
// environment is re-read on every call.
func (c *Config) ApplyEnv() {
	env.Load()
	c.Diagnostics.Color = env.Str(EnvColor, c.Diagnostics.Color)
	c.Log.Level = env.Str(EnvLogLevel, c.Log.Level)
	c.Log.Format = env.Str(EnvLogFormat, c.Log.Format)
	c.REPL.History = env.Str(EnvHistory, c.REPL.History)
	if env.Has(EnvModule) {
		switch strings.ToLower(env.Str(EnvModule)) {
		case "1", "true", "yes", "on":
			c.Parse.Mode = "module"
		default:
			c.Parse.Mode = "program"
		}
	}
}

// Validate checks every enumerated setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	oneOf := func(key, val string, allowed ...string) {
		for _, a := range allowed {
			if val == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%w: %s = %q (want %s)", ErrInvalid, key, val, strings.Join(allowed, "|")))
	}
	oneOf("diagnostics.color", c.Diagnostics.Color, "auto", "always", "never")
	oneOf("parse.mode", c.Parse.Mode, "program", "module")
	oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
	oneOf("log.format", c.Log.Format, "text", "json")
	if c.Diagnostics.Context < 0 || c.Diagnostics.Context > 5 {
		errs = append(errs, fmt.Errorf("%w: diagnostics.context = %d (want 0-5)", ErrInvalid, c.Diagnostics.Context))
	}
	return errors.Join(errs...)
}

// Path is the file the config was loaded from ("" for defaults).
func (c *Config) Path() string { return c.path }

// ModuleMode reports whether parse.mode is "module".
func (c *Config) ModuleMode() bool { return c.Parse.Mode == "module" }

// LogLevel maps log.level to a slog level; unknown values mean warn.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// HistoryPath returns repl.history with a leading ~ expanded.
func (c *Config) HistoryPath() string {
	return env.ExpandUser(c.REPL.History)
}
