// Package config handles swb.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "swb.toml"

// Config represents a swb.toml project configuration.
type Config struct {
	Output  Output  `toml:"output"`
	Compile Compile `toml:"compile"`
	Render  Render  `toml:"render"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the swb.toml file (set at load time).
	Dir string `toml:"-"`
}

// Output configures compiled artifacts.
type Output struct {
	Extension string `toml:"extension"`
	Text      bool   `toml:"text"` // write the disassembly instead of bytes
}

// Compile configures compilation.
type Compile struct {
	Validate bool `toml:"validate"` // check compiled and decoded programs before use
}

// Render configures terminal rendering.
type Render struct {
	Width       int    `toml:"width"`
	BoldColor   string `toml:"bold-color"`
	ItalicColor string `toml:"italic-color"`
}

// Log configures logging.
type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the configuration used when no swb.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Output.Extension == "" {
		c.Output.Extension = ".swb"
	}
	if c.Output.Extension[0] != '.' {
		c.Output.Extension = "." + c.Output.Extension
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Load parses a swb.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return c, nil
}

// Parse decodes swb.toml content and applies defaults.
func Parse(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if c.Render.Width < 0 {
		return nil, fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	}
	c.applyDefaults()
	return &c, nil
}

// FindAndLoad walks up from startDir to find a swb.toml file and loads it.
// When none is found it returns Default().
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// OutputPath returns the artifact path for an input file: the input with
// its extension replaced by the configured one.
func (c *Config) OutputPath(input string) string {
	ext := filepath.Ext(input)
	return input[:len(input)-len(ext)] + c.Output.Extension
}

// Logger builds a zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
