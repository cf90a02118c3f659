// Package config loads TOML configuration of the rdx command line utility.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ava12/rdx"
	"github.com/ava12/rdx/parser"
)

const (
	ReadError = iota + rdx.ConfigErrors
	DecodeError
	WrongValueError
)

const (
	TreeIndented = "indented"
	TreeFlat     = "flat"
	TreeNone     = "none"
)

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

type ParserConfig struct {
	Start     string `toml:"start"`
	MaxDepth  int    `toml:"max_depth"`
	StepLimit int    `toml:"step_limit"`
}

type LogConfig struct {
	// Verbosity is commonlog verbosity: 0 is errors only, each level adds more.
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type OutputConfig struct {
	Color bool   `toml:"color"`
	Tree  string `toml:"tree"`
}

// Default returns configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load decodes TOML file and applies defaults to missing values.
func Load(path string) (*Config, error) {
	if _, e := os.Stat(path); e != nil {
		return nil, rdx.FormatError(ReadError, "cannot read config file %s: %s", path, e)
	}

	cfg := &Config{Output: OutputConfig{Color: true}}
	md, e := toml.DecodeFile(path, cfg)
	if e != nil {
		return nil, rdx.FormatError(DecodeError, "failed to parse config %s: %s", path, e)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, rdx.FormatError(DecodeError, "unknown config key %s in %s", undecoded[0], path)
	}

	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Tree == "" {
		c.Output.Tree = TreeIndented
	}
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	switch {
	case c.Parser.MaxDepth < 0:
		return rdx.FormatError(WrongValueError, "parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	case c.Parser.StepLimit < 0:
		return rdx.FormatError(WrongValueError, "parser.step_limit must not be negative, got %d", c.Parser.StepLimit)
	case c.Log.Verbosity < -4 || c.Log.Verbosity > 4:
		return rdx.FormatError(WrongValueError, "log.verbosity must be in -4 .. 4 range, got %d", c.Log.Verbosity)
	}

	switch c.Output.Tree {
	case TreeIndented, TreeFlat, TreeNone:
		return nil
	}
	return rdx.FormatError(WrongValueError, "output.tree must be one of %s, %s, %s; got %q", TreeIndented, TreeFlat, TreeNone, c.Output.Tree)
}

// ParserOptions converts parser section to parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
	if c.Parser.StepLimit > 0 {
		opts = append(opts, parser.WithStepLimit(c.Parser.StepLimit))
	}
	return opts
}
