package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/lrtab/lr"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the defaults for command line flags. It is read from a TOML
// file like this:
//
//    grammar = "expr"
//    mode    = "slr1"
//    lexer   = "go"
//    trace   = "Error"
//    outdir  = "/tmp"
//
type Config struct {
	Grammar string `toml:"grammar"`
	Mode    string `toml:"mode"`
	Lexer   string `toml:"lexer"`
	Trace   string `toml:"trace"`
	OutDir  string `toml:"outdir"`
}

// DefaultConfig is in effect if neither a configuration file nor flags say otherwise.
var DefaultConfig = Config{
	Grammar: "g1",
	Mode:    "slr1",
	Lexer:   "fields",
	Trace:   "Error",
	OutDir:  ".",
}

// LoadConfig reads a TOML configuration file and merges it with the defaults.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig, fmt.Errorf("cannot read configuration: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a TOML configuration and merges it with the defaults.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return DefaultConfig, fmt.Errorf("malformed configuration: %w", err)
	}
	return DefaultConfig.Override(c), nil
}

// Override returns c with every non-empty field of o replacing c's value.
func (c Config) Override(o Config) Config {
	if o.Grammar != "" {
		c.Grammar = o.Grammar
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.Lexer != "" {
		c.Lexer = o.Lexer
	}
	if o.Trace != "" {
		c.Trace = o.Trace
	}
	if o.OutDir != "" {
		c.OutDir = o.OutDir
	}
	return c
}

// Validate checks for known grammar, mode and lexer names.
func (c Config) Validate() error {
	if _, ok := demoGrammars[c.Grammar]; !ok {
		return fmt.Errorf("unknown grammar %q, known are %s", c.Grammar, strings.Join(demoNames(), ", "))
	}
	if _, err := c.TableMode(); err != nil {
		return err
	}
	return checkLexer(c.Lexer)
}

func checkLexer(name string) error {
	switch name {
	case "fields", "go", "lexmachine", "maleeni":
		return nil
	}
	return fmt.Errorf("unknown lexer %q", name)
}

// TableMode translates the mode setting.
func (c Config) TableMode() (lr.TableMode, error) {
	switch strings.ToLower(c.Mode) {
	case "lr0", "lr(0)":
		return lr.LR0, nil
	case "slr1", "slr", "slr(1)":
		return lr.SLR1, nil
	}
	return lr.SLR1, fmt.Errorf("unknown table mode %q", c.Mode)
}
