package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
)

// FileName is the configuration file looked up next to linted files.
const FileName = "sift.toml"

var (
	ErrInvalidLevel = errors.New("invalid rule level")
	ErrUnknownRule  = errors.New("unknown rule")
)

// RuleConfig is the effective setting of one rule.
type RuleConfig struct {
	Level   Level
	Options []any
}

// StringOption returns option i when it is a string, def otherwise.
func (rc RuleConfig) StringOption(i int, def string) string {
	if i < len(rc.Options) {
		if s, ok := rc.Options[i].(string); ok {
			return s
		}
	}
	return def
}

// Config is the fully merged configuration applied to a file. Values are
// shared between files and must not be mutated after construction.
type Config struct {
	// Path of the file it was loaded from; empty for built-in defaults.
	Path         string
	InlineConfig bool
	Rules        map[string]RuleConfig
}

// New returns an empty configuration with inline directives allowed.
func New() *Config {
	return &Config{InlineConfig: true, Rules: make(map[string]RuleConfig)}
}

// NormalizeRuleName canonicalises a rule name as written by users.
func NormalizeRuleName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Rule returns the setting for name; unknown rules are off.
func (c *Config) Rule(name string) RuleConfig {
	return c.Rules[name]
}

// Enabled lists the rules whose level is not off, sorted by name.
func (c *Config) Enabled() []string {
	names := make([]string, 0, len(c.Rules))
	for name, rc := range c.Rules {
		if rc.Level != LevelOff {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// With returns a copy of c with overrides layered on top.
func (c *Config) With(overrides map[string]RuleConfig) *Config {
	out := &Config{
		Path:         c.Path,
		InlineConfig: c.InlineConfig,
		Rules:        make(map[string]RuleConfig, len(c.Rules)+len(overrides)),
	}
	for name, rc := range c.Rules {
		out.Rules[name] = rc
	}
	for name, rc := range overrides {
		if rc.Options == nil {
			rc.Options = c.Rules[name].Options
		}
		out.Rules[name] = rc
	}
	return out
}

// Validate reports the first rule name that known rejects.
func (c *Config) Validate(known func(string) bool) error {
	if known == nil {
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(c.Rules)) {
		if !known(name) {
			if c.Path != "" {
				return fmt.Errorf("%s: %w %q", c.Path, ErrUnknownRule, name)
			}
			return fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
	}
	return nil
}

type canonicalRule struct {
	Level   uint8 `msgpack:"level"`
	Options []any `msgpack:"options"`
}

type canonicalConfig struct {
	InlineConfig bool                     `msgpack:"inline_config"`
	Rules        map[string]canonicalRule `msgpack:"rules"`
}

// Canonical returns a stable serialization of the settings that influence
// analysis. Equal configurations always produce equal bytes.
func (c *Config) Canonical() ([]byte, error) {
	cc := canonicalConfig{
		InlineConfig: c.InlineConfig,
		Rules:        make(map[string]canonicalRule, len(c.Rules)),
	}
	for name, rc := range c.Rules {
		cc.Rules[name] = canonicalRule{Level: uint8(rc.Level), Options: rc.Options}
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&cc); err != nil {
		return nil, fmt.Errorf("config: canonical encode: %w", err)
	}
	return buf.Bytes(), nil
}
