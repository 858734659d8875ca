package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Linter linterConfig   `toml:"linter"`
	Rules  map[string]any `toml:"rules"`
}

type linterConfig struct {
	InlineConfig bool `toml:"inline_config"`
}

// Load reads and validates a sift.toml file.
func Load(path string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return build(path, fc, meta)
}

// Parse decodes configuration text; name is used in error messages.
func Parse(name, data string) (*Config, error) {
	var fc fileConfig
	meta, err := toml.Decode(data, &fc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	return build(name, fc, meta)
}

func build(path string, fc fileConfig, meta toml.MetaData) (*Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg := New()
	cfg.Path = path
	if meta.IsDefined("linter", "inline_config") {
		cfg.InlineConfig = fc.Linter.InlineConfig
	}
	for rawName, v := range fc.Rules {
		rc, err := parseRuleValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: [rules].%s: %w", path, rawName, err)
		}
		cfg.Rules[NormalizeRuleName(rawName)] = rc
	}
	return cfg, nil
}

func parseRuleValue(v any) (RuleConfig, error) {
	list, ok := v.([]any)
	if !ok {
		level, err := ParseLevel(v)
		return RuleConfig{Level: level}, err
	}
	if len(list) == 0 {
		return RuleConfig{}, fmt.Errorf("%w: empty list", ErrInvalidLevel)
	}
	level, err := ParseLevel(list[0])
	if err != nil {
		return RuleConfig{}, err
	}
	rc := RuleConfig{Level: level}
	if len(list) > 1 {
		rc.Options = list[1:]
	}
	return rc, nil
}

// ParseOverride parses a command-line rule setting of the form
// name=level or name=["level", option...].
func ParseOverride(s string) (string, RuleConfig, error) {
	name, value, ok := strings.Cut(s, "=")
	name = NormalizeRuleName(name)
	if !ok || name == "" {
		return "", RuleConfig{}, fmt.Errorf("rule override %q: expected name=level", s)
	}
	value = strings.TrimSpace(value)
	var holder struct {
		V any `toml:"v"`
	}
	if _, err := toml.Decode("v = "+value, &holder); err != nil {
		holder.V = value
	}
	rc, err := parseRuleValue(holder.V)
	if err != nil {
		return "", RuleConfig{}, fmt.Errorf("rule override %q: %w", s, err)
	}
	return name, rc, nil
}

// Find walks up from startDir looking for sift.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
