package config

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Provider supplies the effective configuration for a file.
type Provider interface {
	ForFile(path string) (*Config, error)
}

// FileProvider resolves sift.toml files by walking up from each linted file.
// Results are memoized so that files sharing a configuration file also share
// the *Config value.
type FileProvider struct {
	// Explicit, when set, is used for every file instead of discovery.
	Explicit string
	// Fallback is used when no configuration file is found.
	Fallback *Config
	// Overrides are layered on top of whatever was loaded.
	Overrides map[string]RuleConfig
	// Known validates rule names; nil accepts everything.
	Known func(string) bool

	// load reads a configuration file; nil means Load.
	load func(path string) (*Config, error)

	mu     sync.Mutex
	byDir  map[string]*Config
	byFile map[string]*Config
}

// ForFile returns the configuration in effect for path. Discovery and
// decoding run without holding the memo lock; when two workers resolve the
// same file concurrently, the first stored value wins.
func (p *FileProvider) ForFile(path string) (*Config, error) {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	p.mu.Lock()
	cfg, ok := p.byDir[dir]
	p.mu.Unlock()
	if ok {
		return cfg, nil
	}

	cfgPath := p.Explicit
	if cfgPath == "" {
		found, ok, err := Find(dir)
		if err != nil {
			return nil, err
		}
		if ok {
			cfgPath = found
		}
	}

	cfg, err = p.resolve(cfgPath)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byDir == nil {
		p.byDir = make(map[string]*Config)
	}
	p.byDir[dir] = cfg
	return cfg, nil
}

func (p *FileProvider) resolve(cfgPath string) (*Config, error) {
	p.mu.Lock()
	cfg, ok := p.byFile[cfgPath]
	p.mu.Unlock()
	if ok {
		return cfg, nil
	}

	var base *Config
	if cfgPath == "" {
		base = p.Fallback
		if base == nil {
			base = New()
		}
	} else {
		load := p.load
		if load == nil {
			load = Load
		}
		loaded, err := load(cfgPath)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	cfg = base.With(p.Overrides)
	if err := cfg.Validate(p.Known); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if stored, ok := p.byFile[cfgPath]; ok {
		return stored, nil
	}
	if p.byFile == nil {
		p.byFile = make(map[string]*Config)
	}
	p.byFile[cfgPath] = cfg
	return cfg, nil
}

// Static serves one configuration for every file.
type Static struct {
	Config *Config
}

func (s Static) ForFile(string) (*Config, error) {
	return s.Config, nil
}
