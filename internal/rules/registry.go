package rules

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"sift/internal/config"
)

// Registry holds the rules known to an engine.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]*Rule
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]*Rule)}
}

// Register adds r. Registering the same id twice is an error.
func (r *Registry) Register(rule *Rule) error {
	if rule == nil || rule.ID == "" || rule.Check == nil {
		return fmt.Errorf("rules: incomplete rule definition")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.rules[rule.ID]; dup {
		return fmt.Errorf("rules: duplicate rule %q", rule.ID)
	}
	r.rules[rule.ID] = rule
	return nil
}

func (r *Registry) MustRegister(rules ...*Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Get(id string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// Known reports whether id is registered.
func (r *Registry) Known(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// All returns the registered rules sorted by id.
func (r *Registry) All() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	slices.SortFunc(out, func(a, b *Rule) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Recommended returns a configuration enabling every recommended rule as an error.
func (r *Registry) Recommended() *config.Config {
	cfg := config.New()
	for _, rule := range r.All() {
		if rule.Recommended {
			cfg.Rules[rule.ID] = config.RuleConfig{Level: config.LevelError}
		}
	}
	return cfg
}

// Builtin returns a registry with every built-in rule.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(
		semiRule(),
		noExtraSemiRule(),
		noVarRule(),
		quotesRule(),
		noTrailingSpacesRule(),
		eolLastRule(),
		eqeqeqRule(),
		noDebuggerRule(),
		unicodeBOMRule(),
	)
	return r
}
