package rules

import (
	"fmt"

	"sift/internal/diag"
)

// Meta describes a rule.
type Meta struct {
	diag.RuleMeta
	Description string
	// Recommended rules are enabled as errors when no configuration file is found.
	Recommended bool
}

// Rule is a named check over one file.
type Rule struct {
	Meta
	Check func(ctx *Context)
}

// Options are passed by the driver for every analysis call.
type Options struct {
	// AllowInlineConfig enables // sift-disable... comments.
	AllowInlineConfig bool
	// Filename is the logical name of the file, used for messages only.
	Filename string
}

// RuleError wraps a defect detected while running a rule.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
