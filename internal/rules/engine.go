package rules

import (
	"context"
	"strconv"
	"time"

	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/lexer"
	"sift/internal/observ"
	"sift/internal/source"
	"sift/internal/trace"
)

// Engine runs configured rules over source text.
type Engine struct {
	Registry *Registry
	// Numbering is the line/column convention rules use in explicit locations.
	Numbering source.Numbering
	// Timings, when set, accumulates per-rule durations.
	Timings *observ.RuleTimings
}

// NewEngine returns an engine over the built-in rules.
func NewEngine() *Engine {
	return &Engine{Registry: Builtin(), Numbering: source.DefaultNumbering}
}

// Analyze lexes src and runs every rule cfg enables. An unlexable text
// yields exactly one fatal diagnostic. Errors are reserved for defects in
// rule code and unknown rule names.
func (e *Engine) Analyze(ctx context.Context, src source.Text, cfg *config.Config, opts Options) ([]diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := source.NewFile(opts.Filename, src.String())

	tokens, lexErrs := lexer.Tokenize(file, lexer.Options{})
	if len(lexErrs) > 0 {
		first := lexErrs[0]
		pos := file.Position(first.Span.Start)
		return []diag.Diagnostic{diag.NewFatal(first.Msg, diag.Location{Line: pos.Line + 1, Column: pos.Column + 1})}, nil
	}

	state := &fileState{file: file, tokens: tokens, numbering: e.Numbering}
	var out []diag.Diagnostic
	for _, name := range cfg.Enabled() {
		rule, ok := e.Registry.Get(name)
		if !ok {
			return nil, &RuleError{Rule: name, Err: config.ErrUnknownRule}
		}
		rc := cfg.Rule(name)
		reports, err := e.run(ctx, rule, rc, state, opts)
		if err != nil {
			return nil, &RuleError{Rule: name, Err: err}
		}
		out = append(out, reports...)
	}

	if opts.AllowInlineConfig {
		out = collectDirectives(tokens, file).filter(out)
	}
	diag.SortByLocation(out)
	return out, nil
}

func (e *Engine) run(ctx context.Context, rule *Rule, rc config.RuleConfig, state *fileState, opts Options) ([]diag.Diagnostic, error) {
	span, _ := trace.StartSpan(ctx, trace.ScopeRule, "rule:"+rule.ID)
	started := time.Now()

	rctx := &Context{
		RuleID:   rule.ID,
		Filename: opts.Filename,
		Options:  rc,
		state:    state,
		builder: diag.Builder{
			Rule:      rule.RuleMeta,
			Severity:  rc.Level.Severity(),
			File:      state.file,
			Numbering: state.numbering,
		},
	}
	rule.Check(rctx)

	e.Timings.Add(rule.ID, time.Since(started))
	if err := rctx.Err(); err != nil {
		span.End("failed")
		return nil, err
	}
	span.Attr("reports", strconv.Itoa(len(rctx.reports))).End("")
	return rctx.reports, nil
}
