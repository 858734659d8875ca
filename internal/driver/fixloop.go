package driver

import (
	"context"
	"strconv"
	"time"

	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/fix"
	"sift/internal/rules"
	"sift/internal/source"
	"sift/internal/trace"
)

// MaxPasses bounds the analyze-then-apply cycles run for one file.
const MaxPasses = 10

// Analyzer produces the diagnostics of one text under one configuration.
// A text that cannot be parsed yields exactly one fatal diagnostic; errors
// are reserved for defects in rule code.
type Analyzer interface {
	Analyze(ctx context.Context, src source.Text, cfg *config.Config, opts rules.Options) ([]diag.Diagnostic, error)
}

// PassStats describes one analyze-then-apply cycle.
type PassStats struct {
	Fixes   int
	Skipped int
	Analyze time.Duration
	Apply   time.Duration
}

// FixOutcome is the result of linting one text.
type FixOutcome struct {
	// Output is the final full text, byte-order mark included.
	Output      string
	Diagnostics []diag.Diagnostic
	// Fixed reports whether any pass applied an edit.
	Fixed bool
	// Passes excludes the closing re-analysis of a fixed text.
	Passes []PassStats
	// Circular is set when the pass ceiling was hit while two fixes kept
	// undoing each other.
	Circular bool
}

// Verify analyzes src once without fixing.
func Verify(ctx context.Context, a Analyzer, src source.Text, cfg *config.Config, opts rules.Options) (*FixOutcome, error) {
	started := time.Now()
	diags, err := a.Analyze(ctx, src, cfg, opts)
	if err != nil {
		return nil, err
	}
	return &FixOutcome{
		Output:      src.String(),
		Diagnostics: diags,
		Passes:      []PassStats{{Analyze: time.Since(started)}},
	}, nil
}

// VerifyAndFix analyzes src and applies fixes until a pass applies nothing
// or MaxPasses is reached. When the last pass changed the text its
// diagnostics are stale, so the final text is analyzed once more.
func VerifyAndFix(ctx context.Context, a Analyzer, src source.Text, cfg *config.Config, opts rules.Options) (*FixOutcome, error) {
	out := &FixOutcome{}
	text := src
	var history []string
	lastFixed := false

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		history = append(history, text.String())

		span, pctx := trace.StartSpan(ctx, trace.ScopePass, "pass "+strconv.Itoa(pass))
		started := time.Now()
		diags, err := a.Analyze(pctx, text, cfg, opts)
		analyzeDur := time.Since(started)
		if err != nil {
			span.End("error")
			return nil, err
		}
		if diag.IsFatalResult(diags) {
			out.Passes = append(out.Passes, PassStats{Analyze: analyzeDur})
			out.Diagnostics = diags
			out.Output = text.String()
			span.End("fatal")
			return out, nil
		}

		started = time.Now()
		res := fix.Apply(text, diags)
		stats := PassStats{
			Fixes:   len(res.Applied),
			Skipped: len(res.Skipped),
			Analyze: analyzeDur,
			Apply:   time.Since(started),
		}
		out.Passes = append(out.Passes, stats)
		span.Attr("fixes", strconv.Itoa(stats.Fixes)).
			Attr("diagnostics", strconv.Itoa(len(diags))).
			End("")

		lastFixed = res.Fixed
		if !res.Fixed {
			out.Diagnostics = diags
			break
		}
		out.Fixed = true
		text = source.SplitBOM(res.Output)
		if pass >= MaxPasses {
			if len(history) >= 2 && history[len(history)-2] == res.Output {
				out.Circular = true
				trace.PointFrom(ctx, trace.ScopeFile, "circular fixes", opts.Filename)
			}
			break
		}
	}

	if lastFixed {
		span, pctx := trace.StartSpan(ctx, trace.ScopePass, "reanalyze")
		diags, err := a.Analyze(pctx, text, cfg, opts)
		if err != nil {
			span.End("error")
			return nil, err
		}
		span.End("")
		out.Diagnostics = diags
	}
	out.Output = text.String()
	return out, nil
}
