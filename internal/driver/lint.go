package driver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"sift/internal/cache"
	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/rules"
	"sift/internal/source"
	"sift/internal/trace"
)

// Linter lints files on disk.
type Linter struct {
	Analyzer Analyzer
	Configs  config.Provider
	// Cache is optional; nil disables result caching.
	Cache *cache.ResultCache
	// Fix runs the fix passes. Writing results back is ApplyAndWrite's job.
	Fix bool
	// AllowInlineConfig is combined with the file configuration's own switch.
	AllowInlineConfig bool
	Progress          ProgressSink
}

// Result is the outcome of linting one file.
type Result struct {
	Path string
	// Cached is set when analysis was skipped. Outcome then carries only
	// the stored diagnostics.
	Cached  bool
	Outcome FixOutcome
}

// Counts tallies the result's diagnostics.
func (r *Result) Counts() diag.Counts {
	return diag.Count(r.Outcome.Diagnostics)
}

// LintFile lints path, consulting and updating the cache. Files that end
// with diagnostics are evicted so the next run examines them again; fixed
// files are evicted because their content is about to change.
func (l *Linter) LintFile(ctx context.Context, path string) (*Result, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "lint")
	span.Attr("path", path)
	defer span.End("")

	cfg, err := l.Configs.ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var ticket cache.Ticket
	if l.Cache != nil {
		t, diags, hit, lookupErr := l.Cache.Lookup(path, cfg)
		if lookupErr != nil {
			return nil, fmt.Errorf("%s: %w", path, lookupErr)
		}
		if hit {
			trace.PointFrom(ctx, trace.ScopeFile, "cache hit", path)
			return &Result{Path: path, Cached: true, Outcome: FixOutcome{Diagnostics: diags}}, nil
		}
		trace.PointFrom(ctx, trace.ScopeFile, "cache miss", path)
		ticket = t
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src := source.SplitBOM(string(data))
	opts := rules.Options{
		AllowInlineConfig: cfg.InlineConfig && l.AllowInlineConfig,
		Filename:          path,
	}

	var outcome *FixOutcome
	if l.Fix {
		outcome, err = VerifyAndFix(ctx, l.Analyzer, src, cfg, opts)
	} else {
		outcome, err = Verify(ctx, l.Analyzer, src, cfg, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	span.Attr("passes", strconv.Itoa(len(outcome.Passes)))

	if l.Cache != nil {
		if len(outcome.Diagnostics) > 0 || outcome.Fixed {
			l.Cache.Evict(path)
			trace.PointFrom(ctx, trace.ScopeFile, "cache evict", path)
		} else if err := l.Cache.Store(ticket, outcome.Diagnostics); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &Result{Path: path, Outcome: *outcome}, nil
}

// lintEvented wraps LintFile with progress events.
func (l *Linter) lintEvented(ctx context.Context, path string) (*Result, error) {
	stage := StageLint
	if l.Fix {
		stage = StageFix
	}
	emit(l.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
	started := time.Now()
	res, err := l.LintFile(ctx, path)
	elapsed := time.Since(started)
	if err != nil {
		emit(l.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: elapsed})
		return nil, err
	}
	status := StatusDone
	if res.Cached {
		status = StatusCached
	}
	emit(l.Progress, Event{
		File:     path,
		Stage:    stage,
		Status:   status,
		Elapsed:  elapsed,
		Problems: len(res.Outcome.Diagnostics),
	})
	return res, nil
}

// ApplyAndWrite writes the fixed text of r back to its file, keeping the
// file mode. Results without applied fixes cause no I/O.
func ApplyAndWrite(r *Result) (bool, error) {
	if r == nil || !r.Outcome.Fixed {
		return false, nil
	}
	info, err := os.Stat(r.Path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(r.Path, []byte(r.Outcome.Output), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
