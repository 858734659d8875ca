package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/cache"
	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/diagfmt"
	"sift/internal/driver"
	"sift/internal/observ"
	"sift/internal/rules"
	"sift/internal/trace"
	"sift/internal/version"
)

type lintFlags struct {
	fix            bool
	fixDryRun      bool
	useCache       bool
	cacheLocation  string
	cacheStrategy  string
	configPath     string
	rules          []string
	noInlineConfig bool
	maxWarnings    int
	quiet          bool
	format         string
	pathMode       string
	jobs           int
	ui             string
	stats          bool
}

func newLintCmd() *cobra.Command {
	opts := &lintFlags{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint files and directories",
		Long: `Lint script files. Directories are searched recursively for .js, .mjs and .cjs files.
Configuration is read from the nearest sift.toml unless --config is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.fix, "fix", false, "fix problems automatically and write the results")
	f.BoolVar(&opts.fixDryRun, "fix-dry-run", false, "fix problems without writing files")
	f.BoolVar(&opts.useCache, "cache", false, "only check changed files")
	f.StringVar(&opts.cacheLocation, "cache-location", "", "cache file or directory (default .siftcache)")
	f.StringVar(&opts.cacheStrategy, "cache-strategy", "metadata", "change detection (metadata|content)")
	f.StringVarP(&opts.configPath, "config", "c", "", "use this configuration file instead of sift.toml lookup")
	f.StringArrayVar(&opts.rules, "rule", nil, "rule override, e.g. --rule semi=off or --rule 'quotes=[\"warn\",\"single\"]'")
	f.BoolVar(&opts.noInlineConfig, "no-inline-config", false, "ignore sift-disable comments")
	f.IntVar(&opts.maxWarnings, "max-warnings", -1, "number of warnings that triggers a non-zero exit (-1 disables)")
	f.BoolVar(&opts.quiet, "quiet", false, "report errors only")
	f.StringVar(&opts.format, "format", "stylish", "output format (stylish|json)")
	f.StringVar(&opts.pathMode, "path-mode", "auto", "how paths are printed (auto|relative|absolute|basename)")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "files linted in parallel (0 = GOMAXPROCS)")
	f.StringVar(&opts.ui, "ui", "off", "show progress UI (auto|on|off)")
	f.BoolVar(&opts.stats, "stats", false, "print pass and rule timings to stderr")
	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *lintFlags) error {
	ctx := cmd.Context()

	format := strings.ToLower(opts.format)
	if format != "stylish" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be stylish or json)", opts.format)
	}
	pathMode, ok := diagfmt.ParsePathMode(opts.pathMode)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", opts.pathMode)
	}
	mode, err := readUIMode("ui", opts.ui)
	if err != nil {
		return err
	}
	strategy, err := cache.ParseStrategy(opts.cacheStrategy)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	timer := observ.NewTimer()
	registry := rules.Builtin()
	engine := rules.NewEngine()
	engine.Registry = registry
	if opts.stats {
		engine.Timings = observ.NewRuleTimings()
	}

	overrides, err := parseRuleOverrides(opts.rules, registry)
	if err != nil {
		return err
	}
	provider := &config.FileProvider{
		Explicit:  opts.configPath,
		Fallback:  registry.Recommended(),
		Overrides: overrides,
		Known:     registry.Known,
	}

	cachePath, err := cache.ResolveLocation(opts.cacheLocation, cwd)
	if err != nil {
		return err
	}
	var results *cache.ResultCache
	if opts.useCache {
		entries := cache.OpenEntryCache(cachePath, strategy)
		if loadErr := entries.LoadError(); loadErr != nil {
			trace.PointFrom(ctx, trace.ScopeRun, "cache load failed", loadErr.Error())
		}
		results = cache.NewResultCache(entries, cache.NewDigester(version.Version, runtime.Version()))
	} else if err := cache.Delete(cachePath); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}

	done := timer.Start("discover")
	files, err := driver.ListFiles(args)
	done(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}

	linter := &driver.Linter{
		Analyzer:          engine,
		Configs:           provider,
		Cache:             results,
		Fix:               opts.fix || opts.fixDryRun,
		AllowInlineConfig: !opts.noInlineConfig,
	}

	done = timer.Start("lint")
	var linted []*driver.Result
	if format == "stylish" && shouldUseTUI(mode) && len(files) > 0 {
		linted, err = runLintWithUI(ctx, "sift", files, linter, opts.jobs)
	} else {
		linted, err = linter.LintFiles(ctx, files, opts.jobs)
	}
	done("")
	if err != nil {
		return err
	}

	if opts.fix && !opts.fixDryRun {
		done = timer.Start("write")
		written := 0
		for _, r := range linted {
			ok, err := driver.ApplyAndWrite(r)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", r.Path, err)
			}
			if ok {
				written++
			}
		}
		done(fmt.Sprintf("%d files", written))
	}

	var total diag.Counts
	report := make([]diagfmt.FileResult, 0, len(linted))
	for _, r := range linted {
		total.Add(r.Counts())
		diags := r.Outcome.Diagnostics
		if opts.quiet {
			diags = errorsOnly(diags)
		}
		report = append(report, diagfmt.FileResult{
			Path:        r.Path,
			Diagnostics: diags,
			Output:      r.Outcome.Output,
			Fixed:       r.Outcome.Fixed,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, report, diagfmt.JSONOpts{PathMode: pathMode, BaseDir: cwd})
	default:
		err = diagfmt.Stylish(out, report, diagfmt.StylishOpts{Color: colorEnabled(), PathMode: pathMode, BaseDir: cwd})
	}
	if err != nil {
		return err
	}

	if opts.stats {
		printStats(cmd.ErrOrStderr(), timer, linted, engine.Timings)
	}

	if total.Errors > 0 {
		return &exitCodeError{code: exitProblem}
	}
	if opts.maxWarnings >= 0 && total.Warnings > opts.maxWarnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "sift found too many warnings (maximum: %d).\n", opts.maxWarnings)
		return &exitCodeError{code: exitProblem}
	}
	return nil
}

func parseRuleOverrides(values []string, registry *rules.Registry) (map[string]config.RuleConfig, error) {
	if len(values) == 0 {
		return nil, nil
	}
	overrides := make(map[string]config.RuleConfig, len(values))
	for _, v := range values {
		name, rc, err := config.ParseOverride(v)
		if err != nil {
			return nil, fmt.Errorf("--rule %q: %w", v, err)
		}
		if !registry.Known(name) {
			return nil, fmt.Errorf("--rule %q: %w %q", v, config.ErrUnknownRule, name)
		}
		overrides[name] = rc
	}
	return overrides, nil
}

func errorsOnly(diags []diag.Diagnostic) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Severity == diag.SevError {
			out = append(out, d)
		}
	}
	return out
}
