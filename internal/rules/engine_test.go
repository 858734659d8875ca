package rules

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/fix"
	"sift/internal/observ"
	"sift/internal/source"
)

func configWith(rules map[string]config.RuleConfig) *config.Config {
	cfg := config.New()
	for name, rc := range rules {
		cfg.Rules[name] = rc
	}
	return cfg
}

func on(options ...any) config.RuleConfig {
	return config.RuleConfig{Level: config.LevelError, Options: options}
}

func analyze(t *testing.T, src string, rules map[string]config.RuleConfig) []diag.Diagnostic {
	t.Helper()
	e := NewEngine()
	diags, err := e.Analyze(context.Background(), source.SplitBOM(src), configWith(rules), Options{AllowInlineConfig: true, Filename: "test.js"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return diags
}

func fixed(src string, diags []diag.Diagnostic) string {
	return fix.Apply(source.SplitBOM(src), diags).Output
}

func TestSemiMissingAtEOF(t *testing.T) {
	diags := analyze(t, "var x=1", map[string]config.RuleConfig{"semi": on()})
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Message != "Missing semicolon." || d.Location != (diag.Location{Line: 1, Column: 8}) {
		t.Fatalf("diag = %+v", d)
	}
	if d.Fix == nil || d.Fix.Span != (source.Span{Start: 7, End: 7}) || d.Fix.NewText != ";" {
		t.Fatalf("fix = %+v", d.Fix)
	}
}

func TestSemiStatementBoundaries(t *testing.T) {
	src := "let a = 1\nlet b = foo(\n  2,\n  3\n)\nif (a)\n  b++\n"
	diags := analyze(t, src, map[string]config.RuleConfig{"semi": on()})
	if len(diags) != 3 {
		t.Fatalf("got %d diags: %+v", len(diags), diags)
	}
	want := "let a = 1;\nlet b = foo(\n  2,\n  3\n);\nif (a)\n  b++;\n"
	if got := fixed(src, diags); got != want {
		t.Fatalf("fixed = %q, want %q", got, want)
	}
}

func TestSemiIgnoresObjectLiterals(t *testing.T) {
	diags := analyze(t, "const o = {\n  a: 1\n};\nfunction f(a)\n{\n  return a;\n}\n", map[string]config.RuleConfig{"semi": on()})
	if len(diags) != 0 {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestNoExtraSemi(t *testing.T) {
	src := ";;var a = 1;;\nfor (;;) {}\n"
	diags := analyze(t, src, map[string]config.RuleConfig{"no-extra-semi": on()})
	if len(diags) != 3 {
		t.Fatalf("got %d diags: %+v", len(diags), diags)
	}
	if got := fixed(src, diags); got != "var a = 1;\nfor (;;) {}\n" {
		t.Fatalf("fixed = %q", got)
	}
}

func TestNoVarOffersSuggestionOnly(t *testing.T) {
	diags := analyze(t, "var a = 1;", map[string]config.RuleConfig{"no-var": on()})
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Fix != nil {
		t.Fatalf("no-var must not carry a fix")
	}
	if len(d.Suggestions) != 1 {
		t.Fatalf("suggestions = %+v", d.Suggestions)
	}
	s := d.Suggestions[0]
	if s.Desc != "Replace 'var' with 'let'." || s.Fix.Span != (source.Span{Start: 0, End: 3}) || s.Fix.NewText != "let" {
		t.Fatalf("suggestion = %+v", s)
	}
}

func TestQuotes(t *testing.T) {
	src := `x = 'it\'s' + "ok";`
	diags := analyze(t, src, map[string]config.RuleConfig{"quotes": on()})
	if len(diags) != 1 || diags[0].Message != "Strings must use doublequote." {
		t.Fatalf("diags = %+v", diags)
	}
	if got := fixed(src, diags); got != `x = "it's" + "ok";` {
		t.Fatalf("fixed = %q", got)
	}

	src = `x = "a'b";`
	diags = analyze(t, src, map[string]config.RuleConfig{"quotes": on("single")})
	if got := fixed(src, diags); got != `x = 'a\'b';` {
		t.Fatalf("fixed = %q", got)
	}
}

func TestNoTrailingSpacesSkipsTemplates(t *testing.T) {
	src := "a;  \nb;\t\n`x  \ny`;\n"
	diags := analyze(t, src, map[string]config.RuleConfig{"no-trailing-spaces": on()})
	if len(diags) != 2 {
		t.Fatalf("diags = %+v", diags)
	}
	if loc := diags[0].Location; loc != (diag.Location{Line: 1, Column: 3, EndLine: 1, EndColumn: 5}) {
		t.Fatalf("location = %+v", loc)
	}
	if got := fixed(src, diags); got != "a;\nb;\n`x  \ny`;\n" {
		t.Fatalf("fixed = %q", got)
	}
}

func TestEolLast(t *testing.T) {
	diags := analyze(t, "a;", map[string]config.RuleConfig{"eol-last": on()})
	if got := fixed("a;", diags); got != "a;\n" {
		t.Fatalf("fixed = %q", got)
	}
	if diags := analyze(t, "", map[string]config.RuleConfig{"eol-last": on()}); len(diags) != 0 {
		t.Fatalf("empty file reported: %+v", diags)
	}
}

func TestEqeqeqFixesOnlySafeComparisons(t *testing.T) {
	src := "if (a == b) {}\nif (\"x\" != \"y\") {}\n"
	diags := analyze(t, src, map[string]config.RuleConfig{"eqeqeq": on()})
	if len(diags) != 2 {
		t.Fatalf("diags = %+v", diags)
	}
	if diags[0].Message != "Expected '===' and instead saw '=='." || diags[0].Fix != nil {
		t.Fatalf("first = %+v", diags[0])
	}
	if diags[1].Fix == nil || diags[1].Fix.NewText != "!==" {
		t.Fatalf("second fix = %+v", diags[1].Fix)
	}
}

func TestUnicodeBOM(t *testing.T) {
	src := source.BOM + "a;\n"
	diags := analyze(t, src, map[string]config.RuleConfig{"unicode-bom": on()})
	if len(diags) != 1 || diags[0].Location != (diag.Location{Line: 1, Column: 1}) {
		t.Fatalf("diags = %+v", diags)
	}
	if got := fixed(src, diags); got != "a;\n" {
		t.Fatalf("fixed = %q", got)
	}

	diags = analyze(t, "a;\n", map[string]config.RuleConfig{"unicode-bom": on("always")})
	if got := fixed("a;\n", diags); got != source.BOM+"a;\n" {
		t.Fatalf("fixed = %q", got)
	}
}

func TestLexErrorIsSingleFatalDiagnostic(t *testing.T) {
	diags := analyze(t, "var s = 'abc", map[string]config.RuleConfig{"semi": on(), "no-var": on()})
	if !diag.IsFatalResult(diags) {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Message != "Parsing error: unterminated string literal" || d.Location != (diag.Location{Line: 1, Column: 9}) {
		t.Fatalf("fatal = %+v", d)
	}
	if d.Severity != diag.SevError || d.RuleID != "" {
		t.Fatalf("fatal header = %+v", d)
	}
}

func TestInlineDirectives(t *testing.T) {
	src := strings.Join([]string{
		"debugger; // sift-disable-line no-debugger",
		"// sift-disable-next-line",
		"debugger;",
		"/* sift-disable no-debugger -- noisy block */",
		"debugger;",
		"/* sift-enable no-debugger */",
		"debugger;",
		"/* sift-disable */",
		"/* sift-enable no-debugger */",
		"debugger;",
		"",
	}, "\n")
	rules := map[string]config.RuleConfig{"no-debugger": on()}

	diags := analyze(t, src, rules)
	if len(diags) != 2 || diags[0].Location.Line != 7 || diags[1].Location.Line != 10 {
		t.Fatalf("diags = %+v", diags)
	}

	e := NewEngine()
	all, err := e.Analyze(context.Background(), source.SplitBOM(src), configWith(rules), Options{Filename: "test.js"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("without inline config: %d diags", len(all))
	}
}

func TestSeverityFollowsLevel(t *testing.T) {
	diags := analyze(t, "debugger;", map[string]config.RuleConfig{"no-debugger": {Level: config.LevelWarn}})
	if len(diags) != 1 || diags[0].Severity != diag.SevWarning {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestRuleDefectAbortsAnalysis(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Rule{
		Meta: Meta{RuleMeta: diag.RuleMeta{ID: "broken"}},
		Check: func(ctx *Context) {
			ctx.Report(diag.Descriptor{Message: "nowhere"})
		},
	})
	e := &Engine{Registry: reg, Numbering: source.DefaultNumbering}
	_, err := e.Analyze(context.Background(), source.SplitBOM("a;"), configWith(map[string]config.RuleConfig{"broken": on()}), Options{})
	if !errors.Is(err, diag.ErrInvalidReport) {
		t.Fatalf("err = %v, want ErrInvalidReport", err)
	}
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "broken" {
		t.Fatalf("err = %#v, want RuleError for broken", err)
	}
}

func TestUnknownRuleFails(t *testing.T) {
	e := NewEngine()
	_, err := e.Analyze(context.Background(), source.SplitBOM("a;"), configWith(map[string]config.RuleConfig{"nope": on()}), Options{})
	if !errors.Is(err, config.ErrUnknownRule) {
		t.Fatalf("err = %v", err)
	}
}

func TestTimingsRecorded(t *testing.T) {
	e := NewEngine()
	e.Timings = observ.NewRuleTimings()
	if _, err := e.Analyze(context.Background(), source.SplitBOM("a;"), configWith(map[string]config.RuleConfig{"semi": on()}), Options{}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r := e.Timings.Report(); len(r) != 1 || r[0].Rule != "semi" || r[0].Calls != 1 {
		t.Fatalf("timings = %+v", r)
	}
}

func TestRegistry(t *testing.T) {
	reg := Builtin()
	all := reg.All()
	if len(all) != 9 {
		t.Fatalf("builtin rules = %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("rules not sorted: %s >= %s", all[i-1].ID, all[i].ID)
		}
	}
	if err := reg.Register(semiRule()); err == nil {
		t.Fatalf("duplicate registration accepted")
	}
	rec := reg.Recommended()
	if rec.Rule("semi").Level != config.LevelError || rec.Rule("quotes").Level != config.LevelOff {
		t.Fatalf("recommended = %+v", rec.Rules)
	}
}
