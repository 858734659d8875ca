package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"sift/internal/diag"
	"sift/internal/source"
)

func sampleResults() []FileResult {
	return []FileResult{
		{Path: "clean.js"},
		{
			Path: "a.js",
			Diagnostics: []diag.Diagnostic{
				{
					RuleID:   "no-var",
					Severity: diag.SevWarning,
					Message:  "Unexpected var.",
					Location: diag.Location{Line: 1, Column: 1},
					Suggestions: []diag.Suggestion{{
						Desc:      "Replace 'var' with 'let'.",
						MessageID: "useLet",
						Fix:       diag.TextEdit{Span: source.Span{Start: 0, End: 3}, NewText: "let"},
					}},
				},
				{
					RuleID:   "semi",
					Severity: diag.SevError,
					Message:  "Missing semicolon.",
					Location: diag.Location{Line: 1, Column: 10, EndLine: 2, EndColumn: 1},
					Fix:      &diag.TextEdit{Span: source.Span{Start: 9, End: 9}, NewText: ";"},
				},
			},
		},
	}
}

func TestStylishPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Stylish(&buf, sampleResults(), StylishOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "\na.js\n" +
		"   1:1  warning  Unexpected var.     no-var\n" +
		"  1:10  error    Missing semicolon.  semi\n" +
		"\n✖ 2 problems (1 error, 1 warning)\n" +
		"  1 error and 0 warnings potentially fixable with the `--fix` option.\n\n"
	if buf.String() != want {
		t.Fatalf("stylish output mismatch:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestStylishNoProblemsWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := Stylish(&buf, []FileResult{{Path: "a.js"}}, StylishOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestStylishColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Stylish(&buf, sampleResults(), StylishOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI sequences in %q", buf.String())
	}
}

func TestStylishFatalWithoutRule(t *testing.T) {
	results := []FileResult{{
		Path:        "bad.js",
		Diagnostics: []diag.Diagnostic{diag.NewFatal("Unterminated string", diag.Location{Line: 3, Column: 7})},
	}}
	var buf bytes.Buffer
	if err := Stylish(&buf, results, StylishOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "  3:7  error  Parsing error: Unterminated string\n") {
		t.Fatalf("output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "fixable") {
		t.Fatalf("fatal errors are not fixable: %q", buf.String())
	}
}

func TestJSONReport(t *testing.T) {
	results := sampleResults()
	results = append(results, FileResult{
		Path:        "bad.js",
		Diagnostics: []diag.Diagnostic{diag.NewFatal("Unterminated string", diag.Location{Line: 1, Column: 2})},
	}, FileResult{Path: "fixed.js", Fixed: true, Output: "let a = 1;\n"})

	var buf bytes.Buffer
	if err := JSON(&buf, results, JSONOpts{Indent: true}); err != nil {
		t.Fatal(err)
	}
	var files []FileJSON
	if err := json.Unmarshal(buf.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(files) != 4 {
		t.Fatalf("files = %d", len(files))
	}

	if files[0].Messages == nil || len(files[0].Messages) != 0 || files[0].Output != nil {
		t.Fatalf("clean file = %+v", files[0])
	}

	a := files[1]
	if a.ErrorCount != 1 || a.WarningCount != 1 || a.FixableErrorCount != 1 || a.FixableWarningCount != 0 {
		t.Fatalf("counts = %+v", a)
	}
	noVar, semi := a.Messages[0], a.Messages[1]
	if noVar.Severity != 1 || noVar.Fix != nil || len(noVar.Suggestions) != 1 || noVar.Suggestions[0].Fix.Text != "let" {
		t.Fatalf("no-var message = %+v", noVar)
	}
	if noVar.EndLine != 0 {
		t.Fatalf("missing end must be omitted: %+v", noVar)
	}
	if semi.Severity != 2 || semi.Fix == nil || semi.Fix.Range != [2]int{9, 9} || semi.EndLine != 2 {
		t.Fatalf("semi message = %+v", semi)
	}
	if semi.RuleID == nil || *semi.RuleID != "semi" {
		t.Fatalf("rule id = %v", semi.RuleID)
	}

	bad := files[2]
	if bad.FatalErrorCount != 1 || bad.Messages[0].RuleID != nil || !bad.Messages[0].Fatal {
		t.Fatalf("fatal file = %+v", bad)
	}
	if files[3].Output == nil || *files[3].Output != "let a = 1;\n" {
		t.Fatalf("fixed output = %v", files[3].Output)
	}
	if !strings.Contains(buf.String(), `"ruleId": null`) {
		t.Fatalf("fatal message should carry a null ruleId:\n%s", buf.String())
	}
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "src", "a.js")
	outside := filepath.Join(filepath.Dir(base), "other.js")

	if got := formatPath(inside, PathModeAuto, base); got != filepath.Join("src", "a.js") {
		t.Errorf("auto inside = %q", got)
	}
	if got := formatPath(outside, PathModeAuto, base); got != outside {
		t.Errorf("auto outside = %q", got)
	}
	if got := formatPath(inside, PathModeBasename, base); got != "a.js" {
		t.Errorf("basename = %q", got)
	}
	if got := formatPath("a.js", PathModeAbsolute, ""); !filepath.IsAbs(got) {
		t.Errorf("absolute = %q", got)
	}
	if _, ok := ParsePathMode("bogus"); ok {
		t.Errorf("bogus path mode accepted")
	}
}
