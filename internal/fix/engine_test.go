package fix

import (
	"testing"

	"sift/internal/diag"
	"sift/internal/source"
)

func fixDiag(rule string, line, col, start, end int, text string) diag.Diagnostic {
	return diag.Diagnostic{
		RuleID:   rule,
		Severity: diag.SevError,
		Location: diag.Location{Line: line, Column: col},
		Fix:      &diag.TextEdit{Span: source.Span{Start: start, End: end}, NewText: text},
	}
}

func TestApplyWithoutFixes(t *testing.T) {
	src := source.SplitBOM("var x = 1")
	plain := diag.Diagnostic{RuleID: "no-var", Location: diag.Location{Line: 1, Column: 1}}
	res := Apply(src, []diag.Diagnostic{plain})
	if res.Fixed || res.Output != "var x = 1" {
		t.Fatalf("fixed=%v output=%q", res.Fixed, res.Output)
	}
	if len(res.Remaining) != 1 {
		t.Fatalf("remaining = %d, want 1", len(res.Remaining))
	}
}

func TestApplyInOrder(t *testing.T) {
	src := source.SplitBOM("abcdef")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("b", 1, 5, 4, 5, "E"),
		fixDiag("a", 1, 1, 0, 1, "A"),
	})
	if !res.Fixed || res.Output != "AbcdEf" {
		t.Fatalf("fixed=%v output=%q", res.Fixed, res.Output)
	}
	if len(res.Applied) != 2 || res.Applied[0].RuleID != "a" || res.Applied[1].RuleID != "b" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Remaining) != 0 {
		t.Fatalf("remaining = %+v", res.Remaining)
	}
}

func TestApplyDefersConflicts(t *testing.T) {
	src := source.SplitBOM("abcdef")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("wide", 1, 2, 1, 4, "X"),
		fixDiag("inner", 1, 3, 2, 3, "Y"),
		fixDiag("adjacent", 1, 5, 4, 4, "!"),
	})
	if res.Output != "aX!ef" {
		t.Fatalf("output = %q", res.Output)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].RuleID != "inner" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if len(res.Remaining) != 1 || res.Remaining[0].RuleID != "inner" {
		t.Fatalf("remaining = %+v", res.Remaining)
	}
}

func TestApplyTieBreaksByReportOrder(t *testing.T) {
	src := source.SplitBOM("ab")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("first", 1, 2, 1, 2, "1"),
		fixDiag("second", 1, 2, 1, 2, "2"),
	})
	if res.Output != "a1" {
		t.Fatalf("output = %q", res.Output)
	}
	if res.Skipped[0].RuleID != "second" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyKeepsBOM(t *testing.T) {
	src := source.SplitBOM(source.BOM + "ab")
	res := Apply(src, []diag.Diagnostic{fixDiag("r", 1, 2, 1, 2, "B")})
	if res.Output != source.BOM+"aB" {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestApplyRemovesBOM(t *testing.T) {
	src := source.SplitBOM(source.BOM + "ab")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("unicode-bom", 1, 1, -1, 0, ""),
		fixDiag("r", 1, 2, 1, 2, "B"),
	})
	if res.Output != "aB" {
		t.Fatalf("output = %q", res.Output)
	}
}

func TestApplyInsertsBOM(t *testing.T) {
	src := source.SplitBOM("ab")
	res := Apply(src, []diag.Diagnostic{fixDiag("unicode-bom", 1, 1, 0, 0, source.BOM)})
	if res.Output != source.BOM+"ab" {
		t.Fatalf("output = %q", res.Output)
	}
	if got := source.SplitBOM(res.Output); !got.BOM || got.Body != "ab" {
		t.Fatalf("split = %+v", got)
	}
}

func TestApplyKeepsEditsBeforeInsertedBOM(t *testing.T) {
	src := source.SplitBOM("abc")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("insert", 1, 1, 0, 0, "x"),
		fixDiag("unicode-bom", 1, 1, 0, 1, source.BOM+"A"),
	})
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if want := "x" + source.BOM + "Abc"; res.Output != want {
		t.Fatalf("output = %q, want %q", res.Output, want)
	}
}

func TestApplyReinsertedBOMReplacesExisting(t *testing.T) {
	src := source.SplitBOM(source.BOM + "abc")
	res := Apply(src, []diag.Diagnostic{
		fixDiag("unicode-bom", 1, 1, 0, 1, source.BOM+"A"),
		fixDiag("r", 1, 3, 2, 3, "C"),
	})
	if want := source.BOM + "AbC"; res.Output != want {
		t.Fatalf("output = %q, want %q", res.Output, want)
	}

	res = Apply(src, []diag.Diagnostic{
		fixDiag("insert", 1, 1, 0, 0, "x"),
		fixDiag("unicode-bom", 1, 1, 0, 1, source.BOM+"A"),
	})
	if want := source.BOM + "x" + source.BOM + "Abc"; res.Output != want {
		t.Fatalf("output = %q, want %q", res.Output, want)
	}
}

func TestApplySkipsInvalidRange(t *testing.T) {
	src := source.SplitBOM("ab")
	res := Apply(src, []diag.Diagnostic{fixDiag("r", 1, 1, 1, 9, "x")})
	if res.Fixed || res.Output != "ab" {
		t.Fatalf("fixed=%v output=%q", res.Fixed, res.Output)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "invalid range" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}
