package diag

import (
	"errors"
	"iter"
	"testing"

	"sift/internal/source"
)

type testNode struct {
	span source.Span
	kind string
}

func (n testNode) NodeSpan() source.Span { return n.span }
func (n testNode) NodeKind() string      { return n.kind }

func newBuilder(body string, meta RuleMeta) *Builder {
	return &Builder{
		Rule:      meta,
		Severity:  SevError,
		File:      source.NewFile("test.js", body),
		Numbering: source.DefaultNumbering,
	}
}

var testMeta = RuleMeta{
	ID: "test-rule",
	Messages: map[string]string{
		"unexpected": "Unexpected {{ what }}.",
		"useLet":     "Use let instead.",
	},
	Fixable:        true,
	HasSuggestions: true,
}

func TestBuildLocationFromNode(t *testing.T) {
	b := newBuilder("let a\nfoo bar", testMeta)
	d, err := b.Build(Descriptor{
		Node:      testNode{span: source.Span{Start: 10, End: 13}, kind: "Identifier"},
		MessageID: "unexpected",
		Data:      map[string]any{"what": "bar"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Location{Line: 2, Column: 5, EndLine: 2, EndColumn: 8}
	if d.Location != want {
		t.Fatalf("location = %+v, want %+v", d.Location, want)
	}
	if d.Message != "Unexpected bar." || d.MessageID != "unexpected" {
		t.Fatalf("message = %q (%s)", d.Message, d.MessageID)
	}
	if d.RuleID != "test-rule" || d.Severity != SevError || d.NodeKind != "Identifier" {
		t.Fatalf("unexpected header %+v", d)
	}
}

func TestBuildExplicitLoc(t *testing.T) {
	cases := []struct {
		numbering source.Numbering
		start     source.Position
	}{
		{source.DefaultNumbering, source.Position{Line: 1, Column: 0}},
		{source.Numbering{LineStart: 0, ColumnStart: 0}, source.Position{Line: 0, Column: 0}},
		{source.Numbering{LineStart: 1, ColumnStart: 1}, source.Position{Line: 1, Column: 1}},
	}
	for _, tc := range cases {
		b := newBuilder("x", testMeta)
		b.Numbering = tc.numbering
		d, err := b.Build(Descriptor{Loc: &Loc{Start: tc.start}, Message: "m"})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if d.Location != (Location{Line: 1, Column: 1}) {
			t.Errorf("numbering %+v: location = %+v", tc.numbering, d.Location)
		}
		if d.Location.HasEnd() {
			t.Errorf("numbering %+v: unexpected end", tc.numbering)
		}
	}
}

func TestBuildMergesFix(t *testing.T) {
	b := newBuilder("abcdef", testMeta)
	calls := 0
	d, err := b.Build(Descriptor{
		Node:    testNode{span: source.Span{Start: 1, End: 2}},
		Message: "m",
		Fix: func(fx Fixer) iter.Seq[TextEdit] {
			calls++
			return Edits(
				fx.ReplaceTextRange(source.Span{Start: 1, End: 2}, "Z"),
				fx.InsertTextAfterRange(source.Span{Start: 3, End: 4}, "!"),
			)
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if calls != 1 {
		t.Fatalf("fix called %d times", calls)
	}
	if d.Fix == nil || d.Fix.Span != (source.Span{Start: 1, End: 4}) || d.Fix.NewText != "Zcd!" {
		t.Fatalf("fix = %+v", d.Fix)
	}
}

func TestBuildDropsNoopFix(t *testing.T) {
	b := newBuilder("abc", testMeta)
	node := testNode{span: source.Span{Start: 0, End: 1}}
	d, err := b.Build(Descriptor{
		Node:    node,
		Message: "m",
		Fix: func(fx Fixer) iter.Seq[TextEdit] {
			return Edits(fx.ReplaceText(node, "a"))
		},
		Suggest: []SuggestionDescriptor{
			{Desc: "empty", Fix: func(Fixer) iter.Seq[TextEdit] { return Edits() }},
			{MessageID: "useLet", Fix: func(fx Fixer) iter.Seq[TextEdit] {
				return Edits(fx.ReplaceText(node, "b"))
			}},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Fix != nil {
		t.Fatalf("no-op fix kept: %+v", d.Fix)
	}
	if len(d.Suggestions) != 1 {
		t.Fatalf("suggestions = %+v", d.Suggestions)
	}
	if s := d.Suggestions[0]; s.Desc != "Use let instead." || s.MessageID != "useLet" || s.Fix.NewText != "b" {
		t.Fatalf("suggestion = %+v", s)
	}
}

func TestBuildErrors(t *testing.T) {
	node := testNode{span: source.Span{Start: 0, End: 1}}
	fix := func(fx Fixer) iter.Seq[TextEdit] { return Edits(fx.Remove(node)) }
	cases := []struct {
		name string
		meta RuleMeta
		desc Descriptor
		want error
	}{
		{"no location", testMeta, Descriptor{Message: "m"}, ErrInvalidReport},
		{"no message", testMeta, Descriptor{Node: node}, ErrInvalidReport},
		{"both messages", testMeta, Descriptor{Node: node, Message: "m", MessageID: "useLet"}, ErrInvalidReport},
		{"unknown id", testMeta, Descriptor{Node: node, MessageID: "nope"}, ErrUnknownMessageID},
		{"not fixable", RuleMeta{ID: "r"}, Descriptor{Node: node, Message: "m", Fix: fix}, ErrNotFixable},
		{"suggestions undeclared", RuleMeta{ID: "r"}, Descriptor{Node: node, Message: "m",
			Suggest: []SuggestionDescriptor{{Desc: "d", Fix: fix}}}, ErrSuggestionsNotDeclared},
		{"ambiguous suggestion", testMeta, Descriptor{Node: node, Message: "m",
			Suggest: []SuggestionDescriptor{{Desc: "d", MessageID: "useLet", Fix: fix}}}, ErrAmbiguousSuggestionText},
		{"suggestion without text", testMeta, Descriptor{Node: node, Message: "m",
			Suggest: []SuggestionDescriptor{{Fix: fix}}}, ErrAmbiguousSuggestionText},
		{"unknown suggestion id", testMeta, Descriptor{Node: node, Message: "m",
			Suggest: []SuggestionDescriptor{{MessageID: "nope", Fix: fix}}}, ErrUnknownSuggestionMessageID},
		{"suggestion without fix", testMeta, Descriptor{Node: node, Message: "m",
			Suggest: []SuggestionDescriptor{{Desc: "d"}}}, ErrMissingSuggestionFix},
		{"overlapping fix", testMeta, Descriptor{Node: node, Message: "m",
			Fix: func(fx Fixer) iter.Seq[TextEdit] {
				return Edits(fx.RemoveRange(source.Span{Start: 0, End: 2}), fx.RemoveRange(source.Span{Start: 1, End: 3}))
			}}, ErrOverlappingFixRanges},
	}
	for _, tc := range cases {
		b := newBuilder("abc", tc.meta)
		if _, err := b.Build(tc.desc); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCountAndSort(t *testing.T) {
	fix := &TextEdit{}
	diags := []Diagnostic{
		{RuleID: "b", Severity: SevWarning, Location: Location{Line: 2, Column: 1}},
		{RuleID: "a", Severity: SevError, Location: Location{Line: 1, Column: 4}, Fix: fix},
		{RuleID: "c", Severity: SevError, Location: Location{Line: 1, Column: 4}},
	}
	SortByLocation(diags)
	if diags[0].RuleID != "a" || diags[1].RuleID != "c" || diags[2].RuleID != "b" {
		t.Fatalf("order = %s %s %s", diags[0].RuleID, diags[1].RuleID, diags[2].RuleID)
	}
	c := Count(diags)
	if c.Errors != 2 || c.Warnings != 1 || c.FixableErrors != 1 || c.FixableWarnings != 0 {
		t.Fatalf("counts = %+v", c)
	}
	if !IsFatalResult([]Diagnostic{NewFatal("x", Location{Line: 1, Column: 1})}) {
		t.Fatalf("fatal result not detected")
	}
}
