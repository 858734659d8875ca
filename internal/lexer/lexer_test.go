package lexer

import (
	"testing"

	"sift/internal/source"
	"sift/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, []Error) {
	t.Helper()
	return Tokenize(source.NewFile("test.js", src), Options{})
}

func kindsAndTexts(toks []token.Token) ([]token.Kind, []string) {
	kinds := make([]token.Kind, 0, len(toks))
	texts := make([]string, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}
	return kinds, texts
}

func TestTokenizeSimpleStatement(t *testing.T) {
	toks, errs := lex(t, "var x=1")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	kinds, texts := kindsAndTexts(toks)
	wantKinds := []token.Kind{token.Keyword, token.Ident, token.Punct, token.Number, token.EOF}
	wantTexts := []string{"var", "x", "=", "1", ""}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(wantKinds), len(kinds), texts)
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] || texts[i] != wantTexts[i] {
			t.Errorf("token %d: got %v %q, want %v %q", i, kinds[i], texts[i], wantKinds[i], wantTexts[i])
		}
	}
	if toks[3].Span != (source.Span{Start: 6, End: 7}) {
		t.Errorf("unexpected span for number: %v", toks[3].Span)
	}
}

func TestTokenizeGreedyPunctuators(t *testing.T) {
	toks, errs := lex(t, "a === b !== c ?? d => e")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	_, texts := kindsAndTexts(toks)
	want := []string{"a", "===", "b", "!==", "c", "??", "d", "=>", "e", ""}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q (%v)", i, texts[i], want[i], texts)
		}
	}
}

func TestTokenizeStrings(t *testing.T) {
	toks, errs := lex(t, `'a\'b' "c" `+"`d\ne`")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.String || toks[0].Text != `'a\'b'` {
		t.Errorf("single-quoted: %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.String || toks[1].Text != `"c"` {
		t.Errorf("double-quoted: %v %q", toks[1].Kind, toks[1].Text)
	}
	if toks[2].Kind != token.Template {
		t.Errorf("template: %v %q", toks[2].Kind, toks[2].Text)
	}
}

func TestTokenizeReportsUnterminated(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{`let s = "abc`, "unterminated string literal"},
		{"let s = 'a\nb'", "unterminated string literal"},
		{"/* never closed", "unterminated block comment"},
		{"`tpl", "unterminated template literal"},
	}
	for _, tc := range cases {
		_, errs := lex(t, tc.src)
		if len(errs) == 0 {
			t.Errorf("%q: expected an error", tc.src)
			continue
		}
		if errs[0].Msg != tc.msg {
			t.Errorf("%q: got %q, want %q", tc.src, errs[0].Msg, tc.msg)
		}
	}
}

func TestTriviaAttachedToFollowingToken(t *testing.T) {
	toks, _ := lex(t, "a // note\n/* b */ c  \n")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	c := toks[1]
	if c.Text != "c" {
		t.Fatalf("expected c, got %q", c.Text)
	}
	if !c.PrecededByNewline() {
		t.Fatal("expected c to follow a newline")
	}
	comments := c.Comments()
	if len(comments) != 2 || comments[0].Text != "// note" || comments[1].Text != "/* b */" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
	eof := toks[2]
	if eof.Kind != token.EOF || len(eof.Leading) != 2 {
		t.Fatalf("EOF must carry trailing trivia, got %+v", eof.Leading)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, errs := lex(t, "0xFF 1.5 .5 1e10 2e")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	_, texts := kindsAndTexts(toks)
	want := []string{"0xFF", "1.5", ".5", "1e10", "2", "e", ""}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, texts[i], want[i])
		}
	}
}

type recorder struct{ msgs []string }

func (r *recorder) Report(_ source.Span, msg string) { r.msgs = append(r.msgs, msg) }

func TestReporterReceivesErrors(t *testing.T) {
	rec := &recorder{}
	_, errs := Tokenize(source.NewFile("x.js", "a # b"), Options{Reporter: rec})
	if len(errs) != 0 {
		t.Fatalf("'#' is a punctuator, got errors %v", errs)
	}
	_, errs = Tokenize(source.NewFile("x.js", "a \x01"), Options{Reporter: rec})
	if len(errs) != 1 || len(rec.msgs) != 1 {
		t.Fatalf("expected one error, got %v / %v", errs, rec.msgs)
	}
}
