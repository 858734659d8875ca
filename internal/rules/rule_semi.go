package rules

import (
	"iter"

	"sift/internal/diag"
	"sift/internal/token"
)

var statementEndKeywords = map[string]bool{
	"this": true, "true": true, "false": true, "null": true, "undefined": true,
	"break": true, "continue": true, "return": true, "debugger": true,
}

// continuationTokens keep an expression going across a line break.
var continuationTokens = map[string]bool{
	".": true, "?.": true, ",": true, ")": true, "]": true, "=>": true, "?": true, ":": true,
	"{": true, "(": true, "[": true, "=": true, ";": true,
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"==": true, "!=": true, "===": true, "!==": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "??": true, "&": true, "|": true, "^": true,
	"<<": true, ">>": true, ">>>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
	"&&=": true, "||=": true, "??=": true, "&=": true, "|=": true, "^=": true,
	"<<=": true, ">>=": true, ">>>=": true,
	"instanceof": true, "in": true, "of": true,
}

func semiRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "semi",
				Messages: map[string]string{"missingSemi": "Missing semicolon."},
				Fixable:  true,
			},
			Description: "require semicolons at the end of statements",
			Recommended: true,
		},
		Check: checkSemi,
	}
}

func checkSemi(ctx *Context) {
	toks := ctx.Tokens()
	l := ctx.layout()
	for i := 0; i+1 < len(toks); i++ {
		tok := toks[i]
		if !l.statementLevel(i) || !endsStatement(tok, l.controlClose[i]) {
			continue
		}
		next := toks[i+1]
		if next.Kind != token.EOF && !next.PrecededByNewline() && !next.Is("}") {
			continue
		}
		if continuationTokens[next.Text] && (next.Kind == token.Punct || next.Kind == token.Keyword) {
			continue
		}
		pos := ctx.PositionOf(tok.Span.End)
		ctx.Report(diag.Descriptor{
			Node:      tok,
			Loc:       &diag.Loc{Start: pos},
			MessageID: "missingSemi",
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.InsertTextAfter(tok, ";"))
			},
		})
	}
}

func endsStatement(tok token.Token, controlClose bool) bool {
	switch tok.Kind {
	case token.Ident, token.Number, token.String, token.Template:
		return true
	case token.Keyword:
		return statementEndKeywords[tok.Text]
	case token.Punct:
		switch tok.Text {
		case ")":
			return !controlClose
		case "]", "++", "--":
			return true
		}
	}
	return false
}
