package rules

import (
	"iter"
	"strings"

	"sift/internal/diag"
	"sift/internal/token"
)

func quotesRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "quotes",
				Messages: map[string]string{"wrongQuotes": "Strings must use {{ description }}."},
				Fixable:  true,
			},
			Description: "enforce the consistent use of either double or single quotes",
		},
		Check: checkQuotes,
	}
}

func checkQuotes(ctx *Context) {
	want := byte('"')
	description := "doublequote"
	if ctx.Options.StringOption(0, "double") == "single" {
		want, description = '\'', "singlequote"
	}
	for _, tok := range ctx.Tokens() {
		if tok.Kind != token.String || len(tok.Text) < 2 || tok.Text[0] == want {
			continue
		}
		ctx.Report(diag.Descriptor{
			Node:      tok,
			MessageID: "wrongQuotes",
			Data:      map[string]any{"description": description},
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.ReplaceText(tok, requote(tok.Text, want)))
			},
		})
	}
}

// requote rewrites a quoted string literal to use quote, unescaping the old
// quote character and escaping the new one.
func requote(lit string, quote byte) string {
	old := lit[0]
	inner := lit[1 : len(lit)-1]
	var sb strings.Builder
	sb.Grow(len(lit) + 2)
	sb.WriteByte(quote)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner):
			if inner[i+1] == old {
				sb.WriteByte(old)
			} else {
				sb.WriteByte(c)
				sb.WriteByte(inner[i+1])
			}
			i++
		case c == quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
