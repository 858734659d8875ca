package rules

import (
	"sift/internal/diag"
	"sift/internal/token"
)

func noDebuggerRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "no-debugger",
				Messages: map[string]string{"unexpected": "Unexpected 'debugger' statement."},
			},
			Description: "disallow the use of debugger",
			Recommended: true,
		},
		Check: func(ctx *Context) {
			for _, tok := range ctx.Tokens() {
				if tok.Kind == token.Keyword && tok.Text == "debugger" {
					ctx.Report(diag.Descriptor{Node: tok, MessageID: "unexpected"})
				}
			}
		},
	}
}
