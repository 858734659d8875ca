package rules

import (
	"iter"

	"sift/internal/diag"
	"sift/internal/token"
)

func noVarRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID: "no-var",
				Messages: map[string]string{
					"unexpectedVar": "Unexpected var, use let or const instead.",
					"useLet":        "Replace '{{ keyword }}' with 'let'.",
				},
				HasSuggestions: true,
			},
			Description: "require let or const instead of var",
		},
		Check: checkNoVar,
	}
}

func checkNoVar(ctx *Context) {
	for _, tok := range ctx.Tokens() {
		if tok.Kind != token.Keyword || tok.Text != "var" {
			continue
		}
		ctx.Report(diag.Descriptor{
			Node:      tok,
			MessageID: "unexpectedVar",
			Suggest: []diag.SuggestionDescriptor{{
				MessageID: "useLet",
				Data:      map[string]any{"keyword": tok.Text},
				Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
					return diag.Edits(fx.ReplaceText(tok, "let"))
				},
			}},
		})
	}
}
