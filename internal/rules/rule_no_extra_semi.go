package rules

import (
	"iter"

	"sift/internal/diag"
)

func noExtraSemiRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "no-extra-semi",
				Messages: map[string]string{"unexpected": "Unnecessary semicolon."},
				Fixable:  true,
			},
			Description: "disallow unnecessary semicolons",
			Recommended: true,
		},
		Check: checkNoExtraSemi,
	}
}

// checkNoExtraSemi flags empty statements: a ';' at statement level right
// after another ';', after a block opener, or at the start of the file.
func checkNoExtraSemi(ctx *Context) {
	toks := ctx.Tokens()
	l := ctx.layout()
	for i, tok := range toks {
		if !tok.Is(";") || !l.statementLevel(i) {
			continue
		}
		if i > 0 {
			prev := toks[i-1]
			if !prev.Is(";") && !prev.Is("{") {
				continue
			}
		}
		ctx.Report(diag.Descriptor{
			Node:      tok,
			MessageID: "unexpected",
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.Remove(tok))
			},
		})
	}
}
