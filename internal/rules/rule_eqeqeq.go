package rules

import (
	"iter"

	"sift/internal/diag"
	"sift/internal/token"
)

func eqeqeqRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "eqeqeq",
				Messages: map[string]string{"unexpected": "Expected '{{ expected }}' and instead saw '{{ actual }}'."},
				Fixable:  true,
			},
			Description: "require the use of === and !==",
		},
		Check: checkEqeqeq,
	}
}

func checkEqeqeq(ctx *Context) {
	toks := ctx.Tokens()
	for i, tok := range toks {
		if tok.Kind != token.Punct || (tok.Text != "==" && tok.Text != "!=") {
			continue
		}
		expected := tok.Text + "="
		d := diag.Descriptor{
			Node:      tok,
			MessageID: "unexpected",
			Data:      map[string]any{"expected": expected, "actual": tok.Text},
		}
		// Only comparisons whose operands are known to share a type are
		// rewritten automatically.
		if i > 0 && i+1 < len(toks) && sameTypeOperands(toks, i) {
			d.Fix = func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.ReplaceText(tok, expected))
			}
		}
		ctx.Report(d)
	}
}

func sameTypeOperands(toks []token.Token, i int) bool {
	left, right := toks[i-1], toks[i+1]
	if isLiteral(left) && left.Kind == right.Kind && isLiteral(right) {
		return true
	}
	// typeof x == "string"
	if i >= 2 && toks[i-2].Is("typeof") && right.Kind == token.String {
		return true
	}
	return left.Kind == token.String && right.Is("typeof")
}

func isLiteral(tok token.Token) bool {
	return tok.Kind == token.String || tok.Kind == token.Number
}
