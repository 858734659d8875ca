package rules

import (
	"iter"

	"sift/internal/diag"
	"sift/internal/source"
)

func unicodeBOMRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID: "unicode-bom",
				Messages: map[string]string{
					"expected":   "Expected Unicode BOM (Byte Order Mark).",
					"unexpected": "Unexpected Unicode BOM (Byte Order Mark).",
				},
				Fixable: true,
			},
			Description: "require or disallow the Unicode byte order mark",
			Recommended: true,
		},
		Check: checkUnicodeBOM,
	}
}

// checkUnicodeBOM takes "always" or "never" (default). The mark lives
// outside the body, so removing it is the edit [-1, 0).
func checkUnicodeBOM(ctx *Context) {
	always := ctx.Options.StringOption(0, "never") == "always"
	start := ctx.PositionOf(0)
	switch {
	case always && !ctx.HasBOM():
		ctx.Report(diag.Descriptor{
			Loc:       &diag.Loc{Start: start},
			MessageID: "expected",
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.InsertTextBeforeRange(source.Span{Start: 0, End: 0}, source.BOM))
			},
		})
	case !always && ctx.HasBOM():
		ctx.Report(diag.Descriptor{
			Loc:       &diag.Loc{Start: start},
			MessageID: "unexpected",
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.RemoveRange(source.Span{Start: -1, End: 0}))
			},
		})
	}
}
