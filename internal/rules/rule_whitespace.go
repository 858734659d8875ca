package rules

import (
	"iter"

	"sift/internal/diag"
	"sift/internal/source"
	"sift/internal/token"
)

func noTrailingSpacesRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "no-trailing-spaces",
				Messages: map[string]string{"trailingSpace": "Trailing spaces not allowed."},
				Fixable:  true,
			},
			Description: "disallow trailing whitespace at the end of lines",
		},
		Check: checkTrailingSpaces,
	}
}

func checkTrailingSpaces(ctx *Context) {
	body := ctx.Text()
	file := ctx.File()
	templates := templateSpans(ctx.Tokens())
	for line := range file.LineCount() {
		start := file.LineStart(line)
		text := file.Line(line)
		end := start + len(text)
		ws := end
		for ws > start && isBlank(body[ws-1]) {
			ws--
		}
		if ws == end || insideAny(templates, ws) {
			continue
		}
		span := source.Span{Start: ws, End: end}
		startPos := ctx.PositionOf(ws)
		endPos := ctx.PositionOf(end)
		ctx.Report(diag.Descriptor{
			Loc:       &diag.Loc{Start: startPos, End: &endPos},
			MessageID: "trailingSpace",
			Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
				return diag.Edits(fx.RemoveRange(span))
			},
		})
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func templateSpans(toks []token.Token) []source.Span {
	var out []source.Span
	for _, tok := range toks {
		if tok.Kind == token.Template {
			out = append(out, tok.Span)
		}
	}
	return out
}

// insideAny reports whether off falls strictly inside one of spans.
func insideAny(spans []source.Span, off int) bool {
	for _, sp := range spans {
		if off > sp.Start && off < sp.End {
			return true
		}
	}
	return false
}

func eolLastRule() *Rule {
	return &Rule{
		Meta: Meta{
			RuleMeta: diag.RuleMeta{
				ID:       "eol-last",
				Messages: map[string]string{"missing": "Newline required at end of file but not found."},
				Fixable:  true,
			},
			Description: "require a newline at the end of files",
		},
		Check: func(ctx *Context) {
			body := ctx.Text()
			if body == "" || body[len(body)-1] == '\n' {
				return
			}
			pos := ctx.PositionOf(len(body))
			ctx.Report(diag.Descriptor{
				Loc:       &diag.Loc{Start: pos},
				MessageID: "missing",
				Fix: func(fx diag.Fixer) iter.Seq[diag.TextEdit] {
					return diag.Edits(fx.InsertTextAfterRange(source.Span{Start: len(body), End: len(body)}, "\n"))
				},
			})
		},
	}
}
