package diag

import (
	"iter"
	"slices"

	"sift/internal/source"
)

// Fixer creates elementary edits for fix callbacks. Its methods only build
// values; nothing is applied until the fix engine runs.
type Fixer struct{}

// InsertTextBefore inserts text right before node.
func (Fixer) InsertTextBefore(node Node, text string) TextEdit {
	return Fixer{}.InsertTextBeforeRange(node.NodeSpan(), text)
}

// InsertTextBeforeRange inserts text at span.Start.
func (Fixer) InsertTextBeforeRange(span source.Span, text string) TextEdit {
	return TextEdit{Span: source.Span{Start: span.Start, End: span.Start}, NewText: text}
}

// InsertTextAfter inserts text right after node.
func (Fixer) InsertTextAfter(node Node, text string) TextEdit {
	return Fixer{}.InsertTextAfterRange(node.NodeSpan(), text)
}

// InsertTextAfterRange inserts text at span.End.
func (Fixer) InsertTextAfterRange(span source.Span, text string) TextEdit {
	return TextEdit{Span: source.Span{Start: span.End, End: span.End}, NewText: text}
}

// Remove deletes node.
func (Fixer) Remove(node Node) TextEdit {
	return TextEdit{Span: node.NodeSpan()}
}

// RemoveRange deletes span.
func (Fixer) RemoveRange(span source.Span) TextEdit {
	return TextEdit{Span: span}
}

// ReplaceText replaces node with text.
func (Fixer) ReplaceText(node Node, text string) TextEdit {
	return TextEdit{Span: node.NodeSpan(), NewText: text}
}

// ReplaceTextRange replaces span with text.
func (Fixer) ReplaceTextRange(span source.Span, text string) TextEdit {
	return TextEdit{Span: span, NewText: text}
}

// WrapWith surrounds span with prefix and suffix insertions.
func (fx Fixer) WrapWith(span source.Span, prefix, suffix string) iter.Seq[TextEdit] {
	return Edits(
		fx.InsertTextBeforeRange(span, prefix),
		fx.InsertTextAfterRange(span, suffix),
	)
}

// Edits turns a fixed list of edits into the sequence a FixFunc returns.
func Edits(edits ...TextEdit) iter.Seq[TextEdit] {
	return slices.Values(edits)
}
