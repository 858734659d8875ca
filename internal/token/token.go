package token

import (
	"strings"

	"sift/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// NodeSpan returns the token's byte range.
func (t Token) NodeSpan() source.Span { return t.Span }

// NodeKind returns the token category label.
func (t Token) NodeKind() string { return t.Kind.String() }

// Is reports whether the token is a punctuator or keyword spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Keyword) && t.Text == text
}

// PrecededByNewline reports whether a line break occurs in the leading trivia.
func (t Token) PrecededByNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
		if tr.Kind == TriviaBlockComment && strings.Contains(tr.Text, "\n") {
			return true
		}
	}
	return false
}

// Comments returns the comment trivia preceding the token.
func (t Token) Comments() []Trivia {
	var out []Trivia
	for _, tr := range t.Leading {
		if tr.IsComment() {
			out = append(out, tr)
		}
	}
	return out
}
