package token

import "sift/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// CommentBody returns the comment text without its delimiters.
func (t Trivia) CommentBody() string {
	switch t.Kind {
	case TriviaLineComment:
		return t.Text[2:]
	case TriviaBlockComment:
		body := t.Text[2:]
		if len(body) >= 2 && body[len(body)-2:] == "*/" {
			body = body[:len(body)-2]
		}
		return body
	}
	return ""
}
