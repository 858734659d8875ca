package lexer

import (
	"sift/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
type Reporter interface {
	Report(span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil, тогда ошибки только копятся в Errors
}

// Error is a lexical error. Any lexical error makes the file unparsable.
type Error struct {
	Span source.Span
	Msg  string
}

func (e Error) Error() string {
	return e.Msg
}

func (lx *Lexer) report(sp source.Span, msg string) {
	lx.errs = append(lx.errs, Error{Span: sp, Msg: msg})
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(sp, msg)
	}
}
