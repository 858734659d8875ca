package lexer

import (
	"sift/internal/token"
)

// Жадность: сначала длинные операторы, затем короткие.
var punctuators = []string{
	">>>=",
	"===", "!==", "**=", "...", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

const singlePunct = "{}()[];,<>+-*/%&|^!~?:=.@#"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, p := range punctuators {
		if lx.cursor.HasPrefix(p) {
			lx.cursor.Off += len(p)
			return emit(token.Punct)
		}
	}

	b := lx.cursor.Bump()
	for i := 0; i < len(singlePunct); i++ {
		if singlePunct[i] == b {
			return emit(token.Punct)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(sp, "unexpected character "+lx.text(sp))
	return emit(token.Invalid)
}
