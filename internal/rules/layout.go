package rules

import "sift/internal/token"

// container is the innermost bracket construct around a token.
type container uint8

const (
	containerBlock container = iota // top level or statement block
	containerObject
	containerParen
	containerBracket
)

// layout is a bracket-level view of a token stream, enough for rules that
// reason about statement boundaries without a full parse.
type layout struct {
	// inner[i] is the container token i sits in.
	inner []container
	// controlClose[i] is set when token i is the ')' closing the head of
	// if/for/while/switch/catch/with or a function parameter list.
	controlClose []bool
}

type frame struct {
	kind    container
	control bool
}

var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true, "with": true, "function": true,
}

// expressionBefore lists tokens after which '{' opens an object literal.
var expressionBefore = map[string]bool{
	"=": true, "(": true, ",": true, ":": true, "[": true, "?": true,
	"||": true, "&&": true, "??": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"%=": true, "||=": true, "&&=": true, "??=": true, "==": true, "===": true, "!=": true, "!==": true,
	"+": true, "-": true, "!": true, "...": true,
	"return": true, "typeof": true, "yield": true, "await": true, "void": true, "in": true, "of": true,
}

func computeLayout(tokens []token.Token) *layout {
	l := &layout{
		inner:        make([]container, len(tokens)),
		controlClose: make([]bool, len(tokens)),
	}
	stack := []frame{{kind: containerBlock}}
	for i, tok := range tokens {
		top := stack[len(stack)-1]
		l.inner[i] = top.kind
		if tok.Kind != token.Punct {
			continue
		}
		switch tok.Text {
		case "{":
			kind := containerBlock
			if i > 0 && expressionBefore[tokens[i-1].Text] && tokens[i-1].Kind != token.String {
				kind = containerObject
			}
			stack = append(stack, frame{kind: kind})
		case "(":
			stack = append(stack, frame{kind: containerParen, control: isControlHead(tokens, i)})
		case "[":
			stack = append(stack, frame{kind: containerBracket})
		case "}", ")", "]":
			if len(stack) > 1 {
				if tok.Text == ")" && top.kind == containerParen && top.control {
					l.controlClose[i] = true
				}
				stack = stack[:len(stack)-1]
				// closers belong to the enclosing container
				l.inner[i] = stack[len(stack)-1].kind
			}
		}
	}
	return l
}

// isControlHead reports whether the '(' at i opens a statement head or a
// function parameter list.
func isControlHead(tokens []token.Token, i int) bool {
	if i == 0 {
		return false
	}
	prev := tokens[i-1]
	if prev.Kind == token.Keyword && controlKeywords[prev.Text] {
		return true
	}
	// function name(
	return prev.Kind == token.Ident && i >= 2 && tokens[i-2].Is("function")
}

// statementLevel reports whether token i sits directly in a block or at top level.
func (l *layout) statementLevel(i int) bool {
	return l.inner[i] == containerBlock
}
