package token

var keywords = map[string]struct{}{
	"var": {}, "let": {}, "const": {}, "function": {}, "return": {},
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {},
	"break": {}, "continue": {}, "new": {}, "delete": {}, "typeof": {},
	"instanceof": {}, "in": {}, "of": {}, "true": {}, "false": {},
	"null": {}, "undefined": {}, "this": {}, "class": {}, "extends": {},
	"import": {}, "export": {}, "from": {}, "debugger": {}, "switch": {},
	"case": {}, "default": {}, "throw": {}, "try": {}, "catch": {},
	"finally": {}, "yield": {}, "async": {}, "await": {}, "void": {},
}

// IsKeyword reports whether ident is a reserved word (case-sensitive).
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
