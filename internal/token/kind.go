package token

// Kind is the lexical category of a token.
type Kind uint8

const (
	// Invalid marks a malformed token (unterminated string, stray byte).
	Invalid Kind = iota
	// EOF marks the end of input.
	EOF
	Ident
	Keyword
	Number
	String
	Template
	Punct
)

// String returns the category name in the form used as a diagnostic node kind.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Number:
		return "Numeric"
	case String:
		return "String"
	case Template:
		return "Template"
	case Punct:
		return "Punctuator"
	}
	return "Unknown"
}
