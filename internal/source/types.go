package source

// Position is a line/column pair. Its base depends on context:
// positions handed to rules use the language Numbering, diagnostics are
// always surfaced 1-based.
type Position struct {
	Line   int
	Column int
}

// Numbering declares the first line and first column number a language uses.
type Numbering struct {
	LineStart   int
	ColumnStart int
}

// DefaultNumbering is 1-based lines and 0-based columns.
var DefaultNumbering = Numbering{LineStart: 1, ColumnStart: 0}

// Native converts a zero-based position into the numbering's convention.
func (n Numbering) Native(p Position) Position {
	return Position{Line: p.Line + n.LineStart, Column: p.Column + n.ColumnStart}
}

// Surface converts a position in the numbering's convention to 1-based lines and columns.
func (n Numbering) Surface(p Position) Position {
	return Position{Line: p.Line - n.LineStart + 1, Column: p.Column - n.ColumnStart + 1}
}
