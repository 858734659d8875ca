package diag

import (
	"sift/internal/source"
)

// Location is a 1-based position range. EndLine and EndColumn are zero when
// the report had no end position.
type Location struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// HasEnd reports whether an end position is present.
func (l Location) HasEnd() bool {
	return l.EndLine > 0
}

// TextEdit replaces Span of the current body with NewText.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// Suggestion is an alternative fix offered to the user. It is never applied
// by the fix engine.
type Suggestion struct {
	Desc      string
	MessageID string
	Fix       TextEdit
}

type Diagnostic struct {
	RuleID      string
	Severity    Severity
	Message     string
	MessageID   string
	Location    Location
	Fatal       bool
	NodeKind    string
	Fix         *TextEdit
	Suggestions []Suggestion
}

// Fixable reports whether the diagnostic carries an automatic fix.
func (d *Diagnostic) Fixable() bool {
	return d.Fix != nil
}

// NewFatal builds the single diagnostic that stands for an unparsable file.
func NewFatal(msg string, loc Location) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Message:  "Parsing error: " + msg,
		Location: loc,
		Fatal:    true,
	}
}

// IsFatalResult reports whether a pass result is exactly one fatal diagnostic.
func IsFatalResult(diags []Diagnostic) bool {
	return len(diags) == 1 && diags[0].Fatal
}
