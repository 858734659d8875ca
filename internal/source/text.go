package source

import "strings"

// BOM is the UTF-8 byte-order mark as a Go string.
const BOM = "\ufeff"

// Text is source text split into an optional byte-order mark and the body.
// Offsets in spans and edits always address Body.
type Text struct {
	Body string
	BOM  bool
}

// SplitBOM strips a leading byte-order mark from full.
func SplitBOM(full string) Text {
	if strings.HasPrefix(full, BOM) {
		return Text{Body: full[len(BOM):], BOM: true}
	}
	return Text{Body: full}
}

// String returns the full text, byte-order mark included.
func (t Text) String() string {
	if t.BOM {
		return BOM + t.Body
	}
	return t.Body
}
