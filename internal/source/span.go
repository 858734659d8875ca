package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) over a text body.
// Start may be negative: -1 addresses the byte-order mark that precedes the body.
type Span struct {
	Start int
	End   int
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Valid reports whether the span is well-formed and ends inside a body of n bytes.
func (s Span) Valid(n int) bool {
	return s.Start >= -1 && s.Start <= s.End && s.End <= n && s.End >= 0
}

func (s Span) ShiftRight(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}
