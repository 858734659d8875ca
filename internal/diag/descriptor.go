package diag

import (
	"iter"

	"sift/internal/source"
)

// Node is anything a report can point at.
type Node interface {
	NodeSpan() source.Span
	NodeKind() string
}

// Loc is an explicit report location in the language's numbering.
type Loc struct {
	Start source.Position
	End   *source.Position
}

// FixFunc yields the elementary edits of one fix. It is called at most once
// per report and its sequence is drained exactly once.
type FixFunc func(fx Fixer) iter.Seq[TextEdit]

// SuggestionDescriptor describes one suggestion of a report.
type SuggestionDescriptor struct {
	Desc      string
	MessageID string
	Data      map[string]any
	Fix       FixFunc
}

// Descriptor is a rule's report request.
type Descriptor struct {
	Node      Node
	Loc       *Loc
	Message   string
	MessageID string
	Data      map[string]any
	Fix       FixFunc
	Suggest   []SuggestionDescriptor
}

// RuleMeta is the part of a rule's metadata the Builder needs.
type RuleMeta struct {
	ID             string
	Messages       map[string]string
	Fixable        bool
	HasSuggestions bool
}
