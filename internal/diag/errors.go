package diag

import "errors"

// Report errors. All of them indicate a defect in rule code.
var (
	// ErrInvalidReport is returned when a report cannot be located or has
	// neither (or both) of message and message id.
	ErrInvalidReport = errors.New("invalid report")
	// ErrUnknownMessageID is returned for a message id missing from the rule metadata.
	ErrUnknownMessageID = errors.New("unknown message id")
	// ErrUnknownSuggestionMessageID is the suggestion counterpart of ErrUnknownMessageID.
	ErrUnknownSuggestionMessageID = errors.New("unknown suggestion message id")
	// ErrAmbiguousSuggestionText is returned when a suggestion has both or
	// neither of description and message id.
	ErrAmbiguousSuggestionText = errors.New("ambiguous suggestion text")
	// ErrMissingSuggestionFix is returned for a suggestion without a fix function.
	ErrMissingSuggestionFix = errors.New("suggestion without fix function")
	// ErrOverlappingFixRanges is returned when edits of one fix overlap.
	ErrOverlappingFixRanges = errors.New("fix edits must not overlap")
	// ErrInvalidFixRange is returned for a reversed or out-of-bounds edit range.
	ErrInvalidFixRange = errors.New("invalid fix range")
	// ErrNotFixable is returned when a rule reports a fix without declaring Fixable.
	ErrNotFixable = errors.New("fixable rules must declare Fixable in their metadata")
	// ErrSuggestionsNotDeclared is returned when a rule reports suggestions
	// without declaring HasSuggestions.
	ErrSuggestionsNotDeclared = errors.New("rules with suggestions must declare HasSuggestions in their metadata")
)
