package diag

import (
	"fmt"
	"slices"

	"sift/internal/source"
)

// Builder turns report descriptors of one rule into diagnostics.
type Builder struct {
	Rule      RuleMeta
	Severity  Severity
	File      *source.File
	Numbering source.Numbering
}

// Build validates d and produces the normalized diagnostic.
func (b *Builder) Build(d Descriptor) (Diagnostic, error) {
	loc, err := b.location(d)
	if err != nil {
		return Diagnostic{}, err
	}
	msg, err := b.message(d)
	if err != nil {
		return Diagnostic{}, err
	}

	out := Diagnostic{
		RuleID:    b.Rule.ID,
		Severity:  b.Severity,
		Message:   msg,
		MessageID: d.MessageID,
		Location:  loc,
	}
	if d.Node != nil {
		out.NodeKind = d.Node.NodeKind()
	}

	if d.Fix != nil {
		if !b.Rule.Fixable {
			return Diagnostic{}, fmt.Errorf("%s: %w", b.Rule.ID, ErrNotFixable)
		}
		edit, ok, err := b.collect(d.Fix)
		if err != nil {
			return Diagnostic{}, fmt.Errorf("%s: %w", b.Rule.ID, err)
		}
		if ok {
			out.Fix = &edit
		}
	}

	if len(d.Suggest) > 0 {
		if !b.Rule.HasSuggestions {
			return Diagnostic{}, fmt.Errorf("%s: %w", b.Rule.ID, ErrSuggestionsNotDeclared)
		}
		out.Suggestions, err = b.suggestions(d.Suggest)
		if err != nil {
			return Diagnostic{}, err
		}
	}
	return out, nil
}

func (b *Builder) location(d Descriptor) (Location, error) {
	if d.Loc != nil {
		start := b.Numbering.Surface(d.Loc.Start)
		loc := Location{Line: start.Line, Column: start.Column}
		if d.Loc.End != nil {
			end := b.Numbering.Surface(*d.Loc.End)
			loc.EndLine, loc.EndColumn = end.Line, end.Column
		}
		return loc, nil
	}
	if d.Node == nil {
		return Location{}, fmt.Errorf("%s: %w: node or loc is required", b.Rule.ID, ErrInvalidReport)
	}
	span := d.Node.NodeSpan()
	start := b.surface(span.Start)
	end := b.surface(span.End)
	return Location{
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}, nil
}

// surface maps a body offset to a 1-based position.
func (b *Builder) surface(off int) source.Position {
	return b.Numbering.Surface(b.Numbering.Native(b.File.Position(off)))
}

func (b *Builder) message(d Descriptor) (string, error) {
	switch {
	case d.MessageID != "" && d.Message != "":
		return "", fmt.Errorf("%s: %w: message and messageId are mutually exclusive", b.Rule.ID, ErrInvalidReport)
	case d.MessageID != "":
		tmpl, ok := b.Rule.Messages[d.MessageID]
		if !ok {
			return "", fmt.Errorf("%s: %w %q", b.Rule.ID, ErrUnknownMessageID, d.MessageID)
		}
		return Interpolate(tmpl, d.Data), nil
	case d.Message != "":
		return Interpolate(d.Message, d.Data), nil
	}
	return "", fmt.Errorf("%s: %w: message or messageId is required", b.Rule.ID, ErrInvalidReport)
}

func (b *Builder) suggestions(descs []SuggestionDescriptor) ([]Suggestion, error) {
	out := make([]Suggestion, 0, len(descs))
	for i, s := range descs {
		var text string
		switch {
		case s.Desc != "" && s.MessageID != "", s.Desc == "" && s.MessageID == "":
			return nil, fmt.Errorf("%s: suggestion %d: %w", b.Rule.ID, i, ErrAmbiguousSuggestionText)
		case s.MessageID != "":
			tmpl, ok := b.Rule.Messages[s.MessageID]
			if !ok {
				return nil, fmt.Errorf("%s: suggestion %d: %w %q", b.Rule.ID, i, ErrUnknownSuggestionMessageID, s.MessageID)
			}
			text = tmpl
		default:
			text = s.Desc
		}
		if s.Fix == nil {
			return nil, fmt.Errorf("%s: suggestion %d: %w", b.Rule.ID, i, ErrMissingSuggestionFix)
		}
		edit, ok, err := b.collect(s.Fix)
		if err != nil {
			return nil, fmt.Errorf("%s: suggestion %d: %w", b.Rule.ID, i, err)
		}
		if !ok {
			continue
		}
		out = append(out, Suggestion{
			Desc:      Interpolate(text, s.Data),
			MessageID: s.MessageID,
			Fix:       edit,
		})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// collect drains fn once and merges what it yields.
func (b *Builder) collect(fn FixFunc) (TextEdit, bool, error) {
	seq := fn(Fixer{})
	if seq == nil {
		return TextEdit{}, false, nil
	}
	return MergeEdits(b.File.Body(), slices.Collect(seq))
}
