package diag

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"sift/internal/source"
)

// MergeEdits validates edits against body and consolidates them into one
// edit spanning from the earliest start to the latest end. The gaps between
// edits are filled with the original text. ok is false when there is nothing
// to apply: no edits at all, or only edits that would not change body.
func MergeEdits(body string, edits []TextEdit) (merged TextEdit, ok bool, err error) {
	if len(edits) == 0 {
		return TextEdit{}, false, nil
	}
	noop := true
	for _, e := range edits {
		if !e.Span.Valid(len(body)) {
			return TextEdit{}, false, fmt.Errorf("%w: %s", ErrInvalidFixRange, e.Span)
		}
		if !isNoop(body, e) {
			noop = false
		}
	}
	if noop {
		return TextEdit{}, false, nil
	}
	if len(edits) == 1 {
		return edits[0], true, nil
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	start := sorted[0].Span.Start
	end := sorted[len(sorted)-1].Span.End

	var sb strings.Builder
	lastPos := math.MinInt
	for _, e := range sorted {
		if e.Span.Start < lastPos {
			return TextEdit{}, false, fmt.Errorf("%w: %s", ErrOverlappingFixRanges, e.Span)
		}
		if e.Span.Start >= 0 {
			sb.WriteString(body[max(0, start, lastPos):e.Span.Start])
		}
		sb.WriteString(e.NewText)
		lastPos = e.Span.End
	}
	sb.WriteString(body[max(0, start, lastPos):end])

	return TextEdit{
		Span:    source.Span{Start: start, End: end},
		NewText: sb.String(),
	}, true, nil
}

func isNoop(body string, e TextEdit) bool {
	if e.Span.Start < 0 {
		return false
	}
	return body[e.Span.Start:e.Span.End] == e.NewText
}
