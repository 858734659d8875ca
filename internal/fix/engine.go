package fix

import (
	"sort"
	"strings"

	"sift/internal/diag"
	"sift/internal/source"
)

// AppliedFix records a fix that made it into the output.
type AppliedFix struct {
	RuleID string
	Span   source.Span
}

// SkippedFix captures a fix that was deferred with a reason.
type SkippedFix struct {
	RuleID string
	Span   source.Span
	Reason string
}

// Result is the outcome of one application pass over a text.
type Result struct {
	// Output is the new full text, byte-order mark included.
	Output string
	Fixed  bool

	Applied []AppliedFix
	Skipped []SkippedFix
	// Remaining holds every diagnostic whose fix was not applied, including
	// those that had no fix at all, ordered by location.
	Remaining []diag.Diagnostic
}

type candidate struct {
	diag  diag.Diagnostic
	order int
}

// Apply applies a maximal non-conflicting subset of the fixes carried by
// diagnostics to src. Candidates are walked in (start, end, report order);
// a candidate starting before the end of the previously applied edit is
// deferred to the next pass.
func Apply(src source.Text, diagnostics []diag.Diagnostic) *Result {
	result := &Result{
		Applied:   make([]AppliedFix, 0),
		Skipped:   make([]SkippedFix, 0),
		Remaining: make([]diag.Diagnostic, 0, len(diagnostics)),
	}

	candidates := gatherCandidates(diagnostics, result)
	if len(candidates) == 0 {
		result.Output = src.String()
		return result
	}
	sortCandidates(candidates)

	// The mark is written last so that dropping it never touches text
	// already produced by earlier edits.
	var out strings.Builder
	keepBOM := src.BOM
	body := src.Body
	cursor := -1
	for _, cand := range candidates {
		edit := cand.diag.Fix
		start, end := edit.Span.Start, edit.Span.End
		if !edit.Span.Valid(len(body)) {
			result.skip(cand.diag, "invalid range")
			continue
		}
		if start < cursor {
			result.skip(cand.diag, "conflicts with previously applied edit")
			continue
		}

		switch {
		case start < 0:
			// the edit covers the mark
			keepBOM = false
		case start == 0 && out.Len() == 0 && strings.HasPrefix(edit.NewText, source.BOM):
			// re-inserting the mark at the front replaces the existing one
			keepBOM = false
		}
		out.WriteString(body[max(0, cursor):max(0, start)])
		out.WriteString(edit.NewText)
		cursor = end

		result.Applied = append(result.Applied, AppliedFix{RuleID: cand.diag.RuleID, Span: edit.Span})
	}
	out.WriteString(body[max(0, cursor):])

	result.Fixed = len(result.Applied) > 0
	if result.Fixed {
		result.Output = out.String()
		if keepBOM {
			result.Output = source.BOM + result.Output
		}
	} else {
		result.Output = src.String()
	}
	diag.SortByLocation(result.Remaining)
	return result
}

// gatherCandidates splits diagnostics into fix candidates and diagnostics
// that stay reported as-is.
func gatherCandidates(diagnostics []diag.Diagnostic, result *Result) []candidate {
	cands := make([]candidate, 0)
	for i, d := range diagnostics {
		if d.Fix == nil {
			result.Remaining = append(result.Remaining, d)
			continue
		}
		cands = append(cands, candidate{diag: d, order: i})
	}
	return cands
}

// sortCandidates orders by span start, span end, then report order, which
// is a total order for one pass.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].diag.Fix.Span, candidates[j].diag.Fix.Span
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End < sj.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func (r *Result) skip(d diag.Diagnostic, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{RuleID: d.RuleID, Span: d.Fix.Span, Reason: reason})
	r.Remaining = append(r.Remaining, d)
}
