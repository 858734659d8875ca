package diagfmt

import (
	"encoding/json"
	"io"

	"sift/internal/diag"
)

// FixJSON is a replacement of the byte range [Range[0], Range[1]).
type FixJSON struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// SuggestionJSON is an alternative edit the user may apply by hand.
type SuggestionJSON struct {
	Desc      string  `json:"desc"`
	MessageID string  `json:"messageId,omitempty"`
	Fix       FixJSON `json:"fix"`
}

// MessageJSON is one diagnostic. Severity is 1 for warnings, 2 for errors.
type MessageJSON struct {
	RuleID      *string          `json:"ruleId"`
	Severity    int              `json:"severity"`
	Message     string           `json:"message"`
	MessageID   string           `json:"messageId,omitempty"`
	Line        int              `json:"line"`
	Column      int              `json:"column"`
	EndLine     int              `json:"endLine,omitempty"`
	EndColumn   int              `json:"endColumn,omitempty"`
	NodeType    string           `json:"nodeType,omitempty"`
	Fatal       bool             `json:"fatal,omitempty"`
	Fix         *FixJSON         `json:"fix,omitempty"`
	Suggestions []SuggestionJSON `json:"suggestions,omitempty"`
}

// FileJSON is the report of one file.
type FileJSON struct {
	FilePath            string        `json:"filePath"`
	Messages            []MessageJSON `json:"messages"`
	ErrorCount          int           `json:"errorCount"`
	FatalErrorCount     int           `json:"fatalErrorCount"`
	WarningCount        int           `json:"warningCount"`
	FixableErrorCount   int           `json:"fixableErrorCount"`
	FixableWarningCount int           `json:"fixableWarningCount"`
	Output              *string       `json:"output,omitempty"`
}

func makeFix(e diag.TextEdit) FixJSON {
	return FixJSON{Range: [2]int{e.Span.Start, e.Span.End}, Text: e.NewText}
}

func makeMessage(d diag.Diagnostic) MessageJSON {
	m := MessageJSON{
		Severity:  int(d.Severity),
		Message:   d.Message,
		MessageID: d.MessageID,
		Line:      d.Location.Line,
		Column:    d.Location.Column,
		NodeType:  d.NodeKind,
		Fatal:     d.Fatal,
	}
	if d.RuleID != "" {
		id := d.RuleID
		m.RuleID = &id
	}
	if d.Location.HasEnd() {
		m.EndLine = d.Location.EndLine
		m.EndColumn = d.Location.EndColumn
	}
	if d.Fix != nil {
		fix := makeFix(*d.Fix)
		m.Fix = &fix
	}
	for _, s := range d.Suggestions {
		m.Suggestions = append(m.Suggestions, SuggestionJSON{
			Desc:      s.Desc,
			MessageID: s.MessageID,
			Fix:       makeFix(s.Fix),
		})
	}
	return m
}

// BuildReport converts results into their JSON shape without encoding.
func BuildReport(results []FileResult, opts JSONOpts) []FileJSON {
	out := make([]FileJSON, 0, len(results))
	for _, r := range results {
		c := diag.Count(r.Diagnostics)
		f := FileJSON{
			FilePath:            formatPath(r.Path, opts.PathMode, opts.BaseDir),
			Messages:            make([]MessageJSON, 0, len(r.Diagnostics)),
			ErrorCount:          c.Errors,
			FatalErrorCount:     c.Fatal,
			WarningCount:        c.Warnings,
			FixableErrorCount:   c.FixableErrors,
			FixableWarningCount: c.FixableWarnings,
		}
		for _, d := range r.Diagnostics {
			f.Messages = append(f.Messages, makeMessage(d))
		}
		if r.Fixed {
			output := r.Output
			f.Output = &output
		}
		out = append(out, f)
	}
	return out
}

// JSON writes results as a JSON array with one object per file.
func JSON(w io.Writer, results []FileResult, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	if opts.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(BuildReport(results, opts))
}
