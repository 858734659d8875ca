package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sift/internal/diag"
)

type palette struct {
	path    func(a ...any) string
	pos     func(a ...any) string
	err     func(a ...any) string
	warn    func(a ...any) string
	rule    func(a ...any) string
	summary func(errors bool, s string) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := func(a ...any) string { return fmt.Sprint(a...) }
		return palette{
			path: plain, pos: plain, err: plain, warn: plain, rule: plain,
			summary: func(_ bool, s string) string { return s },
		}
	}
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		c.EnableColor()
		return c
	}
	errSummary := mk(color.FgRed, color.Bold)
	warnSummary := mk(color.FgYellow, color.Bold)
	return palette{
		path: mk(color.Underline).SprintFunc(),
		pos:  mk(color.Faint).SprintFunc(),
		err:  mk(color.FgRed).SprintFunc(),
		warn: mk(color.FgYellow).SprintFunc(),
		rule: mk(color.Faint).SprintFunc(),
		summary: func(errors bool, s string) string {
			if errors {
				return errSummary.Sprint(s)
			}
			return warnSummary.Sprint(s)
		},
	}
}

type stylishRow struct {
	pos      string
	severity string
	isError  bool
	message  string
	rule     string
}

// Stylish writes one block per file with problems followed by a summary.
// Nothing is written when there are no problems.
func Stylish(w io.Writer, results []FileResult, opts StylishOpts) error {
	p := newPalette(opts.Color)
	var total diag.Counts
	var b strings.Builder

	for _, r := range results {
		if len(r.Diagnostics) == 0 {
			continue
		}
		total.Add(diag.Count(r.Diagnostics))

		rows := make([]stylishRow, 0, len(r.Diagnostics))
		posW, sevW, msgW := 0, 0, 0
		for _, d := range r.Diagnostics {
			row := stylishRow{
				pos:      strconv.Itoa(d.Location.Line) + ":" + strconv.Itoa(d.Location.Column),
				severity: d.Severity.String(),
				isError:  d.Severity == diag.SevError,
				message:  strings.TrimSuffix(strings.ReplaceAll(d.Message, "\n", " "), " "),
				rule:     d.RuleID,
			}
			posW = max(posW, len(row.pos))
			sevW = max(sevW, len(row.severity))
			msgW = max(msgW, runewidth.StringWidth(row.message))
			rows = append(rows, row)
		}

		b.WriteByte('\n')
		b.WriteString(p.path(formatPath(r.Path, opts.PathMode, opts.BaseDir)))
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", posW-len(row.pos)))
			b.WriteString(p.pos(row.pos))
			b.WriteString("  ")
			if row.isError {
				b.WriteString(p.err(row.severity))
			} else {
				b.WriteString(p.warn(row.severity))
			}
			b.WriteString(strings.Repeat(" ", sevW-len(row.severity)))
			b.WriteString("  ")
			b.WriteString(row.message)
			if row.rule != "" {
				b.WriteString(strings.Repeat(" ", msgW-runewidth.StringWidth(row.message)))
				b.WriteString("  ")
				b.WriteString(p.rule(row.rule))
			}
			b.WriteByte('\n')
		}
	}

	problems := total.Errors + total.Warnings
	if problems == 0 {
		return nil
	}
	b.WriteByte('\n')
	b.WriteString(p.summary(total.Errors > 0, fmt.Sprintf("✖ %d %s (%d %s, %d %s)",
		problems, plural("problem", problems),
		total.Errors, plural("error", total.Errors),
		total.Warnings, plural("warning", total.Warnings))))
	b.WriteByte('\n')
	if total.FixableErrors > 0 || total.FixableWarnings > 0 {
		b.WriteString(p.summary(total.Errors > 0, fmt.Sprintf("  %d %s and %d %s potentially fixable with the `--fix` option.",
			total.FixableErrors, plural("error", total.FixableErrors),
			total.FixableWarnings, plural("warning", total.FixableWarnings))))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
