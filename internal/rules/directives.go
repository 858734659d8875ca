package rules

import (
	"strings"

	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/source"
	"sift/internal/token"
)

const directivePrefix = "sift-"

type directiveKind uint8

const (
	directiveDisable directiveKind = iota
	directiveEnable
	directiveDisableLine
	directiveDisableNextLine
)

type directive struct {
	kind  directiveKind
	line  int // 1-based
	col   int // 1-based
	rules []string
}

type directives struct {
	ranges []directive
	// lines maps a 1-based line to the rules disabled on it; an empty
	// slice disables every rule.
	lines map[int][][]string
}

// collectDirectives scans comments for sift-disable/sift-enable markers.
// Range markers are only honoured in block comments.
func collectDirectives(toks []token.Token, file *source.File) *directives {
	ds := &directives{lines: make(map[int][][]string)}
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if !tr.IsComment() {
				continue
			}
			d, ok := parseDirective(tr)
			if !ok {
				continue
			}
			pos := file.Position(tr.Span.Start)
			d.line, d.col = pos.Line+1, pos.Column+1
			switch d.kind {
			case directiveDisableLine:
				ds.lines[d.line] = append(ds.lines[d.line], d.rules)
			case directiveDisableNextLine:
				endLine := file.Position(tr.Span.End).Line + 1
				ds.lines[endLine+1] = append(ds.lines[endLine+1], d.rules)
			default:
				ds.ranges = append(ds.ranges, d)
			}
		}
	}
	return ds
}

func parseDirective(tr token.Trivia) (directive, bool) {
	body := strings.TrimSpace(tr.CommentBody())
	if !strings.HasPrefix(body, directivePrefix) {
		return directive{}, false
	}
	word, rest, _ := strings.Cut(body, " ")
	var kind directiveKind
	switch strings.TrimPrefix(word, directivePrefix) {
	case "disable":
		kind = directiveDisable
	case "enable":
		kind = directiveEnable
	case "disable-line":
		kind = directiveDisableLine
	case "disable-next-line":
		kind = directiveDisableNextLine
	default:
		return directive{}, false
	}
	if (kind == directiveDisable || kind == directiveEnable) && tr.Kind != token.TriviaBlockComment {
		return directive{}, false
	}
	// Anything after "--" is a free-form explanation.
	rest, _, _ = strings.Cut(rest, "--")
	var rules []string
	for _, name := range strings.Split(rest, ",") {
		if name = config.NormalizeRuleName(name); name != "" {
			rules = append(rules, name)
		}
	}
	return directive{kind: kind, rules: rules}, true
}

// filter drops diagnostics silenced by a directive. Diagnostics without a
// rule id, such as parse errors, are always kept.
func (ds *directives) filter(diags []diag.Diagnostic) []diag.Diagnostic {
	if len(ds.ranges) == 0 && len(ds.lines) == 0 {
		return diags
	}
	out := diags[:0:0]
	for _, d := range diags {
		if d.RuleID == "" || !ds.suppressed(d) {
			out = append(out, d)
		}
	}
	return out
}

func (ds *directives) suppressed(d diag.Diagnostic) bool {
	for _, rules := range ds.lines[d.Location.Line] {
		if matchesRule(rules, d.RuleID) {
			return true
		}
	}

	var st disableState
	for _, r := range ds.ranges {
		if r.line > d.Location.Line || (r.line == d.Location.Line && r.col > d.Location.Column) {
			break
		}
		st.apply(r)
	}
	return st.off(d.RuleID)
}

func matchesRule(rules []string, id string) bool {
	if len(rules) == 0 {
		return true
	}
	for _, r := range rules {
		if r == id {
			return true
		}
	}
	return false
}

// disableState replays range directives in source order.
type disableState struct {
	all        bool
	disabled   map[string]bool
	exceptions map[string]bool
}

func (s *disableState) apply(d directive) {
	if s.disabled == nil {
		s.disabled = make(map[string]bool)
		s.exceptions = make(map[string]bool)
	}
	switch d.kind {
	case directiveDisable:
		if len(d.rules) == 0 {
			s.all = true
			clear(s.exceptions)
			return
		}
		for _, r := range d.rules {
			if s.all {
				delete(s.exceptions, r)
			} else {
				s.disabled[r] = true
			}
		}
	case directiveEnable:
		if len(d.rules) == 0 {
			s.all = false
			clear(s.disabled)
			clear(s.exceptions)
			return
		}
		for _, r := range d.rules {
			if s.all {
				s.exceptions[r] = true
			} else {
				delete(s.disabled, r)
			}
		}
	}
}

func (s *disableState) off(id string) bool {
	if s.all {
		return !s.exceptions[id]
	}
	return s.disabled[id]
}
