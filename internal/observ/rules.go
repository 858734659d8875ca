package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// RuleTimings accumulates time spent per rule across files. Safe for
// concurrent use.
type RuleTimings struct {
	mu    sync.Mutex
	total map[string]time.Duration
	calls map[string]int
}

func NewRuleTimings() *RuleTimings {
	return &RuleTimings{
		total: make(map[string]time.Duration),
		calls: make(map[string]int),
	}
}

// Add records one invocation of rule.
func (r *RuleTimings) Add(rule string, d time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.total[rule] += d
	r.calls[rule]++
	r.mu.Unlock()
}

// RuleReport is the aggregated cost of one rule.
type RuleReport struct {
	Rule       string  `json:"rule"`
	DurationMS float64 `json:"duration_ms"`
	Calls      int     `json:"calls"`
}

// Report returns rules ordered by descending total time, then by name.
func (r *RuleTimings) Report() []RuleReport {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RuleReport, 0, len(r.total))
	for name, d := range r.total {
		out = append(out, RuleReport{Rule: name, DurationMS: millis(d), Calls: r.calls[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DurationMS != out[j].DurationMS {
			return out[i].DurationMS > out[j].DurationMS
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

// Summary renders the slowest n rules (all when n <= 0).
func (r *RuleTimings) Summary(n int) string {
	report := r.Report()
	if n > 0 && len(report) > n {
		report = report[:n]
	}
	var sb strings.Builder
	sb.WriteString("rules:\n")
	for _, rr := range report {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms  (%d calls)\n", rr.Rule, rr.DurationMS, rr.Calls)
	}
	return sb.String()
}
