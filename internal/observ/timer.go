package observ

import (
	"fmt"
	"strings"
	"time"
)

// Stage is one timed step of a CLI run such as file discovery or writing
// fixed files.
type Stage struct {
	Name    string
	Elapsed time.Duration
	Note    string
}

// Timer records stages in the order they were started. It is not safe for
// concurrent use; per-file work is timed by the fix loop instead.
type Timer struct {
	stages []Stage
}

func NewTimer() *Timer { return &Timer{} }

// Start begins a stage. Calling the returned func ends it with a note; only
// the first call counts.
func (t *Timer) Start(name string) func(note string) {
	t.stages = append(t.stages, Stage{Name: name})
	idx := len(t.stages) - 1
	began := time.Now()
	ended := false
	return func(note string) {
		if ended {
			return
		}
		ended = true
		t.stages[idx].Elapsed = time.Since(began)
		t.stages[idx].Note = note
	}
}

// Stages returns a copy of the recorded stages.
func (t *Timer) Stages() []Stage {
	return append([]Stage(nil), t.stages...)
}

// Total is the sum of all stage durations.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, s := range t.stages {
		total += s.Elapsed
	}
	return total
}

// Summary renders one line per stage followed by the total.
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range t.stages {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", s.Name, millis(s.Elapsed))
		if s.Note != "" {
			sb.WriteString("  (" + s.Note + ")")
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", millis(t.Total()))
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
