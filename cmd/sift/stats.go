package main

import (
	"fmt"
	"io"
	"time"

	"sift/internal/driver"
	"sift/internal/observ"
)

func printStats(out io.Writer, timer *observ.Timer, results []*driver.Result, timings *observ.RuleTimings) {
	fmt.Fprint(out, timer.Summary())
	cached, fixed := 0, 0
	for _, r := range results {
		if r.Cached {
			cached++
			continue
		}
		if r.Outcome.Fixed {
			fixed++
		}
		if len(r.Outcome.Passes) <= 1 && !r.Outcome.Circular {
			continue
		}
		fmt.Fprintf(out, "%s: %d passes", r.Path, len(r.Outcome.Passes))
		for i, p := range r.Outcome.Passes {
			fmt.Fprintf(out, " [%d: %d fixes, analyze %.2f ms, apply %.2f ms]", i+1, p.Fixes, toMillis(p.Analyze), toMillis(p.Apply))
		}
		if r.Outcome.Circular {
			fmt.Fprint(out, " (circular fixes)")
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "files: %d linted, %d cached, %d fixed\n", len(results)-cached, cached, fixed)
	if timings != nil {
		fmt.Fprint(out, timings.Summary(10))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
