package trace

import (
	"fmt"
	"strings"
)

// Level controls how much of a run is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring is dumped on failure
	LevelPhase        // runs and files
	LevelDetail       // passes and cache decisions
	LevelDebug        // single rule invocations
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value into a Level. Case is ignored.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope streamed at l, or 0 when nothing is.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopeFile
	case LevelDetail:
		return ScopePass
	case LevelDebug:
		return ScopeRule
	}
	return 0
}

// Allows reports whether events of scope are recorded at l.
func (l Level) Allows(scope Scope) bool {
	return scope <= l.maxScope()
}
