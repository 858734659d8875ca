package config

import (
	"fmt"
	"strings"

	"sift/internal/diag"
)

// Level is a rule's configured severity.
type Level uint8

const (
	LevelOff Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Severity maps an enabled level to the diagnostic severity.
func (l Level) Severity() diag.Severity {
	if l == LevelError {
		return diag.SevError
	}
	return diag.SevWarning
}

// ParseLevel accepts "off"/"warn"/"error" (and "warning") or 0/1/2.
func ParseLevel(v any) (Level, error) {
	switch x := v.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "off", "0":
			return LevelOff, nil
		case "warn", "warning", "1":
			return LevelWarn, nil
		case "error", "2":
			return LevelError, nil
		}
	case int64:
		if x >= 0 && x <= 2 {
			return Level(x), nil
		}
	case int:
		if x >= 0 && x <= 2 {
			return Level(x), nil
		}
	}
	return LevelOff, fmt.Errorf("%w: %v", ErrInvalidLevel, v)
}
