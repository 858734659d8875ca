package diagfmt

import (
	"path/filepath"

	"sift/internal/diag"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths relative to BaseDir when they lie below it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// FileResult is what the formatters print for one file.
type FileResult struct {
	Path        string
	Diagnostics []diag.Diagnostic
	// Output is the fixed text; set only when Fixed.
	Output string
	Fixed  bool
}

// StylishOpts configures the human readable format.
type StylishOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	// Indent pretty-prints the document.
	Indent bool
}

func formatPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, ok := relativeTo(path, base); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if rel, ok := relativeTo(path, base); ok && !filepath.IsAbs(rel) && rel != ".." && !hasParentPrefix(rel) {
			return rel
		}
	}
	return path
}

func relativeTo(path, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	return rel, true
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
