package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// File is a source text with its line index.
type File struct {
	Path    string
	Text    Text
	LineIdx []uint32 // offsets of '\n' in Text.Body
	Hash    [32]byte
}

// NewFile builds a File from the full text (BOM included if present).
func NewFile(path, full string) *File {
	text := SplitBOM(full)
	return &File{
		Path:    normalizePath(path),
		Text:    text,
		LineIdx: buildLineIndex(text.Body),
		Hash:    sha256.Sum256([]byte(full)),
	}
}

// Load reads a file from disk.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, string(content)), nil
}

// Body returns the text without byte-order mark.
func (f *File) Body() string {
	return f.Text.Body
}

// Position resolves a byte offset into a zero-based line/column pair.
// Negative offsets clamp to the start of the file.
func (f *File) Position(off int) Position {
	if off <= 0 {
		return Position{}
	}
	if off > len(f.Text.Body) {
		off = len(f.Text.Body)
	}
	uoff, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	// число '\n' строго до off = номер строки
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= uoff })
	start := 0
	if line > 0 {
		start = int(f.LineIdx[line-1]) + 1
	}
	return Position{Line: line, Column: off - start}
}

// Offset converts a zero-based line/column pair back into a byte offset.
// The result is clamped to the body length.
func (f *File) Offset(p Position) int {
	if p.Line <= 0 {
		return min(max(p.Column, 0), len(f.Text.Body))
	}
	if p.Line > len(f.LineIdx) {
		return len(f.Text.Body)
	}
	return min(int(f.LineIdx[p.Line-1])+1+max(p.Column, 0), len(f.Text.Body))
}

// LineCount returns the number of lines in the body.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// Line returns the zero-based line n without its terminator ("\r\n" or "\n").
func (f *File) Line(n int) string {
	if n < 0 || n > len(f.LineIdx) {
		return ""
	}
	start := 0
	if n > 0 {
		start = int(f.LineIdx[n-1]) + 1
	}
	end := len(f.Text.Body)
	if n < len(f.LineIdx) {
		end = int(f.LineIdx[n])
	}
	return strings.TrimSuffix(f.Text.Body[start:end], "\r")
}

// LineStart returns the byte offset of the zero-based line n.
func (f *File) LineStart(n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(f.LineIdx) {
		return len(f.Text.Body)
	}
	return int(f.LineIdx[n-1]) + 1
}
