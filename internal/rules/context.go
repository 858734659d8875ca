package rules

import (
	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/source"
	"sift/internal/token"
)

// fileState is shared by the contexts of all rules run on one file.
type fileState struct {
	file      *source.File
	tokens    []token.Token
	numbering source.Numbering
	layout    *layout
}

// Context is handed to a rule for one file.
type Context struct {
	RuleID   string
	Filename string
	Options  config.RuleConfig

	state   *fileState
	builder diag.Builder
	reports []diag.Diagnostic
	err     error
}

func (c *Context) File() *source.File {
	return c.state.file
}

// Tokens returns the token stream; the last token is always EOF.
func (c *Context) Tokens() []token.Token {
	return c.state.tokens
}

// Text returns the body without the byte-order mark.
func (c *Context) Text() string {
	return c.state.file.Body()
}

// HasBOM reports whether the file starts with a byte-order mark.
func (c *Context) HasBOM() bool {
	return c.state.file.Text.BOM
}

// PositionOf converts a body offset into the language's numbering, the
// form expected in diag.Loc.
func (c *Context) PositionOf(off int) source.Position {
	return c.state.numbering.Native(c.state.file.Position(off))
}

// Report records a problem. After the first invalid report the context
// ignores further reports and the engine fails the file.
func (c *Context) Report(d diag.Descriptor) {
	if c.err != nil {
		return
	}
	out, err := c.builder.Build(d)
	if err != nil {
		c.err = err
		return
	}
	c.reports = append(c.reports, out)
}

// Err returns the first report error, if any.
func (c *Context) Err() error {
	return c.err
}

func (c *Context) layout() *layout {
	if c.state.layout == nil {
		c.state.layout = computeLayout(c.state.tokens)
	}
	return c.state.layout
}
