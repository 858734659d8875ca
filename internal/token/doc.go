// Package token defines the lexical vocabulary of the script language linted by sift.
//
// Tokens carry their byte span and exact source text. Whitespace and comments
// are not tokens: they are attached to the following token as Leading trivia,
// which lets rules inspect comments (inline directives) and line breaks
// without a separate pass over the text.
package token
