// Package diag defines the diagnostic model shared by the rule engine, the
// fix engine, the driver and the result cache.
//
// # Purpose
//
//   - Turn a rule's report request (Descriptor) into a normalized, immutable
//     Diagnostic: resolved location, interpolated message, at most one
//     consolidated fix and an ordered list of suggestions.
//   - Keep the data model deterministic and serialisable so that final
//     diagnostics can be cached across runs.
//
// # Scope
//
// Package diag performs no IO and never mutates source text. Application of
// fixes lives in internal/fix, the multi-pass loop in internal/driver and
// rendering in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - RuleID: identifier of the reporting rule; empty for engine-generated
//     problems such as parse errors.
//   - Severity: Warning or Error.
//   - Message: fully interpolated text.
//   - Location: 1-based start line/column, optional end line/column.
//   - Fatal: set for unrecoverable parse errors.
//   - NodeKind: label of the syntactic construct the report points to.
//   - Fix: optional single TextEdit that the fix engine may apply.
//   - Suggestions: alternative edits that are never applied automatically.
//
// # Fixes
//
// A rule's fix callback (FixFunc) may produce any number of elementary edits,
// lazily, through an iter.Seq. The Builder drains the sequence exactly once,
// sorts the edits, rejects overlaps (ErrOverlappingFixRanges) and merges
// them into one TextEdit covering the first start to the last end, so the fix
// engine only ever deals with one range per diagnostic.
//
// Edits may start at a negative offset: the range [-1, 0) addresses the
// byte-order mark that precedes the body of a source.Text.
//
// # Errors
//
// Malformed report calls are defects in rule code. They surface as errors
// wrapping one of the sentinel values in errors.go and abort the analysis of
// the file; they are never turned into diagnostics.
package diag
