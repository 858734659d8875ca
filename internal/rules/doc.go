// Package rules is the rule engine: it tokenizes a file, runs the rules
// enabled by the effective configuration, turns their reports into
// diagnostics and filters them through inline directives.
//
// Rules work on the token stream produced by internal/lexer. Each rule gets
// a Context through which it reads the file and reports problems; a report
// that the diagnostic builder rejects is recorded on the Context and aborts
// the analysis of the file with a RuleError once the rule returns.
package rules
