// Package diag implements the append-only diagnostic set described in
// spec.md §4.E/§7: source-location-tagged records, never thrown, always
// collected alongside a (possibly partial) parse tree.
package diag

import "fmt"

// Severity mirrors WideLips's Diagnostic::Severity.
type Severity uint8

const (
	Error Severity = iota
	Warning
	Info
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Code enumerates the diagnostic kinds in spec.md §7, numbered the same
// way the original ParsingErrorCode enum is (starting at 1000) so that a
// tool cross-referencing the two stays aligned.
type Code uint32

const (
	SyntaxError Code = 1000 + iota
	UnrecognizedToken
	EmptySExpr
	UnterminatedStringLiteral
	UnexpectedToken
	MalformedFloatingPointLiteral
	ProgramMustStartWithSExpression
	NoMatchingOpenParenthesis
	NoMatchingCloseParenthesis
	FetchingAuxiliaryOfLazyToken
	UnexpectedTopLevelToken
)

var codeNames = map[Code]string{
	SyntaxError:                      "syntax-error",
	UnrecognizedToken:                "unrecognized-token",
	EmptySExpr:                       "empty-s-expression",
	UnterminatedStringLiteral:        "unterminated-string-literal",
	UnexpectedToken:                  "unexpected-token",
	MalformedFloatingPointLiteral:    "malformed-floating-point-literal",
	ProgramMustStartWithSExpression:  "program-must-start-with-s-expression",
	NoMatchingOpenParenthesis:        "no-matching-open-parenthesis",
	NoMatchingCloseParenthesis:       "no-matching-close-parenthesis",
	FetchingAuxiliaryOfLazyToken:     "fetching-auxiliary-of-lazy-token",
	UnexpectedTopLevelToken:          "unexpected-top-level-token",
}

// String returns the kebab-case error-code identifier used in the
// line-oriented diagnostic format (spec.md §6).
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown-error-code"
}

// Diagnostic is one immutable record. Once appended to a Set it is never
// mutated or reordered.
type Diagnostic struct {
	File     string
	Line     uint32
	Column   uint32
	Severity Severity
	Code     Code
	Message  string
}

// String renders the stable line-oriented format spec.md §6 requires:
//
//	<file>(<line>,<column>): <severity> <code>: <message>
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s(%d,%d): %s %s: %s", d.File, d.Line, d.Column, d.Severity, d.Code, d.Message)
}

// New builds a Diagnostic with Error severity, the common case; all of
// spec.md's enumerated codes (§7) are emitted as errors.
func New(file string, line, column uint32, code Code, message string) Diagnostic {
	return Diagnostic{File: file, Line: line, Column: column, Severity: Error, Code: code, Message: message}
}

// Set is an append-only diagnostic collection. Emission is O(1) amortized
// (slice append). A Set is not cleared automatically between parses;
// callers who want a clean slate call Reset explicitly (spec.md §4.E/§5).
type Set struct {
	items []Diagnostic
}

// Add appends d to the set.
func (s *Set) Add(d Diagnostic) { s.items = append(s.items, d) }

// Items returns the diagnostics in emission order. The slice aliases the
// set's backing array and must not be retained across a Reset.
func (s *Set) Items() []Diagnostic { return s.items }

// Len reports how many diagnostics have been recorded.
func (s *Set) Len() int { return len(s.items) }

// HasErrors reports whether any diagnostic in the set has Error severity.
func (s *Set) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Reset clears the set. Not called automatically between parses.
func (s *Set) Reset() { s.items = s.items[:0] }
