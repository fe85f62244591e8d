package widelips

import (
	"github.com/yazandaba/widelips/ast"
	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/diag"
	"github.com/yazandaba/widelips/internal/sexpr"
)

// Result is the convenience wrapper spec.md §7 describes: a parse
// always returns a (possibly partial) tree plus its diagnostics; Success
// is true iff none of them carry error severity.
type Result struct {
	Root        *ast.Node
	Diagnostics []diag.Diagnostic
	Parser      *Parser
	Success     bool
	// Err is non-nil only for a programmer error (currently ErrEmptyInput)
	// that prevented parsing from running at all; malformed input is never
	// reported here, only in Diagnostics (spec.md §2 "Error handling").
	Err error
}

// Parse builds a Parser over buf and parses it eagerly at top level
// (spec.md §6's first entry point), wrapping the outcome in a Result.
// It then walks the whole tree once, so every list's children are
// materialized and the tokenizer's diagnostics (malformed literals,
// unrecognized tokens, empty s-expressions) are part of Diagnostics and
// Success. buf must already carry EOF-sentinel padding; see Pad.
func Parse(buf []byte, file string, conservative bool, opts ...Option) Result {
	p := NewParser(buf, file, conservative, opts...)
	if err := p.Err(); err != nil {
		return Result{Parser: p, Success: false, Err: err}
	}
	root := p.Parse()
	var w ast.Walker
	w.Walk(root)
	diags := p.Diagnostics()

	success := root != nil
	for _, d := range diags {
		if d.Severity == diag.Error {
			success = false
			break
		}
	}

	return Result{Root: root, Diagnostics: diags, Parser: p, Success: success}
}

// Pad appends one tile's worth of EOF-sentinel bytes to program, the
// minimum padding spec.md §6 requires of every input buffer.
func Pad(program []byte) []byte {
	pad := make([]byte, classify.TileSize)
	for i := range pad {
		pad[i] = sexpr.SentinelByte
	}
	return append(program, pad...)
}
