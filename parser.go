// Package widelips ties the classifier, s-expression index, on-demand
// tokenizer, and lazy child parser together into one incremental parser
// over a single input buffer (spec.md §2 "Data flow").
package widelips

import (
	"errors"
	"sync"

	"github.com/yazandaba/widelips/arena"
	"github.com/yazandaba/widelips/ast"
	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/diag"
	"github.com/yazandaba/widelips/internal/sexpr"
	"github.com/yazandaba/widelips/internal/token"
)

// ErrEmptyInput is returned by Parser.Err (and surfaced on Result.Err by
// Parse) when NewParser/NewParserWithDialect was given a nil or empty
// buffer. This is a programmer error, not malformed input, so it is a Go
// error rather than a diagnostic (spec.md §2 "Error handling").
var ErrEmptyInput = errors.New("widelips: empty input")

// nodeBytesEstimate is used only to translate the arena package's
// byte-oriented sizing tiers into a node-count hint for the chained
// node arena; it is not load-bearing (the arena grows past it anyway).
const nodeBytesEstimate = 64

var (
	endOfProgramOnce sync.Once
	endOfProgram     *ast.Node
)

// sharedEndOfProgram returns the process-wide end-of-program sentinel
// atom every parser's traversal terminates on (spec.md §5 "Process-wide:
// exactly one end-of-program sentinel atom may be shared across
// parsers"). It is built once and never mutated afterward.
func sharedEndOfProgram() *ast.Node {
	endOfProgramOnce.Do(func() {
		endOfProgram = ast.NewAtom(ast.KindAtomEndOfProgram, token.Token{Kind: token.KindEndOfProgram})
	})
	return endOfProgram
}

// Parser owns one input buffer's classification tiles, s-expression
// index, on-demand tokenizer, node arena, and diagnostic set
// (spec.md §5 "A parser instance owns its arenas, lexer, and diagnostic
// set").
type Parser struct {
	buf          []byte
	file         string
	dialect      Dialect
	conservative bool
	hook         DialectHook

	classifier *classify.Classifier
	tiles      []classify.Tile
	table      *sexpr.Table
	tokenizer  *token.Tokenizer

	nodes *arena.Chained[ast.Node]
	diags diag.Set

	emittedEmptySExpr map[uint32]bool

	err error
}

// NewParser builds a Parser over buf, which must already carry at least
// one tile's worth of EOF-sentinel padding (spec.md §6 "Input"). file
// names the diagnostic origin; pass "memory" when there is no backing
// file. conservative selects the smaller arena tier (spec.md §4.A).
func NewParser(buf []byte, file string, conservative bool, opts ...Option) *Parser {
	return NewParserWithDialect(buf, file, conservative, NewDialect(opts...))
}

// NewParserWithDialect is NewParser for a pre-built Dialect, useful when
// the same dialect configures many parsers.
func NewParserWithDialect(buf []byte, file string, conservative bool, dialect Dialect) *Parser {
	p := &Parser{
		buf:          buf,
		file:         file,
		dialect:      dialect,
		conservative: conservative,
		hook:         defaultDialectHook{},
	}
	if len(buf) == 0 {
		p.err = ErrEmptyInput
		return p
	}
	p.rebuild()
	return p
}

// Err reports the error, if any, recorded when this Parser was
// constructed (currently only ErrEmptyInput). A non-nil Err means Parse
// will always return nil without attempting any work.
func (p *Parser) Err() error { return p.err }

func (p *Parser) rebuild() {
	p.classifier = classify.New(p.dialect.structConfig())
	p.tiles = p.classifier.ClassifyAll(p.buf)
	p.table = sexpr.Build(p.buf, p.tiles, p.file, &p.diags)
	p.tokenizer = token.New(p.buf, p.tiles, p.table, p.dialect.Keywords, p.file, &p.diags)

	nodeCount := arena.SizeFor(len(p.buf), p.conservative) / nodeBytesEstimate
	p.nodes = arena.NewChained[ast.Node](nodeCount)
	p.emittedEmptySExpr = make(map[uint32]bool)
}

// SetHook installs a custom DialectHook, the Go analogue of overriding
// LispParser::ParseDialectSpecial in a subclass (spec.md §9
// "Dialect-special dispatch").
func (p *Parser) SetHook(h DialectHook) { p.hook = h }

// OriginFile returns the diagnostic origin name this parser was built
// with.
func (p *Parser) OriginFile() string { return p.file }

// Diagnostics returns every diagnostic recorded so far, in emission
// order.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags.Items() }

// Reuse rewinds the node arena and per-list caches so the same buffer
// can be re-parsed without a second classification/index-build pass
// (spec.md §5 "Reuse semantics"). The diagnostic set is left untouched;
// callers wanting a clean slate call Reset on it explicitly.
func (p *Parser) Reuse() {
	if p.err != nil {
		return
	}
	p.nodes.Reset()
	p.tokenizer = token.New(p.buf, p.tiles, p.table, p.dialect.Keywords, p.file, &p.diags)
	p.emittedEmptySExpr = make(map[uint32]bool)
}

// ResetDiagnostics clears the diagnostic set, for callers that want a
// clean slate across a Reuse (spec.md §5 "not automatically cleared").
func (p *Parser) ResetDiagnostics() { p.diags.Reset() }

func (p *Parser) newNode(v ast.Node) *ast.Node {
	n, _ := p.nodes.Emplace(v)
	return n
}

// Parse parses the whole input eagerly at top level, returning one root
// list node whose children are resolved lazily (spec.md §6 "Parse a
// whole input eagerly at top level (one root list) with lazy
// children."). It returns nil if the input contains no top-level
// s-expression.
func (p *Parser) Parse() *ast.Node {
	if p.err != nil {
		return nil
	}
	if len(p.table.Indices) == 0 {
		return nil
	}
	idx := p.table.Indices[0]
	root := p.newListNode(idx, ast.KindList)
	if index, length := p.tokenizer.LeadingTrivia(idx.Open); length > 0 {
		root.Tok.AuxIndex = index
		root.Tok.AuxLength = length
	}
	return root
}

// ParseChildren is the second entry point spec.md §6 describes: parse
// the children of an already-materialized list node on demand. It is a
// thin wrapper over the list's own mutable children() accessor.
func (p *Parser) ParseChildren(list *ast.Node) *ast.Node {
	return list.Children()
}

// newListNode allocates a list/arguments node wrapping idx, wiring its
// lazy children and next-sibling resolvers (spec.md §4.F/§4.G).
func (p *Parser) newListNode(idx sexpr.Index, kind ast.Kind) *ast.Node {
	node := p.newNode(ast.Node{
		Kind: kind,
		Tok:  openToken(idx),
		Close: closeToken(idx, uint32(len(p.buf))),
	})
	node.SetChildrenFn(func() *ast.Node { return p.parseChildren(idx) })
	node.SetNextFn(func() *ast.Node { return p.nextSibling(idx) })
	return node
}

func openToken(idx sexpr.Index) token.Token {
	return token.Token{Offset: idx.Open, Length: 1, Line: idx.OpenLine, Column: idx.OpenColumn, Kind: token.Kind('(')}
}

func closeToken(idx sexpr.Index, bufLen uint32) token.Token {
	if !idx.Closed {
		return token.Token{Offset: bufLen, Length: 0, Line: idx.CloseLine, Column: idx.CloseColumn, Kind: token.Kind(')')}
	}
	return token.Token{Offset: idx.Close, Length: 1, Line: idx.CloseLine, Column: idx.CloseColumn, Kind: token.Kind(')')}
}

// nextSibling implements next_node()'s list-node fallback (spec.md §4.F):
// consult the index table's own successor link, materializing a new list
// node for it, or the process-wide end-of-program atom if there is none.
func (p *Parser) nextSibling(idx sexpr.Index) *ast.Node {
	if idx.Next < 0 || int(idx.Next) >= len(p.table.Indices) {
		return sharedEndOfProgram()
	}
	return p.newListNode(p.table.Indices[idx.Next], ast.KindList)
}

// parseChildren is the lazy child parser (spec.md §4.G): tokenize idx's
// interior, then walk the resulting tokens backward, threading each new
// head node's next pointer onto the already-built suffix so the result
// comes out in source order in a single pass.
func (p *Parser) parseChildren(idx sexpr.Index) *ast.Node {
	toks := p.tokenizer.TokenizeList(idx)
	if len(toks) == 0 {
		if p.dialect.DisallowEmptySExpr && !p.emittedEmptySExpr[idx.Open] {
			p.diags.Add(diag.New(p.file, idx.OpenLine, idx.OpenColumn, diag.EmptySExpr, "empty s-expression"))
			p.emittedEmptySExpr[idx.Open] = true
		}
		return nil
	}

	var head *ast.Node
	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]

		switch {
		case tok.Kind == token.Kind(')'):
			openTok := toks[i-1]
			var node *ast.Node
			if nested, ok := p.table.Find(openTok.Offset); ok {
				node = p.newListNode(nested, ast.KindList)
			} else {
				node = p.newNode(ast.Node{Kind: ast.KindError, Tok: openTok})
			}
			node.SetNext(head)
			head = node
			i-- // also consumes the paired open token

		case tok.Kind == token.KindInvalid:
			// The tokenizer already emitted "unrecognized token"; do not
			// emit a second diagnostic for the same byte (spec.md §4.G).
			node := p.newNode(ast.Node{Kind: ast.KindError, Tok: tok})
			node.SetNext(head)
			head = node

		case tok.Kind < 256 && p.dialect.isDialectSpecial(byte(tok.Kind)):
			node := p.hook.ParseDialectSpecial(p, tok)
			node.SetNext(head)
			head = node

		default:
			node := p.newNode(ast.Node{Kind: ast.ClassifyAtomKind(tok.Kind), Tok: tok})
			node.SetNext(head)
			head = node
		}
	}
	return head
}

// Auxiliary materializes tok's attached trivia as an Auxiliary node, or
// nil if tok carries none. Calling this on a closing-paren token whose
// aux_length sentinel has not yet been resolved emits
// "fetching-auxiliary-of-lazy-token" and returns nil; call it only after
// the owning list's children have been requested at least once.
func (p *Parser) Auxiliary(tok token.Token) *ast.Node {
	if tok.AuxLength == token.AuxLengthUnknown {
		p.diags.Add(diag.New(p.file, tok.Line, tok.Column, diag.FetchingAuxiliaryOfLazyToken,
			"fetching auxiliary of lazy token"))
		return nil
	}
	if tok.AuxLength == 0 {
		return nil
	}
	return p.newNode(ast.Node{Kind: ast.KindAuxiliary, TriviaIndex: tok.AuxIndex, TriviaLength: tok.AuxLength})
}

// CloseTrivia is Auxiliary specialized for a list node's own close paren
// (spec.md §9 "Trivia attachment"): it first ensures the list's interior
// has been tokenized, since that is what resolves the close token's
// aux_length sentinel via the tokenizer's CloseAux lookup.
func (p *Parser) CloseTrivia(list *ast.Node) *ast.Node {
	if list.Kind != ast.KindList && list.Kind != ast.KindArguments {
		return nil
	}
	list.Children()
	index, length := p.tokenizer.CloseAux(list.Tok.Offset)
	if length == token.AuxLengthUnknown || length == 0 {
		return nil
	}
	return p.newNode(ast.Node{Kind: ast.KindAuxiliary, TriviaIndex: index, TriviaLength: length})
}

// Trivia returns the tokenizer's shared trivia table, needed to resolve
// an Auxiliary node's TriviaIndex/TriviaLength into byte spans.
func (p *Parser) Trivia() []token.Trivia { return p.tokenizer.Trivia() }
