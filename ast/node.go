// Package ast implements the parse-tree node model described in
// spec.md §3/§4.F: a closed, kind-tagged variant set stored in an
// arena, traversed via double dispatch.
package ast

import "github.com/yazandaba/widelips/internal/token"

// Kind tags a Node's concrete shape and, for atoms, its semantic
// subkind (spec.md §3 "Node").
type Kind uint8

const (
	KindAtomSymbol Kind = iota
	KindAtomRealLiteral
	KindAtomStringLiteral
	KindAtomBoolean
	KindAtomNil
	KindAtomLet
	KindAtomLambda
	KindAtomIf
	KindAtomDefun
	KindAtomDefmacro
	KindAtomDefvar
	KindAtomOperator
	KindAtomEndOfProgram
	KindList
	KindArguments
	KindError
	KindAuxiliary
)

// IsAtom reports whether k is one of the atom subkinds.
func (k Kind) IsAtom() bool {
	return k <= KindAtomEndOfProgram
}

// ClassifyAtomKind maps a resolved token kind to the atom's semantic
// node kind (spec.md §3's atom subkind list). Callers building operator
// atoms out of dialect-special reader bytes (backtick, comma, at-sign)
// construct KindAtomOperator directly rather than going through here,
// since those bytes never carry a token.Kind that identifies them as
// operators on their own.
func ClassifyAtomKind(k token.Kind) Kind {
	switch k {
	case token.KindIdentifier:
		return KindAtomSymbol
	case token.KindRealLiteral:
		return KindAtomRealLiteral
	case token.KindStringLiteral:
		return KindAtomStringLiteral
	case token.KindKeywordTrue, token.KindKeywordFalse:
		return KindAtomBoolean
	case token.KindKeywordNil:
		return KindAtomNil
	case token.KindKeywordLet:
		return KindAtomLet
	case token.KindKeywordLambda:
		return KindAtomLambda
	case token.KindKeywordIf:
		return KindAtomIf
	case token.KindKeywordFunc:
		return KindAtomDefun
	case token.KindKeywordMacro:
		return KindAtomDefmacro
	case token.KindKeywordVar:
		return KindAtomDefvar
	case token.KindEndOfProgram:
		return KindAtomEndOfProgram
	default:
		// Structural/operator single-byte kinds, <=/<</>=/>>, and the
		// keyword-kind tokens (and/or/not) that spec.md §3 does not grant
		// a dedicated atom subkind all read naturally as operators.
		return KindAtomOperator
	}
}

// Node is the single arena-resident record backing every one of the
// five concrete shapes in spec.md §3 (atom, list, arguments, error,
// auxiliary). Collapsing all five into one tagged struct (rather than
// five Go types behind an interface) keeps every node the same fixed
// size for arena storage.
type Node struct {
	Kind Kind

	// Tok is the atom/error node's single token, or a list/arguments
	// node's open-paren token.
	Tok token.Token
	// Close is populated only for list/arguments nodes.
	Close token.Token

	// TriviaIndex/TriviaLength describe an Auxiliary node's materialized
	// trivia run; unused otherwise.
	TriviaIndex  uint32
	TriviaLength uint8

	next    *Node
	nextFn  func() *Node
	nextSet bool

	children       *Node
	childrenCached bool
	childrenFn     func() *Node
}

// NewAtom builds an atom node for the given token, already classified.
func NewAtom(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Tok: tok}
}

// NewError builds an error node for an offending token (spec.md §3
// "Error"); the lexer/tokenizer diagnostic for the invalid token has
// already been emitted, so building this node must not emit another.
func NewError(tok token.Token) *Node {
	return &Node{Kind: KindError, Tok: tok}
}

// NewList builds a list (or, with kind KindArguments, an arguments
// sub-tree) node whose children are resolved lazily via childrenFn the
// first time a caller asks for them.
func NewList(kind Kind, open, close token.Token, childrenFn func() *Node) *Node {
	return &Node{Kind: kind, Tok: open, Close: close, childrenFn: childrenFn}
}

// SetNext links n's next sibling, including nil for "n has no sibling."
// It clears any pending nextFn so Next() cannot mistake an explicitly
// resolved nil successor for "never set" and fall through to the lazy
// index-table lookup. Used by the reverse-walk lazy child parser
// (spec.md §4.G) to thread the chain in one pass.
func (n *Node) SetNext(next *Node) {
	n.next = next
	n.nextFn = nil
	n.nextSet = true
}

// SetNextFn installs a lazy resolver for n's sibling, used for a
// top-level list whose successor is the s-expression index table's
// next-entry lookup (spec.md §4.F "next_node semantics").
func (n *Node) SetNextFn(fn func() *Node) { n.nextFn = fn }

// SetChildrenFn installs the resolver a list/arguments node calls the
// first time something asks for its children. Used when a node is
// allocated directly out of an arena (via arena.Chained[Node].Emplace)
// rather than through NewList.
func (n *Node) SetChildrenFn(fn func() *Node) { n.childrenFn = fn }

// Next returns n's sibling, resolving it via the lazy fn on first call
// and caching the result (spec.md §4.F).
func (n *Node) Next() *Node {
	if n.nextSet {
		return n.next
	}
	if n.nextFn != nil {
		n.next = n.nextFn()
		n.nextFn = nil
	}
	n.nextSet = true
	return n.next
}

// Children returns n's materialized children, caching the result after
// the first call (the "mutable" accessor of spec.md §4.F/§9: repeat
// calls return the same pointer). Only meaningful for list/arguments
// nodes; any other kind returns nil.
func (n *Node) Children() *Node {
	if n.Kind != KindList && n.Kind != KindArguments {
		return nil
	}
	if n.childrenCached {
		return n.children
	}
	if n.childrenFn != nil {
		n.children = n.childrenFn()
	}
	n.childrenCached = true
	return n.children
}

// ChildrenReadOnly re-parses n's interior on every call without
// touching the cache spec.md §4.F's mutable Children() maintains. This
// is the read-only accessor spec.md §9's Open Question describes as
// diverging from the mutable path in the original implementation;
// WideLips keeps that divergence deliberately (see DESIGN.md) rather
// than collapsing the two into one cached accessor.
func (n *Node) ChildrenReadOnly() *Node {
	if n.Kind != KindList && n.Kind != KindArguments || n.childrenFn == nil {
		return n.Children()
	}
	return n.childrenFn()
}

// Trivia slices an Auxiliary node's spans out of the tokenizer's shared
// trivia table, given by the caller (spec.md §3 "Auxiliary").
func (n *Node) Trivia(table []token.Trivia) []token.Trivia {
	if n.Kind != KindAuxiliary {
		return nil
	}
	return table[n.TriviaIndex : n.TriviaIndex+uint32(n.TriviaLength)]
}
