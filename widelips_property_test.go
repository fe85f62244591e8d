package widelips

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/yazandaba/widelips/ast"
	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/sexpr"
)

// randomBalancedProgram builds a brace-balanced program of atoms drawn
// from '(' ')' whitespace identifier digit, of at least n bytes, per
// spec.md §8's property-test list. Every paren it opens is closed before
// it returns; it also reports how many parens it opened.
func randomBalancedProgram(rnd *rand.Rand, n int) (string, int) {
	var out []byte
	open := 0
	opens := 0
	for len(out) < n {
		switch {
		case open > 0 && (rnd.Intn(4) == 0 || len(out) > n-2):
			out = append(out, ')')
			open--
		case rnd.Intn(3) == 0:
			out = append(out, '(')
			open++
			opens++
		case rnd.Intn(2) == 0:
			out = append(out, byte('a'+rnd.Intn(26)))
		default:
			out = append(out, byte('0'+rnd.Intn(10)))
		}
		out = append(out, ' ')
	}
	for ; open > 0; open-- {
		out = append(out, ')')
	}
	return string(out), opens
}

// countLists walks the tree pre-order, counting KindList/KindArguments
// nodes and descending into each list's children exactly once.
func countLists(n *ast.Node) int {
	if n == nil || n.Kind == ast.KindAtomEndOfProgram {
		return 0
	}
	count := 0
	if n.Kind == ast.KindList || n.Kind == ast.KindArguments {
		count++
		count += countLists(n.Children())
	}
	return count + countLists(n.Next())
}

func TestRandomBalancedProgramVisitsEveryOpenOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("random_%d", i), func(t *testing.T) {
			src, wantOpens := randomBalancedProgram(rnd, 5+i)
			buf := Pad([]byte(src))
			res := Parse(buf, "t.lisp", false)

			if wantOpens == 0 {
				return
			}
			got := countLists(res.Root)
			if got != wantOpens {
				t.Errorf("countLists = %d, want %d for %q", got, wantOpens, src)
			}
		})
	}
}

// noopVisitor implements ast.Visitor without doing anything; walking the
// tree with it exercises Accept's dispatch switch on every node shape a
// random program can produce without depending on any side effect.
type noopVisitor struct{}

func (noopVisitor) VisitAtom(n *ast.Node)      {}
func (noopVisitor) VisitList(n *ast.Node)      {}
func (noopVisitor) VisitArguments(n *ast.Node) {}
func (noopVisitor) VisitError(n *ast.Node)     {}

// treeTokenRanges walks the parsed tree with the no-op visitor (proving
// Accept's dispatch completes over the whole tree) and, alongside that,
// records each visited node's own token span, in the same pre-order
// sequence cmd/widelips's dumpTokens prints — one range per list/
// arguments open paren and per atom, none for a list's separately-tracked
// close paren, and none for the end-of-program sentinel.
func treeTokenRanges(root *ast.Node) [][2]uint32 {
	var v noopVisitor
	var ranges [][2]uint32
	walker := ast.Walker{Action: func(n *ast.Node) {
		n.Accept(v)
		if n.Kind == ast.KindAtomEndOfProgram {
			return
		}
		ranges = append(ranges, [2]uint32{n.Tok.Offset, n.Tok.Length})
	}}
	walker.Walk(root)
	return ranges
}

// naiveTokenRanges independently re-derives the same flat sequence of
// token byte ranges using nothing but the classification tables
// ClassifyAll produces, scanning byte-by-byte rather than going through
// the on-demand tokenizer/index/lazy-child-parser pipeline at all. It
// mirrors the tree side's convention of not emitting a separate range for
// a close paren (tokenLabel/dumpTokens in cmd/widelips never print one
// either, since a list's close paren lives on the list node itself
// rather than as its own node).
func naiveTokenRanges(buf []byte) [][2]uint32 {
	tiles := classify.New(classify.StructConfig{}).ClassifyAll(buf)
	tileBit := func(pos int) (classify.Tile, uint32) {
		idx := pos / classify.TileSize
		var tile classify.Tile
		if idx < len(tiles) {
			tile = tiles[idx]
		}
		return tile, uint32(1) << uint(pos%classify.TileSize)
	}

	var ranges [][2]uint32
	i := 0
	for i < len(buf) && buf[i] != sexpr.SentinelByte {
		tile, bit := tileBit(i)
		switch {
		case tile.Frag&bit != 0:
			i++
		case tile.Struct&bit != 0:
			if buf[i] == ')' {
				i++
				continue
			}
			ranges = append(ranges, [2]uint32{uint32(i), 1})
			i++
		case tile.Digit&bit != 0:
			start := i
			for i < len(buf) && buf[i] != sexpr.SentinelByte {
				t, b := tileBit(i)
				if t.Digit&b == 0 {
					break
				}
				i++
			}
			ranges = append(ranges, [2]uint32{uint32(start), uint32(i - start)})
		case tile.Ident&bit != 0:
			start := i
			for i < len(buf) && buf[i] != sexpr.SentinelByte {
				t, b := tileBit(i)
				if t.Ident&b == 0 {
					break
				}
				i++
			}
			ranges = append(ranges, [2]uint32{uint32(start), uint32(i - start)})
		default:
			i++
		}
	}
	return ranges
}

func TestTreeTokenRangesMatchNaiveByteScan(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("random_%d", i), func(t *testing.T) {
			src, wantOpens := randomBalancedProgram(rnd, 5+i)
			if wantOpens == 0 {
				return
			}
			buf := Pad([]byte(src))
			res := Parse(buf, "t.lisp", false)
			if !res.Success {
				return
			}

			got := treeTokenRanges(res.Root)
			want := naiveTokenRanges(buf)

			if len(got) != len(want) {
				t.Fatalf("range count = %d, want %d for %q\ngot:  %v\nwant: %v", len(got), len(want), src, got, want)
			}
			for j := range want {
				if got[j] != want[j] {
					t.Errorf("range %d = %v, want %v for %q", j, got[j], want[j], src)
				}
			}
		})
	}
}

func TestReparseSameBufferIsDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 50; i++ {
		src, _ := randomBalancedProgram(rnd, 5+i)
		buf := Pad([]byte(src))

		p := NewParser(buf, "t.lisp", false)
		root1 := p.Parse()
		diags1 := p.Diagnostics()

		p.Reuse()
		root2 := p.Parse()
		diags2 := p.Diagnostics()

		if len(diags1) != len(diags2) {
			t.Fatalf("reuse changed diagnostic count for %q: %d vs %d", src, len(diags1), len(diags2))
		}
		for j := range diags1 {
			if diags1[j].Code != diags2[j].Code || diags1[j].Severity != diags2[j].Severity {
				t.Errorf("diagnostic %d mismatch for %q: %+v vs %+v", j, src, diags1[j], diags2[j])
			}
		}

		n1, n2 := root1, root2
		for n1 != nil && n2 != nil {
			if n1.Kind != n2.Kind || n1.Tok.Offset != n2.Tok.Offset || n1.Tok.Length != n2.Tok.Length || n1.Tok.Kind != n2.Tok.Kind {
				t.Fatalf("token mismatch for %q: %+v vs %+v", src, n1.Tok, n2.Tok)
			}
			n1, n2 = n1.Next(), n2.Next()
		}
		if (n1 == nil) != (n2 == nil) {
			t.Errorf("sibling chain length mismatch for %q", src)
		}
	}
}
