package token

import (
	"testing"

	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/diag"
	"github.com/yazandaba/widelips/internal/sexpr"
)

func padded(src string) []byte {
	pad := make([]byte, classify.TileSize)
	for i := range pad {
		pad[i] = sexpr.SentinelByte
	}
	return append([]byte(src), pad...)
}

func setup(src string) ([]byte, *sexpr.Table, *diag.Set) {
	buf := padded(src)
	c := classify.New(classify.StructConfig{})
	tiles := c.ClassifyAll(buf)
	var d diag.Set
	tbl := sexpr.Build(buf, tiles, "t.lisp", &d)
	return buf, tbl, &d
}

func newTokenizer(buf []byte, tbl *sexpr.Table, d *diag.Set) *Tokenizer {
	c := classify.New(classify.StructConfig{})
	tiles := c.ClassifyAll(buf)
	return New(buf, tiles, tbl, DefaultKeywords(), "t.lisp", d)
}

func TestTokenizeSimpleArithmetic(t *testing.T) {
	buf, tbl, d := setup("(+ 1 2)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens (+, 1, 2), got %d: %+v", len(toks), toks)
	}
	if toks[0].Kind != Kind('+') {
		t.Errorf("toks[0].Kind = %v, want '+'", toks[0].Kind)
	}
	if string(toks[1].Text(buf)) != "1" || toks[1].Kind != KindRealLiteral {
		t.Errorf("toks[1] = %+v, want real literal '1'", toks[1])
	}
	if string(toks[2].Text(buf)) != "2" {
		t.Errorf("toks[2] text = %q, want 2", toks[2].Text(buf))
	}
}

func TestTokenizeNestedListPlaceholder(t *testing.T) {
	buf, tbl, d := setup("(a (b c) d)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	// a, (, ), d
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[1].Kind != Kind('(') || toks[2].Kind != Kind(')') {
		t.Fatalf("expected placeholder ( ) pair, got %+v %+v", toks[1], toks[2])
	}
	if toks[2].AuxLength != AuxLengthUnknown {
		t.Errorf("expected close placeholder to carry sentinel before nested list is tokenized, got %d", toks[2].AuxLength)
	}
	// Now tokenize the nested list; children not materialized by the
	// outer call, so its own interior only appears once we descend.
	inner := tbl.Indices[1]
	innerToks := tz.TokenizeList(inner)
	if len(innerToks) != 2 {
		t.Fatalf("expected 2 inner tokens (b, c), got %d: %+v", len(innerToks), innerToks)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	buf, tbl, d := setup("(let if and or not x)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	want := []Kind{KindKeywordLet, KindKeywordIf, KindKeywordAnd, KindKeywordOr, KindKeywordNot, KindIdentifier}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("toks[%d].Kind = %v, want %v (%q)", i, toks[i].Kind, k, toks[i].Text(buf))
		}
	}
}

func TestTokenizeFloatWithExponent(t *testing.T) {
	buf, tbl, d := setup("(* 1.5e+5)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(toks), toks)
	}
	if got := string(toks[1].Text(buf)); got != "1.5e+5" {
		t.Errorf("real literal text = %q, want 1.5e+5", got)
	}
	if toks[1].Kind != KindRealLiteral {
		t.Errorf("Kind = %v, want KindRealLiteral", toks[1].Kind)
	}
}

func TestTokenizeMalformedExponent(t *testing.T) {
	buf, tbl, d := setup("(* 1.5e)")
	tz := newTokenizer(buf, tbl, d)
	tz.TokenizeList(tbl.Indices[0])
	if !d.HasErrors() {
		t.Fatalf("expected malformed-floating-point-literal diagnostic")
	}
	found := false
	for _, item := range d.Items() {
		if item.Code == diag.MalformedFloatingPointLiteral {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MalformedFloatingPointLiteral, got %v", d.Items())
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	buf, tbl, d := setup(`(f "hi there")`)
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[1].Kind != KindStringLiteral {
		t.Errorf("Kind = %v, want KindStringLiteral", toks[1].Kind)
	}
	if got := string(toks[1].Text(buf)); got != `"hi there"` {
		t.Errorf("text = %q, want quoted string including delimiters", got)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	buf, tbl, d := setup(`(f "hi)`)
	tz := newTokenizer(buf, tbl, d)
	tz.TokenizeList(tbl.Indices[0])
	if !d.HasErrors() {
		t.Fatalf("expected unterminated-string-literal diagnostic")
	}
}

func TestTokenizeShiftAndCompareOperators(t *testing.T) {
	buf, tbl, d := setup("(<= << >= >>)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	want := []Kind{KindLE, KindShl, KindGE, KindShr}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("toks[%d].Kind = %v, want %v", i, toks[i].Kind, k)
		}
		if toks[i].Length != 2 {
			t.Errorf("toks[%d].Length = %d, want 2", i, toks[i].Length)
		}
	}
}

func TestTokenizeTriviaAttachment(t *testing.T) {
	buf, tbl, d := setup("(a  ; comment\n  b)")
	tz := newTokenizer(buf, tbl, d)
	toks := tz.TokenizeList(tbl.Indices[0])
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", d.Items())
	}
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(toks), toks)
	}
	b := toks[1]
	if b.AuxLength == 0 {
		t.Fatalf("expected trivia attached to token 'b'")
	}
	trivia := tz.Trivia()[b.AuxIndex : b.AuxIndex+uint32(b.AuxLength)]
	if len(trivia) != 3 {
		t.Fatalf("expected 3 trivia spans (whitespace, comment-with-newline, whitespace), got %d: %+v", len(trivia), trivia)
	}
	if trivia[1].Kind != TriviaComment || string(buf[trivia[1].Offset:trivia[1].Offset+trivia[1].Length]) != "; comment\n" {
		t.Errorf("comment span = %+v, want %q", trivia[1], "; comment\n")
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	buf, tbl, d := setup("(+ 1 2)")
	tz := newTokenizer(buf, tbl, d)
	first := tz.TokenizeList(tbl.Indices[0])
	firstErrCount := d.Len()
	second := tz.TokenizeList(tbl.Indices[0])
	if d.Len() != firstErrCount {
		t.Errorf("second tokenization re-emitted diagnostics: %d -> %d", firstErrCount, d.Len())
	}
	if len(first) != len(second) {
		t.Fatalf("token counts differ across calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCloseAuxResolvesAfterInnerTokenization(t *testing.T) {
	buf, tbl, d := setup("(a (b) ; trailing\n)")
	tz := newTokenizer(buf, tbl, d)
	outer := tz.TokenizeList(tbl.Indices[0])
	_, length := tz.CloseAux(tbl.Indices[1].Open)
	if length != AuxLengthUnknown {
		t.Fatalf("expected sentinel before inner list is tokenized, got %d", length)
	}
	tz.TokenizeList(tbl.Indices[1])
	_, length = tz.CloseAux(tbl.Indices[1].Open)
	if length == AuxLengthUnknown {
		t.Errorf("expected resolved trivia length after tokenizing inner list")
	}
	_ = outer
}
