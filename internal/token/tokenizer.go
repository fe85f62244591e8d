package token

import (
	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/diag"
	"github.com/yazandaba/widelips/internal/sexpr"
)

// Tokenizer materializes tokens for one s-expression's interior at a
// time, on request (spec.md §4.D). It owns the shared trivia table so
// that Token.AuxIndex values stay valid across every list tokenized from
// the same buffer.
type Tokenizer struct {
	buf   []byte
	tiles []classify.Tile
	table *sexpr.Table
	kw    *keywordTable
	file  string
	diags *diag.Set

	trivia []Trivia

	// done tracks which open offsets have already been tokenized, for
	// the idempotence guarantee (spec.md §4.D "Idempotence").
	done map[uint32][]Token

	// closeAux holds, per list open-offset, the trivia that was found to
	// precede that list's own close paren once the list itself was
	// tokenized. Until that happens a lookup reports the aux_length=255
	// sentinel (spec.md §4.D "Trivia attachment").
	closeAux map[uint32]closeTrivia

	leadingDone   bool
	leadingIndex  uint32
	leadingLength uint8
}

type closeTrivia struct {
	index  uint32
	length uint8
}

// New builds a Tokenizer over buf, given its precomputed classification
// tiles and s-expression index table.
func New(buf []byte, tiles []classify.Tile, table *sexpr.Table, kw Keywords, file string, d *diag.Set) *Tokenizer {
	return &Tokenizer{
		buf:      buf,
		tiles:    tiles,
		table:    table,
		kw:       buildKeywordTable(kw),
		file:     file,
		diags:    d,
		done:     make(map[uint32][]Token),
		closeAux: make(map[uint32]closeTrivia),
	}
}

// Trivia returns the shared trivia table in emission order.
func (tz *Tokenizer) Trivia() []Trivia { return tz.trivia }

// CloseAux reports the trivia attached to the close paren of the list
// opened at offset open. Until that list has itself been tokenized (via
// TokenizeList), it returns the AuxLengthUnknown sentinel.
func (tz *Tokenizer) CloseAux(open uint32) (index uint32, length uint8) {
	if ct, ok := tz.closeAux[open]; ok {
		return ct.index, ct.length
	}
	return 0, AuxLengthUnknown
}

// LeadingTrivia materializes the whitespace/comment run preceding the
// program's first top-level '(' at firstOpen, since that byte range
// belongs to no list's interior and would otherwise never be attached
// to any token's aux_index/aux_length. Idempotent: only the first call
// scans the buffer.
func (tz *Tokenizer) LeadingTrivia(firstOpen uint32) (index uint32, length uint8) {
	if tz.leadingDone {
		return tz.leadingIndex, tz.leadingLength
	}
	tz.leadingDone = true

	end := int(firstOpen)
	p := 0
	startIndex := uint32(len(tz.trivia))
	count := 0

	for p < end {
		b := tz.buf[p]
		switch {
		case b == ';':
			start := p
			for p < end && tz.buf[p] != '\n' {
				p++
			}
			if p < end {
				p++
			}
			tz.trivia = append(tz.trivia, Trivia{Offset: uint32(start), Length: uint32(p - start), Kind: TriviaComment})
			count++
		case tz.isFrag(p):
			start := p
			for p < end && tz.isFrag(p) {
				p++
			}
			tz.trivia = append(tz.trivia, Trivia{Offset: uint32(start), Length: uint32(p - start), Kind: TriviaWhitespace})
			count++
		default:
			p++
		}
	}

	if count == 0 {
		return 0, 0
	}
	tz.leadingIndex, tz.leadingLength = startIndex, uint8(count)
	return tz.leadingIndex, tz.leadingLength
}

func (tz *Tokenizer) tileBit(p int) (classify.Tile, uint32) {
	ti := p / classify.TileSize
	bi := uint(p % classify.TileSize)
	var tile classify.Tile
	if ti < len(tz.tiles) {
		tile = tz.tiles[ti]
	}
	return tile, uint32(1) << bi
}

func (tz *Tokenizer) findOpen(offset uint32) (sexpr.Index, bool) {
	return tz.table.Find(offset)
}

// TokenizeList materializes the token sequence for the interior of the
// s-expression whose open-paren index record is open, up to (but not
// including) its matching close paren. If open is not closed, the
// region runs to the end of the buffer.
//
// A second call for the same open offset returns the cached result
// without re-emitting diagnostics (spec.md §4.D "Idempotence").
func (tz *Tokenizer) TokenizeList(open sexpr.Index) []Token {
	if cached, ok := tz.done[open.Open]; ok {
		return cached
	}

	end := len(tz.buf)
	if open.Closed {
		end = int(open.Close)
	}

	line, col := open.OpenLine, open.OpenColumn+1
	var pendingAuxIndex uint32
	var pendingAuxLength int
	havePending := false

	var out []Token

	advance := func(b byte) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	addTrivia := func(offset, length uint32, kind TriviaKind) {
		if !havePending {
			pendingAuxIndex = uint32(len(tz.trivia))
			havePending = true
		}
		tz.trivia = append(tz.trivia, Trivia{Offset: offset, Length: length, Kind: kind})
		pendingAuxLength++
	}

	emit := func(k Kind, offset, length uint32, tokLine, tokCol uint32) Token {
		tok := Token{Offset: offset, Length: length, Line: tokLine, Column: tokCol, Kind: k}
		if havePending {
			tok.AuxIndex = pendingAuxIndex
			tok.AuxLength = uint8(pendingAuxLength)
			havePending = false
			pendingAuxLength = 0
		}
		return tok
	}

	p := int(open.Open) + 1

	for p < end && tz.buf[p] != sexpr.SentinelByte {
		b := tz.buf[p]
		startLine, startCol := line, col

		switch {
		case b == '(':
			nested, ok := tz.findOpen(uint32(p))
			if !ok {
				// Should not happen: Build records every '(' it sees.
				tz.diags.Add(diag.New(tz.file, line, col, diag.SyntaxError, "internal: missing s-expression index"))
				advance(b)
				p++
				continue
			}
			out = append(out, emit(Kind('('), uint32(p), 1, startLine, startCol))

			stop := int(nested.Close) + 1
			if !nested.Closed {
				stop = end
			}
			closeLine, closeCol := nested.CloseLine, nested.CloseColumn
			for p < stop && p < len(tz.buf) {
				advance(tz.buf[p])
				p++
			}
			if !nested.Closed {
				closeLine, closeCol = line, col
			}
			closeOffset := uint32(stop - 1)
			out = append(out, Token{Offset: closeOffset, Length: 1, Line: closeLine, Column: closeCol, Kind: Kind(')'), AuxLength: AuxLengthUnknown})

		case b == ';':
			start := p
			for p < end && tz.buf[p] != '\n' && tz.buf[p] != sexpr.SentinelByte {
				advance(tz.buf[p])
				p++
			}
			if p < end && tz.buf[p] == '\n' {
				// a comment span runs through its terminating newline
				// (spec.md §3 "a single comment (;...\n)").
				advance(tz.buf[p])
				p++
			}
			addTrivia(uint32(start), uint32(p-start), TriviaComment)

		case tz.isFrag(p):
			start := p
			for p < end && tz.isFrag(p) {
				advance(tz.buf[p])
				p++
			}
			addTrivia(uint32(start), uint32(p-start), TriviaWhitespace)

		case tz.isStruct(p):
			k := Kind(b)
			length := uint32(1)
			if (b == '<' || b == '>') && p+1 < end {
				nb := tz.buf[p+1]
				switch {
				case b == '<' && nb == '=':
					k, length = KindLE, 2
				case b == '<' && nb == '<':
					k, length = KindShl, 2
				case b == '>' && nb == '=':
					k, length = KindGE, 2
				case b == '>' && nb == '>':
					k, length = KindShr, 2
				}
			}
			out = append(out, emit(k, uint32(p), length, startLine, startCol))
			for i := uint32(0); i < length; i++ {
				advance(tz.buf[p])
				p++
			}

		case tz.isDigit(p):
			start := p
			for p < end && tz.isDigit(p) {
				advance(tz.buf[p])
				p++
			}
			if p < end && tz.buf[p] == '.' {
				advance(tz.buf[p])
				p++
				for p < end && tz.isDigit(p) {
					advance(tz.buf[p])
					p++
				}
			}
			if p < end && (tz.buf[p] == 'e' || tz.buf[p] == 'E') {
				expStart := p
				advance(tz.buf[p])
				p++
				if p < end && (tz.buf[p] == '+' || tz.buf[p] == '-') {
					advance(tz.buf[p])
					p++
				}
				digitsSeen := 0
				for p < end && tz.isDigit(p) {
					advance(tz.buf[p])
					p++
					digitsSeen++
				}
				if digitsSeen == 0 {
					tz.diags.Add(diag.New(tz.file, startLine, startCol, diag.MalformedFloatingPointLiteral,
						"malformed floating-point literal"))
					p = expStart
				}
			}
			out = append(out, emit(KindRealLiteral, uint32(start), uint32(p-start), startLine, startCol))

		case tz.isIdentStart(p):
			start := p
			for p < end && tz.isIdent(p) {
				advance(tz.buf[p])
				p++
			}
			word := tz.buf[start:p]
			k := KindIdentifier
			if kk, ok := tz.kw.lookup(word); ok {
				k = kk
			}
			out = append(out, emit(k, uint32(start), uint32(p-start), startLine, startCol))

		case b == '"':
			start := p
			advance(b)
			p++
			closed := false
			for p < end && tz.buf[p] != sexpr.SentinelByte {
				tile, bit := tz.tileBit(p)
				if tile.String&bit != 0 {
					advance(tz.buf[p])
					p++
					closed = true
					break
				}
				advance(tz.buf[p])
				p++
			}
			if !closed {
				tz.diags.Add(diag.New(tz.file, startLine, startCol, diag.UnterminatedStringLiteral,
					"unterminated string literal"))
			}
			out = append(out, emit(KindStringLiteral, uint32(start), uint32(p-start), startLine, startCol))

		default:
			tz.diags.Add(diag.New(tz.file, line, col, diag.UnrecognizedToken, "unrecognized token"))
			out = append(out, emit(KindInvalid, uint32(p), 1, startLine, startCol))
			advance(b)
			p++
		}
	}

	// Record trivia trailing the last inner token, so that whoever holds
	// this list's own close-paren placeholder (its parent's TokenizeList
	// call) can resolve the aux_length=255 sentinel via CloseAux
	// (spec.md §4.D "Trivia attachment").
	if havePending {
		tz.closeAux[open.Open] = closeTrivia{index: pendingAuxIndex, length: uint8(pendingAuxLength)}
	} else {
		tz.closeAux[open.Open] = closeTrivia{}
	}

	tz.done[open.Open] = out
	return out
}

func (tz *Tokenizer) isFrag(p int) bool {
	tile, bit := tz.tileBit(p)
	return tile.Frag&bit != 0
}

func (tz *Tokenizer) isStruct(p int) bool {
	tile, bit := tz.tileBit(p)
	return tile.Struct&bit != 0
}

func (tz *Tokenizer) isDigit(p int) bool {
	tile, bit := tz.tileBit(p)
	return tile.Digit&bit != 0
}

func (tz *Tokenizer) isIdent(p int) bool {
	tile, bit := tz.tileBit(p)
	return tile.Ident&bit != 0
}

func (tz *Tokenizer) isIdentStart(p int) bool {
	return tz.isIdent(p)
}
