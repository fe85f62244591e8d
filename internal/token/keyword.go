package token

import "encoding/binary"

// Keywords holds the byte-slice spellings recognized as keyword tokens.
// let/and/or/not/if are fixed per spec.md §4.D; the rest are dialect
// configurable (func/macro/var/lambda/true/false/nil spellings).
type Keywords struct {
	Let, And, Or, Not, If                string
	Func, Macro, Var, Lambda             string
	True, False, Nil                     string
}

// DefaultKeywords returns the canonical spellings used when a dialect
// does not override the configurable subset.
func DefaultKeywords() Keywords {
	return Keywords{
		Let: "let", And: "and", Or: "or", Not: "not", If: "if",
		Func: "defun", Macro: "defmacro", Var: "defvar", Lambda: "lambda",
		True: "true", False: "false", Nil: "nil",
	}
}

// wordKey pairs an 8-byte little-endian image with the word's real
// length, so two words that share a common prefix (e.g. "if"/"iffy")
// never collide.
type wordKey struct {
	image  uint64
	length uint8
}

// keywordTable is a compiled lookup built once per Tokenizer: an
// 8-byte-image map for words of length <= 8 (the single 64-bit
// compare-and-dispatch spec.md §4.D describes) plus a plain string map
// for the rare longer spelling a dialect might configure.
type keywordTable struct {
	short map[wordKey]Kind
	long  map[string]Kind
}

func buildKeywordTable(kw Keywords) *keywordTable {
	t := &keywordTable{short: make(map[wordKey]Kind), long: make(map[string]Kind)}
	add := func(word string, k Kind) {
		if word == "" {
			return
		}
		if len(word) <= 8 {
			t.short[wordImage(word)] = k
		} else {
			t.long[word] = k
		}
	}
	add(kw.Let, KindKeywordLet)
	add(kw.And, KindKeywordAnd)
	add(kw.Or, KindKeywordOr)
	add(kw.Not, KindKeywordNot)
	add(kw.If, KindKeywordIf)
	add(kw.Func, KindKeywordFunc)
	add(kw.Macro, KindKeywordMacro)
	add(kw.Var, KindKeywordVar)
	add(kw.Lambda, KindKeywordLambda)
	add(kw.True, KindKeywordTrue)
	add(kw.False, KindKeywordFalse)
	add(kw.Nil, KindKeywordNil)
	return t
}

// wordImage loads word (<=8 bytes) into a zero-padded 64-bit register
// image, mirroring the "load 8 bytes, mask off the tail" compare trick
// spec.md §4.D describes.
func wordImage(word string) wordKey {
	var buf [8]byte
	copy(buf[:], word)
	return wordKey{image: binary.LittleEndian.Uint64(buf[:]), length: uint8(len(word))}
}

// lookup classifies word against the compiled table: the fast path masks
// off bytes past word's length and does a single 64-bit compare; only
// words longer than 8 bytes fall through to a string compare.
func (t *keywordTable) lookup(word []byte) (Kind, bool) {
	if len(word) <= 8 {
		var buf [8]byte
		copy(buf[:], word)
		k, ok := t.short[wordKey{image: binary.LittleEndian.Uint64(buf[:]), length: uint8(len(word))}]
		return k, ok
	}
	k, ok := t.long[string(word)]
	return k, ok
}
