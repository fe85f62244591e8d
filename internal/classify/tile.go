// Package classify implements the vectorized byte classifier of spec.md
// §4.B: one forward pass over the input in TileSize-byte tiles, producing
// six per-tile bitmasks (frag, struct, digit, string, newline, ident).
package classify

// TileSize is the tile width in bytes, matching spec.md's 32-byte tiles
// (one AVX2 register's worth of bytes on amd64).
const TileSize = 32

// Tile is one classification record, bit i of each mask corresponding to
// byte i of the tile. It mirrors WideLips's TokenizationBlock
// (original_source/include/LispLexer.h), six uint32 masks, 32-byte
// tile-aligned.
type Tile struct {
	Frag     uint32 // whitespace: space, tab, CR, LF
	Struct   uint32 // structural/operator bytes + enabled dialect punctuation
	Digit    uint32 // ASCII 0-9
	String   uint32 // true (unescaped) '"' delimiter positions
	Newline  uint32 // LF positions
	Ident    uint32 // identifier-continuation bytes (letters, digits, '_', optional '-')
}

// StructConfig describes which dialect-special punctuation bytes
// additionally count as structural for this parse, on top of the fixed
// base set. This is the Go analogue of WideLips's compile-time
// EnableHash/EnableComma/... switches (spec.md §6).
type StructConfig struct {
	Hash        bool // '#'
	Comma       bool // ','
	Brackets    bool // '[' ']'
	Backtick    bool // '`'
	Colon       bool // ':'
	AtSign      bool // '@'
	Dollar      bool // '$'
	Tilde       bool // '~'
	DashInIdent bool // '-' continues an identifier
}
