package classify

// Fixed base structural bytes recognized regardless of dialect, per
// spec.md §3: ( ) + - * / % ! & ' . = < > | ^ \
var baseStruct = [256]bool{
	'(': true, ')': true, '+': true, '-': true, '*': true, '/': true,
	'%': true, '!': true, '&': true, '\'': true, '.': true, '=': true,
	'<': true, '>': true, '|': true, '^': true, '\\': true,
}

var fragTable = [256]bool{
	' ': true, '\t': true, '\r': true, '\n': true,
}

var newlineTable = [256]bool{
	'\n': true,
}

var digitTable [256]bool

var letterTable [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		digitTable[c] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		letterTable[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		letterTable[c] = true
	}
}

// structTable builds the 256-entry structural lookup table for a given
// dialect configuration, folding in the base set plus enabled dialect
// punctuation. This is the Go-idiom stand-in for the two table-shuffle
// lookups + OR described in spec.md §4.B step 4.
func structTable(cfg StructConfig) [256]bool {
	t := baseStruct
	if cfg.Hash {
		t['#'] = true
	}
	if cfg.Comma {
		t[','] = true
	}
	if cfg.Brackets {
		t['['] = true
		t[']'] = true
	}
	if cfg.Backtick {
		t['`'] = true
	}
	if cfg.Colon {
		t[':'] = true
	}
	if cfg.AtSign {
		t['@'] = true
	}
	if cfg.Dollar {
		t['$'] = true
	}
	if cfg.Tilde {
		t['~'] = true
	}
	return t
}

// identTable builds the 256-entry identifier-continuation lookup table:
// letters, digits, underscore, and '-' when the dialect enables it,
// mirroring spec.md §4.B step 6's four-shuffle OR-with-digits.
func identTable(cfg StructConfig) [256]bool {
	t := letterTable
	for c := byte('0'); c <= '9'; c++ {
		t[c] = true
	}
	t['_'] = true
	if cfg.DashInIdent {
		t['-'] = true
	}
	return t
}
