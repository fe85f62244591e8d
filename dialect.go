package widelips

import (
	"github.com/yazandaba/widelips/internal/classify"
	"github.com/yazandaba/widelips/internal/token"
)

// Dialect gathers the compile-time switches spec.md §6 describes as
// C-style `#define`s into a plain struct built once per parser, the Go
// idiom this pack uses for dialect/target configuration (mirrors
// oarkflow-sqlparser's ConvertOptions shape).
type Dialect struct {
	Hash                bool
	Comma               bool
	Brackets            bool
	Backtick            bool
	Colon               bool
	AtSign              bool
	Dollar              bool
	Tilde               bool
	DashInIdent         bool
	DisallowEmptySExpr  bool

	// Keyword spellings; the configurable subset per spec.md §6, plus
	// the fixed let/and/or/not/if spellings which Option funcs never
	// touch.
	Keywords token.Keywords
}

// Option mutates a Dialect under construction.
type Option func(*Dialect)

// DefaultDialect returns the base WideLips dialect: no optional
// punctuation enabled, canonical keyword spellings.
func DefaultDialect() Dialect {
	return Dialect{Keywords: token.DefaultKeywords()}
}

// NewDialect builds a Dialect starting from DefaultDialect and applying
// opts in order.
func NewDialect(opts ...Option) Dialect {
	d := DefaultDialect()
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func WithHash(v bool) Option               { return func(d *Dialect) { d.Hash = v } }
func WithComma(v bool) Option              { return func(d *Dialect) { d.Comma = v } }
func WithBrackets(v bool) Option           { return func(d *Dialect) { d.Brackets = v } }
func WithBacktick(v bool) Option           { return func(d *Dialect) { d.Backtick = v } }
func WithColon(v bool) Option              { return func(d *Dialect) { d.Colon = v } }
func WithAtSign(v bool) Option             { return func(d *Dialect) { d.AtSign = v } }
func WithDollar(v bool) Option             { return func(d *Dialect) { d.Dollar = v } }
func WithTilde(v bool) Option              { return func(d *Dialect) { d.Tilde = v } }
func WithDashInIdent(v bool) Option        { return func(d *Dialect) { d.DashInIdent = v } }
func WithDisallowEmptySExpr(v bool) Option { return func(d *Dialect) { d.DisallowEmptySExpr = v } }

// WithFuncSpelling overrides the function-definer keyword's spelling
// (default "defun"; Clojure dialects use "defn").
func WithFuncSpelling(s string) Option { return func(d *Dialect) { d.Keywords.Func = s } }

// WithMacroSpelling overrides the macro-definer keyword's spelling.
func WithMacroSpelling(s string) Option { return func(d *Dialect) { d.Keywords.Macro = s } }

// WithVarSpelling overrides the variable-definer keyword's spelling.
func WithVarSpelling(s string) Option { return func(d *Dialect) { d.Keywords.Var = s } }

// WithLambdaSpelling overrides the lambda keyword's spelling.
func WithLambdaSpelling(s string) Option { return func(d *Dialect) { d.Keywords.Lambda = s } }

// WithTrueSpelling overrides the true-literal keyword's spelling
// (default "true"; some dialects use "t").
func WithTrueSpelling(s string) Option { return func(d *Dialect) { d.Keywords.True = s } }

// WithFalseSpelling overrides the false-literal keyword's spelling
// (default "false"; some dialects fold false into "nil").
func WithFalseSpelling(s string) Option { return func(d *Dialect) { d.Keywords.False = s } }

// WithNilSpelling overrides the nil-literal keyword's spelling.
func WithNilSpelling(s string) Option { return func(d *Dialect) { d.Keywords.Nil = s } }

func (d Dialect) structConfig() classify.StructConfig {
	return classify.StructConfig{
		Hash:        d.Hash,
		Comma:       d.Comma,
		Brackets:    d.Brackets,
		Backtick:    d.Backtick,
		Colon:       d.Colon,
		AtSign:      d.AtSign,
		Dollar:      d.Dollar,
		Tilde:       d.Tilde,
		DashInIdent: d.DashInIdent,
	}
}

// isDialectSpecial reports whether b is one of the enabled dialect
// reader bytes that the default lazy child parser hands off to a
// DialectHook (spec.md §4.G).
func (d Dialect) isDialectSpecial(b byte) bool {
	switch b {
	case '`':
		return d.Backtick
	case ',':
		return d.Comma
	case '@':
		return d.AtSign
	case '#':
		return d.Hash
	case ':':
		return d.Colon
	case '$':
		return d.Dollar
	case '~':
		return d.Tilde
	}
	return false
}
