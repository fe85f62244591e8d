package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/yazandaba/widelips"
)

// dialectConfig mirrors the [dialect] table of a .widelips.toml file,
// the same shape as vovakirdan-surge's surge.toml project manifest but
// scoped to the reader-byte switches spec.md §6 exposes as options.
type dialectConfig struct {
	Dialect struct {
		Hash               bool   `toml:"hash"`
		Comma              bool   `toml:"comma"`
		Brackets           bool   `toml:"brackets"`
		Backtick           bool   `toml:"backtick"`
		Colon              bool   `toml:"colon"`
		AtSign             bool   `toml:"at_sign"`
		Dollar             bool   `toml:"dollar"`
		Tilde              bool   `toml:"tilde"`
		DashInIdent        bool   `toml:"dash_in_ident"`
		DisallowEmptySExpr bool   `toml:"disallow_empty_sexpr"`
		FuncSpelling       string `toml:"func_spelling"`
		MacroSpelling      string `toml:"macro_spelling"`
		VarSpelling        string `toml:"var_spelling"`
		LambdaSpelling     string `toml:"lambda_spelling"`
		TrueSpelling       string `toml:"true_spelling"`
		FalseSpelling      string `toml:"false_spelling"`
		NilSpelling        string `toml:"nil_spelling"`
	} `toml:"dialect"`
}

func loadDialectOptions(cmd *cobra.Command) ([]widelips.Option, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("dialect-config")
	if path == "" {
		return nil, nil
	}

	var cfg dialectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	d := cfg.Dialect
	opts := []widelips.Option{
		widelips.WithHash(d.Hash),
		widelips.WithComma(d.Comma),
		widelips.WithBrackets(d.Brackets),
		widelips.WithBacktick(d.Backtick),
		widelips.WithColon(d.Colon),
		widelips.WithAtSign(d.AtSign),
		widelips.WithDollar(d.Dollar),
		widelips.WithTilde(d.Tilde),
		widelips.WithDashInIdent(d.DashInIdent),
		widelips.WithDisallowEmptySExpr(d.DisallowEmptySExpr),
	}
	if d.FuncSpelling != "" {
		opts = append(opts, widelips.WithFuncSpelling(d.FuncSpelling))
	}
	if d.MacroSpelling != "" {
		opts = append(opts, widelips.WithMacroSpelling(d.MacroSpelling))
	}
	if d.VarSpelling != "" {
		opts = append(opts, widelips.WithVarSpelling(d.VarSpelling))
	}
	if d.LambdaSpelling != "" {
		opts = append(opts, widelips.WithLambdaSpelling(d.LambdaSpelling))
	}
	if d.TrueSpelling != "" {
		opts = append(opts, widelips.WithTrueSpelling(d.TrueSpelling))
	}
	if d.FalseSpelling != "" {
		opts = append(opts, widelips.WithFalseSpelling(d.FalseSpelling))
	}
	if d.NilSpelling != "" {
		opts = append(opts, widelips.WithNilSpelling(d.NilSpelling))
	}
	return opts, nil
}
