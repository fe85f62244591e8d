package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yazandaba/widelips"
	"github.com/yazandaba/widelips/ast"
	"github.com/yazandaba/widelips/reader"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Parse a source file and print its tokens, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, err := reader.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tokens: %w", err)
	}

	opts, err := loadDialectOptions(cmd)
	if err != nil {
		return err
	}

	res := widelips.Parse(buf, path, false, opts...)
	if len(res.Diagnostics) > 0 {
		printDiagnostics(os.Stderr, res.Diagnostics, useColor(cmd))
	}
	if res.Root != nil {
		dumpTokens(os.Stdout, buf, res.Root)
	}
	if !res.Success {
		return fmt.Errorf("tokens: %s failed with %d diagnostic(s)", path, len(res.Diagnostics))
	}
	return nil
}

// dumpTokens flattens the tree into one line per node, in the same
// pre-order sequence ast.Walker visits: a list's own open token first,
// then its children, walked recursively.
func dumpTokens(w io.Writer, buf []byte, root *ast.Node) {
	walker := ast.Walker{Action: func(n *ast.Node) {
		switch n.Kind {
		case ast.KindList, ast.KindArguments:
			fmt.Fprintf(w, "%s %d:%d\n", tokenLabel(n), n.Tok.Line, n.Tok.Column)
		case ast.KindAtomEndOfProgram:
			// terminates the walk; nothing to print
		default:
			fmt.Fprintf(w, "%s %q %d:%d\n", tokenLabel(n), n.Tok.Text(buf), n.Tok.Line, n.Tok.Column)
		}
	}}
	walker.Walk(root)
}

func tokenLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.KindList:
		return "list-open"
	case ast.KindArguments:
		return "arguments-open"
	case ast.KindAtomSymbol:
		return "symbol"
	case ast.KindAtomRealLiteral:
		return "real-literal"
	case ast.KindAtomStringLiteral:
		return "string-literal"
	case ast.KindAtomBoolean:
		return "boolean"
	case ast.KindAtomNil:
		return "nil"
	case ast.KindAtomLet:
		return "let"
	case ast.KindAtomLambda:
		return "lambda"
	case ast.KindAtomIf:
		return "if"
	case ast.KindAtomDefun:
		return "defun"
	case ast.KindAtomDefmacro:
		return "defmacro"
	case ast.KindAtomDefvar:
		return "defvar"
	case ast.KindAtomOperator:
		if n.Tok.Kind.IsKeywordOperator() {
			return "keyword-operator"
		}
		return "operator"
	case ast.KindError:
		return "error"
	default:
		return "unknown"
	}
}
