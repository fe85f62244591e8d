package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable, indented representation of the tree
// rooted at n to w, one node per line.
func Dump(w io.Writer, n *Node, buf []byte) {
	dumpLevel(w, n, buf, 0)
}

func dumpLevel(w io.Writer, n *Node, buf []byte, level int) {
	if n == nil {
		fmt.Fprintln(w, strings.Repeat("  ", level)+":nil")
		return
	}
	indent := strings.Repeat("  ", level)
	switch n.Kind {
	case KindList, KindArguments:
		fmt.Fprintf(w, "%s(%s (%d,%d)\n", indent, kindName(n.Kind), n.Tok.Line, n.Tok.Column)
		for c := n.Children(); c != nil; c = c.Next() {
			dumpLevel(w, c, buf, level+1)
		}
		fmt.Fprintf(w, "%s)\n", indent)

	case KindError:
		fmt.Fprintf(w, "%serror %q (%d,%d)\n", indent, n.Tok.Text(buf), n.Tok.Line, n.Tok.Column)

	case KindAtomEndOfProgram:
		fmt.Fprintf(w, "%send-of-program\n", indent)

	default:
		fmt.Fprintf(w, "%s%s %q (%d,%d)\n", indent, kindName(n.Kind), n.Tok.Text(buf), n.Tok.Line, n.Tok.Column)
	}
}

func kindName(k Kind) string {
	switch k {
	case KindAtomSymbol:
		return "symbol"
	case KindAtomRealLiteral:
		return "real-literal"
	case KindAtomStringLiteral:
		return "string-literal"
	case KindAtomBoolean:
		return "boolean"
	case KindAtomNil:
		return "nil"
	case KindAtomLet:
		return "let"
	case KindAtomLambda:
		return "lambda"
	case KindAtomIf:
		return "if"
	case KindAtomDefun:
		return "defun"
	case KindAtomDefmacro:
		return "defmacro"
	case KindAtomDefvar:
		return "defvar"
	case KindAtomOperator:
		return "operator"
	case KindAtomEndOfProgram:
		return "end-of-program"
	case KindList:
		return "list"
	case KindArguments:
		return "arguments"
	case KindError:
		return "error"
	case KindAuxiliary:
		return "auxiliary"
	default:
		return "unknown"
	}
}
