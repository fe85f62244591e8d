package main

import (
	"io"

	"github.com/yazandaba/widelips/ast"
)

// printTree writes root and each of its top-level siblings via
// ast.Dump, stopping at the end-of-program sentinel the same way the
// tree's own traversal helpers do.
func printTree(w io.Writer, buf []byte, root *ast.Node) {
	for n := root; n != nil; n = n.Next() {
		if n.Kind == ast.KindAtomEndOfProgram {
			return
		}
		ast.Dump(w, n, buf)
	}
}
