package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/yazandaba/widelips/internal/diag"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	noteColor  = color.New(color.FgCyan)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.Error:
		return errorColor
	case diag.Warning:
		return warnColor
	default:
		return noteColor
	}
}

// printDiagnostics writes each diagnostic on its own line, in the
// stable "<file>(<line>,<column>): <severity> <code>: <message>" shape
// diag.Diagnostic.String already renders, optionally coloring the
// severity/code prefix.
func printDiagnostics(w io.Writer, items []diag.Diagnostic, useColor bool) {
	for _, d := range items {
		if !useColor {
			fmt.Fprintln(w, d)
			continue
		}
		prefix := fmt.Sprintf("%s(%d,%d):", d.File, d.Line, d.Column)
		sev := severityColor(d.Severity).Sprintf("%s %s", d.Severity, d.Code)
		fmt.Fprintf(w, "%s %s: %s\n", prefix, sev, d.Message)
	}
}
