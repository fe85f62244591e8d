package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yazandaba/widelips"
	"github.com/yazandaba/widelips/reader"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, err := reader.ReadFile(path)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
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
		printTree(os.Stdout, buf, res.Root)
	}
	if !res.Success {
		return fmt.Errorf("parse: %s failed with %d diagnostic(s)", path, len(res.Diagnostics))
	}
	return nil
}
