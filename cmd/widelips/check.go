package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yazandaba/widelips"
	"github.com/yazandaba/widelips/reader"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a source file and report only its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, err := reader.ReadFile(path)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	opts, err := loadDialectOptions(cmd)
	if err != nil {
		return err
	}

	res := widelips.Parse(buf, path, false, opts...)
	printDiagnostics(os.Stdout, res.Diagnostics, useColor(cmd))
	if !res.Success {
		os.Exit(1)
	}
	return nil
}
