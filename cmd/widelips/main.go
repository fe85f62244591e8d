// Command widelips is a small CLI over the WideLips parser: parse a
// file into its tree, dump its tokens, check it for diagnostics only,
// or explore it interactively from a REPL.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "widelips",
	Short: "WideLips s-expression parser toolchain",
	Long:  `widelips parses Lisp-family surface syntax into a diagnostic-producing parse tree.`,
}

func main() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("dialect-config", "", "path to a .widelips.toml dialect config")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(os.Stderr))
}
