package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/yazandaba/widelips"
)

const (
	historyFile = ".widelips_history"
	promptMain  = "wl> "
	promptCont  = "  > "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse s-expressions interactively",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) (err error) {
	opts, err := loadDialectOptions(cmd)
	if err != nil {
		return err
	}
	color := useColor(cmd)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, ferr := os.Create(histPath); ferr == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, ferr := os.Open(histPath); ferr == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Println("WideLips REPL. Ctrl+D to exit.")
	for {
		src, ok := readBalanced(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		buf := widelips.Pad([]byte(src))
		res := widelips.Parse(buf, "<repl>", false, opts...)
		if len(res.Diagnostics) > 0 {
			printDiagnostics(os.Stderr, res.Diagnostics, color)
		}
		if res.Root != nil {
			printTree(os.Stdout, buf, res.Root)
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readBalanced reads lines from ln until the accumulated input's
// parentheses balance, prompting with cont on continuation lines. It
// stops as soon as depth returns to zero so unbalanced input is never
// mistaken for a completed program, matching the same closed-paren
// counting the s-expression index builder does over real input.
func readBalanced(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	depth := 0
	sawOpen := false

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		inString := false
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '"':
				inString = !inString
			case '(':
				if !inString {
					depth++
					sawOpen = true
				}
			case ')':
				if !inString {
					depth--
				}
			}
		}

		if sawOpen && depth <= 0 {
			return b.String(), true
		}
	}
}
