// Command heron is the CLI driver spec §6 specifies only for
// completeness: a single positional source-file argument, exit code 0
// on success and non-zero on any uncaught failure, with a configuration
// file loaded from the executable's own directory if present — grounded
// on funvibe-funxy/cmd/funxy/main.go's own argument handling and
// panic-recovery wrapper, trimmed to this core's narrower surface (no
// build/compile/LSP subcommands; those are out of scope).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/heron-lang/heron/internal/config"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/modules"
	"github.com/heron-lang/heron/pkg/heron"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: heron <source-file>")
		os.Exit(1)
	}
	sourcePath := os.Args[1]

	cfg, err := loadConfigNextToExecutable()
	if err != nil {
		report(err)
	}

	resolver := modules.NewDirResolver(cfg.InputPaths, cfg.Extensions)

	// No Parser implementation ships with this repository (spec §1: the
	// grammar/lexer is an external collaborator); a real distribution
	// wires a concrete parser.Parser here.
	interp := heron.New(cfg, nil, resolver)
	if _, err := interp.RunFile(sourcePath); err != nil {
		report(err)
	}
}

func loadConfigNextToExecutable() (*config.Configuration, error) {
	exe, err := os.Executable()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(filepath.Join(filepath.Dir(exe), "heron.yaml"))
}

// report prints a diagnostic in the shape spec §7 describes — error
// kind, message, failing expression text and call-stack summary where
// available — colorized when stderr is a terminal, and exits non-zero.
func report(err error) {
	colorize := isatty.IsTerminal(os.Stderr.Fd())
	msg := err.Error()
	if he, ok := err.(*heronerr.Error); ok && colorize {
		msg = "\x1b[31m" + string(he.Kind) + "\x1b[0m" + strings.TrimPrefix(msg, string(he.Kind))
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
