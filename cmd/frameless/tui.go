package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/frameless/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/frameless/config.yaml)")
	instance := instanceFlag(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless tui [--path PATH] [--instance NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Edit the configuration and control a running window interactively.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	if err := tui.Run(*path, *instance); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
