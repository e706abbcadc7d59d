//go:build !linux

package main

import (
	"fmt"
	"os"
)

func runWindow(args []string) int {
	fmt.Fprintln(os.Stderr, "frameless run requires an X11 display (Linux only)")
	return 1
}
