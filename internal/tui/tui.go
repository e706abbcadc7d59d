// Package tui is the interactive settings editor and remote control for a
// running frameless window.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/ipc"
)

// Run opens the TUI for the config at configPath (the default location when
// empty) and the window instance named instance.
func Run(configPath, instance string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	savePath := configPath
	if savePath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		savePath = path
	}

	m, err := newModel(savePath, ipc.NewClient(instance))
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
