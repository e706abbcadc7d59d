package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWindow(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "minimize":
		os.Exit(runAction("minimize", "Minimize the window.", os.Args[2:], (*ipc.Client).Minimize))
	case "maximize":
		os.Exit(runAction("maximize", "Toggle between maximized and restored.", os.Args[2:], (*ipc.Client).ToggleMaximize))
	case "close":
		os.Exit(runAction("close", "Close the window and stop its process.", os.Args[2:], (*ipc.Client).Close))
	case "reload":
		os.Exit(runAction("reload", "Re-read the configuration file.", os.Args[2:], (*ipc.Client).Reload))
	case "title":
		os.Exit(runTitle(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: frameless <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open a frameless window (foreground)")
	fmt.Fprintln(w, "  status              Show window state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  minimize            Minimize the window")
	fmt.Fprintln(w, "  maximize            Toggle maximize/restore")
	fmt.Fprintln(w, "  close               Close the window")
	fmt.Fprintln(w, "  title <text>        Set the window title")
	fmt.Fprintln(w, "  reload              Reload configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  preview             Render the window to an image")
	fmt.Fprintln(w, "  tui                 Interactive settings and control")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'frameless <command> --help' for command-specific options.")
}

// instanceFlag registers the -instance flag shared by every client command.
func instanceFlag(fs *flag.FlagSet) *string {
	return fs.String("instance", "", "Window instance name (default: the unnamed instance)")
}

// parseFlags parses args and maps the outcome to an exit code; ok is false
// when the command should return code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	instance := instanceFlag(fs)
	asJSON := fs.Bool("json", false, "Print JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless status [--instance NAME] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show window state via IPC.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient(*instance)
	state, err := client.GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printState(os.Stdout, state)
	return 0
}

func printState(w io.Writer, st *ipc.StateData) {
	fmt.Fprintf(w, "title:          %s\n", st.Title)
	fmt.Fprintf(w, "geometry:       %dx%d+%d+%d\n", st.Width, st.Height, st.X, st.Y)
	fmt.Fprintf(w, "maximized:      %v\n", st.Maximized)
	fmt.Fprintf(w, "phase:          %s\n", st.Phase)
	fmt.Fprintf(w, "region:         %s\n", st.Region)
	fmt.Fprintf(w, "cursor:         %s\n", st.Cursor)
	fmt.Fprintf(w, "shadow:         %s\n", st.Shadow)
	fmt.Fprintf(w, "hit_test:       %s\n", st.HitTest)
	fmt.Fprintf(w, "uptime_seconds: %d\n", st.UptimeSeconds)
}

// runAction implements the argument-less window commands.
func runAction(name, help string, args []string, action func(*ipc.Client) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	instance := instanceFlag(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: frameless %s [--instance NAME]\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, help)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	if err := action(ipc.NewClient(*instance)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTitle(args []string) int {
	fs := flag.NewFlagSet("title", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	instance := instanceFlag(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless title [--instance NAME] <text>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set the title shown in the title bar and by the window manager.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		fmt.Fprintln(os.Stderr, "title requires <text>")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient(*instance).SetTitle(title); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
