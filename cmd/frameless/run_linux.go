//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/hotkeys"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/runtimepath"
	"github.com/1broseidon/frameless/internal/shadow"
	"github.com/1broseidon/frameless/internal/x11"
)

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/frameless/config.yaml)")
	instance := instanceFlag(fs)
	title := fs.String("title", "", "Window title (overrides window.title)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless run [--path PATH] [--instance NAME] [--title TEXT]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a frameless window and run until it is closed.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config
	if *title != "" {
		cfg.Window.Title = *title
	}

	level := new(slog.LevelVar)
	level.Set(slogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Info("configuration loaded", "files", len(res.Files), "hit_test", cfg.HitTest, "shadow", cfg.Shadow.Strategy)

	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	spec := x11.WindowSpec{
		Title:  cfg.Window.Title,
		Class:  cfg.Window.Class,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}
	if area, err := conn.WorkAreaAt(geom.Point{}); err == nil {
		spec.X = area.X + (area.Width-spec.Width)/2
		spec.Y = area.Y + (area.Height-spec.Height)/2
	}

	win, err := platform.NewWindow(conn, spec, platform.ThemeFromConfig(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create window: %v\n", err)
		return 1
	}
	win.OnClosed = conn.Quit

	strategy, err := shadow.Select(conn, win.ID(), cfg.Shadow.Strategy, shadow.FromConfig(cfg.Shadow), logger)
	if err != nil {
		logger.Warn("shadow disabled", "err", err)
	}

	ctrl := frameless.NewController(win, frameless.Options{
		ResizeBorder:        cfg.ResizeBorder,
		TitleBarHeight:      cfg.TitleBar.Height,
		Bounds:              sizeBounds(cfg),
		HitTest:             frameless.HitTestPolicy(cfg.HitTest),
		DoubleClickInterval: time.Duration(cfg.DoubleClickMS) * time.Millisecond,
		Shadow:              strategy,
		Logger:              logger,
	})
	win.Attach(ctrl)
	ctrl.SetWindowTitle(cfg.Window.Title)
	label := platform.NewLabel(cfg.Content.Text, uint32(cfg.Content.Background), uint32(cfg.Content.Foreground))
	ctrl.SetCentralWidget(label)

	hk := hotkeys.NewHandler(conn.XUtil, win.ID())
	if err := hk.Register(hotkeys.Bindings(cfg.Hotkeys, ctrl)); err != nil {
		logger.Warn("some hotkeys were not registered", "err", err)
	}
	defer hk.Detach()

	dispatcher := platform.NewDispatcher()

	// reload runs on the UI goroutine. Border width and hit-test policy are
	// fixed for the life of the window.
	reload := func() error {
		res, err := loadConfig(*path)
		if err != nil {
			return err
		}
		next := res.Config
		level.Set(slogLevel(next.LogLevel))
		if err := win.SetTheme(platform.ThemeFromConfig(next)); err != nil {
			return err
		}
		label.Text = next.Content.Text
		label.Background = uint32(next.Content.Background)
		label.Foreground = uint32(next.Content.Foreground)
		if soft, ok := strategy.(*shadow.Soft); ok {
			if err := soft.SetParams(shadow.FromConfig(next.Shadow)); err != nil {
				return err
			}
		}
		ctrl.HandleConfigure()
		win.Update()
		logger.Info("configuration reloaded")
		return nil
	}

	var ipcServer *ipc.Server
	if cfg.IPC.Enabled {
		socketPath, err := runtimepath.SocketPath(*instance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve socket path: %v\n", err)
			return 1
		}
		ipcServer, err = ipc.NewServer(socketPath, ctrl, dispatcher, reload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create IPC server: %v\n", err)
			return 1
		}
		if err := ipcServer.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start IPC server: %v\n", err)
			return 1
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			ctx, cancel := context.WithTimeout(context.Background(), ipc.DefaultDispatchTimeout)
			var err error
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				err = dispatcher.Do(ctx, func() {
					if rerr := reload(); rerr != nil {
						log.Printf("Config reload failed: %v", rerr)
					}
				})
			default:
				log.Println("Shutting down frameless window...")
				err = dispatcher.Do(ctx, ctrl.Close)
			}
			cancel()
			if err != nil {
				log.Printf("Signal %v not handled: %v", sig, err)
			}
		}
	}()

	win.Show()
	logger.Debug("entering event loop")
	conn.EventLoop(dispatcher.Chan())

	// The loop is gone, so pending IPC calls must fail before the server
	// waits for its handlers.
	dispatcher.Stop()
	if ipcServer != nil {
		ipcServer.Stop()
	}
	log.Println("frameless window closed")
	return 0
}
