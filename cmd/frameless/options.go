package main

import (
	"log/slog"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/geom"
)

func slogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// sizeBounds maps the window limits; 0 means unlimited.
func sizeBounds(cfg *config.Config) geom.SizeBounds {
	b := geom.DefaultSizeBounds()
	b.MinWidth = cfg.Window.MinWidth
	b.MinHeight = cfg.Window.MinHeight
	if cfg.Window.MaxWidth > 0 {
		b.MaxWidth = cfg.Window.MaxWidth
	}
	if cfg.Window.MaxHeight > 0 {
		b.MaxHeight = cfg.Window.MaxHeight
	}
	return b
}
