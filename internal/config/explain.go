package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths are the leaf keys of the configuration, for example:
//
//	window.width
//	title_bar.background
//	shadow.strategy
//	hotkeys.close
//	hit_test
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, ok := lookupValue(res.Config)[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown config path %q", path)
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config) map[string]any {
	return map[string]any{
		"display":                 cfg.Display,
		"window.title":            cfg.Window.Title,
		"window.class":            cfg.Window.Class,
		"window.width":            cfg.Window.Width,
		"window.height":           cfg.Window.Height,
		"window.min_width":        cfg.Window.MinWidth,
		"window.min_height":       cfg.Window.MinHeight,
		"window.max_width":        cfg.Window.MaxWidth,
		"window.max_height":       cfg.Window.MaxHeight,
		"title_bar.height":        cfg.TitleBar.Height,
		"title_bar.background":    cfg.TitleBar.Background.String(),
		"title_bar.foreground":    cfg.TitleBar.Foreground.String(),
		"title_bar.button_hover":  cfg.TitleBar.ButtonHover.String(),
		"title_bar.close_hover":   cfg.TitleBar.CloseHover.String(),
		"title_bar.font":          cfg.TitleBar.Font,
		"content.text":            cfg.Content.Text,
		"content.background":      cfg.Content.Background.String(),
		"content.foreground":      cfg.Content.Foreground.String(),
		"resize_border":           cfg.ResizeBorder,
		"double_click_ms":         cfg.DoubleClickMS,
		"hit_test":                cfg.HitTest,
		"shadow.strategy":         cfg.Shadow.Strategy,
		"shadow.blur_radius":      cfg.Shadow.BlurRadius,
		"shadow.color":            cfg.Shadow.Color.String(),
		"shadow.alpha":            cfg.Shadow.Alpha,
		"shadow.offset_x":         cfg.Shadow.OffsetX,
		"shadow.offset_y":         cfg.Shadow.OffsetY,
		"shadow.backdrop":         cfg.Shadow.Backdrop.String(),
		"hotkeys.toggle_maximize": cfg.Hotkeys.ToggleMaximize,
		"hotkeys.minimize":        cfg.Hotkeys.Minimize,
		"hotkeys.close":           cfg.Hotkeys.Close,
		"ipc.enabled":             cfg.IPC.Enabled,
		"log_level":               cfg.LogLevel,
	}
}
