package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWindow struct {
	Title     *string `yaml:"title" toml:"title"`
	Class     *string `yaml:"class" toml:"class"`
	Width     *int    `yaml:"width" toml:"width"`
	Height    *int    `yaml:"height" toml:"height"`
	MinWidth  *int    `yaml:"min_width" toml:"min_width"`
	MinHeight *int    `yaml:"min_height" toml:"min_height"`
	MaxWidth  *int    `yaml:"max_width" toml:"max_width"`
	MaxHeight *int    `yaml:"max_height" toml:"max_height"`
}

type RawTitleBar struct {
	Height      *int    `yaml:"height" toml:"height"`
	Background  *Color  `yaml:"background" toml:"background"`
	Foreground  *Color  `yaml:"foreground" toml:"foreground"`
	ButtonHover *Color  `yaml:"button_hover" toml:"button_hover"`
	CloseHover  *Color  `yaml:"close_hover" toml:"close_hover"`
	Font        *string `yaml:"font" toml:"font"`
}

type RawContent struct {
	Text       *string `yaml:"text" toml:"text"`
	Background *Color  `yaml:"background" toml:"background"`
	Foreground *Color  `yaml:"foreground" toml:"foreground"`
}

type RawShadow struct {
	Strategy   *string `yaml:"strategy" toml:"strategy"`
	BlurRadius *int    `yaml:"blur_radius" toml:"blur_radius"`
	Color      *Color  `yaml:"color" toml:"color"`
	Alpha      *int    `yaml:"alpha" toml:"alpha"`
	OffsetX    *int    `yaml:"offset_x" toml:"offset_x"`
	OffsetY    *int    `yaml:"offset_y" toml:"offset_y"`
	Backdrop   *Color  `yaml:"backdrop" toml:"backdrop"`
}

type RawHotkeys struct {
	ToggleMaximize *string `yaml:"toggle_maximize" toml:"toggle_maximize"`
	Minimize       *string `yaml:"minimize" toml:"minimize"`
	Close          *string `yaml:"close" toml:"close"`
}

type RawIPC struct {
	Enabled *bool `yaml:"enabled" toml:"enabled"`
}

type RawConfig struct {
	Include       IncludeList  `yaml:"include" toml:"include"`
	Display       *string      `yaml:"display" toml:"display"`
	Window        *RawWindow   `yaml:"window" toml:"window"`
	TitleBar      *RawTitleBar `yaml:"title_bar" toml:"title_bar"`
	Content       *RawContent  `yaml:"content" toml:"content"`
	ResizeBorder  *int         `yaml:"resize_border" toml:"resize_border"`
	DoubleClickMS *int         `yaml:"double_click_ms" toml:"double_click_ms"`
	HitTest       *string      `yaml:"hit_test" toml:"hit_test"`
	Shadow        *RawShadow   `yaml:"shadow" toml:"shadow"`
	Hotkeys       *RawHotkeys  `yaml:"hotkeys" toml:"hotkeys"`
	IPC           *RawIPC      `yaml:"ipc" toml:"ipc"`
	LogLevel      *string      `yaml:"log_level" toml:"log_level"`
}

// pick returns overlay when it is set, base otherwise.
func pick[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	out.Display = pick(c.Display, overlay.Display)
	out.ResizeBorder = pick(c.ResizeBorder, overlay.ResizeBorder)
	out.DoubleClickMS = pick(c.DoubleClickMS, overlay.DoubleClickMS)
	out.HitTest = pick(c.HitTest, overlay.HitTest)
	out.LogLevel = pick(c.LogLevel, overlay.LogLevel)

	if overlay.Window != nil {
		w := RawWindow{}
		if c.Window != nil {
			w = *c.Window
		}
		o := overlay.Window
		w.Title = pick(w.Title, o.Title)
		w.Class = pick(w.Class, o.Class)
		w.Width = pick(w.Width, o.Width)
		w.Height = pick(w.Height, o.Height)
		w.MinWidth = pick(w.MinWidth, o.MinWidth)
		w.MinHeight = pick(w.MinHeight, o.MinHeight)
		w.MaxWidth = pick(w.MaxWidth, o.MaxWidth)
		w.MaxHeight = pick(w.MaxHeight, o.MaxHeight)
		out.Window = &w
	}

	if overlay.TitleBar != nil {
		tb := RawTitleBar{}
		if c.TitleBar != nil {
			tb = *c.TitleBar
		}
		o := overlay.TitleBar
		tb.Height = pick(tb.Height, o.Height)
		tb.Background = pick(tb.Background, o.Background)
		tb.Foreground = pick(tb.Foreground, o.Foreground)
		tb.ButtonHover = pick(tb.ButtonHover, o.ButtonHover)
		tb.CloseHover = pick(tb.CloseHover, o.CloseHover)
		tb.Font = pick(tb.Font, o.Font)
		out.TitleBar = &tb
	}

	if overlay.Content != nil {
		ct := RawContent{}
		if c.Content != nil {
			ct = *c.Content
		}
		o := overlay.Content
		ct.Text = pick(ct.Text, o.Text)
		ct.Background = pick(ct.Background, o.Background)
		ct.Foreground = pick(ct.Foreground, o.Foreground)
		out.Content = &ct
	}

	if overlay.Shadow != nil {
		sh := RawShadow{}
		if c.Shadow != nil {
			sh = *c.Shadow
		}
		o := overlay.Shadow
		sh.Strategy = pick(sh.Strategy, o.Strategy)
		sh.BlurRadius = pick(sh.BlurRadius, o.BlurRadius)
		sh.Color = pick(sh.Color, o.Color)
		sh.Alpha = pick(sh.Alpha, o.Alpha)
		sh.OffsetX = pick(sh.OffsetX, o.OffsetX)
		sh.OffsetY = pick(sh.OffsetY, o.OffsetY)
		sh.Backdrop = pick(sh.Backdrop, o.Backdrop)
		out.Shadow = &sh
	}

	if overlay.Hotkeys != nil {
		hk := RawHotkeys{}
		if c.Hotkeys != nil {
			hk = *c.Hotkeys
		}
		o := overlay.Hotkeys
		hk.ToggleMaximize = pick(hk.ToggleMaximize, o.ToggleMaximize)
		hk.Minimize = pick(hk.Minimize, o.Minimize)
		hk.Close = pick(hk.Close, o.Close)
		out.Hotkeys = &hk
	}

	if overlay.IPC != nil {
		ipc := RawIPC{}
		if c.IPC != nil {
			ipc = *c.IPC
		}
		ipc.Enabled = pick(ipc.Enabled, overlay.IPC.Enabled)
		out.IPC = &ipc
	}

	return out
}
