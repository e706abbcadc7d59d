package config

import "fmt"

// ValidationError ties a configuration error to a YAML path and, when known,
// the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source.Location(), e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	set(&cfg.Display, raw.Display)
	set(&cfg.ResizeBorder, raw.ResizeBorder)
	set(&cfg.DoubleClickMS, raw.DoubleClickMS)
	set(&cfg.HitTest, raw.HitTest)
	set(&cfg.LogLevel, raw.LogLevel)

	if w := raw.Window; w != nil {
		set(&cfg.Window.Title, w.Title)
		set(&cfg.Window.Class, w.Class)
		set(&cfg.Window.Width, w.Width)
		set(&cfg.Window.Height, w.Height)
		set(&cfg.Window.MinWidth, w.MinWidth)
		set(&cfg.Window.MinHeight, w.MinHeight)
		set(&cfg.Window.MaxWidth, w.MaxWidth)
		set(&cfg.Window.MaxHeight, w.MaxHeight)
	}
	if tb := raw.TitleBar; tb != nil {
		set(&cfg.TitleBar.Height, tb.Height)
		set(&cfg.TitleBar.Background, tb.Background)
		set(&cfg.TitleBar.Foreground, tb.Foreground)
		set(&cfg.TitleBar.ButtonHover, tb.ButtonHover)
		set(&cfg.TitleBar.CloseHover, tb.CloseHover)
		set(&cfg.TitleBar.Font, tb.Font)
	}
	if ct := raw.Content; ct != nil {
		set(&cfg.Content.Text, ct.Text)
		set(&cfg.Content.Background, ct.Background)
		set(&cfg.Content.Foreground, ct.Foreground)
	}
	if sh := raw.Shadow; sh != nil {
		set(&cfg.Shadow.Strategy, sh.Strategy)
		set(&cfg.Shadow.BlurRadius, sh.BlurRadius)
		set(&cfg.Shadow.Color, sh.Color)
		set(&cfg.Shadow.Alpha, sh.Alpha)
		set(&cfg.Shadow.OffsetX, sh.OffsetX)
		set(&cfg.Shadow.OffsetY, sh.OffsetY)
		set(&cfg.Shadow.Backdrop, sh.Backdrop)
	}
	if hk := raw.Hotkeys; hk != nil {
		set(&cfg.Hotkeys.ToggleMaximize, hk.ToggleMaximize)
		set(&cfg.Hotkeys.Minimize, hk.Minimize)
		set(&cfg.Hotkeys.Close, hk.Close)
	}
	if raw.IPC != nil {
		set(&cfg.IPC.Enabled, raw.IPC.Enabled)
	}

	return cfg
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
