package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a 0xRRGGBB value written as "#rrggbb" in YAML and TOML.
type Color uint32

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	return Color(v), nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string like \"#rrggbb\"")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalText decodes TOML strings.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// WindowConfig is the initial window geometry and identity.
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Class     string `yaml:"class" toml:"class"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	MinWidth  int    `yaml:"min_width" toml:"min_width"`
	MinHeight int    `yaml:"min_height" toml:"min_height"`
	MaxWidth  int    `yaml:"max_width" toml:"max_width"`   // 0 = unlimited
	MaxHeight int    `yaml:"max_height" toml:"max_height"` // 0 = unlimited
}

// TitleBarConfig styles the title bar.
type TitleBarConfig struct {
	Height      int    `yaml:"height" toml:"height"`
	Background  Color  `yaml:"background" toml:"background"`
	Foreground  Color  `yaml:"foreground" toml:"foreground"`
	ButtonHover Color  `yaml:"button_hover" toml:"button_hover"`
	CloseHover  Color  `yaml:"close_hover" toml:"close_hover"`
	Font        string `yaml:"font" toml:"font"`
}

// ContentConfig configures the placeholder central widget.
type ContentConfig struct {
	Text       string `yaml:"text" toml:"text"`
	Background Color  `yaml:"background" toml:"background"`
	Foreground Color  `yaml:"foreground" toml:"foreground"`
}

// ShadowConfig selects and styles the drop shadow.
type ShadowConfig struct {
	// Strategy is one of auto, native, soft, none.
	Strategy   string `yaml:"strategy" toml:"strategy"`
	BlurRadius int    `yaml:"blur_radius" toml:"blur_radius"`
	Color      Color  `yaml:"color" toml:"color"`
	Alpha      int    `yaml:"alpha" toml:"alpha"` // 0-255
	OffsetX    int    `yaml:"offset_x" toml:"offset_x"`
	OffsetY    int    `yaml:"offset_y" toml:"offset_y"`
	// Backdrop is the colour the soft shadow is blended over.
	Backdrop Color `yaml:"backdrop" toml:"backdrop"`
}

// HotkeyConfig holds keybind sequences for window shortcuts; empty disables
// a shortcut.
type HotkeyConfig struct {
	ToggleMaximize string `yaml:"toggle_maximize" toml:"toggle_maximize"`
	Minimize       string `yaml:"minimize" toml:"minimize"`
	Close          string `yaml:"close" toml:"close"`
}

// IPCConfig controls the control socket.
type IPCConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Config is the effective frameless configuration.
type Config struct {
	Display       string         `yaml:"display" toml:"display"`
	Window        WindowConfig   `yaml:"window" toml:"window"`
	TitleBar      TitleBarConfig `yaml:"title_bar" toml:"title_bar"`
	Content       ContentConfig  `yaml:"content" toml:"content"`
	ResizeBorder  int            `yaml:"resize_border" toml:"resize_border"`
	DoubleClickMS int            `yaml:"double_click_ms" toml:"double_click_ms"`
	// HitTest is app (the window moves and resizes itself) or wm (gestures
	// are handed to the window manager).
	HitTest  string       `yaml:"hit_test" toml:"hit_test"`
	Shadow   ShadowConfig `yaml:"shadow" toml:"shadow"`
	Hotkeys  HotkeyConfig `yaml:"hotkeys" toml:"hotkeys"`
	IPC      IPCConfig    `yaml:"ipc" toml:"ipc"`
	LogLevel string       `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Window Title",
			Class:     "Frameless",
			Width:     800,
			Height:    600,
			MinWidth:  200,
			MinHeight: 150,
		},
		TitleBar: TitleBarConfig{
			Height:      30,
			Background:  0x2e3440,
			Foreground:  0xeceff4,
			ButtonHover: 0x4c566a,
			CloseHover:  0xbf616a,
			Font:        "fixed",
		},
		Content: ContentConfig{
			Text:       "Content Area",
			Background: 0x3b4252,
			Foreground: 0xd8dee9,
		},
		ResizeBorder:  5,
		DoubleClickMS: 400,
		HitTest:       "app",
		Shadow: ShadowConfig{
			Strategy:   "auto",
			BlurRadius: 20,
			Color:      0x000000,
			Alpha:      80,
			Backdrop:   0x3b4252,
		},
		Hotkeys: HotkeyConfig{
			ToggleMaximize: "Mod4-Up",
			Minimize:       "Mod4-Down",
			Close:          "Mod1-F4",
		},
		IPC:      IPCConfig{Enabled: true},
		LogLevel: "info",
	}
}

// DefaultConfigPath returns ~/.config/frameless/config.yaml, or config.toml
// next to it when only the TOML file exists.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".config", "frameless")
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, nil
	}
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	return yamlPath, nil
}

// SaveTo writes the configuration to path, as TOML when path ends in .toml
// and YAML otherwise.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(FormatFor(path))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	w := c.Window
	if w.MinWidth < 1 || w.MinHeight < 1 {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("min_width and min_height must be >= 1")}
	}
	if w.MaxWidth < 0 || w.MaxHeight < 0 {
		return &ValidationError{Path: "window.max_width", Err: fmt.Errorf("max_width and max_height must be >= 0 (0 = unlimited)")}
	}
	if w.MaxWidth > 0 && w.MaxWidth < w.MinWidth {
		return &ValidationError{Path: "window.max_width", Err: fmt.Errorf("max_width %d is below min_width %d", w.MaxWidth, w.MinWidth)}
	}
	if w.MaxHeight > 0 && w.MaxHeight < w.MinHeight {
		return &ValidationError{Path: "window.max_height", Err: fmt.Errorf("max_height %d is below min_height %d", w.MaxHeight, w.MinHeight)}
	}
	if w.Width < w.MinWidth || (w.MaxWidth > 0 && w.Width > w.MaxWidth) {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width %d is outside the min/max bounds", w.Width)}
	}
	if w.Height < w.MinHeight || (w.MaxHeight > 0 && w.Height > w.MaxHeight) {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height %d is outside the min/max bounds", w.Height)}
	}
	if c.TitleBar.Height < 1 {
		return &ValidationError{Path: "title_bar.height", Err: fmt.Errorf("height must be >= 1")}
	}
	if strings.TrimSpace(c.TitleBar.Font) == "" {
		return &ValidationError{Path: "title_bar.font", Err: fmt.Errorf("font must not be empty")}
	}
	if c.ResizeBorder < 0 {
		return &ValidationError{Path: "resize_border", Err: fmt.Errorf("resize_border must be >= 0")}
	}
	if c.DoubleClickMS < 0 {
		return &ValidationError{Path: "double_click_ms", Err: fmt.Errorf("double_click_ms must be >= 0")}
	}
	switch c.HitTest {
	case "app", "wm":
	default:
		return &ValidationError{Path: "hit_test", Err: fmt.Errorf("hit_test must be one of: app, wm")}
	}
	switch c.Shadow.Strategy {
	case "auto", "native", "soft", "none":
	default:
		return &ValidationError{Path: "shadow.strategy", Err: fmt.Errorf("strategy must be one of: auto, native, soft, none")}
	}
	if c.Shadow.BlurRadius < 0 || c.Shadow.BlurRadius > 200 {
		return &ValidationError{Path: "shadow.blur_radius", Err: fmt.Errorf("blur_radius must be between 0 and 200")}
	}
	if c.Shadow.Alpha < 0 || c.Shadow.Alpha > 255 {
		return &ValidationError{Path: "shadow.alpha", Err: fmt.Errorf("alpha must be between 0 and 255")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
