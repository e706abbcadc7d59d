package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
)

// hotkeyItem is a list item for one window shortcut.
type hotkeyItem struct {
	key     string
	action  string
	binding string
}

func (i hotkeyItem) Title() string { return i.action }

func (i hotkeyItem) Description() string {
	if i.binding == "" {
		return "(disabled)"
	}
	return i.binding
}

func (i hotkeyItem) FilterValue() string { return i.action }

// HotkeysTab edits the global shortcuts.
type HotkeysTab struct {
	list   list.Model
	cfg    *config.Config
	width  int
	height int
	err    error

	editing   bool
	textInput textinput.Model
}

// NewHotkeysTab creates a HotkeysTab editing cfg in place.
func NewHotkeysTab(cfg *config.Config) HotkeysTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(buildHotkeyItems(cfg), delegate, 0, 0)
	l.Title = "Hotkeys"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "e.g. Mod4-Up, Control-Mod1-m"
	ti.CharLimit = 64

	return HotkeysTab{list: l, cfg: cfg, textInput: ti}
}

func buildHotkeyItems(cfg *config.Config) []list.Item {
	hk := cfg.Hotkeys
	return []list.Item{
		hotkeyItem{key: "toggle_maximize", action: "Toggle maximize", binding: hk.ToggleMaximize},
		hotkeyItem{key: "minimize", action: "Minimize", binding: hk.Minimize},
		hotkeyItem{key: "close", action: "Close", binding: hk.Close},
	}
}

// Update handles messages for the hotkeys tab.
func (h HotkeysTab) Update(msg tea.Msg) (HotkeysTab, tea.Cmd) {
	if h.editing {
		return h.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height
		h.list.SetSize(h.width, max(h.height-3, 1))
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "e":
			if item, ok := h.list.SelectedItem().(hotkeyItem); ok {
				h.editing = true
				h.err = nil
				h.textInput.SetValue(item.binding)
				h.textInput.CursorEnd()
				return h, h.textInput.Focus()
			}
			return h, nil
		case "x", "delete":
			if item, ok := h.list.SelectedItem().(hotkeyItem); ok {
				h.setBinding(item.key, "")
				h.list.SetItems(buildHotkeyItems(h.cfg))
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

func (h HotkeysTab) updateEditing(msg tea.Msg) (HotkeysTab, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			h.editing = false
			h.textInput.Blur()
			return h, nil
		case "enter":
			value := strings.TrimSpace(h.textInput.Value())
			if err := validateKeySequence(value); err != nil {
				h.err = err
				return h, nil
			}
			if item, ok := h.list.SelectedItem().(hotkeyItem); ok {
				h.setBinding(item.key, value)
				h.list.SetItems(buildHotkeyItems(h.cfg))
			}
			h.editing = false
			h.err = nil
			h.textInput.Blur()
			return h, nil
		}
	}
	var cmd tea.Cmd
	h.textInput, cmd = h.textInput.Update(msg)
	return h, cmd
}

func (h *HotkeysTab) setBinding(key, value string) {
	switch key {
	case "toggle_maximize":
		h.cfg.Hotkeys.ToggleMaximize = value
	case "minimize":
		h.cfg.Hotkeys.Minimize = value
	case "close":
		h.cfg.Hotkeys.Close = value
	}
}

// validateKeySequence accepts an empty sequence (disabled) or dash-joined
// modifiers ending in a key name. Whether the key exists is only known once
// the window grabs it.
func validateKeySequence(s string) error {
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("key sequence %q must not contain spaces", s)
	}
	for _, part := range strings.Split(s, "-") {
		if part == "" {
			return fmt.Errorf("key sequence %q has an empty part", s)
		}
	}
	return nil
}

// View renders the hotkeys tab.
func (h HotkeysTab) View() string {
	var footer string
	switch {
	case h.editing:
		footer = h.textInput.View() + "\n" + dimStyle.Render("enter: apply  esc: cancel")
	default:
		footer = dimStyle.Render("enter: edit  x: disable  ctrl-s: save")
	}
	if h.err != nil {
		footer += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(h.err.Error())
	}
	return lipgloss.NewStyle().
		Width(h.width).
		Height(h.height).
		PaddingLeft(2).
		Render(h.list.View() + "\n" + footer)
}
