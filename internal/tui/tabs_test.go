package tui

import (
	"testing"

	"github.com/1broseidon/frameless/internal/config"
)

func TestAppearanceApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAppearanceTab(cfg)
	a.startEditing()

	a.fTitle = "Styled"
	a.fBarBg = "#102030"
	a.fShadowAlpha = "200"
	a.fStrategy = "soft"
	if err := a.applyForm(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Window.Title != "Styled" || cfg.TitleBar.Background != 0x102030 || cfg.Shadow.Alpha != 200 || cfg.Shadow.Strategy != "soft" {
		t.Fatalf("form not applied: %+v", cfg)
	}
}

func TestAppearanceApplyFormKeepsConfigOnError(t *testing.T) {
	cfg := config.DefaultConfig()
	a := NewAppearanceTab(cfg)
	a.startEditing()

	a.fTitle = "Changed"
	a.fBarBg = "blue"
	if err := a.applyForm(); err == nil {
		t.Fatalf("expected color error")
	}
	if cfg.Window.Title == "Changed" {
		t.Fatalf("config changed despite error")
	}

	a.fBarBg = "#000000"
	a.fBarHeight = "0"
	if err := a.applyForm(); err == nil {
		t.Fatalf("expected validation error for zero title bar height")
	}
}

func TestValidators(t *testing.T) {
	v := validateInt(0, 255)
	if v("12") != nil || v("256") == nil || v("x") == nil {
		t.Fatalf("validateInt misbehaves")
	}
	for _, ok := range []string{"", "Mod4-Up", "Control-Mod1-m", "F11"} {
		if err := validateKeySequence(ok); err != nil {
			t.Errorf("validateKeySequence(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"Mod4-", "Mod4 Up", "-a"} {
		if validateKeySequence(bad) == nil {
			t.Errorf("validateKeySequence(%q) accepted", bad)
		}
	}
}

func TestHotkeysEditAndDisable(t *testing.T) {
	cfg := config.DefaultConfig()
	h := NewHotkeysTab(cfg)

	h, _ = h.Update(key("enter"))
	if !h.editing {
		t.Fatalf("expected editing")
	}
	h.textInput.SetValue("Mod4-m")
	h, _ = h.Update(key("enter"))
	if h.editing || cfg.Hotkeys.ToggleMaximize != "Mod4-m" {
		t.Fatalf("binding not applied: %q", cfg.Hotkeys.ToggleMaximize)
	}

	h, _ = h.Update(key("enter"))
	h.textInput.SetValue("Mod4 m")
	h, _ = h.Update(key("enter"))
	if !h.editing || h.err == nil {
		t.Fatalf("expected invalid sequence to keep editing")
	}
	h, _ = h.Update(key("esc"))

	h, _ = h.Update(key("x"))
	if cfg.Hotkeys.ToggleMaximize != "" {
		t.Fatalf("expected binding disabled, got %q", cfg.Hotkeys.ToggleMaximize)
	}
	if item := h.list.SelectedItem().(hotkeyItem); item.Description() != "(disabled)" {
		t.Fatalf("list not refreshed: %q", item.Description())
	}
}
