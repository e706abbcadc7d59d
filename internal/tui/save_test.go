package tui

import (
	"strings"
	"testing"

	"github.com/1broseidon/frameless/internal/config"
)

func TestComputeDiffLinesGroupsBySection(t *testing.T) {
	a := config.DefaultConfig()
	b := cloneConfig(a)
	b.Window.Title = "#1 Editor"
	b.Shadow.Alpha = 120
	b.LogLevel = "debug"

	got := computeDiffLines(a, b, config.FormatYAML)
	want := []diffLine{
		{diffSection, "window:"},
		{diffRemoved, "  title: Window Title"},
		{diffAdded, `  title: "#1 Editor"`},
		{diffSection, "shadow:"},
		{diffRemoved, "  alpha: 80"},
		{diffAdded, "  alpha: 120"},
		{diffRemoved, "log_level: info"},
		{diffAdded, "log_level: debug"},
	}
	if len(got) != len(want) {
		t.Fatalf("diff = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestComputeDiffLinesTOMLHeaders(t *testing.T) {
	a := config.DefaultConfig()
	b := cloneConfig(a)
	b.Hotkeys.Close = ""

	got := computeDiffLines(a, b, config.FormatTOML)
	want := []diffLine{
		{diffSection, "[hotkeys]"},
		{diffRemoved, `close = "Mod1-F4"`},
		{diffAdded, `close = ""`},
	}
	if len(got) != len(want) {
		t.Fatalf("diff = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveOverlayPreviewSummary(t *testing.T) {
	a := config.DefaultConfig()
	b := cloneConfig(a)
	b.Shadow.Alpha = 120
	b.Shadow.BlurRadius = 12

	var s SaveOverlay
	s.Show(a, b, "/tmp/config.toml")
	if s.phase != savePreview {
		t.Fatalf("phase = %d, want preview", s.phase)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "2 settings in 1 section") {
		t.Fatalf("summary missing from view:\n%s", view)
	}

	s = s.Update(key("esc"), b, nil, false)
	if s.Active() {
		t.Fatal("esc did not close the preview")
	}
}
