package hotkeys

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/frameless/internal/config"
)

// Actions are the window operations shortcuts can trigger.
type Actions interface {
	Minimize()
	ToggleMaximize()
	Close()
}

// Binding pairs a key sequence with the action it triggers.
type Binding struct {
	Name     string
	Sequence string
	Action   func()
}

// Bindings maps the configured shortcuts onto actions, skipping empty
// sequences.
func Bindings(cfg config.HotkeyConfig, actions Actions) []Binding {
	all := []Binding{
		{Name: "toggle_maximize", Sequence: cfg.ToggleMaximize, Action: actions.ToggleMaximize},
		{Name: "minimize", Sequence: cfg.Minimize, Action: actions.Minimize},
		{Name: "close", Sequence: cfg.Close, Action: actions.Close},
	}
	out := all[:0]
	for _, b := range all {
		if b.Sequence = strings.TrimSpace(b.Sequence); b.Sequence != "" {
			out = append(out, b)
		}
	}
	return out
}

// Handler manages keyboard shortcuts on the frameless window.
type Handler struct {
	xu  *xgbutil.XUtil
	win xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a handler for key presses delivered to win.
func NewHandler(xu *xgbutil.XUtil, win xproto.Window) *Handler {
	ignoreModsOnce.Do(func() {
		xevent.IgnoreMods = ignoreMasks(
			uint16(xproto.ModMaskLock),
			modMaskForKeysym(xu, "Num_Lock"),
			modMaskForKeysym(xu, "Scroll_Lock"),
		)
	})

	return &Handler{xu: xu, win: win}
}

// Register connects every binding. A binding that fails is logged and
// skipped; the error reports all failures.
func (h *Handler) Register(bindings []Binding) error {
	var failed []string
	for _, b := range bindings {
		if err := h.RegisterFunc(b.Sequence, b.Action); err != nil {
			log.Printf("Failed to register %s hotkey %q: %v", b.Name, b.Sequence, err)
			failed = append(failed, b.Name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to register hotkeys: %s", strings.Join(failed, ", "))
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback. Keys are not grabbed:
// they fire only while the window has focus.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.win, keySequence, false)
}

// Detach removes every key binding on the window.
func (h *Handler) Detach() {
	keybind.Detach(h.xu, h.win)
}

// ignoreMasks returns every combination of the lock modifiers, including
// none, so shortcuts fire regardless of CapsLock or NumLock.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
