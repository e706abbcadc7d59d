package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestConfigureRequest(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		w, h     int
		withSize bool
		mask     uint16
		values   []uint32
	}{
		{
			name:   "move only",
			x:      120,
			y:      80,
			mask:   xproto.ConfigWindowX | xproto.ConfigWindowY,
			values: []uint32{120, 80},
		},
		{
			name:     "move and resize",
			x:        10,
			y:        20,
			w:        800,
			h:        600,
			withSize: true,
			mask:     xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
			values:   []uint32{10, 20, 800, 600},
		},
		{
			name:   "negative origin",
			x:      -5,
			y:      -1,
			mask:   xproto.ConfigWindowX | xproto.ConfigWindowY,
			values: []uint32{0xfffffffb, 0xffffffff},
		},
		{
			name:     "zero size is raised to one",
			withSize: true,
			mask:     xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
			values:   []uint32{0, 0, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, values := configureRequest(tt.x, tt.y, tt.w, tt.h, tt.withSize)
			if mask != tt.mask {
				t.Fatalf("mask = %#x, want %#x", mask, tt.mask)
			}
			if len(values) != len(tt.values) {
				t.Fatalf("values = %v, want %v", values, tt.values)
			}
			for i := range values {
				if values[i] != tt.values[i] {
					t.Fatalf("values = %v, want %v", values, tt.values)
				}
			}
		})
	}
}
