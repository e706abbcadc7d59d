package platform

import (
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
)

// Label is a central widget that shows centred text on a solid background.
type Label struct {
	Text       string
	Background uint32
	Foreground uint32

	bounds    geom.Rect
	destroyed bool
}

var _ frameless.Widget = (*Label)(nil)

// NewLabel creates a label widget.
func NewLabel(text string, background, foreground uint32) *Label {
	return &Label{Text: text, Background: background, Foreground: foreground}
}

func (l *Label) SetBounds(r geom.Rect) { l.bounds = r }

// Bounds returns the window-local rectangle set by the controller.
func (l *Label) Bounds() geom.Rect { return l.bounds }

func (l *Label) Destroy() { l.destroyed = true }

// Destroyed reports whether the label was replaced or its window closed.
func (l *Label) Destroyed() bool { return l.destroyed }
