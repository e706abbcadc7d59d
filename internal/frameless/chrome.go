package frameless

import "github.com/1broseidon/frameless/internal/geom"

// Chrome builds and arranges the title bar contents. Themes supply their own
// implementation instead of subclassing the title bar.
type Chrome interface {
	// InitializeButtons adds the control buttons to tb.
	InitializeButtons(tb *TitleBar)
	// SetupLayout positions the label and buttons for a bar width wide.
	SetupLayout(tb *TitleBar, width int)
}

// DefaultChrome lays out a left-aligned label and three right-aligned
// buttons.
type DefaultChrome struct {
	ButtonWidth int
	// Margin is the horizontal inset on both ends of the bar.
	Margin int
}

// DefaultButtonWidth is the width of each control button.
const DefaultButtonWidth = 30

var _ Chrome = DefaultChrome{}

func (c DefaultChrome) InitializeButtons(tb *TitleBar) {
	tb.AddButton(ButtonMinimize)
	tb.AddButton(ButtonMaximize)
	tb.AddButton(ButtonClose)
}

func (c DefaultChrome) SetupLayout(tb *TitleBar, width int) {
	bw := c.ButtonWidth
	if bw <= 0 {
		bw = DefaultButtonWidth
	}
	margin := c.Margin
	if margin < 0 {
		margin = 0
	}
	height := tb.Height()

	buttons := tb.ButtonKinds()
	x := width - margin - bw*len(buttons)
	for _, kind := range buttons {
		tb.SetButtonBounds(kind, geom.Rect{X: x, Y: 0, Width: bw, Height: height})
		x += bw
	}

	labelWidth := width - 2*margin - bw*len(buttons)
	if labelWidth < 0 {
		labelWidth = 0
	}
	tb.SetLabelBounds(geom.Rect{X: margin, Y: 0, Width: labelWidth, Height: height})
}
