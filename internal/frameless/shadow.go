package frameless

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/frameless/internal/geom"
)

// ShadowFrame is what a shadow strategy draws around.
type ShadowFrame struct {
	Bounds    geom.Rect
	Maximized bool
}

// ShadowStrategy draws a drop shadow for a native window.
type ShadowStrategy interface {
	Name() string
	Apply(frame ShadowFrame) error
	Release() error
}

// ShadowRenderer refreshes a strategy whenever the window geometry changes.
type ShadowRenderer struct {
	host     Host
	strategy ShadowStrategy
	logger   *slog.Logger
}

// NewShadowRenderer creates a renderer and applies the shadow once.
func NewShadowRenderer(host Host, strategy ShadowStrategy, logger *slog.Logger) *ShadowRenderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &ShadowRenderer{host: host, strategy: strategy, logger: logger}
	r.Refresh()
	return r
}

// Strategy returns the name of the active strategy, or "none".
func (r *ShadowRenderer) Strategy() string {
	if r == nil || r.strategy == nil {
		return "none"
	}
	return r.strategy.Name()
}

// Refresh reapplies the shadow. It does nothing until the host is realized;
// the next geometry change retries.
func (r *ShadowRenderer) Refresh() {
	if r == nil || r.strategy == nil || r.host == nil {
		return
	}
	if !r.host.Realized() {
		return
	}
	frame := ShadowFrame{Bounds: r.host.Geometry(), Maximized: r.host.IsMaximized()}
	if err := r.strategy.Apply(frame); err != nil && !errors.Is(err, ErrNotRealized) {
		r.logger.Debug("shadow refresh failed", "strategy", r.strategy.Name(), "err", err)
	}
}

// Hide removes the shadow while the window is unmapped, for strategies that
// draw it in windows of their own.
func (r *ShadowRenderer) Hide() {
	if r == nil || r.strategy == nil {
		return
	}
	h, ok := r.strategy.(interface{ Hide() error })
	if !ok {
		return
	}
	if err := h.Hide(); err != nil {
		r.logger.Debug("shadow hide failed", "strategy", r.strategy.Name(), "err", err)
	}
}

// Release tears down the strategy's native resources.
func (r *ShadowRenderer) Release() {
	if r == nil || r.strategy == nil {
		return
	}
	if err := r.strategy.Release(); err != nil {
		r.logger.Debug("shadow release failed", "strategy", r.strategy.Name(), "err", err)
	}
}
