package frameless

import "github.com/1broseidon/frameless/internal/geom"

// Phase is the controller state for the current gesture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResizing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Session holds the state of one drag or resize gesture.
type Session struct {
	Active bool
	// Anchor is the press position minus the window origin, in screen space.
	Anchor geom.Point
	// Region is frozen at press time for the whole gesture.
	Region RegionKind
}

// Phase derives the controller phase from the session.
func (s *Session) Phase() Phase {
	switch {
	case !s.Active:
		return PhaseIdle
	case s.Region == RegionTitleBar:
		return PhaseDragging
	case s.Region.IsResize():
		return PhaseResizing
	default:
		return PhaseIdle
	}
}

func (s *Session) begin(region RegionKind, anchor geom.Point) {
	s.Active = true
	s.Anchor = anchor
	s.Region = region
}

// Reset returns the session to idle.
func (s *Session) Reset() {
	s.Active = false
	s.Anchor = geom.Point{}
	s.Region = RegionNone
}
