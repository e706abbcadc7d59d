/*
Package frameless implements the interaction engine of an undecorated
top-level window: hit-testing the pointer against the resize border and the
title bar, turning press/move/release sequences into a window move or a
directional resize, and keeping the title bar and drop shadow in step with the
window geometry.

The package does not talk to a window system. A Host supplies geometry,
window-state primitives and cursor changes; the X11 implementation lives in
internal/platform.

Example usage:

	ctrl := frameless.NewController(host, frameless.DefaultOptions())
	ctrl.SetWindowTitle("Frameless Window Demo")
	ctrl.SetCentralWidget(content)
	// from the event loop:
	ctrl.HandlePointer(ev)
*/
package frameless
