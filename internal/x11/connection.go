package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	quit     chan struct{}
	quitOnce sync.Once
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11 display %q: %w", display, err)
	}

	// Initialize keybind module (required for window shortcuts)
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
		quit:  make(chan struct{}),
	}, nil
}

// EventLoop runs the X11 event loop until Quit is called. Functions received
// on dispatch run between X events, so they never race with event callbacks.
func (c *Connection) EventLoop(dispatch <-chan func()) {
	before, after, quit := xevent.MainPing(c.XUtil)
	for {
		select {
		case <-before:
			<-after
		case fn := <-dispatch:
			fn()
		case <-quit:
			return
		case <-c.quit:
			return
		}
	}
}

// Quit stops EventLoop after the current event or dispatched function.
func (c *Connection) Quit() {
	c.quitOnce.Do(func() {
		xevent.Quit(c.XUtil)
		close(c.quit)
	})
}

// ScreenNumber returns the default screen index.
func (c *Connection) ScreenNumber() int {
	return c.XUtil.Conn().DefaultScreen
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
