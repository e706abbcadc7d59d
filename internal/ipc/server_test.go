package ipc

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
)

type fakeWindow struct {
	title     string
	maximized bool
	minimized int
	closed    bool
}

func (w *fakeWindow) State() frameless.State {
	return frameless.State{
		Title:     w.title,
		Geometry:  geom.Rect{X: 10, Y: 20, Width: 800, Height: 600},
		Maximized: w.maximized,
		Phase:     frameless.PhaseIdle,
		Region:    frameless.RegionNone,
		Cursor:    frameless.CursorArrow,
		Shadow:    "soft",
		HitTest:   frameless.HitTestApp,
	}
}

func (w *fakeWindow) Closed() bool                { return w.closed }
func (w *fakeWindow) Minimize()                   { w.minimized++ }
func (w *fakeWindow) ToggleMaximize()             { w.maximized = !w.maximized }
func (w *fakeWindow) Close()                      { w.closed = true }
func (w *fakeWindow) SetWindowTitle(title string) { w.title = title }

// inlineDispatcher serializes calls the way the UI loop does.
type inlineDispatcher struct {
	mu    sync.Mutex
	calls int
}

func (d *inlineDispatcher) Do(ctx context.Context, fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	fn()
	return nil
}

type stoppedDispatcher struct{}

func (stoppedDispatcher) Do(context.Context, func()) error {
	return errors.New("event loop stopped")
}

func startServer(t *testing.T, win Window, d Dispatcher, reload ReloadFunc) *Client {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "f.sock")
	srv, err := NewServer(sock, win, d, reload)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientForSocket(sock)
}

func TestServer_GetState(t *testing.T) {
	win := &fakeWindow{title: "Window Title"}
	client := startServer(t, win, &inlineDispatcher{}, nil)

	st, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Title != "Window Title" || st.Width != 800 || st.Height != 600 || st.X != 10 || st.Y != 20 {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Phase != "idle" || st.Region != "none" || st.Cursor != "arrow" || st.Shadow != "soft" || st.HitTest != "app" {
		t.Fatalf("unexpected state labels %+v", st)
	}
}

func TestServer_Actions(t *testing.T) {
	win := &fakeWindow{title: "a"}
	d := &inlineDispatcher{}
	client := startServer(t, win, d, nil)

	if err := client.ToggleMaximize(); err != nil {
		t.Fatalf("ToggleMaximize: %v", err)
	}
	if err := client.Minimize(); err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if err := client.SetTitle("Editor"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}

	st, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if !st.Maximized || st.Title != "Editor" {
		t.Fatalf("expected maximized Editor, got %+v", st)
	}
	if win.minimized != 1 {
		t.Fatalf("expected one minimize, got %d", win.minimized)
	}
	if d.calls != 4 {
		t.Fatalf("expected every request dispatched, got %d calls", d.calls)
	}
}

func TestServer_CloseThenActionsFail(t *testing.T) {
	win := &fakeWindow{}
	client := startServer(t, win, &inlineDispatcher{}, nil)

	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !win.closed {
		t.Fatalf("expected window closed")
	}
	err := client.Minimize()
	if err == nil || !strings.Contains(err.Error(), "window is closed") {
		t.Fatalf("expected closed error, got %v", err)
	}
	st, err := client.GetState()
	if err != nil || !st.Closed {
		t.Fatalf("expected closed state, got %+v, %v", st, err)
	}
}

func TestServer_SetTitleRequiresTitle(t *testing.T) {
	client := startServer(t, &fakeWindow{title: "keep"}, &inlineDispatcher{}, nil)

	err := client.SetTitle("  ")
	if err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected title error, got %v", err)
	}
}

func TestServer_Reload(t *testing.T) {
	calls := 0
	client := startServer(t, &fakeWindow{}, &inlineDispatcher{}, func() error {
		calls++
		if calls > 1 {
			return errors.New("bad yaml")
		}
		return nil
	})

	if err := client.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	err := client.Reload()
	if err == nil || !strings.Contains(err.Error(), "bad yaml") {
		t.Fatalf("expected reload error, got %v", err)
	}
}

func TestServer_ReloadUnsupported(t *testing.T) {
	client := startServer(t, &fakeWindow{}, &inlineDispatcher{}, nil)
	if err := client.Reload(); err == nil {
		t.Fatalf("expected reload to fail without a reload func")
	}
}

func TestServer_DispatcherStopped(t *testing.T) {
	client := startServer(t, &fakeWindow{}, stoppedDispatcher{}, nil)

	_, err := client.GetState()
	if err == nil || !strings.Contains(err.Error(), "event loop stopped") {
		t.Fatalf("expected dispatcher error, got %v", err)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "f.sock")
	srv, err := NewServer(sock, &fakeWindow{}, &inlineDispatcher{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	resp := srv.handleCommand(&Request{Command: "TILE"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "Unknown command") {
		t.Fatalf("expected unknown command error, got %+v", resp)
	}
}

func TestNewServer_RefusesLiveSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "f.sock")
	srv, err := NewServer(sock, &fakeWindow{}, &inlineDispatcher{}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	if _, err := NewServer(sock, &fakeWindow{}, &inlineDispatcher{}, nil); err == nil {
		t.Fatalf("expected second server on a live socket to fail")
	}
}

func TestClient_NoServer(t *testing.T) {
	client := NewClientForSocket(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil || !strings.Contains(err.Error(), "is frameless running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}
