package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/frameless/internal/frameless"
)

// Window is the part of the frameless controller the server drives.
// Methods are only invoked through the Dispatcher.
type Window interface {
	State() frameless.State
	Closed() bool
	Minimize()
	ToggleMaximize()
	Close()
	SetWindowTitle(title string)
}

// Dispatcher runs fn on the goroutine that owns the window and waits for it.
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// ReloadFunc re-reads configuration and applies it. It runs on the window
// goroutine.
type ReloadFunc func() error

// DefaultDispatchTimeout bounds how long a request waits for the UI loop.
const DefaultDispatchTimeout = 2 * time.Second

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	window       Window
	dispatcher   Dispatcher
	reload       ReloadFunc
	timeout      time.Duration
	startTime    time.Time
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. reload may be nil.
func NewServer(socketPath string, window Window, dispatcher Dispatcher, reload ReloadFunc) (*Server, error) {
	if socketPath == "" {
		return nil, errors.New("IPC socket path is empty")
	}
	if window == nil || dispatcher == nil {
		return nil, errors.New("IPC server needs a window and a dispatcher")
	}

	// Remove a stale socket left by a crashed instance.
	if conn, err := net.DialTimeout("unix", socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return nil, fmt.Errorf("another instance is listening on %s", socketPath)
	}
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		window:     window,
		dispatcher: dispatcher,
		reload:     reload,
		timeout:    DefaultDispatchTimeout,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() {
				return
			}
			log.Printf("IPC accept error: %v", err)
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection serves one request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(s.timeout + 3*time.Second))

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetState:
		return s.handleGetState()
	case CommandMinimize:
		return s.handleAction("minimize", s.window.Minimize)
	case CommandToggleMaximize:
		return s.handleAction("toggle maximize", s.window.ToggleMaximize)
	case CommandClose:
		return s.handleAction("close", s.window.Close)
	case CommandSetTitle:
		return s.handleSetTitle(req.Payload)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) dispatch(fn func()) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.dispatcher.Do(ctx, fn)
}

func (s *Server) handleGetState() *Response {
	var data StateData
	err := s.dispatch(func() {
		data = NewStateData(s.window.State())
		data.Closed = s.window.Closed()
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read window state: %v", err))
	}
	data.UptimeSeconds = int64(time.Since(s.startTime).Seconds())

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleAction(name string, action func()) *Response {
	closed := false
	err := s.dispatch(func() {
		if closed = s.window.Closed(); !closed {
			action()
		}
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to %s: %v", name, err))
	}
	if closed {
		return NewErrorResponse("window is closed")
	}
	log.Printf("IPC: %s", name)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSetTitle(payload json.RawMessage) *Response {
	var req SetTitlePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set title payload: %v", err))
	}
	if strings.TrimSpace(req.Title) == "" {
		return NewErrorResponse("title is required")
	}
	return s.handleAction("set title", func() { s.window.SetWindowTitle(req.Title) })
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")
	if s.reload == nil {
		return NewErrorResponse("reload is not supported")
	}

	var reloadErr error
	if err := s.dispatch(func() { reloadErr = s.reload() }); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	if reloadErr != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", reloadErr))
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
