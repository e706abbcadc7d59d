package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frameless/internal/ipc"
)

const (
	ServerName    = "frameless"
	ServerVersion = "0.1.0"
)

// WindowClient is the control-socket surface the tools use.
type WindowClient interface {
	GetState() (*ipc.StateData, error)
	Minimize() error
	ToggleMaximize() error
	Close() error
	SetTitle(title string) error
	Reload() error
}

// Server is the MCP server exposing frameless window tools.
type Server struct {
	mcpServer *mcpsdk.Server
	instance  string
	// clientFn builds a client for an instance; replaced in tests.
	clientFn func(instance string) WindowClient
}

// NewServer creates an MCP server that talks to the given window instance
// over its control socket.
func NewServer(instance string) *Server {
	s := &Server{
		instance: instance,
		clientFn: func(instance string) WindowClient { return ipc.NewClient(instance) },
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_state",
		Description: "Report the frameless window's title, geometry, maximized state, current gesture phase and shadow strategy.",
	}, s.handleWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize (iconify) the frameless window.",
	}, s.handleMinimize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize the frameless window, or restore it to its previous geometry when already maximized.",
	}, s.handleToggleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close the frameless window. The window process exits once the window is destroyed.",
	}, s.handleClose)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Change the text shown in the title bar and the window manager's title.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Re-read the frameless config file and apply title bar colours and shadow settings.",
	}, s.handleReload)
}

func (s *Server) client(instance string) (WindowClient, string) {
	if strings.TrimSpace(instance) == "" {
		instance = s.instance
	}
	return s.clientFn(instance), instance
}

func (s *Server) handleWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args InstanceInput) (*mcpsdk.CallToolResult, WindowStateOutput, error) {
	c, _ := s.client(args.Instance)
	st, err := c.GetState()
	if err != nil {
		return nil, WindowStateOutput{}, fmt.Errorf("window_state: %w", err)
	}
	return nil, WindowStateOutput{
		Title:         st.Title,
		X:             st.X,
		Y:             st.Y,
		Width:         st.Width,
		Height:        st.Height,
		Maximized:     st.Maximized,
		Phase:         st.Phase,
		Shadow:        st.Shadow,
		HitTest:       st.HitTest,
		Closed:        st.Closed,
		UptimeSeconds: st.UptimeSeconds,
	}, nil
}

func (s *Server) act(name, instance string, fn func(WindowClient) error) (*mcpsdk.CallToolResult, ActionOutput, error) {
	c, instance := s.client(instance)
	if err := fn(c); err != nil {
		return nil, ActionOutput{Action: name, Instance: instance}, fmt.Errorf("%s: %w", name, err)
	}
	return nil, ActionOutput{Action: name, Instance: instance, OK: true}, nil
}

func (s *Server) handleMinimize(_ context.Context, _ *mcpsdk.CallToolRequest, args InstanceInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("minimize_window", args.Instance, WindowClient.Minimize)
}

func (s *Server) handleToggleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, args InstanceInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("toggle_maximize", args.Instance, WindowClient.ToggleMaximize)
}

func (s *Server) handleClose(_ context.Context, _ *mcpsdk.CallToolRequest, args InstanceInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("close_window", args.Instance, WindowClient.Close)
}

func (s *Server) handleReload(_ context.Context, _ *mcpsdk.CallToolRequest, args InstanceInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("reload_config", args.Instance, WindowClient.Reload)
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return nil, ActionOutput{Action: "set_title"}, fmt.Errorf("set_title: title is required")
	}
	return s.act("set_title", args.Instance, func(c WindowClient) error { return c.SetTitle(title) })
}
