package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/frameless/internal/runtimepath"
)

// Client handles IPC communication with a running frameless window
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the window instance's default socket.
func NewClient(instance string) *Client {
	socketPath, err := runtimepath.SocketPath(instance)
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientForSocket(socketPath)
}

// NewClientForSocket creates a client for an explicit socket path.
func NewClientForSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string { return c.socketPath }

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to window: %w (is frameless running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("frameless error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) send(cmd CommandType) error {
	_, err := c.sendRequest(&Request{Command: cmd})
	return err
}

// GetState retrieves the window state.
func (c *Client) GetState() (*StateData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetState})
	if err != nil {
		return nil, err
	}

	var state StateData
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state data: %w", err)
	}
	return &state, nil
}

// Minimize iconifies the window.
func (c *Client) Minimize() error { return c.send(CommandMinimize) }

// ToggleMaximize maximizes or restores the window.
func (c *Client) ToggleMaximize() error { return c.send(CommandToggleMaximize) }

// Close closes the window.
func (c *Client) Close() error { return c.send(CommandClose) }

// Reload asks the window to re-read its configuration.
func (c *Client) Reload() error { return c.send(CommandReload) }

// SetTitle changes the window title.
func (c *Client) SetTitle(title string) error {
	payload, err := json.Marshal(SetTitlePayload{Title: title})
	if err != nil {
		return fmt.Errorf("failed to marshal title payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandSetTitle, Payload: payload})
	return err
}

// Ping checks if the window is responding
func (c *Client) Ping() error {
	_, err := c.GetState()
	return err
}
