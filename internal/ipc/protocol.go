package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/frameless/internal/frameless"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState       CommandType = "GET_STATE"
	CommandMinimize       CommandType = "MINIMIZE"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
	CommandClose          CommandType = "CLOSE"
	CommandSetTitle       CommandType = "SET_TITLE"
	CommandReload         CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StateData represents the data returned by GET_STATE
type StateData struct {
	Title         string `json:"title"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Maximized     bool   `json:"maximized"`
	Phase         string `json:"phase"`
	Region        string `json:"region"`
	Cursor        string `json:"cursor"`
	Shadow        string `json:"shadow"`
	HitTest       string `json:"hit_test"`
	Closed        bool   `json:"closed"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// NewStateData flattens a controller snapshot for the wire.
func NewStateData(st frameless.State) StateData {
	return StateData{
		Title:     st.Title,
		X:         st.Geometry.X,
		Y:         st.Geometry.Y,
		Width:     st.Geometry.Width,
		Height:    st.Geometry.Height,
		Maximized: st.Maximized,
		Phase:     st.Phase.String(),
		Region:    st.Region.String(),
		Cursor:    st.Cursor.String(),
		Shadow:    st.Shadow,
		HitTest:   string(st.HitTest),
	}
}

// SetTitlePayload represents the payload for SET_TITLE
type SetTitlePayload struct {
	Title string `json:"title"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
