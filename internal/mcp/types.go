package mcp

// InstanceInput selects the frameless window a tool talks to.
type InstanceInput struct {
	Instance string `json:"instance,omitempty" jsonschema:"Window instance name (default: the server's instance)"`
}

// WindowStateOutput is the output for the window_state tool.
type WindowStateOutput struct {
	Title         string `json:"title"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Maximized     bool   `json:"maximized"`
	Phase         string `json:"phase"`
	Shadow        string `json:"shadow"`
	HitTest       string `json:"hit_test"`
	Closed        bool   `json:"closed"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ActionOutput is the output for tools that only act on the window.
type ActionOutput struct {
	Action   string `json:"action"`
	Instance string `json:"instance,omitempty"`
	OK       bool   `json:"ok"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	Title    string `json:"title" jsonschema:"required,New window title"`
	Instance string `json:"instance,omitempty" jsonschema:"Window instance name (default: the server's instance)"`
}
