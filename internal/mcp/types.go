package mcp

// ShowWindowInput is the input for the show_window tool.
type ShowWindowInput struct {
	Label string `json:"label" jsonschema:"required,Label of the spotlight window to show and focus"`
}

// HideWindowInput is the input for the hide_window tool.
type HideWindowInput struct {
	Label string `json:"label" jsonschema:"required,Label of the spotlight window to hide"`
}

// ToggleWindowInput is the input for the toggle_window tool.
type ToggleWindowInput struct {
	Label string `json:"label" jsonschema:"required,Label of the spotlight window to toggle"`
}

// WindowActionOutput is the output for show/hide/toggle tools.
type WindowActionOutput struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowStatus describes one configured spotlight window.
type WindowStatus struct {
	Label      string `json:"label"`
	Shortcut   string `json:"shortcut"`
	AutoHide   bool   `json:"auto_hide"`
	Registered bool   `json:"registered"`
	Found      bool   `json:"found"`
	Visible    bool   `json:"visible"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowStatus `json:"windows"`
}

// HideAllInput is the input for the hide_all tool.
type HideAllInput struct{}

// HideAllOutput is the output for the hide_all tool.
type HideAllOutput struct {
	Action string `json:"action"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	WindowCount         int    `json:"window_count"`
	RegisteredCount     int    `json:"registered_count"`
	GlobalCloseShortcut string `json:"global_close_shortcut"`
	UptimeSeconds       int64  `json:"uptime_seconds"`
	DaemonRunning       bool   `json:"daemon_running"`
}
