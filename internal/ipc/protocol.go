package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListWindows  CommandType = "LIST_WINDOWS"
	CommandShowWindow   CommandType = "SHOW_WINDOW"
	CommandHideWindow   CommandType = "HIDE_WINDOW"
	CommandToggleWindow CommandType = "TOGGLE_WINDOW"
	CommandHideAll      CommandType = "HIDE_ALL"
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

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount         int    `json:"window_count"`
	RegisteredCount     int    `json:"registered_count"`
	GlobalCloseShortcut string `json:"global_close_shortcut"`
	UptimeSeconds       int64  `json:"uptime_seconds"`
	DaemonRunning       bool   `json:"daemon_running"`
}

// WindowInfo describes one configured spotlight window.
type WindowInfo struct {
	Label      string `json:"label"`
	Shortcut   string `json:"shortcut"`
	AutoHide   bool   `json:"auto_hide"`
	Registered bool   `json:"registered"`
	Found      bool   `json:"found"`
	Visible    bool   `json:"visible"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// WindowPayload carries the target label for per-window commands.
type WindowPayload struct {
	Label string `json:"label"`
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
