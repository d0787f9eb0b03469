// Package mcp exposes the spotlight daemon's window operations as MCP
// tools over stdio, so AI assistants can summon and dismiss windows
// through the running daemon.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/spotlightd/internal/ipc"
)

const (
	ServerName    = "spotlightd"
	ServerVersion = "0.1.0"
)

// daemonClient is the slice of the IPC client the tools use.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() (*ipc.WindowsData, error)
	ShowWindow(label string) error
	HideWindow(label string) error
	ToggleWindow(label string) error
	HideAll() error
}

// Server is the MCP server bridging tools to the spotlight daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates an MCP server talking to the local daemon socket.
func NewServer() *Server {
	return newServer(ipc.NewClient())
}

func newServer(client daemonClient) *Server {
	s := &Server{client: client}

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
		Name:        "list_windows",
		Description: "List the configured spotlight windows with their toggle shortcut, auto-hide setting, and current state (registered with the daemon, present on screen, visible).",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_window",
		Description: "Show a spotlight window by label and give it keyboard focus, bringing it in front of other windows.",
	}, s.handleShowWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_window",
		Description: "Hide a spotlight window by label.",
	}, s.handleHideWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_window",
		Description: "Toggle a spotlight window between hidden and shown. Showing also focuses the window.",
	}, s.handleToggleWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_all",
		Description: "Hide every spotlight window the daemon currently manages.",
	}, s.handleHideAll)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: configured window count, registered window count, global close shortcut, and uptime.",
	}, s.handleGetStatus)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowStatus, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowStatus{
			Label:      w.Label,
			Shortcut:   w.Shortcut,
			AutoHide:   w.AutoHide,
			Registered: w.Registered,
			Found:      w.Found,
			Visible:    w.Visible,
		})
	}
	return nil, out, nil
}

func (s *Server) handleShowWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ShowWindowInput) (*mcpsdk.CallToolResult, WindowActionOutput, error) {
	if args.Label == "" {
		return nil, WindowActionOutput{}, fmt.Errorf("label is required")
	}
	if err := s.client.ShowWindow(args.Label); err != nil {
		return nil, WindowActionOutput{}, err
	}
	return nil, WindowActionOutput{Label: args.Label, Action: "shown"}, nil
}

func (s *Server) handleHideWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args HideWindowInput) (*mcpsdk.CallToolResult, WindowActionOutput, error) {
	if args.Label == "" {
		return nil, WindowActionOutput{}, fmt.Errorf("label is required")
	}
	if err := s.client.HideWindow(args.Label); err != nil {
		return nil, WindowActionOutput{}, err
	}
	return nil, WindowActionOutput{Label: args.Label, Action: "hidden"}, nil
}

func (s *Server) handleToggleWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ToggleWindowInput) (*mcpsdk.CallToolResult, WindowActionOutput, error) {
	if args.Label == "" {
		return nil, WindowActionOutput{}, fmt.Errorf("label is required")
	}
	if err := s.client.ToggleWindow(args.Label); err != nil {
		return nil, WindowActionOutput{}, err
	}
	return nil, WindowActionOutput{Label: args.Label, Action: "toggled"}, nil
}

func (s *Server) handleHideAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ HideAllInput) (*mcpsdk.CallToolResult, HideAllOutput, error) {
	if err := s.client.HideAll(); err != nil {
		return nil, HideAllOutput{}, err
	}
	return nil, HideAllOutput{Action: "hidden_all"}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		WindowCount:         status.WindowCount,
		RegisteredCount:     status.RegisteredCount,
		GlobalCloseShortcut: status.GlobalCloseShortcut,
		UptimeSeconds:       status.UptimeSeconds,
		DaemonRunning:       status.DaemonRunning,
	}, nil
}
