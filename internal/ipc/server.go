package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/platform"
	"github.com/1broseidon/spotlightd/internal/runtimepath"
	"github.com/1broseidon/spotlightd/internal/spotlight"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	manager      *spotlight.Manager
	toolkit      platform.Toolkit
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, manager *spotlight.Manager, toolkit platform.Toolkit) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		manager:    manager,
		toolkit:    toolkit,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

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
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandShowWindow:
		return s.handleWindowCommand(req.Payload, s.manager.Show)
	case CommandHideWindow:
		return s.handleWindowCommand(req.Payload, s.manager.Hide)
	case CommandToggleWindow:
		return s.handleWindowCommand(req.Payload, s.manager.Toggle)
	case CommandHideAll:
		return s.handleHideAll()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		WindowCount:         len(s.cfg.Windows),
		RegisteredCount:     len(s.manager.Labels()),
		GlobalCloseShortcut: s.cfg.GlobalCloseShortcut,
		UptimeSeconds:       int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:       true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleListWindows reports per-window state: whether the label has been
// registered with the manager, whether a matching window currently exists
// on screen, and whether it is visible.
func (s *Server) handleListWindows() *Response {
	registered := make(map[string]bool)
	for _, label := range s.manager.Labels() {
		registered[label] = true
	}

	infos := make([]WindowInfo, 0, len(s.cfg.Windows))
	for _, wc := range s.cfg.Windows {
		info := WindowInfo{
			Label:      wc.Label,
			Shortcut:   wc.Shortcut,
			AutoHide:   wc.AutoHideEnabled(),
			Registered: registered[wc.Label],
		}
		if win, err := s.toolkit.Window(wc.Label); err == nil {
			info.Found = true
			if visible, err := win.IsVisible(); err == nil {
				info.Visible = visible
			}
		}
		infos = append(infos, info)
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

// handleWindowCommand resolves the payload label to a live window and
// applies op to it.
func (s *Server) handleWindowCommand(payload json.RawMessage, op func(platform.Window) error) *Response {
	var req WindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if req.Label == "" {
		return NewErrorResponse("label is required")
	}
	if _, ok := s.cfg.Window(req.Label); !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown window label: %s", req.Label))
	}

	win, err := s.toolkit.Window(req.Label)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Window %q not found on screen: %v", req.Label, err))
	}
	if err := op(win); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleHideAll() *Response {
	s.manager.HideAll()
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

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
