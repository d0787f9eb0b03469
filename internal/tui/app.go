// Package tui is an interactive window board for the spotlight daemon:
// it lists the configured windows with their live state and drives
// show/hide/toggle through the daemon's IPC socket.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/spotlightd/internal/ipc"
)

// daemonClient is the slice of the IPC client the TUI uses.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() (*ipc.WindowsData, error)
	ShowWindow(label string) error
	HideWindow(label string) error
	ToggleWindow(label string) error
	HideAll() error
}

// windowsMsg carries a refreshed window list from the daemon.
type windowsMsg struct {
	status  *ipc.StatusData
	windows []ipc.WindowInfo
}

// errMsg carries a daemon communication failure.
type errMsg struct {
	err error
}

// model is the root bubbletea model for the TUI.
type model struct {
	client daemonClient

	windows   []ipc.WindowInfo
	status    *ipc.StatusData
	connected bool
	selected  int
	lastError string

	width  int
	height int
}

func newModel(client daemonClient) model {
	return model{client: client}
}

// Run starts the TUI main loop.
func Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(ipc.NewClient()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// refresh fetches daemon status and the window list.
func (m model) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		status, err := client.GetStatus()
		if err != nil {
			return errMsg{err: err}
		}
		data, err := client.ListWindows()
		if err != nil {
			return errMsg{err: err}
		}
		return windowsMsg{status: status, windows: data.Windows}
	}
}

// act runs a daemon command and refreshes on success.
func (m model) act(fn func() error) tea.Cmd {
	refresh := m.refresh()
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg{err: err}
		}
		return refresh()
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.refresh()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case windowsMsg:
		m.connected = true
		m.lastError = ""
		m.status = msg.status
		m.windows = msg.windows
		if m.selected >= len(m.windows) {
			m.selected = len(m.windows) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil

	case errMsg:
		m.connected = false
		m.lastError = msg.err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "j", "down":
			if m.selected < len(m.windows)-1 {
				m.selected++
			}
			return m, nil

		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "r":
			return m, m.refresh()

		case "s":
			if win, ok := m.selectedWindow(); ok {
				label := win.Label
				return m, m.act(func() error { return m.client.ShowWindow(label) })
			}
			return m, nil

		case "h":
			if win, ok := m.selectedWindow(); ok {
				label := win.Label
				return m, m.act(func() error { return m.client.HideWindow(label) })
			}
			return m, nil

		case "t", "enter", " ":
			if win, ok := m.selectedWindow(); ok {
				label := win.Label
				return m, m.act(func() error { return m.client.ToggleWindow(label) })
			}
			return m, nil

		case "a":
			return m, m.act(m.client.HideAll)
		}
	}

	return m, nil
}

func (m model) selectedWindow() (ipc.WindowInfo, bool) {
	if m.selected < 0 || m.selected >= len(m.windows) {
		return ipc.WindowInfo{}, false
	}
	return m.windows[m.selected], true
}
