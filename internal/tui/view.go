package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/spotlightd/internal/ipc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236"))

	visibleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	hiddenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	missingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	shortcutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	connectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	disconnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusBarStyle  = lipgloss.NewStyle().MarginBottom(1)
	windowListStyle = lipgloss.NewStyle().MarginBottom(1)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Render("spotlightd")

	statusBar := statusBarStyle.Render(m.renderStatus())
	list := windowListStyle.Render(m.renderWindows())
	help := helpStyle.Render("j/k navigate · t toggle · s show · h hide · a hide all · r refresh · q quit")

	sections := []string{title, statusBar, list}
	if m.lastError != "" {
		sections = append(sections, errorStyle.Render(m.lastError))
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderStatus() string {
	if !m.connected || m.status == nil {
		return disconnStyle.Render("● daemon unreachable")
	}
	return connectedStyle.Render("● connected") + shortcutStyle.Render(
		fmt.Sprintf("  %d windows, %d registered · close: %s",
			m.status.WindowCount, m.status.RegisteredCount, m.status.GlobalCloseShortcut))
}

func (m model) renderWindows() string {
	if len(m.windows) == 0 {
		return hiddenStyle.Render("no spotlight windows configured")
	}

	var rows []string
	for i, win := range m.windows {
		row := renderWindowRow(win)
		if i == m.selected {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderWindowRow(win ipc.WindowInfo) string {
	var state string
	switch {
	case !win.Found:
		state = missingStyle.Render("· absent ")
	case win.Visible:
		state = visibleStyle.Render("● visible")
	default:
		state = hiddenStyle.Render("○ hidden ")
	}

	label := fmt.Sprintf("%-20s", win.Label)
	shortcut := shortcutStyle.Render(win.Shortcut)
	if !win.AutoHide {
		shortcut += shortcutStyle.Render("  (stays on focus loss)")
	}
	return fmt.Sprintf("%s %s %s", state, label, shortcut)
}
