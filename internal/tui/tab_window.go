package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/ipc"
)

// titleSubmitMsg asks the root model to send a new title.
type titleSubmitMsg struct {
	title string
}

// WindowTab shows the live window state and edits its title.
type WindowTab struct {
	state  *ipc.StateData
	width  int
	height int

	editing   bool
	textInput textinput.Model
}

// NewWindowTab creates an empty WindowTab.
func NewWindowTab() WindowTab {
	ti := textinput.New()
	ti.Placeholder = "Window title"
	ti.CharLimit = 255
	return WindowTab{textInput: ti}
}

// SetState replaces the displayed snapshot; nil means not connected.
func (w *WindowTab) SetState(st *ipc.StateData) {
	w.state = st
}

// Update handles messages for the window tab.
func (w WindowTab) Update(msg tea.Msg) (WindowTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil
	case tea.KeyMsg:
		if w.editing {
			return w.updateEditing(msg)
		}
		if msg.String() == "t" && w.state != nil {
			w.editing = true
			w.textInput.SetValue(w.state.Title)
			w.textInput.CursorEnd()
			return w, w.textInput.Focus()
		}
		return w, nil
	}
	if w.editing {
		var cmd tea.Cmd
		w.textInput, cmd = w.textInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w WindowTab) updateEditing(msg tea.KeyMsg) (WindowTab, tea.Cmd) {
	switch msg.String() {
	case "esc":
		w.editing = false
		w.textInput.Blur()
		return w, nil
	case "enter":
		title := strings.TrimSpace(w.textInput.Value())
		w.editing = false
		w.textInput.Blur()
		if title == "" {
			return w, nil
		}
		return w, func() tea.Msg { return titleSubmitMsg{title: title} }
	}
	var cmd tea.Cmd
	w.textInput, cmd = w.textInput.Update(msg)
	return w, cmd
}

// View renders the window tab.
func (w WindowTab) View() string {
	style := lipgloss.NewStyle().
		Width(w.width).
		Height(w.height).
		Padding(1, 2)

	st := w.state
	if st == nil {
		return lipgloss.NewStyle().
			Width(w.width).
			Height(w.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No window is running for this instance.\nStart one with 'frameless run'.")
	}

	title := st.Title
	if w.editing {
		title = w.textInput.View()
	}
	lines := []string{
		row("Title", title),
		row("Geometry", fmt.Sprintf("%dx%d+%d+%d", st.Width, st.Height, st.X, st.Y)),
		row("Maximized", strconv.FormatBool(st.Maximized)),
		"",
		row("Phase", st.Phase),
		row("Region", st.Region),
		row("Cursor", st.Cursor),
		"",
		row("Shadow", st.Shadow),
		row("Hit Test", st.HitTest),
		row("Uptime", fmt.Sprintf("%ds", st.UptimeSeconds)),
		"",
	}
	if w.editing {
		lines = append(lines, dimStyle.Render("  enter: apply  esc: cancel"))
	} else {
		lines = append(lines, dimStyle.Render("  Press 't' to change the title"))
	}
	return style.Render(strings.Join(lines, "\n"))
}
