package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/ipc"
)

// WindowClient is the IPC surface the TUI drives. *ipc.Client implements it.
type WindowClient interface {
	GetState() (*ipc.StateData, error)
	Minimize() error
	ToggleMaximize() error
	Close() error
	Reload() error
	SetTitle(title string) error
}

const refreshInterval = time.Second

type refreshMsg struct{}

// stateMsg carries the result of a GET_STATE poll.
type stateMsg struct {
	state *ipc.StateData
	err   error
}

// actionMsg reports the outcome of a window command.
type actionMsg struct {
	name string
	err  error
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	client     WindowClient

	activeTab Tab

	windowTab     WindowTab
	appearanceTab AppearanceTab
	hotkeysTab    HotkeysTab

	// originalConfig is the last saved snapshot the diff is taken against.
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	state     *ipc.StateData
	connected bool
	lastError string

	width  int
	height int
}

func newModel(configPath string, client WindowClient) (model, error) {
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		return model{}, err
	}
	cfg := res.Config
	return model{
		configPath:     configPath,
		cfg:            cfg,
		client:         client,
		activeTab:      TabWindow,
		windowTab:      NewWindowTab(),
		appearanceTab:  NewAppearanceTab(cfg),
		hotkeysTab:     NewHotkeysTab(cfg),
		originalConfig: cloneConfig(cfg),
	}, nil
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) pollState() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		st, err := client.GetState()
		return stateMsg{state: st, err: err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// runAction sends a window command off the UI goroutine.
func (m model) runAction(name string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{name: name, err: fn()}
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.pollState(), scheduleRefresh())
}

// capturing reports whether the active tab is taking raw key input.
func (m model) capturing() bool {
	switch m.activeTab {
	case TabWindow:
		return m.windowTab.editing
	case TabAppearance:
		return m.appearanceTab.editing
	case TabHotkeys:
		return m.hotkeysTab.editing
	}
	return false
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, tea.Batch(m.pollState(), scheduleRefresh())
	case stateMsg:
		m.connected = msg.err == nil
		m.state = msg.state
		if msg.err != nil {
			m.state = nil
		}
		m.windowTab.SetState(m.state)
		return m, nil
	case actionMsg:
		m.lastError = ""
		if msg.err != nil {
			m.lastError = msg.name + ": " + msg.err.Error()
		}
		return m, m.pollState()
	case titleSubmitMsg:
		client := m.client
		return m, m.runAction("title", func() error { return client.SetTitle(msg.title) })
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		sub := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.windowTab, _ = m.windowTab.Update(sub)
		m.appearanceTab, _ = m.appearanceTab.Update(sub)
		m.hotkeysTab, _ = m.hotkeysTab.Update(sub)
		return m, nil
	}

	// Save overlay captures all input when active.
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prev := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(km, m.cfg, m.client, m.connected)
			if prev == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = cloneConfig(m.cfg)
			}
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg, m.configPath)
		return m, nil
	}

	if m.capturing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateActiveTab(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		client := m.client
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabWindow
			return m, nil
		case "2":
			m.activeTab = TabAppearance
			return m, nil
		case "3":
			m.activeTab = TabHotkeys
			return m, nil
		case "m":
			return m, m.runAction("minimize", client.Minimize)
		case "x":
			if m.activeTab != TabHotkeys {
				return m, m.runAction("maximize", client.ToggleMaximize)
			}
		case "c":
			return m, m.runAction("close", client.Close)
		case "r":
			return m, m.runAction("reload", client.Reload)
		}
	}

	return m.updateActiveTab(msg)
}

func (m model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabWindow:
		m.windowTab, cmd = m.windowTab.Update(msg)
	case TabAppearance:
		m.appearanceTab, cmd = m.appearanceTab.Update(msg)
	case TabHotkeys:
		m.hotkeysTab, cmd = m.hotkeysTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.state, m.lastError, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.activeTab, m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabWindow:
			content = m.windowTab.View()
		case TabAppearance:
			content = m.appearanceTab.View()
		case TabHotkeys:
			content = m.hotkeysTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
