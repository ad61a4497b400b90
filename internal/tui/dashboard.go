package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/kvmctl/internal/device"
)

// lcdCycle is the order the 't' key steps through the display timeouts
var lcdCycle = []int{0, 10, 30}

// Message types for async device operations
type portReadMsg struct {
	port int
	err  error
}

type switchDoneMsg struct {
	result *device.SwitchResult
	err    error
}

type buzzerDoneMsg struct {
	on  bool
	err error
}

type lcdDoneMsg struct {
	seconds int
	err     error
}

type refreshTickMsg time.Time

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Switch  key.Binding
	Mute    key.Binding
	Unmute  key.Binding
	LCD     key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Switch, k.Refresh},
		{k.Mute, k.Unmute, k.LCD, k.Quit},
	}
}

func defaultKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous port"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next port"),
		),
		Switch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter/1-9", "switch port"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute buzzer"),
		),
		Unmute: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "unmute buzzer"),
		),
		LCD: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle LCD timeout"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel is the interactive port-switcher screen. Exactly one
// device command is in flight at a time: while Busy, command keys are
// ignored so the switch never sees overlapping requests.
type DashboardModel struct {
	Client *device.Client

	// RefreshEvery is the auto-refresh interval; zero disables auto-refresh
	RefreshEvery time.Duration

	// State read from the device
	ActivePort int // 0 until the first successful read

	// UI state
	Cursor   int // 0-based index into the port grid
	Busy     bool
	Status   string
	LastErr  error
	Width    int
	LCDIndex int // position in lcdCycle for the 't' key

	Spinner spinner.Model
	Help    help.Model
	Keys    dashboardKeyMap
}

// NewDashboardModel creates the dashboard for the given device client.
// refreshEvery enables periodic re-reads of the active port; zero turns
// auto-refresh off.
func NewDashboardModel(client *device.Client, refreshEvery time.Duration) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return DashboardModel{
		Client:       client,
		RefreshEvery: refreshEvery,
		Spinner:      s,
		Help:         help.New(),
		Keys:         defaultKeyMap(),
		Width:        TerminalWidth(),
		Busy:         true,
		Status:       "reading active port...",
	}
}

// Init starts the spinner and the initial port read
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.readPortCmd())
}

// readPortCmd queries the active port in a background command
func (m DashboardModel) readPortCmd() tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		port, err := client.CurrentPort()
		return portReadMsg{port: port, err: err}
	}
}

// switchPortCmd switches to the target port in a background command
func (m DashboardModel) switchPortCmd(target int) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		result, err := client.SwitchPort(target)
		return switchDoneMsg{result: result, err: err}
	}
}

func (m DashboardModel) buzzerCmd(on bool) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		err := client.SetBuzzer(on)
		return buzzerDoneMsg{on: on, err: err}
	}
}

func (m DashboardModel) lcdCmd(seconds int) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		err := client.SetLCDTimeout(seconds)
		return lcdDoneMsg{seconds: seconds, err: err}
	}
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	if m.RefreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.RefreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update handles messages and key events
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		if m.Width > MaxContentWidth {
			m.Width = MaxContentWidth
		}
		m.Help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case portReadMsg:
		m.Busy = false
		if msg.err != nil {
			m.LastErr = msg.err
			m.Status = ""
			return m, m.refreshCmd()
		}
		m.LastErr = nil
		m.ActivePort = msg.port
		if m.Cursor == 0 && msg.port >= 1 && msg.port <= m.Client.Ports() {
			m.Cursor = msg.port - 1
		}
		m.Status = fmt.Sprintf("active port: %d", msg.port)
		return m, m.refreshCmd()

	case switchDoneMsg:
		m.Busy = false
		if msg.err != nil {
			m.LastErr = msg.err
			m.Status = ""
			return m, nil
		}
		m.LastErr = nil
		m.ActivePort = msg.result.Current
		if msg.result.AlreadyActive {
			m.Status = fmt.Sprintf("port %d already active", msg.result.Current)
		} else {
			m.Status = fmt.Sprintf("switched from port %d to %d", msg.result.Previous, msg.result.Current)
		}
		return m, nil

	case buzzerDoneMsg:
		m.Busy = false
		if msg.err != nil {
			m.LastErr = msg.err
			m.Status = ""
			return m, nil
		}
		m.LastErr = nil
		if msg.on {
			m.Status = "buzzer unmuted"
		} else {
			m.Status = "buzzer muted"
		}
		return m, nil

	case lcdDoneMsg:
		m.Busy = false
		if msg.err != nil {
			m.LastErr = msg.err
			m.Status = ""
			return m, nil
		}
		m.LastErr = nil
		if msg.seconds == 0 {
			m.Status = "LCD always on"
		} else {
			m.Status = fmt.Sprintf("LCD timeout set to %ds", msg.seconds)
		}
		return m, nil

	case refreshTickMsg:
		if m.Busy {
			// A command is in flight; skip this refresh and reschedule
			return m, m.refreshCmd()
		}
		m.Busy = true
		m.Status = "refreshing..."
		return m, m.readPortCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, even mid-command
	if key.Matches(msg, m.Keys.Quit) {
		return m, tea.Quit
	}

	// One device command at a time
	if m.Busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Left):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case key.Matches(msg, m.Keys.Right):
		if m.Cursor < m.Client.Ports()-1 {
			m.Cursor++
		}
		return m, nil

	case key.Matches(msg, m.Keys.Switch):
		target := m.Cursor + 1
		m.Busy = true
		m.Status = fmt.Sprintf("switching to port %d...", target)
		return m, m.switchPortCmd(target)

	case key.Matches(msg, m.Keys.Mute):
		m.Busy = true
		m.Status = "muting buzzer..."
		return m, m.buzzerCmd(false)

	case key.Matches(msg, m.Keys.Unmute):
		m.Busy = true
		m.Status = "unmuting buzzer..."
		return m, m.buzzerCmd(true)

	case key.Matches(msg, m.Keys.LCD):
		m.LCDIndex = (m.LCDIndex + 1) % len(lcdCycle)
		seconds := lcdCycle[m.LCDIndex]
		m.Busy = true
		m.Status = fmt.Sprintf("setting LCD timeout to %ds...", seconds)
		return m, m.lcdCmd(seconds)

	case key.Matches(msg, m.Keys.Refresh):
		m.Busy = true
		m.Status = "refreshing..."
		return m, m.readPortCmd()
	}

	// Digit keys jump straight to a port
	if n, err := strconv.Atoi(msg.String()); err == nil {
		if n >= 1 && n <= m.Client.Ports() {
			m.Cursor = n - 1
			m.Busy = true
			m.Status = fmt.Sprintf("switching to port %d...", n)
			return m, m.switchPortCmd(n)
		}
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(AppName))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(m.Client.Addr()))
	b.WriteString("\n\n")

	// Port grid
	cells := make([]string, 0, m.Client.Ports())
	for i := 1; i <= m.Client.Ports(); i++ {
		label := strconv.Itoa(i)
		style := PortStyle
		switch {
		case i == m.ActivePort:
			style = PortActiveStyle
		case i-1 == m.Cursor:
			style = PortCursorStyle
		}
		if i == m.ActivePort {
			label = "●" + label
		}
		cells = append(cells, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n\n")

	// Status line
	switch {
	case m.Busy:
		b.WriteString(StatusBusyStyle.Render(m.Spinner.View() + " " + m.Status))
	case m.LastErr != nil:
		b.WriteString(StatusErrorStyle.Render("error: " + m.LastErr.Error()))
	case m.Status != "":
		b.WriteString(StatusStyle.Render(m.Status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.Help.View(m.Keys))
	b.WriteString("\n")

	return b.String()
}

// Run launches the dashboard program and blocks until it exits
func Run(client *device.Client, refreshEvery time.Duration) error {
	p := tea.NewProgram(NewDashboardModel(client, refreshEvery))
	_, err := p.Run()
	return err
}
