// Package tui implements the live `boostd watch` dashboard.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/perfkit/boostd/internal/app/boost"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Width(12)
)

type tickMsg time.Time

type stateMsg struct {
	state boost.State
	err   error
}

// Fetch retrieves the current scheduler state from the daemon.
type Fetch func() (boost.State, error)

type watchModel struct {
	fetch   Fetch
	state   boost.State
	err     error
	fetched bool
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) poll() tea.Msg {
	st, err := m.fetch()
	return stateMsg{state: st, err: err}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.poll, tick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		return m, tea.Batch(m.poll, tick())
	case stateMsg:
		m.state = msg.state
		m.err = msg.err
		m.fetched = true
	}
	return m, nil
}

func (m watchModel) View() string {
	var body string
	switch {
	case !m.fetched:
		body = idleStyle.Render("connecting...")
	case m.err != nil:
		body = errStyle.Render(fmt.Sprintf("daemon unreachable: %v", m.err))
	default:
		body = m.renderState()
	}

	return titleStyle.Render("boostd") + "\n" +
		boxStyle.Render(body) + "\n" +
		idleStyle.Render("q to quit") + "\n"
}

func (m watchModel) renderState() string {
	st := m.state

	stateLine := idleStyle.Render("IDLE")
	if st.Active {
		stateLine = activeStyle.Render("ACTIVE " + st.WindowID)
	}

	window := "-"
	if st.LastIssuedAt != nil {
		remaining := time.Until(st.LastIssuedAt.Add(time.Duration(st.LastDurationMs) * time.Millisecond))
		if st.Active && remaining > 0 {
			window = fmt.Sprintf("%dms (%s left)", st.LastDurationMs, remaining.Round(time.Second))
		} else {
			window = fmt.Sprintf("%dms (closed)", st.LastDurationMs)
		}
	}

	sink := errStyle.Render("unavailable")
	if st.SinkAvailable {
		sink = activeStyle.Render("available")
	}

	return labelStyle.Render("State") + stateLine + "\n" +
		labelStyle.Render("Window") + window + "\n" +
		labelStyle.Render("Issued") + fmt.Sprintf("%d", st.TotalIssued) + "\n" +
		labelStyle.Render("Dropped") + fmt.Sprintf("%d", st.TotalDropped) + "\n" +
		labelStyle.Render("Hint sink") + sink
}

// Run starts the watch dashboard and blocks until the user quits.
func Run(fetch Fetch) error {
	p := tea.NewProgram(watchModel{fetch: fetch})
	_, err := p.Run()
	return err
}
