package ui

import (
	"context"
	"strings"

	"github.com/Mohsinsiddi/w3connect/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// StateMsg carries a store update into the program.
type StateMsg session.Update

// Actions is what the view can ask of the session.
type Actions interface {
	Connect(ctx context.Context) error
	Disconnect()
}

// ConnectModel is the Bubble Tea model for the wallet view.
type ConnectModel struct {
	ctx      context.Context
	actions  Actions
	state    session.State
	rev      uint64
	frame    int
	spinning bool
	quitting bool
}

// NewConnectModel creates the model. initial is rendered until the first
// StateMsg arrives.
func NewConnectModel(ctx context.Context, actions Actions, initial session.State) ConnectModel {
	return ConnectModel{
		ctx:      ctx,
		actions:  actions,
		state:    initial,
		spinning: initial.Status == session.StatusConnecting,
	}
}

// Forward returns a store subscriber that delivers updates to p.
func Forward(p *tea.Program) func(session.Update) {
	return func(u session.Update) { p.Send(StateMsg(u)) }
}

// State returns the snapshot currently displayed.
func (m ConnectModel) State() session.State { return m.state }

func (m ConnectModel) Init() tea.Cmd {
	if m.spinning {
		return spinTick()
	}
	return nil
}

func (m ConnectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "c", "enter":
			if m.canConnect() {
				return m, m.connect()
			}

		case "r":
			if m.state.Status == session.StatusConnected {
				return m, m.connect()
			}

		case "d":
			if m.state.Status != session.StatusDisconnected && !session.ProviderMissing(m.state) {
				return m, m.disconnect()
			}
		}

	case StateMsg:
		// Subscribers run on whichever goroutine changed the store, so
		// updates can arrive out of order.
		if msg.Rev <= m.rev {
			return m, nil
		}
		m.rev = msg.Rev
		m.state = msg.State
		cmd := m.syncSpinner()
		return m, cmd

	case spinTickMsg:
		if m.state.Status != session.StatusConnecting {
			m.spinning = false
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, spinTick()
	}

	return m, nil
}

func (m ConnectModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(render(m.state, spinnerFrame(m.frame)))
	sb.WriteString("\n" + Meta("q quit") + "\n")
	return sb.String()
}

func (m ConnectModel) canConnect() bool {
	switch m.state.Status {
	case session.StatusDisconnected:
		return true
	case session.StatusError:
		return !session.ProviderMissing(m.state)
	}
	return false
}

// connect runs the connect operation off the update loop; its outcome
// arrives as StateMsg.
func (m ConnectModel) connect() tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		_ = actions.Connect(ctx)
		return nil
	}
}

func (m ConnectModel) disconnect() tea.Cmd {
	actions := m.actions
	return func() tea.Msg {
		actions.Disconnect()
		return nil
	}
}

// syncSpinner starts the spinner tick when entering the connecting state.
func (m *ConnectModel) syncSpinner() tea.Cmd {
	if m.state.Status != session.StatusConnecting || m.spinning {
		return nil
	}
	m.spinning = true
	return spinTick()
}
