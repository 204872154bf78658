package ui

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Mohsinsiddi/w3connect/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActions struct {
	connects    atomic.Int32
	disconnects atomic.Int32
}

func (f *fakeActions) Connect(context.Context) error {
	f.connects.Add(1)
	return nil
}

func (f *fakeActions) Disconnect() { f.disconnects.Add(1) }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m ConnectModel, k string) (ConnectModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(k))
	return next.(ConnectModel), cmd
}

func deliver(m ConnectModel, rev uint64, s session.State) (ConnectModel, tea.Cmd) {
	next, cmd := m.Update(StateMsg{Rev: rev, State: s})
	return next.(ConnectModel), cmd
}

func TestModelConnectKey(t *testing.T) {
	acts := &fakeActions{}
	m := NewConnectModel(context.Background(), acts, session.Initial())

	_, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, int32(1), acts.connects.Load())
}

func TestModelConnectHiddenWithoutProvider(t *testing.T) {
	acts := &fakeActions{}
	m := NewConnectModel(context.Background(), acts, session.Failed("no provider")(session.Initial()))

	for _, k := range []string{"c", "r", "d"} {
		_, cmd := press(t, m, k)
		assert.Nil(t, cmd, k)
	}
}

func TestModelRetryAfterError(t *testing.T) {
	acts := &fakeActions{}
	m := NewConnectModel(context.Background(), acts, session.Failed("boom")(session.Initial()))

	_, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, int32(1), acts.connects.Load())
}

func TestModelRefreshAndDisconnect(t *testing.T) {
	acts := &fakeActions{}
	m := NewConnectModel(context.Background(), acts, connected(1))

	_, cmd := press(t, m, "r")
	require.NotNil(t, cmd)
	cmd()
	_, cmd = press(t, m, "d")
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, int32(1), acts.connects.Load())
	assert.Equal(t, int32(1), acts.disconnects.Load())
}

func TestModelIgnoresConnectWhileConnecting(t *testing.T) {
	m := NewConnectModel(context.Background(), &fakeActions{}, session.Connecting(session.Initial()))
	_, cmd := press(t, m, "c")
	assert.Nil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := NewConnectModel(context.Background(), &fakeActions{}, session.Initial())
	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModelDropsOutOfOrderUpdates(t *testing.T) {
	m := NewConnectModel(context.Background(), &fakeActions{}, session.Initial())

	m, _ = deliver(m, 3, connected(1))
	m, _ = deliver(m, 2, session.Connecting(session.Initial()))
	assert.Equal(t, session.StatusConnected, m.State().Status)

	m, _ = deliver(m, 4, session.Initial())
	assert.Equal(t, session.Initial(), m.State())
}

func TestModelSpinnerRunsOnlyWhileConnecting(t *testing.T) {
	m := NewConnectModel(context.Background(), &fakeActions{}, session.Initial())
	assert.Nil(t, m.Init())

	m, cmd := deliver(m, 1, session.Connecting(session.Initial()))
	require.NotNil(t, cmd, "entering connecting starts the spinner")

	next, cmd := m.Update(spinTickMsg{})
	m = next.(ConnectModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.frame)

	m, cmd = deliver(m, 2, connected(1))
	assert.Nil(t, cmd)
	next, cmd = m.Update(spinTickMsg{})
	assert.Nil(t, cmd)
	assert.False(t, next.(ConnectModel).spinning)
}

func TestModelView(t *testing.T) {
	m := NewConnectModel(context.Background(), &fakeActions{}, connected(5))
	out := m.View()
	assert.Contains(t, out, "0xABCD...1234")
	assert.Contains(t, out, "Wrong network")
	assert.Contains(t, out, "q quit")
}
