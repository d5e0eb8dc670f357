package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/smartlist/internal/gate"
	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/store/memstore"
	"github.com/idilsaglam/smartlist/internal/view"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprint(g.n)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func newModel(t *testing.T) (Model, *list.Store) {
	t.Helper()
	s := list.New(memstore.New(), list.WithIDGenerator(&seqIDs{}))
	s.Load()
	return New(s, view.NewLiveRegion(time.Hour)), s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func addItem(t *testing.T, m Model, name string) Model {
	t.Helper()
	m = send(t, m, runes("a"))
	m = send(t, m, typeText(name)...)
	return send(t, m, enter)
}

func TestModel_StartsEmpty(t *testing.T) {
	m, _ := newModel(t)
	assert.True(t, m.tree.Empty)
	assert.Contains(t, m.View(), view.EmptyText)
}

func TestModel_AddItem(t *testing.T) {
	m, s := newModel(t)
	m = addItem(t, m, "Milk")

	require.Len(t, s.Items(), 1)
	assert.Equal(t, "Milk", s.Items()[0].Name)
	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.tree.Empty)
	assert.Equal(t, "Item added", m.live.Text())
	assert.Contains(t, m.View(), "Item added")
}

func TestModel_AddBlankIsIgnored(t *testing.T) {
	m, s := newModel(t)
	m = send(t, m, runes("a"), runes(" "), enter)
	assert.Empty(t, s.Items())
	assert.Equal(t, modeBrowse, m.mode)
}

func TestModel_EscCancelsInput(t *testing.T) {
	m, s := newModel(t)
	m = send(t, m, runes("a"), runes("x"), esc)
	assert.Empty(t, s.Items())
	assert.Equal(t, modeBrowse, m.mode)
}

func TestModel_PriceQuantityAndTotals(t *testing.T) {
	m, s := newModel(t)
	m = addItem(t, m, "Milk")

	// zero price opens as an empty field
	m = send(t, m, runes("p"))
	assert.Equal(t, "", m.input.Value())
	m = send(t, m, typeText("2.5")...)
	m = send(t, m, enter)

	m = send(t, m, runes("n"))
	assert.Equal(t, "0", m.input.Value())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, typeText("3")...)
	m = send(t, m, enter)

	it, _ := s.Item("1")
	assert.Equal(t, 2.5, it.Price)
	assert.Equal(t, 3.0, it.Quantity)
	assert.Equal(t, "$7,50", m.tree.Footer.Subtotal)

	m = send(t, m, runes("%"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, typeText("10")...)
	m = send(t, m, enter)
	assert.Equal(t, "$0,75", m.tree.Footer.Discount)
	assert.Equal(t, "$6,75", m.tree.Footer.Total)
}

func TestModel_StepperAndRemove(t *testing.T) {
	m, s := newModel(t)
	m = addItem(t, m, "Eggs")

	m = send(t, m, runes("+"), runes("+"), runes("-"))
	it, _ := s.Item("1")
	assert.Equal(t, 1.0, it.Quantity)

	m = send(t, m, runes("d"))
	assert.Empty(t, s.Items())
	assert.True(t, m.tree.Empty)
	assert.Equal(t, "Item removed", m.live.Text())

	// keys targeting a card do nothing on an empty list
	m = send(t, m, space, runes("+"), runes("p"))
	assert.Equal(t, modeBrowse, m.mode)
}

func TestModel_ToggleFollowsItemToEnd(t *testing.T) {
	m, _ := newModel(t)
	m = addItem(t, m, "Milk")
	m = addItem(t, m, "Eggs")
	m = addItem(t, m, "Bread")

	m = send(t, m, runes("k"), runes("k"))
	require.Equal(t, 0, m.selected)
	require.Equal(t, "Milk", m.tree.Cards[0].Name)

	m = send(t, m, space)
	assert.Equal(t, "Marked item complete", m.live.Text())
	assert.Equal(t, "Milk", m.tree.Cards[2].Name)
	assert.True(t, m.tree.Cards[2].Completed)
	assert.Equal(t, 2, m.selected, "selection follows the toggled item")
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newModel(t)
	m = addItem(t, m, "A")
	m = addItem(t, m, "B")
	assert.Equal(t, 1, m.selected)

	m = send(t, m, runes("j"))
	assert.Equal(t, 1, m.selected, "stays on last card")
	m = send(t, m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.selected)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newModel(t)
	assert.False(t, m.help.ShowAll)
	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "discount")
	m = send(t, m, runes("?"))
	assert.False(t, m.help.ShowAll)
}

func TestModel_AnnouncementSchedulesRefresh(t *testing.T) {
	m, _ := newModel(t)
	m = send(t, m, runes("a"), runes("x"))
	_, cmd := m.Update(enter)
	assert.NotNil(t, cmd, "announcement should schedule a redraw")
}

func newGateSession(t *testing.T) *gate.Session {
	t.Helper()
	g := gate.New(gate.Config{ProtectedPaths: []string{"/secret"}, Password: "pw"}, memstore.New())
	s := g.Open("/secret")
	require.Equal(t, gate.Locked, s.State())
	return s
}

func sendGate(t *testing.T, m GateModel, msgs ...tea.Msg) (GateModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(GateModel)
		require.True(t, ok)
	}
	return m, cmd
}

func TestGateModel_WrongThenRight(t *testing.T) {
	m := NewGate(newGateSession(t))

	m, _ = sendGate(t, m, runes("z"), runes("q"), enter)
	assert.True(t, m.failed)
	assert.False(t, m.Unlocked())
	assert.Contains(t, m.View(), incorrectPasswordText)
	assert.NotContains(t, m.View(), "zq", "password is masked")

	// typing clears the error
	m, _ = sendGate(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.failed)

	m, _ = sendGate(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, runes("p"), runes("w"))
	m, cmd := sendGate(t, m, enter)
	assert.True(t, m.Unlocked())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGateModel_Cancel(t *testing.T) {
	m := NewGate(newGateSession(t))
	m, cmd := sendGate(t, m, esc)
	assert.True(t, m.Cancelled())
	assert.False(t, m.Unlocked())
	require.NotNil(t, cmd)
}

func TestRunGate_AlreadyUnlocked(t *testing.T) {
	g := gate.New(gate.Config{ProtectedPaths: []string{"/secret"}}, memstore.New())
	state, err := RunGate(g.Open("/public"))
	require.NoError(t, err)
	assert.Equal(t, gate.Unlocked, state)
}
