// Package tui is the interactive terminal front end. Key presses become
// list actions; every state change rebuilds the render tree from scratch.
package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/ui"
	"github.com/idilsaglam/smartlist/internal/view"
)

// inputMode is the field the inline text input is editing, if any.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modePrice
	modeQuantity
	modeDiscount
)

var modeOps = map[inputMode]list.Op{
	modeAdd:      list.OpAdd,
	modePrice:    list.OpSetPrice,
	modeQuantity: list.OpSetQuantity,
	modeDiscount: list.OpSetDiscount,
}

var modeTitles = map[inputMode]string{
	modeAdd:      "Add new item",
	modePrice:    "Price ($)",
	modeQuantity: "Quantity",
	modeDiscount: "Discount (%)",
}

// refreshMsg asks for a redraw once an announcement has cleared.
type refreshMsg struct{}

// Model is the Bubble Tea model over a list store.
type Model struct {
	store    *list.Store
	live     *view.LiveRegion
	tree     view.Tree
	selected int
	mode     inputMode
	targetID string
	input    textinput.Model
	keys     keyMap
	help     help.Model
}

// New builds the model and subscribes its live region to store events.
func New(s *list.Store, live *view.LiveRegion) Model {
	if live == nil {
		live = view.NewLiveRegion(0)
	}
	s.Subscribe(func(ev list.Event) { live.Announce(view.Announcement(ev)) })

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store: s,
		live:  live,
		input: ti,
		keys:  defaultKeys(),
		help:  help.New(),
	}
	m.rebuild("")
	return m
}

// Run starts the program on the alternate screen.
func Run(s *list.Store) error {
	_, err := tea.NewProgram(New(s, nil), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.tree.Cards)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.openInput(modeAdd, "", "", "New item name...")
	case key.Matches(msg, m.keys.Discount):
		return m.openInput(modeDiscount, "", view.FieldValue(m.store.Discount()), "0-100")
	}

	card, ok := m.current()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(list.Action{Op: list.OpToggle, ID: card.ID})
	case key.Matches(msg, m.keys.Inc):
		return m.dispatch(list.Action{Op: list.OpIncrement, ID: card.ID})
	case key.Matches(msg, m.keys.Dec):
		return m.dispatch(list.Action{Op: list.OpDecrement, ID: card.ID})
	case key.Matches(msg, m.keys.Remove):
		return m.dispatch(list.Action{Op: list.OpRemove, ID: card.ID})
	case key.Matches(msg, m.keys.Price):
		// A zero price opens as an empty field.
		v := card.PriceText
		if v == "0" {
			v = ""
		}
		return m.openInput(modePrice, card.ID, v, "0.00")
	case key.Matches(msg, m.keys.Qty):
		return m.openInput(modeQuantity, card.ID, card.QuantityText, "0")
	}
	return m, nil
}

func (m Model) openInput(mode inputMode, id, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.targetID = id
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) closeInput() Model {
	m.mode = modeBrowse
	m.targetID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a := list.Action{Op: modeOps[m.mode], ID: m.targetID, Value: m.input.Value()}
		m = m.closeInput()
		return m.dispatch(a)
	case "esc":
		return m.closeInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch applies a through the store, rebuilds the tree and schedules a
// redraw for when the announcement clears.
func (m Model) dispatch(a list.Action) (tea.Model, tea.Cmd) {
	if !m.store.Dispatch(a) {
		return m, nil
	}
	follow := a.ID
	if a.Op == list.OpAdd {
		follow = lastID(m.store)
	}
	m.rebuild(follow)
	if m.live.Text() == "" {
		return m, nil
	}
	return m, tea.Tick(m.live.Delay()+10*time.Millisecond, func(time.Time) tea.Msg { return refreshMsg{} })
}

// rebuild recomputes the tree and keeps the selection on follow when it
// still exists.
func (m *Model) rebuild(follow string) {
	m.tree = view.Build(m.store.Items(), m.store.Totals())
	if follow != "" {
		if i := slices.IndexFunc(m.tree.Cards, func(c view.Card) bool { return c.ID == follow }); i >= 0 {
			m.selected = i
		}
	}
	m.selected = min(m.selected, len(m.tree.Cards)-1)
	m.selected = max(m.selected, 0)
}

func lastID(s *list.Store) string {
	items := s.Items()
	if len(items) == 0 {
		return ""
	}
	return items[len(items)-1].ID
}

func (m Model) current() (view.Card, bool) {
	if m.selected < 0 || m.selected >= len(m.tree.Cards) {
		return view.Card{}, false
	}
	return m.tree.Cards[m.selected], true
}

func (m Model) View() string {
	selected := m.selected
	if m.tree.Empty {
		selected = -1
	}
	content := view.Render(m.tree, selected, m.live.Text())
	if m.mode != modeBrowse {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(modeTitles[m.mode]+"\n"+m.input.View())
	}
	return content + "\n" + ui.Current().Muted.Render(m.help.View(m.keys))
}
