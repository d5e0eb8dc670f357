package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/smartlist/internal/gate"
	"github.com/idilsaglam/smartlist/internal/ui"
)

const incorrectPasswordText = "Incorrect password. Try again."

// GateModel is the blocking password overlay shown for a locked session.
type GateModel struct {
	session   *gate.Session
	input     textinput.Model
	failed    bool
	cancelled bool
}

// NewGate returns the overlay for session.
func NewGate(session *gate.Session) GateModel {
	ti := textinput.New()
	ti.Placeholder = "Password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return GateModel{session: session, input: ti}
}

// RunGate shows the overlay until the session unlocks or the user gives up.
// It returns immediately for sessions that are already unlocked.
func RunGate(session *gate.Session) (gate.State, error) {
	if session.State() == gate.Unlocked {
		return gate.Unlocked, nil
	}
	if _, err := tea.NewProgram(NewGate(session), tea.WithAltScreen()).Run(); err != nil {
		return session.State(), err
	}
	return session.State(), nil
}

func (m GateModel) Init() tea.Cmd { return textinput.Blink }

func (m GateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if err := m.session.Submit(m.input.Value()); err != nil {
				m.failed = true
				return m, nil
			}
			m.failed = false
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
		m.failed = false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m GateModel) View() string {
	t := ui.Current()
	lines := []string{
		t.Title.Render("This page is protected"),
		t.Muted.Render("Enter the password to continue."),
		"",
		m.input.View(),
	}
	if m.failed {
		lines = append(lines, t.Error.Render(incorrectPasswordText))
	}
	lines = append(lines, "", t.Muted.Render("enter unlock • esc cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(ui.Panel(lines))
}

// Unlocked reports whether the overlay ended with an unlocked session.
func (m GateModel) Unlocked() bool { return m.session.State() == gate.Unlocked }

// Cancelled reports whether the user dismissed the overlay.
func (m GateModel) Cancelled() bool { return m.cancelled }
