package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Add      key.Binding
	Price    key.Binding
	Qty      key.Binding
	Discount key.Binding
	Remove   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "qty+1")),
		Dec:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "qty-1")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Price:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "price")),
		Qty:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "qty")),
		Discount: key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "discount")),
		Remove:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Price, k.Inc, k.Dec, k.Remove, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.Price, k.Qty, k.Inc, k.Dec},
		{k.Discount, k.Remove, k.Help, k.Quit},
	}
}
