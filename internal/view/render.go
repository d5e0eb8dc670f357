package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/smartlist/internal/ui"
)

const (
	nameWidth   = 28
	progressLen = 24
)

// EmptyText is the placeholder shown for an empty list.
const EmptyText = "Your list is empty. Add your first item."

// Render draws the tree inside a panel. selected is the highlighted card
// index (-1 for none); status is the live-region text.
func Render(t Tree, selected int, status string) string {
	th := ui.Current()
	lines := []string{th.Title.Render("Shopping list")}

	if t.Empty {
		lines = append(lines, "", th.Muted.Render(EmptyText))
	} else {
		lines = append(lines, "")
		for i, c := range t.Cards {
			lines = append(lines, renderCard(c, i == selected, th))
		}
	}

	if t.ShowFooter {
		lines = append(lines, "")
		lines = append(lines, renderFooter(t.Footer, th)...)
	}
	if status != "" {
		lines = append(lines, "", th.Accent.Render(status))
	}
	return ui.Panel(lines)
}

func renderCard(c Card, selected bool, th ui.Theme) string {
	box := th.Muted.Render(th.BoxUnchecked)
	name := ui.Truncate(c.Name, nameWidth)
	name += strings.Repeat(" ", max(0, nameWidth-lipgloss.Width(name)))
	if c.Completed {
		box = th.Success.Render(th.BoxChecked)
		name = th.Done.Render(name)
	}

	prefix := "  "
	if selected {
		prefix = th.Selected.Render(">") + " "
	}
	return fmt.Sprintf("%s%s %s  $ %-8s %s %3s %s  %10s  %s",
		prefix, box, name,
		c.PriceText,
		th.Muted.Render(th.SymMinus), c.QuantityText, th.Muted.Render(th.SymPlus),
		c.LineTotal,
		th.Error.Render(th.SymRemove),
	)
}

func renderFooter(f Footer, th ui.Theme) []string {
	return []string{
		fmt.Sprintf("%s %s", th.Muted.Render("Subtotal"), f.Subtotal),
		fmt.Sprintf("%s %s", th.Muted.Render("Discount"), f.Discount),
		fmt.Sprintf("%s %s", th.Accent.Render("Total   "), th.Title.Render(f.Total)),
		fmt.Sprintf("%s %s  %s", th.Pending.Render("Items"), f.Count, ui.ProgressBar(f.Progress, progressLen)),
	}
}
