package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/smartlist/internal/model"
	"github.com/idilsaglam/smartlist/internal/totals"
	"github.com/idilsaglam/smartlist/internal/ui"
	"github.com/idilsaglam/smartlist/internal/view"
)

type listOutput struct {
	Items           []model.Item `json:"items"`
	DiscountPercent float64      `json:"discount_percent"`
	Totals          model.Totals `json:"totals"`
}

func (a *app) newListCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items, completed last, with totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := view.Sorted(a.list.Items())
			t := a.list.Totals()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), listOutput{Items: items, DiscountPercent: a.list.Discount(), Totals: t})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(view.Build(items, t), group)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print subtotal, discount and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := a.list.Totals()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), t)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "subtotal  %s\n", totals.FormatCurrency(t.Subtotal))
			fmt.Fprintf(w, "discount  %s (%s%%)\n", totals.FormatCurrency(t.Discount), view.FieldValue(a.list.Discount()))
			fmt.Fprintf(w, "total     %s\n", totals.FormatCurrency(t.Total))
			fmt.Fprintf(w, "items     %d of %d done\n", t.CompletedCount, t.TotalCount)
			if a.cfg.SubtotalRule == totals.CompletedOnly {
				fmt.Fprintln(w, ui.Current().Muted.Render("(subtotal counts completed items only)"))
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// -------------- rendering helpers --------------

func listLines(tree view.Tree, group bool) []string {
	th := ui.Current()
	f := tree.Footer
	lines := []string{
		fmt.Sprintf("%s  %s %s", th.Title.Render("Shopping list"), th.Success.Render("✔"), f.Count),
		th.Muted.Render(ui.ProgressBar(f.Progress, 28)),
		"",
	}
	if tree.Empty {
		lines = append(lines, th.Muted.Render(view.EmptyText))
	} else if group {
		lines = append(lines, groupLines(tree.Cards)...)
	} else {
		lines = append(lines, cardLines(tree.Cards, 0)...)
	}
	if tree.ShowFooter {
		lines = append(lines, "",
			fmt.Sprintf("%s %s", th.Muted.Render("Subtotal"), f.Subtotal),
			fmt.Sprintf("%s %s", th.Muted.Render("Discount"), f.Discount),
			fmt.Sprintf("%s %s", th.Accent.Render("Total   "), th.Title.Render(f.Total)),
		)
	}
	lines = append(lines, "", th.Muted.Render("Tip: add with `smartlist add \"Milk\"`"))
	return lines
}

// cardLines numbers cards from offset+1; numbers are valid <ref> arguments.
func cardLines(cards []view.Card, offset int) []string {
	th := ui.Current()
	out := make([]string, 0, len(cards))
	for i, c := range cards {
		box, name := th.Muted.Render(th.BoxUnchecked), ui.Truncate(c.Name, 40)
		if c.Completed {
			box, name = th.Success.Render(th.BoxChecked), th.Done.Render(name)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s  %s %s",
			th.Muted.Render(fmt.Sprintf("%2d.", offset+i+1)), box, name,
			th.Muted.Render(fmt.Sprintf("$%s × %s", c.PriceText, c.QuantityText)),
			c.LineTotal,
			th.Muted.Render("["+c.ID+"]"),
		))
	}
	return out
}

func groupLines(cards []view.Card) []string {
	th := ui.Current()
	var pend, done []view.Card
	for _, c := range cards {
		if c.Completed {
			done = append(done, c)
		} else {
			pend = append(pend, c)
		}
	}
	lines := []string{th.Accent.Render("Pending")}
	if len(pend) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, cardLines(pend, 0)...)
	}
	lines = append(lines, "", th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, cardLines(done, len(pend))...)
	}
	return lines
}
