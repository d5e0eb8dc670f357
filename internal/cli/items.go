package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/ui"
	"github.com/idilsaglam/smartlist/internal/view"
)

// resolveRef maps an item id or a 1-based index into the displayed
// (completed-last) order to an item id.
func (a *app) resolveRef(ref string) (string, error) {
	items := view.Sorted(a.list.Items())
	for _, it := range items {
		if it.ID == ref {
			return it.ID, nil
		}
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", usagef("no item with id %q", ref)
	}
	if n < 1 || n > len(items) {
		return "", usagef("index out of range: have %d, got %d (run `smartlist ls`)", len(items), n)
	}
	return items[n-1].ID, nil
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a new item (name can be multiple words)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: smartlist add <name...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			it, ok := a.list.Add(strings.Join(args, " "))
			if !ok {
				return usagef("add: empty name")
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %q (id %s)", it.Name, it.ID))
			return nil
		},
	}
}

// numericArgs stops flag parsing at the first positional argument so a
// negative value after <ref> stays an argument. A leading negative value
// still needs "--".
func numericArgs(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) newPriceCmd() *cobra.Command {
	return numericArgs(&cobra.Command{
		Use:   "price <ref> <value>",
		Short: "Set an item's unit price (invalid or negative input becomes 0)",
		Args:  exactArgs(2, "price <ref> <value>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, list.Action{Op: list.OpSetPrice, Value: args[1]}, args[0], "price set")
		},
	})
}

func (a *app) newQtyCmd() *cobra.Command {
	return numericArgs(&cobra.Command{
		Use:   "qty <ref> <value>",
		Short: "Set an item's quantity (whole number, invalid or negative input becomes 0)",
		Args:  exactArgs(2, "qty <ref> <value>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, list.Action{Op: list.OpSetQuantity, Value: args[1]}, args[0], "quantity set")
		},
	})
}

func (a *app) newStepCmd(name string, op list.Op, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <ref>",
		Short: short,
		Args:  exactArgs(1, name+" <ref>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, list.Action{Op: op}, args[0], "quantity updated")
		},
	}
}

func (a *app) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle completion of an item",
		Args:  exactArgs(1, "done <ref>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, list.Action{Op: list.OpToggle}, args[0], "toggled")
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    exactArgs(1, "rm <ref>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, list.Action{Op: list.OpRemove}, args[0], "removed")
		},
	}
}

func (a *app) newDiscountCmd() *cobra.Command {
	return numericArgs(&cobra.Command{
		Use:     "discount <percent>",
		Example: "  smartlist discount 10\n  smartlist discount -- -5",
		Short:   "Set the discount percent applied to the subtotal (0-100)",
		Args:    exactArgs(1, "discount <percent>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.list.Dispatch(list.Action{Op: list.OpSetDiscount, Value: args[0]})
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("discount %s%%", view.FieldValue(a.list.Discount())))
			return nil
		},
	})
}

// apply resolves ref and dispatches act against it.
func (a *app) apply(cmd *cobra.Command, act list.Action, ref, done string) error {
	id, err := a.resolveRef(ref)
	if err != nil {
		return err
	}
	act.ID = id
	a.list.Dispatch(act)
	ui.OK(cmd.OutOrStdout(), done)
	return nil
}
