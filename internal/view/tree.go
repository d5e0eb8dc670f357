// Package view turns the item collection into a render tree and draws it.
// The tree is rebuilt from scratch on every change; there is no diffing.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/model"
	"github.com/idilsaglam/smartlist/internal/totals"
)

// CardControls are the controls every card exposes, in display order.
var CardControls = []list.Op{
	list.OpToggle,
	list.OpSetPrice,
	list.OpDecrement,
	list.OpSetQuantity,
	list.OpIncrement,
	list.OpRemove,
}

// Card is one rendered item.
type Card struct {
	ID           string
	Name         string
	Completed    bool
	PriceText    string // raw field value
	QuantityText string
	LineTotal    string // formatted price×quantity
}

// Footer holds the formatted summary values.
type Footer struct {
	Subtotal string
	Discount string
	Total    string
	Count    string // "<completed> of <total>"
	Progress float64
}

// Tree is everything the screen shows for one state.
type Tree struct {
	Empty      bool // placeholder visible; list and footer hidden
	Cards      []Card
	Footer     Footer
	ShowFooter bool
}

// Build derives the render tree. Cards are ordered incomplete first,
// keeping insertion order within each group.
func Build(items []model.Item, t model.Totals) Tree {
	tree := Tree{Footer: footer(t)}
	if len(items) == 0 {
		tree.Empty = true
		return tree
	}
	tree.ShowFooter = true
	for _, it := range Sorted(items) {
		tree.Cards = append(tree.Cards, Card{
			ID:           it.ID,
			Name:         it.Name,
			Completed:    it.Completed,
			PriceText:    FieldValue(it.Price),
			QuantityText: FieldValue(it.Quantity),
			LineTotal:    totals.FormatCurrency(totals.Round2(it.LineTotal())),
		})
	}
	return tree
}

// Sorted returns a copy of items with completed ones moved after the rest.
func Sorted(items []model.Item) []model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b model.Item) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return out
}

func rank(it model.Item) int {
	if it.Completed {
		return 1
	}
	return 0
}

// FieldValue formats a number the way an input field shows it: shortest
// representation, no grouping ("2.5", "0", "3").
func FieldValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func footer(t model.Totals) Footer {
	return Footer{
		Subtotal: totals.FormatCurrency(t.Subtotal),
		Discount: totals.FormatCurrency(t.Discount),
		Total:    totals.FormatCurrency(t.Total),
		Count:    fmt.Sprintf("%d of %d", t.CompletedCount, t.TotalCount),
		Progress: totals.Progress(t),
	}
}
