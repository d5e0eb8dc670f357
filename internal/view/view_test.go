package view

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idilsaglam/smartlist/internal/list"
	"github.com/idilsaglam/smartlist/internal/model"
	"github.com/idilsaglam/smartlist/internal/store/memstore"
	"github.com/idilsaglam/smartlist/internal/totals"
	"github.com/idilsaglam/smartlist/internal/ui"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return string(rune('a' + g.n - 1))
}

func TestBuild_Empty(t *testing.T) {
	tree := Build(nil, model.Totals{})

	want := Tree{
		Empty: true,
		Footer: Footer{
			Subtotal: "$0,00",
			Discount: "$0,00",
			Total:    "$0,00",
			Count:    "0 of 0",
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("Build(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_CardsAndFooter(t *testing.T) {
	items := []model.Item{
		{ID: "1", Name: "Milk", Price: 2.5, Quantity: 3},
		{ID: "2", Name: "Rice", Price: 1234.5, Quantity: 1, Completed: true},
	}
	tree := Build(items, totals.Compute(items, 10, totals.AllItems))

	want := Tree{
		Cards: []Card{
			{ID: "1", Name: "Milk", PriceText: "2.5", QuantityText: "3", LineTotal: "$7,50"},
			{ID: "2", Name: "Rice", Completed: true, PriceText: "1234.5", QuantityText: "1", LineTotal: "$1.234,50"},
		},
		Footer: Footer{
			Subtotal: "$1.242,00",
			Discount: "$124,20",
			Total:    "$1.117,80",
			Count:    "1 of 2",
			Progress: 50,
		},
		ShowFooter: true,
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestSorted_StableCompletedLast(t *testing.T) {
	items := []model.Item{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Completed: true},
		{ID: "4"},
	}
	var ids []string
	for _, it := range Sorted(items) {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids)
	assert.Equal(t, "1", items[0].ID, "input untouched")
}

func TestToggleMovesCardToEnd(t *testing.T) {
	s := list.New(memstore.New(), list.WithIDGenerator(&seqIDs{}))
	s.Load()
	s.Add("Milk")
	s.Add("Eggs")
	s.Add("Bread")
	s.SetPrice("a", "2.5")
	s.SetQuantity("a", "3")

	before, _ := s.Item("a")
	s.ToggleCompleted("a")

	tree := Build(s.Items(), s.Totals())
	require.Len(t, tree.Cards, 3)
	last := tree.Cards[2]
	assert.Equal(t, "a", last.ID)
	assert.True(t, last.Completed)
	assert.Equal(t, "Milk", last.Name)
	assert.Equal(t, "2.5", last.PriceText)
	assert.Equal(t, "3", last.QuantityText)
	assert.Equal(t, []string{"b", "c"}, []string{tree.Cards[0].ID, tree.Cards[1].ID})

	after, _ := s.Item("a")
	after.Completed = before.Completed
	assert.Equal(t, before, after)
}

func TestRender(t *testing.T) {
	ui.SetTheme("mono")
	defer ui.SetTheme("classic")

	out := Render(Build(nil, model.Totals{}), -1, "")
	assert.Contains(t, out, EmptyText)
	assert.NotContains(t, out, "Subtotal")

	items := []model.Item{
		{ID: "1", Name: "Milk", Price: 2.5, Quantity: 3},
		{ID: "2", Name: "Eggs", Completed: true},
	}
	out = Render(Build(items, totals.Compute(items, 0, totals.AllItems)), 0, "Item added")
	assert.NotContains(t, out, EmptyText)
	assert.Contains(t, out, "> [ ] Milk")
	assert.Contains(t, out, "[x] Eggs")
	assert.Contains(t, out, "$7,50")
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "Discount")
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "Item added")
	assert.Less(t, strings.Index(out, "Milk"), strings.Index(out, "Eggs"))
}

func TestLiveRegion_SelfClears(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewLiveRegion(20 * time.Millisecond)
	r.Announce("Item added")
	assert.Equal(t, "Item added", r.Text())

	require.Eventually(t, func() bool { return r.Text() == "" }, time.Second, 5*time.Millisecond)

	r.Announce("")
	assert.Equal(t, "", r.Text())
}

func TestLiveRegion_NewerMessageSurvivesOlderTimer(t *testing.T) {
	r := NewLiveRegion(200 * time.Millisecond)
	r.Announce("Item added")
	time.Sleep(100 * time.Millisecond)
	r.Announce("Item removed")
	time.Sleep(150 * time.Millisecond)

	// first timer fired, second has not
	assert.Equal(t, "Item removed", r.Text())
	require.Eventually(t, func() bool { return r.Text() == "" }, time.Second, 5*time.Millisecond)
}

func TestLiveRegion_DefaultDelay(t *testing.T) {
	assert.Equal(t, AnnounceDelay, NewLiveRegion(0).Delay())
}

func TestAnnouncement(t *testing.T) {
	assert.Equal(t, "Item added", Announcement(list.Event{Op: list.OpAdd}))
	assert.Equal(t, "Item removed", Announcement(list.Event{Op: list.OpRemove}))
	assert.Equal(t, "Marked item complete", Announcement(list.Event{Op: list.OpToggle, Item: model.Item{Completed: true}}))
	assert.Equal(t, "Marked item incomplete", Announcement(list.Event{Op: list.OpToggle}))
	assert.Equal(t, "", Announcement(list.Event{Op: list.OpSetPrice}))
}
