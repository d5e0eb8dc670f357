// Package list owns the shopping list state: an ordered item collection
// mirrored to key-value storage after every mutation.
//
// Mutations never fail from the caller's point of view. Bad input is coerced,
// unknown ids are ignored, and storage errors are logged while the in-memory
// collection stays authoritative.
package list

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/smartlist/internal/model"
	"github.com/idilsaglam/smartlist/internal/store"
	"github.com/idilsaglam/smartlist/internal/totals"
)

// Store is the single owner of the item collection.
type Store struct {
	mu        sync.Mutex
	kv        store.KV
	log       *zap.Logger
	ids       IDGenerator
	rule      totals.Rule
	items     []model.Item
	discount  float64
	observers []func(Event)
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithRule selects the subtotal rule used by Totals.
func WithRule(r totals.Rule) Option {
	return func(s *Store) { s.rule = r }
}

// New returns an empty store persisting through kv. Call Load to read the
// saved snapshot.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		log:   zap.NewNop(),
		ids:   TimestampIDs{},
		items: []model.Item{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory state with the stored snapshot. Malformed
// data is discarded and its key cleared.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.loadItemsLocked()
	s.discount = s.loadDiscountLocked()
}

func (s *Store) loadItemsLocked() []model.Item {
	raw, ok, err := s.kv.Get(store.KeyProducts)
	if err != nil {
		s.log.Warn("read stored items", zap.Error(err))
		return []model.Item{}
	}
	if !ok {
		return []model.Item{}
	}
	var items []model.Item
	if !isJSONArray(raw) {
		s.discardLocked(store.KeyProducts, "stored items are not an array")
		return []model.Item{}
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("decode stored items", zap.Error(err))
		s.discardLocked(store.KeyProducts, "stored items are malformed")
		return []model.Item{}
	}
	if items == nil {
		items = []model.Item{}
	}
	return items
}

func (s *Store) loadDiscountLocked() float64 {
	raw, ok, err := s.kv.Get(store.KeyDiscount)
	if err != nil {
		s.log.Warn("read stored discount", zap.Error(err))
		return 0
	}
	if !ok {
		return 0
	}
	var pct float64
	if err := json.Unmarshal([]byte(raw), &pct); err != nil {
		s.discardLocked(store.KeyDiscount, "stored discount is malformed")
		return 0
	}
	return totals.ClampPercent(pct)
}

func (s *Store) discardLocked(key, reason string) {
	s.log.Warn("resetting corrupted storage entry", zap.String("key", key), zap.String("reason", reason))
	if err := s.kv.Remove(key); err != nil {
		s.log.Warn("clear storage entry", zap.String("key", key), zap.Error(err))
	}
}

func isJSONArray(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "[")
}

// Subscribe registers fn to run after every effective mutation.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Item looks up one item by id.
func (s *Store) Item(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Discount is the current discount percent.
func (s *Store) Discount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discount
}

// Totals computes the footer summary for the current state.
func (s *Store) Totals() model.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totals.Compute(s.items, s.discount, s.rule)
}

// Snapshot decodes what is currently persisted under the items key.
func (s *Store) Snapshot() ([]model.Item, error) {
	raw, ok, err := s.kv.Get(store.KeyProducts)
	if err != nil || !ok {
		return []model.Item{}, err
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Dispatch routes an action to its operation and reports whether the state
// changed.
func (s *Store) Dispatch(a Action) bool {
	switch a.Op {
	case OpAdd:
		_, ok := s.Add(a.Value)
		return ok
	case OpRemove:
		return s.Remove(a.ID)
	case OpSetPrice:
		return s.SetPrice(a.ID, a.Value)
	case OpSetQuantity:
		return s.SetQuantity(a.ID, a.Value)
	case OpIncrement:
		return s.Increment(a.ID)
	case OpDecrement:
		return s.Decrement(a.ID)
	case OpToggle:
		return s.ToggleCompleted(a.ID)
	case OpSetDiscount:
		s.SetDiscount(a.Value)
		return true
	}
	s.log.Debug("ignoring unknown action", zap.Int("op", int(a.Op)))
	return false
}

// Add appends a new item named name (trimmed). Blank names are ignored.
func (s *Store) Add(name string) (model.Item, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Item{}, false
	}

	s.mu.Lock()
	it := model.Item{ID: s.ids.NewID(), Name: name}
	next := make([]model.Item, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, it)
	ev := s.commitLocked(OpAdd, it, next)
	s.mu.Unlock()

	s.notify(ev)
	return it, true
}

// Remove drops every item with id. Timestamp ids can collide, and
// colliding items go together.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.items[i]
	next := make([]model.Item, 0, len(s.items)-1)
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	ev := s.commitLocked(OpRemove, removed, next)
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// SetPrice parses raw permissively; negative or non-numeric input becomes 0.
func (s *Store) SetPrice(id, raw string) bool {
	price := ParsePrice(raw)
	return s.update(OpSetPrice, id, func(it *model.Item) { it.Price = price })
}

// SetQuantity parses raw into a whole number floored at 0.
func (s *Store) SetQuantity(id, raw string) bool {
	qty := ParseQuantity(raw)
	return s.update(OpSetQuantity, id, func(it *model.Item) { it.Quantity = qty })
}

func (s *Store) Increment(id string) bool {
	return s.update(OpIncrement, id, func(it *model.Item) { it.Quantity++ })
}

// Decrement lowers the quantity by one, never below zero.
func (s *Store) Decrement(id string) bool {
	return s.update(OpDecrement, id, func(it *model.Item) {
		it.Quantity = max(0, it.Quantity-1)
	})
}

func (s *Store) ToggleCompleted(id string) bool {
	return s.update(OpToggle, id, func(it *model.Item) { it.Completed = !it.Completed })
}

// SetDiscount stores the discount percent parsed from raw, clamped to [0, 100].
func (s *Store) SetDiscount(raw string) {
	pct := totals.ClampPercent(ParseNumber(raw))

	s.mu.Lock()
	s.discount = pct
	if err := s.kv.Set(store.KeyDiscount, strconv.FormatFloat(pct, 'f', -1, 64)); err != nil {
		s.log.Warn("persist discount", zap.Error(err))
	}
	ev := s.eventLocked(OpSetDiscount, model.Item{})
	s.mu.Unlock()

	s.notify(ev)
}

// update maps the collection into a new one with fn applied to every item
// with id.
func (s *Store) update(op Op, id string, fn func(*model.Item)) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Clone(s.items)
	for j := range next {
		if next[j].ID == id {
			fn(&next[j])
		}
	}
	ev := s.commitLocked(op, next[i], next)
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// commitLocked swaps in next, writes the full snapshot and builds the event.
func (s *Store) commitLocked(op Op, it model.Item, next []model.Item) Event {
	s.items = next
	s.persistLocked()
	return s.eventLocked(op, it)
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("encode items", zap.Error(err))
		return
	}
	if err := s.kv.Set(store.KeyProducts, string(b)); err != nil {
		s.log.Warn("persist items", zap.Error(err), zap.Int("count", len(s.items)))
	}
}

func (s *Store) eventLocked(op Op, it model.Item) Event {
	return Event{
		Op:     op,
		ID:     it.ID,
		Item:   it,
		Items:  slices.Clone(s.items),
		Totals: totals.Compute(s.items, s.discount, s.rule),
	}
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	obs := slices.Clone(s.observers)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(ev)
	}
}
