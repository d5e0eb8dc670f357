package list

import (
	"github.com/idilsaglam/smartlist/internal/model"
)

// Op names a list mutation.
type Op int

const (
	OpAdd Op = iota + 1
	OpRemove
	OpSetPrice
	OpSetQuantity
	OpIncrement
	OpDecrement
	OpToggle
	OpSetDiscount
)

var opNames = map[Op]string{
	OpAdd:         "add",
	OpRemove:      "remove",
	OpSetPrice:    "set-price",
	OpSetQuantity: "set-quantity",
	OpIncrement:   "increment",
	OpDecrement:   "decrement",
	OpToggle:      "toggle",
	OpSetDiscount: "set-discount",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "unknown"
}

// Action is one user intent. ID targets an item; Value carries the raw
// input (the name for OpAdd, the field text for setters).
type Action struct {
	Op    Op
	ID    string
	Value string
}

// Event is delivered to observers after a mutation took effect.
type Event struct {
	Op     Op
	ID     string
	Item   model.Item // the item after the change (before, for OpRemove)
	Items  []model.Item
	Totals model.Totals
}
