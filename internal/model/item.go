package model

// Item is one line entry of the shopping list.
// JSON field names match the snapshots written by earlier list versions.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Completed bool    `json:"completed"`
}

// LineTotal is price times quantity, unrounded.
func (it Item) LineTotal() float64 { return it.Price * it.Quantity }

// Totals is the footer summary derived from a collection.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
}

// Token grants bypass of the access gate until Exp (epoch milliseconds).
type Token struct {
	Exp int64 `json:"exp"`
}

// Valid reports whether the token is still usable at nowMs.
func (t Token) Valid(nowMs int64) bool { return nowMs < t.Exp }
