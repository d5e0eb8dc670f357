// Package totals derives the footer summary (subtotal, discount, total and
// completion counts) from an item collection. Everything here is pure.
package totals

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/smartlist/internal/model"
)

// Rule selects which items contribute to the subtotal.
type Rule int

const (
	// AllItems sums price×quantity over every item.
	AllItems Rule = iota
	// CompletedOnly sums only items marked completed.
	CompletedOnly
)

func (r Rule) String() string {
	if r == CompletedOnly {
		return "completed"
	}
	return "all"
}

// ParseRule maps a config value to a Rule. Unknown values fall back to AllItems.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllItems, nil
	case "completed":
		return CompletedOnly, nil
	}
	return AllItems, fmt.Errorf("unknown subtotal rule %q (want all|completed)", s)
}

// Compute returns the totals for items at the given discount percent.
// The percent is clamped to [0, 100].
func Compute(items []model.Item, discountPercent float64, rule Rule) model.Totals {
	var sum float64
	completed := 0
	for _, it := range items {
		if it.Completed {
			completed++
		}
		if rule == CompletedOnly && !it.Completed {
			continue
		}
		sum += it.LineTotal()
	}

	pct := ClampPercent(discountPercent)
	subtotal := Round2(sum)
	discount := Round2(subtotal * pct / 100)
	return model.Totals{
		Subtotal:       subtotal,
		Discount:       discount,
		Total:          Round2(subtotal - discount),
		CompletedCount: completed,
		TotalCount:     len(items),
	}
}

// ClampPercent limits p to [0, 100]; NaN becomes 0.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Round2 rounds half-up on the cent value. The epsilon absorbs binary
// representation error so 1.005 rounds to 1.01.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	r := math.Floor(x*100+0.5+1e-9) / 100
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// Progress is the completed share in percent, 0 for an empty list.
func Progress(t model.Totals) float64 {
	if t.TotalCount == 0 {
		return 0
	}
	return float64(t.CompletedCount) / float64(t.TotalCount) * 100
}

// FormatCurrency renders x as "$1.234,56": dot-grouped integer part and a
// comma before exactly two decimals.
func FormatCurrency(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	cents := int64(math.Round(x * 100))
	if cents == 0 {
		sign = ""
	}
	whole := strings.ReplaceAll(humanize.Comma(cents/100), ",", ".")
	return fmt.Sprintf("%s$%s,%02d", sign, whole, cents%100)
}
