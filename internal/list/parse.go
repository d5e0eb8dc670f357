package list

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber reads the longest numeric prefix of raw the way a browser
// number field does ("3abc" is 3, " .5" is 0.5). Anything without a usable
// prefix, and NaN or infinities, yields 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParsePrice parses a price field; negatives clamp to 0.
func ParsePrice(raw string) float64 {
	return math.Max(0, ParseNumber(raw))
}

// ParseQuantity parses a quantity field into a whole number, floored at 0.
func ParseQuantity(raw string) float64 {
	q := ParseNumber(raw)
	if q <= 0 {
		return 0
	}
	return math.Trunc(q)
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if digits > 0 || j > i+1 {
			digits += j - i - 1
			i = j
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
