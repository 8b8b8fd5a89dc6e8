// Package money formats amounts in the storefront's display currency.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unavailable is returned when an amount cannot be parsed as a number.
const Unavailable = "Price Unavailable"

// Prices are shown in INR with en-IN digit grouping (lakh/crore).
const symbol = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders amount as a localized currency string with exactly two
// fraction digits. It accepts numeric values, json.Number, and
// string-encoded numbers; anything unparsable yields Unavailable.
// Format never panics.
func Format(amount any) string {
	v, ok := parse(amount)
	if !ok {
		return Unavailable
	}
	return printer.Sprintf("%s%v", symbol,
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// parse coerces amount to a finite float64.
func parse(amount any) (float64, bool) {
	switch v := amount.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return parse(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return parseString(v.String())
	case string:
		return parseString(v)
	default:
		return 0, false
	}
}

func parseString(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return parse(f)
}
