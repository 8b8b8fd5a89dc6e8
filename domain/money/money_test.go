package money

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   any
		expected string
	}{
		{
			name:     "integer amount",
			amount:   10,
			expected: "₹10.00",
		},
		{
			name:     "float amount",
			amount:   249.5,
			expected: "₹249.50",
		},
		{
			name:     "string-encoded amount",
			amount:   "1499.99",
			expected: "₹1,499.99",
		},
		{
			name:     "lakh grouping",
			amount:   1234567.89,
			expected: "₹12,34,567.89",
		},
		{
			name:     "json number",
			amount:   json.Number("42"),
			expected: "₹42.00",
		},
		{
			name:     "zero",
			amount:   0,
			expected: "₹0.00",
		},
		{
			name:     "unparsable string",
			amount:   "abc",
			expected: Unavailable,
		},
		{
			name:     "empty string",
			amount:   "",
			expected: Unavailable,
		},
		{
			name:     "nil",
			amount:   nil,
			expected: Unavailable,
		},
		{
			name:     "NaN",
			amount:   math.NaN(),
			expected: Unavailable,
		},
		{
			name:     "positive infinity",
			amount:   math.Inf(1),
			expected: Unavailable,
		},
		{
			name:     "unsupported type",
			amount:   struct{}{},
			expected: Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.amount)
			if got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormatAlwaysTwoFractionDigits(t *testing.T) {
	for _, amount := range []float64{1, 99.9, 1000, 0.001} {
		got := Format(amount)
		dot := strings.LastIndex(got, ".")
		if dot == -1 {
			t.Fatalf("Format(%v) = %q, missing fraction digits", amount, got)
		}
		if frac := got[dot+1:]; len(frac) != 2 {
			t.Errorf("Format(%v) = %q, want exactly two fraction digits", amount, got)
		}
	}
}
