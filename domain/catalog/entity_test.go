package catalog

import "testing"

func TestValidCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact", "Laptop", true},
		{"lowercase", "fashion", true},
		{"uppercase", "TOYS", true},
		{"unknown", "Groceries", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCategory(tt.input); got != tt.want {
				t.Errorf("ValidCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesCategory(t *testing.T) {
	p := Product{Category: "Headphone"}

	if !p.MatchesCategory("") {
		t.Error("empty filter must match every product")
	}
	if !p.MatchesCategory("headphone") {
		t.Error("category match must ignore case")
	}
	if p.MatchesCategory("Mobile") {
		t.Error("different category must not match")
	}
}
