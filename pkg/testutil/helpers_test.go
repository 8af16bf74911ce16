package testutil

import (
	"testing"

	"github.com/iwvelando/dealer-finance/internal/quote"
)

func TestFindQuote(t *testing.T) {
	results := []quote.Result{
		{Name: "GLE", Kind: "calculator"},
		{Name: "Mustang", Kind: "profit"},
	}

	tests := []struct {
		name     string
		search   string
		expected string
	}{
		{"Find first", "GLE", "calculator"},
		{"Find second", "Mustang", "profit"},
		{"Missing", "Camaro", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindQuote(results, tt.search)
			if tt.expected == "" {
				if result != nil {
					t.Errorf("FindQuote(%q) = %v, expected nil", tt.search, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindQuote(%q) = nil", tt.search)
			}
			if result.Kind != tt.expected {
				t.Errorf("FindQuote(%q).Kind = %s, expected %s", tt.search, result.Kind, tt.expected)
			}
		})
	}

	found := FindQuote(results, "GLE")
	found.Kind = "changed"
	if results[0].Kind != "changed" {
		t.Errorf("FindQuote should return a pointer into the slice")
	}
}
