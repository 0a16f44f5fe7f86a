package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{"known token canonical case", "Acme Widgets", "Acme"},
		{"known token upper case", "ACME Corp", "Acme"},
		{"known token lower case", "acme corp", "Acme"},
		{"generic suffix with prefix", "Northwind Industries", "Northwind"},
		{"generic suffix with trailing comma prefix", "Northwind, Inc", "Northwind"},
		{"generic suffix alone", "Inc", "Inc"},
		{"suffix does not match inside word", "Colossus Dynamics", "Colossus"},
		{"fallback first word", "Borealis Dynamics of Ohio", "Borealis"},
		{"fallback short first word", "Jo & Sons", OtherBrand},
		{"fallback article first word", "The Shop", OtherBrand},
		{"empty name", "", OtherBrand},
		{"whitespace name", "   ", OtherBrand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBrand(tt.account))
		})
	}
}

// Classification must be deterministic and case-insensitive: the same name
// in any casing yields the same label.
func TestExtractBrand_CaseInsensitiveDeterminism(t *testing.T) {
	variants := []string{"ACME Corp", "acme corp", "Acme Corp", "aCmE cOrP"}
	want := ExtractBrand(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, ExtractBrand(v), "variant %q", v)
	}
}
