package dataprocessing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"decorated currency", "$12,345.67", 12345.67},
		{"plain integer", "5000", 5000},
		{"negative", "-50", -50},
		{"negative decorated", "-$1,200.50", -1200.50},
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"non numeric", "abc", 0},
		{"partial garbage", "12abc", 0},
		{"internal whitespace", "$ 1,000", 1000},
		{"zero", "0", 0},
		{"huge but finite", "999999999999999", 999999999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCurrency(tt.raw))
		})
	}
}

func TestParseCurrency_CanonicalRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 12345.67, 45000, -99.5} {
		canonical := strconv.FormatFloat(v, 'f', -1, 64)
		assert.Equal(t, v, ParseCurrency(canonical), "canonical %q must round-trip", canonical)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"small", 42.5, "$42.50"},
		{"thousands", 45000, "$45.0K"},
		{"millions", 1_200_000, "$1.2M"},
		{"negative thousands", -4500, "-$4.5K"},
		{"zero", 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.v))
		})
	}
}
