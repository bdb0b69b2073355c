package deploy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatNGN(t *testing.T) {
	cases := map[string]string{
		"100000":      "₦100,000.00",
		"0":           "₦0.00",
		"1234567.891": "₦1,234,567.89",
		"999.995":     "₦1,000.00",
		"-2500.5":     "₦-2,500.50",
	}
	for in, want := range cases {
		if got := FormatNGN(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatNGN(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNGNBeyondInt64(t *testing.T) {
	if got := FormatNGN(decimal.RequireFromString("1e19")); got != "₦10,000,000,000,000,000,000.00" {
		t.Fatalf("FormatNGN(1e19) = %q", got)
	}
	if got := FormatNGN(decimal.RequireFromString("-123456789012345678901.5")); got != "₦-123,456,789,012,345,678,901.50" {
		t.Fatalf("FormatNGN(-1.2e20) = %q", got)
	}
}
