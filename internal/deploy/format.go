package deploy

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/seedx/console/internal/config"
	"github.com/shopspring/decimal"
)

// FormatNGN renders an amount as "₦100,000.00".
func FormatNGN(d decimal.Decimal) string {
	return config.CurrencySymbol + FormatAmount(d)
}

// FormatAmount renders an amount with thousands separators and two decimals.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole := decimal.RequireFromString(intPart)
	sign := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		sign = "-"
	}
	return sign + humanize.BigComma(whole.BigInt()) + "." + frac
}
