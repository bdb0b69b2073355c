package deploy

import (
	"strings"

	"github.com/seedx/console/internal/config"
	"github.com/shopspring/decimal"
)

// AmountReason explains why an amount is not deployable.
type AmountReason int

const (
	// ReasonNone is used for valid amounts and for empty input, which is
	// invalid but not worth a message.
	ReasonNone AmountReason = iota
	ReasonInvalid
	ReasonInsufficient
)

// Message is the inline text shown next to the amount field.
func (r AmountReason) Message() string {
	switch r {
	case ReasonInvalid:
		return config.MsgInvalidAmount
	case ReasonInsufficient:
		return config.MsgInsufficientBalance
	default:
		return ""
	}
}

// Err maps the reason to the sentinel used by the wizard.
func (r AmountReason) Err() error {
	switch r {
	case ReasonInsufficient:
		return ErrInsufficientBalance
	default:
		return ErrInvalidAmount
	}
}

// AmountCheck is the outcome of validating raw amount input.
type AmountCheck struct {
	Amount decimal.Decimal
	Valid  bool
	Reason AmountReason
}

// ParseAmount reads operator input leniently: surrounding space, a leading
// currency symbol, and thousands separators are ignored. Anything that does
// not parse is 0.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, config.CurrencySymbol)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ValidateAmount requires 0 < amount <= balance with at most two fractional
// digits, so the validated value is exactly what is shown and submitted. It
// has no side effects.
func ValidateAmount(raw string, balance decimal.Decimal) AmountCheck {
	if strings.TrimSpace(raw) == "" {
		return AmountCheck{Amount: decimal.Zero, Reason: ReasonNone}
	}
	amount := ParseAmount(raw)
	if !amount.IsPositive() || !InKobo(amount) {
		return AmountCheck{Amount: amount, Reason: ReasonInvalid}
	}
	if amount.GreaterThan(balance) {
		return AmountCheck{Amount: amount, Reason: ReasonInsufficient}
	}
	return AmountCheck{Amount: amount, Valid: true}
}

// InKobo reports whether d has no more than two fractional digits.
func InKobo(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// PercentOf returns pct% of balance with exactly two fractional digits,
// rounded down so 100% never exceeds the balance.
func PercentOf(balance decimal.Decimal, pct int) string {
	return balance.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Truncate(2).StringFixed(2)
}

// NextShortcut returns the shortcut after current in config.ShortcutPercents,
// wrapping around. An unknown current starts at the first shortcut.
func NextShortcut(current int) int {
	for i, pct := range config.ShortcutPercents {
		if pct == current {
			return config.ShortcutPercents[(i+1)%len(config.ShortcutPercents)]
		}
	}
	return config.ShortcutPercents[0]
}
