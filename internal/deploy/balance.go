package deploy

import (
	"context"
	"strings"

	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceSource tags where a treasury balance came from.
type BalanceSource string

const (
	SourceLive     BalanceSource = "live"
	SourceFallback BalanceSource = "fallback"
)

// BalanceResult is always numeric. Fallback results carry the reason the
// live balance was not used.
type BalanceResult struct {
	Source   BalanceSource
	Amount   decimal.Decimal
	Currency string
	Reason   string
}

// IsFallback reports whether the result is placeholder data.
func (b BalanceResult) IsFallback() bool {
	return b.Source == SourceFallback
}

// BalanceFetcher returns nil when the balance is unavailable. It must not fail.
type BalanceFetcher interface {
	TreasuryBalanceOrNil(ctx context.Context) *models.TreasuryBalance
}

// BalancePolicy is the explicit treasury fallback configuration.
type BalancePolicy struct {
	Mode     string // config.FallbackAllow, FallbackDeny or FallbackAlways
	Fallback decimal.Decimal
	Currency string
}

// PolicyFromConfig builds a BalancePolicy; a malformed fallback amount uses
// config.FallbackTreasuryBalance.
func PolicyFromConfig(cfg config.TreasuryConfig) BalancePolicy {
	fallback, err := decimal.NewFromString(strings.TrimSpace(cfg.FallbackBalance))
	if err != nil || fallback.IsNegative() {
		fallback = decimal.RequireFromString(config.FallbackTreasuryBalance)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = config.DefaultCurrency
	}
	mode := cfg.FallbackPolicy
	if mode == "" {
		mode = config.FallbackAllow
	}
	return BalancePolicy{Mode: mode, Fallback: fallback, Currency: currency}
}

// ResolveBalance turns the nullable fetch into a tagged result.
func ResolveBalance(ctx context.Context, fetcher BalanceFetcher, policy BalancePolicy) BalanceResult {
	if policy.Mode == config.FallbackAlways || fetcher == nil {
		return policy.fallbackResult("demo mode")
	}
	bal := fetcher.TreasuryBalanceOrNil(ctx)
	if bal == nil {
		if policy.Mode == config.FallbackDeny {
			return BalanceResult{
				Source:   SourceFallback,
				Amount:   decimal.Zero,
				Currency: policy.Currency,
				Reason:   "treasury balance unavailable",
			}
		}
		return policy.fallbackResult("treasury balance unavailable, using demo balance")
	}
	currency := bal.Currency
	if currency == "" {
		currency = policy.Currency
	}
	return BalanceResult{Source: SourceLive, Amount: bal.Balance, Currency: currency}
}

func (p BalancePolicy) fallbackResult(reason string) BalanceResult {
	return BalanceResult{
		Source:   SourceFallback,
		Amount:   p.Fallback,
		Currency: p.Currency,
		Reason:   reason,
	}
}
