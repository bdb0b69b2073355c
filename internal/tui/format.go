package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/util"
	"github.com/shopspring/decimal"
)

const fundingBarWidth = 16

// contentWidth is the usable frame width for a terminal width.
func contentWidth(termWidth int) int {
	if termWidth <= 0 {
		return config.MaxContentWidth
	}
	return util.Clamp(termWidth-8, config.MinContentWidth, config.MaxContentWidth)
}

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

// FormatBalance renders a balance result, e.g. "₦500,000.00 NGNTS".
func FormatBalance(b deploy.BalanceResult) string {
	return deploy.FormatNGN(b.Amount) + " " + b.Currency
}

// FormatProjectMeta renders the secondary line of a project row.
func FormatProjectMeta(p models.Project) string {
	var parts []string
	if p.Location != "" {
		parts = append(parts, p.Location)
	}
	if p.TargetAmount.IsPositive() {
		parts = append(parts, p.FundingProgress().StringFixed(1)+"% of "+deploy.FormatNGN(p.TargetAmount))
	}
	if p.NAVPerToken.IsPositive() {
		parts = append(parts, "NAV "+p.NAVPerToken.StringFixed(2))
	}
	if p.Status != "" {
		parts = append(parts, string(p.Status))
	}
	return strings.Join(parts, " · ")
}

// visibleWindow returns the [start, end) slice of n rows to show around cursor.
func visibleWindow(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := util.Clamp(cursor-size/2, 0, n-size)
	return start, start + size
}

var decimalHundred = decimal.NewFromInt(100)
