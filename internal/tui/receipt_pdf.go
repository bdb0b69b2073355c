package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
)

// ExportReceiptPDF writes a one-page receipt into dir and returns its path.
// Core PDF fonts have no naira glyph, so amounts are labelled NGN.
func ExportReceiptPDF(dir string, s ReceiptSummary) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("no receipts directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipts dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SEEDx capital deployment receipt", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Capital Deployment Receipt")
	pdf.Ln(12)

	amount := "NGN " + deploy.FormatAmount(deploy.ParseAmount(s.Amount))
	rows := [][2]string{
		{"Project", s.ProjectName},
		{"Project ID", s.ProjectID},
		{"Amount", amount + " (" + s.Currency + ")"},
		{"Receipt ID", s.Receipt.ID},
		{"Status", s.Receipt.Status},
		{"Transaction", s.Receipt.TxHash},
		{"Request key", s.IdempotencyKey},
		{"Balance source", string(s.BalanceSource)},
		{"Submitted", s.CreatedAt.Format("2006-01-02 15:04:05 MST")},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(45, 8, r[0])
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, r[1])
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, config.GovernanceDisclosure, "", "", false)
	if s.BalanceSource == deploy.SourceFallback {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, "Submitted against a demo treasury balance.", "", "", false)
	}

	path := filepath.Join(dir, receiptFileName(s))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}

func receiptFileName(s ReceiptSummary) string {
	id := s.Receipt.ID
	if id == "" {
		id = s.IdempotencyKey
	}
	id = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	return fmt.Sprintf("receipt_%s_%s.pdf", s.CreatedAt.Format("20060102"), id)
}
