package database

import (
	"context"

	"github.com/seedx/console/internal/models"
)

// ReceiptRepository defines receipt journal operations.
type ReceiptRepository interface {
	RecordReceipt(ctx context.Context, rec models.ReceiptRecord) (int64, error)
	GetReceipt(ctx context.Context, idempotencyKey string) (models.ReceiptRecord, error)
	ListReceipts(ctx context.Context, q *ReceiptQuery) ([]models.ReceiptRecord, error)
}

var _ ReceiptRepository = (*Database)(nil)
