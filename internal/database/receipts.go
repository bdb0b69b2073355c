package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seedx/console/internal/models"
	"github.com/shopspring/decimal"
)

// RecordReceipt journals a confirmed allocation. Recording the same
// idempotency key twice updates the existing row instead of duplicating it.
func (d *Database) RecordReceipt(ctx context.Context, rec models.ReceiptRecord) (int64, error) {
	if rec.IdempotencyKey == "" {
		return 0, wrapReceiptErr("record", "", errors.New("idempotency key is required"))
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO receipts (idempotency_key, receipt_id, project_id, project_name, amount, currency, status, balance_source, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(idempotency_key) DO UPDATE SET
				receipt_id = excluded.receipt_id,
				status = excluded.status`,
			rec.IdempotencyKey,
			nullableString(rec.ReceiptID),
			rec.ProjectID,
			rec.ProjectName,
			rec.Amount.StringFixed(2),
			rec.Currency,
			nullableString(rec.Status),
			rec.BalanceSource,
			rec.CreatedAt,
		); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, "SELECT id FROM receipts WHERE idempotency_key = ?", rec.IdempotencyKey).Scan(&id)
	})
	if err != nil {
		return 0, wrapReceiptErr("record", rec.IdempotencyKey, err)
	}
	return id, nil
}

// GetReceipt looks a receipt up by idempotency key.
func (d *Database) GetReceipt(ctx context.Context, idempotencyKey string) (models.ReceiptRecord, error) {
	recs, err := d.ListReceipts(ctx, NewReceiptQuery().WhereKey(idempotencyKey).Limit(1))
	if err != nil {
		return models.ReceiptRecord{}, err
	}
	if len(recs) == 0 {
		return models.ReceiptRecord{}, wrapReceiptErr("get", idempotencyKey, ErrReceiptNotFound)
	}
	return recs[0], nil
}

// ListReceipts returns receipts matching q, newest first by default.
func (d *Database) ListReceipts(ctx context.Context, q *ReceiptQuery) ([]models.ReceiptRecord, error) {
	if q == nil {
		q = NewReceiptQuery()
	}
	query, args := q.Build()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapReceiptErr("list", "", err)
	}
	defer rows.Close()

	var recs []models.ReceiptRecord
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, wrapReceiptErr("list", "", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReceiptErr("list", "", err)
	}
	return recs, nil
}

func scanReceipt(rows *sql.Rows) (models.ReceiptRecord, error) {
	var rec models.ReceiptRecord
	var receiptID, status sql.NullString
	var amount string
	if err := rows.Scan(&rec.ID, &rec.IdempotencyKey, &receiptID, &rec.ProjectID, &rec.ProjectName,
		&amount, &rec.Currency, &status, &rec.BalanceSource, &rec.CreatedAt); err != nil {
		return rec, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return rec, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	rec.Amount = d
	rec.ReceiptID = receiptID.String
	rec.Status = status.String
	return rec, nil
}
