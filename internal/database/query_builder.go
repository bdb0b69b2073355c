package database

import (
	"fmt"
	"strings"
)

const receiptColumns = "id, idempotency_key, receipt_id, project_id, project_name, amount, currency, status, balance_source, created_at"

type ReceiptQuery struct {
	filters []string
	args    []interface{}
	orderBy string
	limit   int
}

func NewReceiptQuery() *ReceiptQuery {
	return &ReceiptQuery{orderBy: "created_at DESC, id DESC"}
}

func (q *ReceiptQuery) Where(filter string, args ...interface{}) *ReceiptQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *ReceiptQuery) WhereProject(projectID string) *ReceiptQuery {
	return q.Where("project_id = ?", projectID)
}

func (q *ReceiptQuery) WhereKey(key string) *ReceiptQuery {
	return q.Where("idempotency_key = ?", key)
}

func (q *ReceiptQuery) Limit(limit int) *ReceiptQuery {
	q.limit = limit
	return q
}

func (q *ReceiptQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM receipts", receiptColumns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
