package testutil

import (
	"time"

	"github.com/seedx/console/internal/models"
	"github.com/shopspring/decimal"
)

// ProjectBuilder provides fluent API for creating test projects.
type ProjectBuilder struct {
	project models.Project
}

func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		project: models.Project{
			ID:           "p1",
			Name:         "Cassava Farm",
			Location:     "Ogun",
			TargetAmount: decimal.NewFromInt(1000000),
			RaisedAmount: decimal.NewFromInt(250000),
			Status:       models.ProjectActive,
			NAVPerToken:  decimal.RequireFromString("1.02"),
		},
	}
}

func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.project.ID = id
	return b
}

func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.project.Name = name
	return b
}

func (b *ProjectBuilder) WithDescription(d string) *ProjectBuilder {
	b.project.Description = d
	return b
}

func (b *ProjectBuilder) WithFunding(target, raised int64) *ProjectBuilder {
	b.project.TargetAmount = decimal.NewFromInt(target)
	b.project.RaisedAmount = decimal.NewFromInt(raised)
	return b
}

func (b *ProjectBuilder) WithStatus(s models.ProjectStatus) *ProjectBuilder {
	b.project.Status = s
	return b
}

func (b *ProjectBuilder) Build() models.Project {
	return b.project
}

// ReceiptRecordBuilder provides fluent API for creating journal rows.
type ReceiptRecordBuilder struct {
	rec models.ReceiptRecord
}

func NewReceiptRecord() *ReceiptRecordBuilder {
	return &ReceiptRecordBuilder{
		rec: models.ReceiptRecord{
			IdempotencyKey: "key-1",
			ReceiptID:      "alloc-1",
			ProjectID:      "p1",
			ProjectName:    "Cassava Farm",
			Amount:         decimal.NewFromInt(100000),
			Currency:       "NGNTS",
			Status:         "pending_approval",
			BalanceSource:  "live",
			CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
}

func (b *ReceiptRecordBuilder) WithKey(key string) *ReceiptRecordBuilder {
	b.rec.IdempotencyKey = key
	return b
}

func (b *ReceiptRecordBuilder) WithProject(id, name string) *ReceiptRecordBuilder {
	b.rec.ProjectID = id
	b.rec.ProjectName = name
	return b
}

func (b *ReceiptRecordBuilder) WithAmount(amount int64) *ReceiptRecordBuilder {
	b.rec.Amount = decimal.NewFromInt(amount)
	return b
}

func (b *ReceiptRecordBuilder) WithCreatedAt(t time.Time) *ReceiptRecordBuilder {
	b.rec.CreatedAt = t
	return b
}

func (b *ReceiptRecordBuilder) Build() models.ReceiptRecord {
	return b.rec
}
