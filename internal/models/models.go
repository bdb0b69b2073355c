package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle tag reported by the projects endpoint.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectFunded    ProjectStatus = "funded"
	ProjectPending   ProjectStatus = "pending"
	ProjectCompleted ProjectStatus = "completed"
)

// DeploymentType tags the metadata of an allocation request.
type DeploymentType string

const DeploymentCapitalAllocation DeploymentType = "capital_allocation"

// Project is a fundable regenerative-agriculture target. Read-only for the console.
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	RaisedAmount decimal.Decimal `json:"raisedAmount"`
	Status       ProjectStatus   `json:"status"`
	NAVPerToken  decimal.Decimal `json:"navPerToken"`
}

// FundingProgress returns raised/target as a percentage, 0 when the target is unset.
func (p Project) FundingProgress() decimal.Decimal {
	if !p.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return p.RaisedAmount.Div(p.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// TreasuryBalance is the amount available for deployment.
type TreasuryBalance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// DeploymentMetadata is the fixed metadata block sent with every allocation.
type DeploymentMetadata struct {
	DeploymentType DeploymentType
	Notes          string
}

// DeploymentRequest is built locally for a single submission and never stored.
type DeploymentRequest struct {
	ProjectID string
	Amount    decimal.Decimal
	Metadata  DeploymentMetadata
}

// Receipt is what the allocation endpoint returns on success. The console only
// checks that it arrived; the fields are kept for display and the journal.
type Receipt struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	TxHash  string `json:"transactionHash"`
	Message string `json:"message"`
}

// ReceiptRecord is a journaled, collaborator-confirmed allocation.
type ReceiptRecord struct {
	ID             int64
	IdempotencyKey string
	ReceiptID      string
	ProjectID      string
	ProjectName    string
	Amount         decimal.Decimal
	Currency       string
	Status         string
	BalanceSource  string
	CreatedAt      time.Time
}
