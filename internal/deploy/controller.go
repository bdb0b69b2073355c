package deploy

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/seedx/console/internal/api"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Allocator issues the mutating allocation call.
//
//go:generate mockgen -source=controller.go -destination=mock_allocator_test.go -package=deploy
type Allocator interface {
	Allocate(ctx context.Context, req models.DeploymentRequest, idempotencyKey string) (models.Receipt, error)
}

// ControllerConfig configures a Controller.
type ControllerConfig struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// Controller runs submissions for one flow. Begin and Finish mutate the
// wizard and belong on the flow's owning goroutine; Execute does the
// network round trip and may run elsewhere.
type Controller struct {
	alloc    Allocator
	timeout  time.Duration
	logger   *zap.Logger
	inFlight atomic.Bool
}

func NewController(alloc Allocator, cfg ControllerConfig) *Controller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.SubmitTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Controller{alloc: alloc, timeout: cfg.Timeout, logger: cfg.Logger}
}

// Attempt is one confirmed submission.
type Attempt struct {
	Generation     uint64
	IdempotencyKey string
	ProjectName    string
	Request        models.DeploymentRequest
}

// Begin validates required fields, marks the wizard as submitting and builds
// the request. Business rules were already enforced by the wizard.
func (c *Controller) Begin(w *Wizard, project models.Project) (Attempt, error) {
	if w.Submitting {
		return Attempt{}, ErrSubmissionInFlight
	}
	if w.Step != StepReview {
		return Attempt{}, ErrStepLocked
	}
	if w.ProjectID == "" {
		return Attempt{}, ErrMissingProject
	}
	amount := ParseAmount(w.Amount)
	if !amount.IsPositive() {
		return Attempt{}, ErrMissingAmount
	}
	if !InKobo(amount) {
		return Attempt{}, ErrInvalidAmount
	}
	w.ensureKey()
	name := project.Name
	if name == "" {
		name = w.ProjectID
	}
	w.Submitting = true
	return Attempt{
		Generation:     w.Generation,
		IdempotencyKey: w.IdempotencyKey,
		ProjectName:    name,
		Request: models.DeploymentRequest{
			ProjectID: w.ProjectID,
			Amount:    amount,
			Metadata: models.DeploymentMetadata{
				DeploymentType: models.DeploymentCapitalAllocation,
				Notes:          fmt.Sprintf("Capital deployment to %s", name),
			},
		},
	}, nil
}

// Execute performs exactly one allocation call bounded by the configured
// timeout. A second concurrent Execute is refused without a network call.
func (c *Controller) Execute(ctx context.Context, a Attempt) (models.Receipt, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return models.Receipt{}, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := c.logger.With(
		zap.String("idempotency_key", a.IdempotencyKey),
		zap.String("project_id", a.Request.ProjectID),
		zap.String("amount", a.Request.Amount.StringFixed(2)),
	)
	log.Info("submitting capital deployment")
	receipt, err := c.alloc.Allocate(ctx, a.Request, a.IdempotencyKey)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrSubmissionTimeout, c.timeout, err)
		}
		log.Warn("capital deployment failed", zap.Error(err))
		return models.Receipt{}, err
	}
	log.Info("capital deployment initiated", zap.String("receipt_id", receipt.ID))
	return receipt, nil
}

// InFlight reports whether an allocation call is currently running.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Finish applies the outcome to the wizard. Results for an older generation
// are dropped and reported as not applied.
func (c *Controller) Finish(w *Wizard, a Attempt, receipt models.Receipt, err error) (Notice, bool) {
	if !w.IsCurrent(a.Generation) {
		c.logger.Debug("dropping stale submission result", zap.String("idempotency_key", a.IdempotencyKey))
		return Notice{}, false
	}
	if err != nil {
		w.fail()
		return Notice{Kind: NoticeError, Title: "Deployment failed", Text: failureMessage(err)}, true
	}
	w.complete(receipt)
	return Notice{
		Kind:  NoticeSuccess,
		Title: "Deployment initiated",
		Text:  SuccessMessage(a.Request.Amount, a.ProjectName),
	}, true
}

// Submit runs Begin, Execute and Finish on the calling goroutine.
func (c *Controller) Submit(ctx context.Context, w *Wizard, project models.Project) (models.Receipt, Notice, error) {
	a, err := c.Begin(w, project)
	if err != nil {
		return models.Receipt{}, Notice{}, err
	}
	receipt, err := c.Execute(ctx, a)
	notice, _ := c.Finish(w, a, receipt, err)
	return receipt, notice, err
}

// SuccessMessage is the confirmation shown after a successful submission.
func SuccessMessage(amount decimal.Decimal, projectName string) string {
	return fmt.Sprintf("Capital deployment of %s to %s initiated. It is now awaiting multisig approval.",
		FormatNGN(amount), projectName)
}

func failureMessage(err error) string {
	if errors.Is(err, ErrSubmissionTimeout) {
		return config.MsgSubmitTimeout
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return config.MsgSubmitFailed
}
