package deploy

import (
	"github.com/google/uuid"
	"github.com/seedx/console/internal/models"
	"github.com/shopspring/decimal"
)

// Step is a wizard position. Steps only move forward through Next (or a
// successful submission) and backward through Back.
type Step int

const (
	StepSelectProject Step = iota + 1
	StepEnterAmount
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSelectProject:
		return "Select project"
	case StepEnterAmount:
		return "Amount"
	case StepReview:
		return "Review"
	case StepSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// Steps lists the wizard steps in order.
var Steps = []Step{StepSelectProject, StepEnterAmount, StepReview, StepSubmitted}

// Options are the typed hooks a parent passes to the wizard.
type Options struct {
	// OnComplete runs when the operator resets from the Submitted step.
	OnComplete func(models.Receipt)
	// NewKey mints idempotency keys; defaults to uuid.NewString.
	NewKey func() string
}

// Wizard is the state of one deployment flow. It is owned by a single
// flow instance and is not safe for concurrent use.
type Wizard struct {
	Step           Step
	ProjectID      string
	Amount         string
	Submitting     bool
	IdempotencyKey string
	// Generation changes whenever the flow is reset or dismissed. Async
	// results carry the generation they were started under.
	Generation uint64
	Receipt    *models.Receipt

	keyFingerprint string
	opts           Options
}

func NewWizard(opts Options) *Wizard {
	if opts.NewKey == nil {
		opts.NewKey = uuid.NewString
	}
	return &Wizard{Step: StepSelectProject, opts: opts}
}

// SelectProject replaces any previous selection. Only allowed on step 1.
func (w *Wizard) SelectProject(id string) error {
	if w.Step != StepSelectProject {
		return ErrStepLocked
	}
	w.ProjectID = id
	return nil
}

// SetAmount records raw amount input. Only allowed on step 2.
func (w *Wizard) SetAmount(raw string) error {
	if w.Step != StepEnterAmount {
		return ErrStepLocked
	}
	w.Amount = raw
	return nil
}

// CanAdvance reports whether Next would succeed for the given balance.
func (w *Wizard) CanAdvance(balance decimal.Decimal) bool {
	return w.advanceErr(balance) == nil
}

func (w *Wizard) advanceErr(balance decimal.Decimal) error {
	switch w.Step {
	case StepSelectProject:
		if w.ProjectID == "" {
			return ErrNoProjectSelected
		}
		return nil
	case StepEnterAmount:
		check := ValidateAmount(w.Amount, balance)
		if !check.Valid {
			return check.Reason.Err()
		}
		return nil
	default:
		return ErrStepLocked
	}
}

// Next moves 1->2 or 2->3 when the current step is valid. Review can only
// be left forward by a successful submission.
func (w *Wizard) Next(balance decimal.Decimal) error {
	if err := w.advanceErr(balance); err != nil {
		return err
	}
	w.Step++
	if w.Step == StepReview {
		w.ensureKey()
	}
	return nil
}

// Back moves 2->1 or 3->2. It is refused while a submission is in flight.
func (w *Wizard) Back() error {
	if w.Submitting {
		return ErrSubmissionInFlight
	}
	switch w.Step {
	case StepEnterAmount, StepReview:
		w.Step--
		return nil
	default:
		return ErrStepLocked
	}
}

// Reset leaves the Submitted step, clears the flow and runs OnComplete.
func (w *Wizard) Reset() error {
	if w.Step != StepSubmitted {
		return ErrStepLocked
	}
	receipt := models.Receipt{}
	if w.Receipt != nil {
		receipt = *w.Receipt
	}
	w.clear()
	if w.opts.OnComplete != nil {
		w.opts.OnComplete(receipt)
	}
	return nil
}

// Dismiss abandons the flow from any step without running OnComplete.
// Late results from the abandoned generation must be ignored by callers.
func (w *Wizard) Dismiss() {
	w.clear()
}

// IsCurrent reports whether an async result started under gen still applies.
func (w *Wizard) IsCurrent(gen uint64) bool {
	return gen == w.Generation
}

func (w *Wizard) clear() {
	w.Step = StepSelectProject
	w.ProjectID = ""
	w.Amount = ""
	w.Submitting = false
	w.IdempotencyKey = ""
	w.keyFingerprint = ""
	w.Receipt = nil
	w.Generation++
}

// ensureKey keeps the key stable across retries of the same project and
// amount, and rotates it when either changes.
func (w *Wizard) ensureKey() {
	fp := w.ProjectID + "|" + ParseAmount(w.Amount).StringFixed(2)
	if w.IdempotencyKey != "" && w.keyFingerprint == fp {
		return
	}
	w.IdempotencyKey = w.opts.NewKey()
	w.keyFingerprint = fp
}

func (w *Wizard) complete(receipt models.Receipt) {
	w.Submitting = false
	w.Receipt = &receipt
	w.Step = StepSubmitted
}

func (w *Wizard) fail() {
	w.Submitting = false
}
