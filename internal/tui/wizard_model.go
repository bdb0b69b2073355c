package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptSummary is what the console knows about a confirmed allocation.
type ReceiptSummary struct {
	Receipt        models.Receipt
	IdempotencyKey string
	ProjectID      string
	ProjectName    string
	Amount         string
	Currency       string
	BalanceSource  deploy.BalanceSource
	CreatedAt      time.Time
}

// WizardModel renders and drives one deployment wizard.
type WizardModel struct {
	deps   Deps
	ctx    context.Context
	logger *zap.Logger

	wizard *deploy.Wizard
	keys   *HandlerRegistry

	projects        []models.Project
	projectsLoading bool
	projectsErr     error
	// balance is nil until the first fetch resolves.
	balance *deploy.BalanceResult

	cursor      int
	shortcut    int
	amountInput textinput.Model
	spinner     spinner.Model
	funding     progress.Model

	notice  deploy.Notice
	status  string
	summary *ReceiptSummary
	quit    bool

	width  int
	height int
}

func NewWizardModel(deps Deps) WizardModel {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.Prompt = config.CurrencySymbol + " "
	ti.CharLimit = config.MaxAmountLength
	ti.Width = 24

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CurrentTheme.Highlight

	return WizardModel{
		deps:            deps,
		ctx:             deps.Ctx,
		logger:          deps.Logger,
		wizard:          deploy.NewWizard(deploy.Options{OnComplete: deps.OnComplete}),
		keys:            newWizardKeys(),
		projectsLoading: true,
		amountInput:     ti,
		spinner:         sp,
		funding:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(fundingBarWidth), progress.WithoutPercentage()),
	}
}

func (m WizardModel) Init() tea.Cmd {
	return m.fetchAll()
}

func (m WizardModel) fetchAll() tea.Cmd {
	gen := m.wizard.Generation
	return tea.Batch(
		fetchProjectsCmd(m.ctx, m.deps.Projects, gen),
		fetchBalanceCmd(m.ctx, m.deps.Balance, m.deps.Policy, gen),
	)
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case projectsLoadedMsg:
		if !m.wizard.IsCurrent(msg.gen) {
			return m, nil
		}
		m.projectsLoading = false
		m.projectsErr = msg.err
		if msg.err != nil {
			util.LogError(m.logger, "list projects", msg.err)
			m.projects = nil
		} else {
			m.projects = msg.projects
		}
		m.cursor = util.Clamp(m.cursor, 0, max(len(m.projects)-1, 0))
		return m, nil

	case balanceLoadedMsg:
		if !m.wizard.IsCurrent(msg.gen) {
			return m, nil
		}
		bal := msg.balance
		m.balance = &bal
		if bal.IsFallback() {
			m.logger.Info("using fallback treasury balance", zap.String("reason", bal.Reason))
		}
		return m, nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case spinner.TickMsg:
		if !m.wizard.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case receiptJournaledMsg:
		if msg.err != nil {
			util.LogError(m.logger, "journal receipt", msg.err)
			m.status = "Receipt could not be saved to the local journal"
		}
		return m, nil

	case receiptExportedMsg:
		if msg.err != nil {
			util.LogError(m.logger, "export receipt", msg.err)
			m.status = "Receipt export failed: " + msg.err.Error()
		} else {
			m.status = "Receipt saved to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.wizard.Step == deploy.StepEnterAmount {
		var cmd tea.Cmd
		m.amountInput, cmd = m.amountInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if next, cmd, handled := m.keys.Handle(m, key); handled {
		return next, cmd
	}
	if m.wizard.Step != deploy.StepEnterAmount {
		return m, nil
	}
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	m.syncAmount()
	return m, cmd
}

func (m *WizardModel) syncAmount() {
	if err := m.wizard.SetAmount(m.amountInput.Value()); err != nil {
		m.logger.Debug("amount edit ignored", zap.Error(err))
	}
	m.notice = deploy.Notice{}
}

func (m WizardModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	notice, applied := m.deps.Controller.Finish(m.wizard, msg.attempt, msg.receipt, msg.err)
	if !applied {
		return m, nil
	}
	m.notice = notice
	if msg.err != nil {
		return m, nil
	}
	summary := ReceiptSummary{
		Receipt:        msg.receipt,
		IdempotencyKey: msg.attempt.IdempotencyKey,
		ProjectID:      msg.attempt.Request.ProjectID,
		ProjectName:    msg.attempt.ProjectName,
		Amount:         msg.attempt.Request.Amount.StringFixed(2),
		Currency:       m.currency(),
		BalanceSource:  m.balanceSource(),
		CreatedAt:      time.Now().UTC(),
	}
	m.summary = &summary
	if m.deps.Journal == nil {
		return m, nil
	}
	return m, journalReceiptCmd(m.ctx, m.deps.Journal, summary.Record())
}

// Record converts the summary into a journal row.
func (s ReceiptSummary) Record() models.ReceiptRecord {
	return models.ReceiptRecord{
		IdempotencyKey: s.IdempotencyKey,
		ReceiptID:      s.Receipt.ID,
		ProjectID:      s.ProjectID,
		ProjectName:    s.ProjectName,
		Amount:         deploy.ParseAmount(s.Amount),
		Currency:       s.Currency,
		Status:         s.Receipt.Status,
		BalanceSource:  string(s.BalanceSource),
		CreatedAt:      s.CreatedAt,
	}
}

// SummaryFromRecord rebuilds a summary from a journal row.
func SummaryFromRecord(rec models.ReceiptRecord) ReceiptSummary {
	return ReceiptSummary{
		Receipt:        models.Receipt{ID: rec.ReceiptID, Status: rec.Status},
		IdempotencyKey: rec.IdempotencyKey,
		ProjectID:      rec.ProjectID,
		ProjectName:    rec.ProjectName,
		Amount:         rec.Amount.StringFixed(2),
		Currency:       rec.Currency,
		BalanceSource:  deploy.BalanceSource(rec.BalanceSource),
		CreatedAt:      rec.CreatedAt,
	}
}

// selectedProject returns the project chosen on step 1.
func (m WizardModel) selectedProject() (models.Project, bool) {
	for _, p := range m.projects {
		if p.ID == m.wizard.ProjectID {
			return p, true
		}
	}
	return models.Project{}, false
}

// balanceAmount is the balance amount validation runs against, 0 while pending.
func (m WizardModel) balanceAmount() decimal.Decimal {
	if m.balance == nil {
		return decimal.Zero
	}
	return m.balance.Amount
}

func (m WizardModel) currency() string {
	if m.balance != nil && m.balance.Currency != "" {
		return m.balance.Currency
	}
	if m.deps.Policy.Currency != "" {
		return m.deps.Policy.Currency
	}
	return config.DefaultCurrency
}

func (m WizardModel) balanceSource() deploy.BalanceSource {
	if m.balance == nil {
		return deploy.SourceFallback
	}
	return m.balance.Source
}

// dismiss abandons the flow; results still in flight are dropped on arrival.
func (m *WizardModel) dismiss() {
	m.wizard.Dismiss()
	m.quit = true
}

// reset starts a fresh flow after a submission and reloads the data.
func (m WizardModel) reset() (WizardModel, tea.Cmd) {
	if err := m.wizard.Reset(); err != nil {
		return m, nil
	}
	m.projectsLoading = true
	m.balance = nil
	m.cursor = 0
	m.shortcut = 0
	m.amountInput.SetValue("")
	m.amountInput.Blur()
	m.notice = deploy.Notice{}
	m.status = ""
	m.summary = nil
	return m, m.fetchAll()
}
