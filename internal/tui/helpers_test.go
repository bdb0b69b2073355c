package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/testutil"
	"github.com/shopspring/decimal"
)

type fakeLister struct {
	projects []models.Project
	err      error
}

func (f fakeLister) ListProjects(context.Context) ([]models.Project, error) {
	return f.projects, f.err
}

type fakeFetcher struct {
	balance *models.TreasuryBalance
}

func (f fakeFetcher) TreasuryBalanceOrNil(context.Context) *models.TreasuryBalance {
	return f.balance
}

type fakeAllocator struct {
	mu    sync.Mutex
	calls []string
	fn    func(req models.DeploymentRequest) (models.Receipt, error)
}

func (f *fakeAllocator) Allocate(_ context.Context, req models.DeploymentRequest, key string) (models.Receipt, error) {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if f.fn == nil {
		return models.Receipt{ID: "alloc-1", Status: "pending_approval"}, nil
	}
	return f.fn(req)
}

type fakeJournal struct {
	recs []models.ReceiptRecord
}

func (f *fakeJournal) RecordReceipt(_ context.Context, rec models.ReceiptRecord) (int64, error) {
	f.recs = append(f.recs, rec)
	return int64(len(f.recs)), nil
}

func testProjects() []models.Project {
	return []models.Project{
		testutil.NewProject().Build(),
		testutil.NewProject().WithID("p2").WithName("Cocoa Grove").WithFunding(2000000, 500000).Build(),
	}
}

func testDeps(alloc *fakeAllocator, balance *models.TreasuryBalance) Deps {
	policy := deploy.PolicyFromConfig(config.DefaultConfig().Treasury)
	return Deps{
		Ctx:        context.Background(),
		Projects:   fakeLister{projects: testProjects()},
		Balance:    fakeFetcher{balance: balance},
		Policy:     policy,
		Controller: deploy.NewController(alloc, deploy.ControllerConfig{}),
	}
}

func liveBalance(amount int64) *models.TreasuryBalance {
	return &models.TreasuryBalance{Balance: decimal.NewFromInt(amount), Currency: "NGNTS"}
}

// setupTestWizard returns a wizard with projects and balance already loaded.
func setupTestWizard(t *testing.T, deps Deps) WizardModel {
	t.Helper()
	m := NewWizardModel(deps)
	for _, msg := range runCmd(m.Init()) {
		m = update(t, m, msg)
	}
	if m.projectsLoading || m.balance == nil {
		t.Fatalf("expected initial fetches to resolve")
	}
	return m
}

func update(t *testing.T, m WizardModel, msg tea.Msg) WizardModel {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(WizardModel)
	if !ok {
		t.Fatalf("expected WizardModel, got %T", next)
	}
	return updated
}

// press sends a key and returns the updated model and its command.
func press(t *testing.T, m WizardModel, key tea.KeyMsg) (WizardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	updated, ok := next.(WizardModel)
	if !ok {
		t.Fatalf("expected WizardModel, got %T", next)
	}
	return updated, cmd
}

func typeText(t *testing.T, m WizardModel, s string) WizardModel {
	t.Helper()
	for _, r := range s {
		m, _ = press(t, m, runeKey(r))
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T produced by cmd.
func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	for _, msg := range runCmd(cmd) {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// toReview drives a loaded wizard to the review step for amount.
func toReview(t *testing.T, m WizardModel, amount string) WizardModel {
	t.Helper()
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepEnterAmount {
		t.Fatalf("expected amount step, got %v", m.wizard.Step)
	}
	m = typeText(t, m, amount)
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepReview {
		t.Fatalf("expected review step, got %v (amount %q)", m.wizard.Step, m.wizard.Amount)
	}
	return m
}
