package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/api"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
)

func TestWizardSubmitHappyPath(t *testing.T) {
	alloc := &fakeAllocator{}
	var completed []models.Receipt
	deps := testDeps(alloc, liveBalance(500000))
	deps.OnComplete = func(r models.Receipt) { completed = append(completed, r) }
	m := setupTestWizard(t, deps)

	m = toReview(t, m, "100000")
	if m.wizard.IdempotencyKey == "" {
		t.Fatalf("expected idempotency key on review")
	}
	m, cmd := press(t, m, enterKey)
	if !m.wizard.Submitting {
		t.Fatalf("expected submitting after confirm")
	}
	if !strings.Contains(m.View(), "Submitting…") {
		t.Fatalf("expected busy label in view")
	}
	result, ok := findMsg[submitResultMsg](cmd)
	if !ok {
		t.Fatalf("expected submit result message")
	}
	m = update(t, m, result)

	if m.wizard.Step != deploy.StepSubmitted {
		t.Fatalf("expected submitted step, got %v", m.wizard.Step)
	}
	if m.notice.Kind != deploy.NoticeSuccess || !strings.Contains(m.notice.Text, "₦100,000.00") {
		t.Fatalf("unexpected notice %+v", m.notice)
	}
	if len(alloc.calls) != 1 {
		t.Fatalf("expected one allocation call, got %d", len(alloc.calls))
	}
	if m.summary == nil || m.summary.Receipt.ID != "alloc-1" {
		t.Fatalf("expected receipt summary, got %+v", m.summary)
	}

	gen := m.wizard.Generation
	m, cmd = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepSelectProject || m.wizard.ProjectID != "" {
		t.Fatalf("expected fresh flow after reset")
	}
	if m.wizard.Generation == gen {
		t.Fatalf("reset must start a new generation")
	}
	if len(completed) != 1 || completed[0].ID != "alloc-1" {
		t.Fatalf("expected OnComplete with receipt, got %+v", completed)
	}
	if cmd == nil || m.balance != nil || !m.projectsLoading {
		t.Fatalf("reset must refetch projects and balance")
	}
}

func TestWizardInsufficientBalanceBlocksReview(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m, _ = press(t, m, enterKey)
	m = typeText(t, m, "600000")
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepEnterAmount {
		t.Fatalf("expected to stay on amount step, got %v", m.wizard.Step)
	}
	if !strings.Contains(m.View(), config.MsgInsufficientBalance) {
		t.Fatalf("expected insufficient balance message in view")
	}
}

func TestWizardInvalidAmountMessage(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m, _ = press(t, m, enterKey)
	m = typeText(t, m, "abc")
	if !strings.Contains(m.View(), config.MsgInvalidAmount) {
		t.Fatalf("expected invalid amount message in view")
	}
}

func TestWizardSubmitFailureKeepsReview(t *testing.T) {
	alloc := &fakeAllocator{fn: func(models.DeploymentRequest) (models.Receipt, error) {
		return models.Receipt{}, &api.APIError{Op: "allocate", Status: 409, Message: "Multisig quorum unavailable"}
	}}
	m := setupTestWizard(t, testDeps(alloc, liveBalance(500000)))
	m = toReview(t, m, "100000")
	key := m.wizard.IdempotencyKey

	m, cmd := press(t, m, enterKey)
	result, _ := findMsg[submitResultMsg](cmd)
	m = update(t, m, result)
	if m.wizard.Step != deploy.StepReview || m.wizard.Submitting {
		t.Fatalf("failure must return to editable review")
	}
	if m.notice.Kind != deploy.NoticeError || m.notice.Text != "Multisig quorum unavailable" {
		t.Fatalf("unexpected notice %+v", m.notice)
	}

	m, cmd = press(t, m, enterKey)
	result, _ = findMsg[submitResultMsg](cmd)
	_ = update(t, m, result)
	if len(alloc.calls) != 2 || alloc.calls[1] != key {
		t.Fatalf("retry must reuse the idempotency key, calls=%v", alloc.calls)
	}
}

func TestWizardBackRefusedWhileSubmitting(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m = toReview(t, m, "10")
	m, _ = press(t, m, enterKey)
	m, _ = press(t, m, escKey)
	if m.wizard.Step != deploy.StepReview {
		t.Fatalf("back must be refused while submitting, got %v", m.wizard.Step)
	}
	if m.status != "Submission in progress" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if _, cmd := press(t, m, enterKey); cmd != nil {
		t.Fatalf("second confirm must not start another submission")
	}
}

func TestWizardDismissDropsLateResult(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m = toReview(t, m, "10")
	m, submit := press(t, m, enterKey)
	m, cmd := press(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	result, _ := findMsg[submitResultMsg](submit)
	m = update(t, m, result)
	if m.wizard.Step != deploy.StepSelectProject || m.wizard.Receipt != nil || !m.notice.IsZero() {
		t.Fatalf("late result must be ignored after dismissal")
	}
}

func TestWizardStaleFetchIgnored(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	stale := m.wizard.Generation
	m.wizard.Dismiss()
	m = update(t, m, projectsLoadedMsg{gen: stale, projects: nil})
	if len(m.projects) != 2 {
		t.Fatalf("stale project list must be dropped")
	}
}

func TestWizardFallbackBalanceShowsDemoBadge(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, nil))
	if m.balance == nil || !m.balance.IsFallback() {
		t.Fatalf("expected fallback balance")
	}
	view := m.View()
	if !strings.Contains(view, "DEMO") || !strings.Contains(view, "₦500,000.00") {
		t.Fatalf("expected demo badge and fallback amount in view")
	}
}

func TestWizardShortcutsFillAmount(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m, _ = press(t, m, enterKey)
	m, _ = press(t, m, tabKey)
	if m.wizard.Amount != "125000.00" {
		t.Fatalf("expected 25%% shortcut, got %q", m.wizard.Amount)
	}
	m, _ = press(t, m, tabKey)
	if m.wizard.Amount != "250000.00" {
		t.Fatalf("expected 50%% shortcut, got %q", m.wizard.Amount)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}, Alt: true})
	if m.wizard.Amount != "500000.00" {
		t.Fatalf("expected 100%% shortcut, got %q", m.wizard.Amount)
	}
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepReview {
		t.Fatalf("full balance must be deployable")
	}
}

func TestWizardSelectionReplacesPrevious(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m, _ = press(t, m, spaceKey)
	m, _ = press(t, m, downKey)
	m, _ = press(t, m, spaceKey)
	if m.wizard.ProjectID != "p2" {
		t.Fatalf("expected p2 selected, got %q", m.wizard.ProjectID)
	}
	m, _ = press(t, m, escKey)
	if !m.quit {
		t.Fatalf("esc on the first step should quit")
	}
}

func TestWizardAmountWaitsForBalance(t *testing.T) {
	m := NewWizardModel(testDeps(&fakeAllocator{}, liveBalance(500000)))
	m = update(t, m, projectsLoadedMsg{gen: m.wizard.Generation, projects: testProjects()})
	m, _ = press(t, m, enterKey)
	m = typeText(t, m, "10")
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepEnterAmount {
		t.Fatalf("review must wait for the balance")
	}
	if !strings.Contains(m.View(), "loading") {
		t.Fatalf("expected pending balance placeholder")
	}
}

func TestWizardProjectsError(t *testing.T) {
	deps := testDeps(&fakeAllocator{}, liveBalance(1))
	deps.Projects = fakeLister{err: errors.New("boom")}
	m := setupTestWizard(t, deps)
	if !strings.Contains(m.View(), "Could not load projects") {
		t.Fatalf("expected error view")
	}
	m, _ = press(t, m, enterKey)
	if m.wizard.Step != deploy.StepSelectProject {
		t.Fatalf("cannot advance without projects")
	}
}

func TestWizardJournalsConfirmedReceipt(t *testing.T) {
	journal := &fakeJournal{}
	deps := testDeps(&fakeAllocator{}, liveBalance(500000))
	deps.Journal = journal
	m := setupTestWizard(t, deps)
	m = toReview(t, m, "250")
	m, cmd := press(t, m, enterKey)
	result, _ := findMsg[submitResultMsg](cmd)
	next, journalCmd := m.Update(result)
	m = next.(WizardModel)
	msg, ok := findMsg[receiptJournaledMsg](journalCmd)
	if !ok || msg.err != nil {
		t.Fatalf("expected journal write, got %+v", msg)
	}
	if len(journal.recs) != 1 {
		t.Fatalf("expected one journal row, got %d", len(journal.recs))
	}
	rec := journal.recs[0]
	if rec.ReceiptID != "alloc-1" || rec.IdempotencyKey != m.wizard.IdempotencyKey || rec.BalanceSource != "live" {
		t.Fatalf("unexpected journal row %+v", rec)
	}
}
