package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestRenderStepperMarksCurrentStep(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	view := m.renderStepper()
	for _, s := range deploy.Steps {
		if !strings.Contains(view, s.String()) {
			t.Fatalf("expected step %q in stepper", s)
		}
	}
	m, _ = press(t, m, enterKey)
	if !strings.Contains(m.renderStepper(), "✓") {
		t.Fatalf("expected completed marker after leaving step 1")
	}
}

func TestRenderProjectsShowsMetadata(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	view := m.renderProjects(80)
	if !strings.Contains(view, "Cassava Farm") || !strings.Contains(view, "Cocoa Grove") {
		t.Fatalf("expected project names in list")
	}
	if !strings.Contains(view, "25.0%") {
		t.Fatalf("expected funding progress in list")
	}
}

func TestRenderProjectsScrolls(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m.projects = nil
	for i := 0; i < 12; i++ {
		m.projects = append(m.projects, testutil.NewProject().WithID(string(rune('a'+i))).Build())
	}
	if !strings.Contains(m.renderProjects(80), "↓ 4 more") {
		t.Fatalf("expected scroll hint")
	}
}

func TestRenderReviewShowsDisclosure(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	m = toReview(t, m, "1,000")
	view := m.View()
	if !strings.Contains(view, "₦1,000.00") {
		t.Fatalf("expected formatted amount in review")
	}
	if !strings.Contains(view, "₦499,000.00") {
		t.Fatalf("expected balance after deployment in review")
	}
	if !strings.Contains(view, "multisig") {
		t.Fatalf("expected governance disclosure in review")
	}
}

func TestFooterHelpPerStep(t *testing.T) {
	m := setupTestWizard(t, testDeps(&fakeAllocator{}, liveBalance(500000)))
	if help := m.keys.HelpForStep(deploy.StepSelectProject); !strings.Contains(help, "[space] Select") {
		t.Fatalf("unexpected step 1 help %q", help)
	}
	if help := m.keys.HelpForStep(deploy.StepSubmitted); !strings.Contains(help, "Export PDF") {
		t.Fatalf("unexpected step 4 help %q", help)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := truncateLabel("short", 10); got != "short" {
		t.Fatalf("expected label unchanged, got %q", got)
	}
	if got := truncateLabel("a much longer label", 8); got == "a much longer label" {
		t.Fatalf("expected label to be truncated, got %q", got)
	}
	if got := contentWidth(0); got != 96 {
		t.Fatalf("expected max width for unknown terminal, got %d", got)
	}
	if got := contentWidth(20); got != 40 {
		t.Fatalf("expected min width, got %d", got)
	}
	if start, end := visibleWindow(3, 2, 8); start != 0 || end != 3 {
		t.Fatalf("unexpected window %d..%d", start, end)
	}
	if start, end := visibleWindow(20, 19, 8); start != 12 || end != 20 {
		t.Fatalf("unexpected window %d..%d", start, end)
	}
	bal := deploy.BalanceResult{Amount: decimal.NewFromInt(500000), Currency: "NGNTS"}
	if got := FormatBalance(bal); got != "₦500,000.00 NGNTS" {
		t.Fatalf("unexpected balance %q", got)
	}
}

func TestMainModelQuitsOnCtrlC(t *testing.T) {
	m := NewMainModel(testDeps(&fakeAllocator{}, liveBalance(1)))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestMainModelWithoutController(t *testing.T) {
	deps := testDeps(&fakeAllocator{}, liveBalance(1))
	deps.Controller = nil
	m := NewMainModel(deps)
	if !strings.Contains(m.View(), "Error") {
		t.Fatalf("expected configuration error view")
	}
}
