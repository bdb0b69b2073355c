package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
)

// --- Messages ---

// Every async message carries the wizard generation it was started under so
// results arriving after a reset or dismissal are dropped.
type projectsLoadedMsg struct {
	gen      uint64
	projects []models.Project
	err      error
}

type balanceLoadedMsg struct {
	gen     uint64
	balance deploy.BalanceResult
}

type submitResultMsg struct {
	attempt deploy.Attempt
	receipt models.Receipt
	err     error
}

type receiptJournaledMsg struct {
	err error
}

type receiptExportedMsg struct {
	path string
	err  error
}

func fetchProjectsCmd(ctx context.Context, lister ProjectLister, gen uint64) tea.Cmd {
	return func() tea.Msg {
		if lister == nil {
			return projectsLoadedMsg{gen: gen, projects: []models.Project{}}
		}
		projects, err := lister.ListProjects(ctx)
		return projectsLoadedMsg{gen: gen, projects: projects, err: err}
	}
}

func fetchBalanceCmd(ctx context.Context, fetcher deploy.BalanceFetcher, policy deploy.BalancePolicy, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return balanceLoadedMsg{gen: gen, balance: deploy.ResolveBalance(ctx, fetcher, policy)}
	}
}

func submitCmd(ctx context.Context, c *deploy.Controller, a deploy.Attempt) tea.Cmd {
	return func() tea.Msg {
		receipt, err := c.Execute(ctx, a)
		return submitResultMsg{attempt: a, receipt: receipt, err: err}
	}
}

func journalReceiptCmd(ctx context.Context, j ReceiptJournal, rec models.ReceiptRecord) tea.Cmd {
	return func() tea.Msg {
		_, err := j.RecordReceipt(ctx, rec)
		return receiptJournaledMsg{err: err}
	}
}

func exportReceiptCmd(dir string, s ReceiptSummary) tea.Cmd {
	return func() tea.Msg {
		path, err := ExportReceiptPDF(dir, s)
		return receiptExportedMsg{path: path, err: err}
	}
}
