package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/database"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/tui"
	"github.com/seedx/console/internal/util"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List fundable projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.client.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load projects: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects available for deployment.")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "LOCATION", "FUNDED", "STATUS")
			for _, p := range projects {
				t.Row(p.ID, p.Name, p.Location, p.FundingProgress().StringFixed(1)+"%", string(p.Status))
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the deployable treasury balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureSession(); err != nil {
				return err
			}
			bal := deploy.ResolveBalance(cmd.Context(), a.client, a.policy())
			fmt.Fprintln(cmd.OutOrStdout(), describeBalance(bal))
			return nil
		},
	}
}

func describeBalance(b deploy.BalanceResult) string {
	line := "Treasury balance: " + tui.FormatBalance(b)
	if b.IsFallback() {
		line += " [demo: " + b.Reason + "]"
	}
	return line
}

type deployFlags struct {
	project string
	amount  string
	yes     bool
}

func newDeployCmd(a *app) *cobra.Command {
	f := &deployFlags{}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy capital to a project without the interactive wizard",
		Long: `Runs the same select, amount and review steps as the wizard and submits
one allocation request. The request awaits multisig approval.

Example:
  seedx deploy --project p1 --amount 100000 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeploy(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project ID or name")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount to deploy (e.g. 100000 or 25%)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "submit without confirmation")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *app) runDeploy(ctx context.Context, out io.Writer, f *deployFlags) error {
	if err := a.ensureSession(); err != nil {
		return err
	}

	var (
		projects []models.Project
		balance  deploy.BalanceResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = a.client.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		balance = deploy.ResolveBalance(gctx, a.client, a.policy())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	project, ok := findProject(projects, f.project)
	if !ok {
		return fmt.Errorf("project %q not found", f.project)
	}

	w := deploy.NewWizard(deploy.Options{})
	if err := w.SelectProject(project.ID); err != nil {
		return err
	}
	if err := w.Next(balance.Amount); err != nil {
		return err
	}
	if err := w.SetAmount(resolveAmount(f.amount, balance.Amount)); err != nil {
		return err
	}
	if err := w.Next(balance.Amount); err != nil {
		check := deploy.ValidateAmount(w.Amount, balance.Amount)
		if msg := check.Reason.Message(); msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}

	amount := deploy.ParseAmount(w.Amount)
	fmt.Fprintln(out, describeBalance(balance))
	fmt.Fprintf(out, "Project: %s (%s)\n", project.Name, project.ID)
	fmt.Fprintf(out, "Amount:  %s %s\n", deploy.FormatNGN(amount), balance.Currency)
	fmt.Fprintln(out, config.GovernanceDisclosure)

	if !f.yes {
		if !a.isTTY {
			return errors.New("refusing to submit without --yes on a non-interactive terminal")
		}
		if !confirm(a.stdin, out, "Submit this deployment? [y/N] ") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	ctrl := a.controller()
	receipt, notice, err := ctrl.Submit(ctx, w, project)
	if err != nil {
		if !notice.IsZero() {
			return fmt.Errorf("%s: %w", notice.Text, err)
		}
		return err
	}
	fmt.Fprintln(out, notice.Text)
	if receipt.ID != "" {
		fmt.Fprintf(out, "Receipt: %s\n", receipt.ID)
	}

	ledger, err := a.openLedger(ctx)
	if err != nil {
		util.LogError(a.logger, "open ledger", err)
		return nil
	}
	defer ledger.Close()
	if ledger != nil {
		rec := models.ReceiptRecord{
			IdempotencyKey: w.IdempotencyKey,
			ReceiptID:      receipt.ID,
			ProjectID:      project.ID,
			ProjectName:    project.Name,
			Amount:         amount,
			Currency:       balance.Currency,
			Status:         receipt.Status,
			BalanceSource:  string(balance.Source),
		}
		if _, err := ledger.RecordReceipt(ctx, rec); err != nil {
			util.LogError(a.logger, "journal receipt", err)
		} else {
			a.logger.Debug("receipt journaled", zap.String("idempotency_key", rec.IdempotencyKey))
		}
	}
	return nil
}

// findProject matches by ID first, then by case-insensitive name.
func findProject(projects []models.Project, ref string) (models.Project, bool) {
	ref = strings.TrimSpace(ref)
	for _, p := range projects {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return models.Project{}, false
}

// resolveAmount expands a shortcut like "25%" against the balance.
func resolveAmount(raw string, balance decimal.Decimal) string {
	raw = strings.TrimSpace(raw)
	pctRaw, ok := strings.CutSuffix(raw, "%")
	if !ok {
		return raw
	}
	for _, pct := range config.ShortcutPercents {
		if fmt.Sprint(pct) == strings.TrimSpace(pctRaw) {
			return deploy.PercentOf(balance, pct)
		}
	}
	return raw
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit   int
		project string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List receipts recorded in the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			q := database.NewReceiptQuery().Limit(limit)
			if project != "" {
				q = q.WhereProject(project)
			}
			recs, err := db.ListReceipts(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No receipts recorded.")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("WHEN", "PROJECT", "AMOUNT", "RECEIPT", "KEY", "SOURCE")
			for _, r := range recs {
				t.Row(humanize.Time(r.CreatedAt), r.ProjectName, deploy.FormatNGN(r.Amount), r.ReceiptID, r.IdempotencyKey, r.BalanceSource)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", config.HistoryLimit, "maximum rows")
	cmd.Flags().StringVar(&project, "project", "", "only receipts for this project ID")
	return cmd
}

func newReceiptCmd(a *app) *cobra.Command {
	receipt := &cobra.Command{
		Use:   "receipt",
		Short: "Work with journaled receipts",
	}
	var dir string
	export := &cobra.Command{
		Use:   "export [idempotency-key]",
		Short: "Export a journaled receipt as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			rec, err := db.GetReceipt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dir == "" {
				dir = util.ReceiptsDir(config.AppName)
			}
			path, err := tui.ExportReceiptPDF(dir, tui.SummaryFromRecord(rec))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Receipt saved to %s\n", path)
			return nil
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "output directory")
	receipt.AddCommand(export)
	return receipt
}

// openJournal opens the journal for reading even when recording is disabled.
func (a *app) openJournal(ctx context.Context) (*database.Database, error) {
	return database.Open(ctx, a.ledgerPath())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, tui.VersionLabel())
			return nil
		},
	}
}
