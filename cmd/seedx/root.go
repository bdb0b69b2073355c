package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/api"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/database"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/tui"
	"github.com/seedx/console/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	apiURL     string
	verbose    bool
	demo       bool
	ledger     bool
	theme      string
}

// app is the wiring built once per invocation.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	client *api.HTTPClient
	stdin  io.Reader
	isTTY  bool
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	opts := &options{}
	a := &app{stdin: stdin}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "SEEDx treasury capital deployment console",
		Long: `seedx lets treasury administrators deploy capital from the SEEDx
treasury to a regenerative-agriculture project.

Run without arguments to start the interactive deployment wizard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.apiURL, "api-url", "", "SEEDx API base URL")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.demo, "demo", false, "always use the demo treasury balance")
	flags.BoolVar(&opts.ledger, "ledger", false, "record confirmed receipts in the local journal")
	flags.StringVar(&opts.theme, "theme", "default", "color theme (default, mono)")

	root.AddCommand(
		newProjectsCmd(a),
		newBalanceCmd(a),
		newDeployCmd(a),
		newHistoryCmd(a),
		newReceiptCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration in order: defaults, file, environment, flags.
func (a *app) setup(cmd *cobra.Command, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.demo {
		cfg.Treasury.FallbackPolicy = config.FallbackAlways
	}
	if opts.ledger {
		cfg.Ledger.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	tui.SetTheme(opts.theme)

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = filepath.Join(util.DataDir(config.AppName), config.LogFileName)
	}
	logger, err := util.NewLogger(logPath, cfg.Logging.Level, opts.verbose)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.cfg = cfg
	if f, ok := a.stdin.(*os.File); ok {
		a.isTTY = term.IsTerminal(int(f.Fd()))
	}

	client := api.NewHTTP(cfg.API.BaseURL, cfg.API.Token)
	client.FetchTimeout = cfg.FetchTimeoutDuration()
	client.Logger = a.logger.Named("api")
	a.client = client
	return nil
}

// ensureSession asks for an admin token on an interactive terminal when none
// is configured. Without one the balance falls back per policy.
func (a *app) ensureSession() error {
	if a.client.HasSession() || !a.isTTY || a.cfg.Treasury.FallbackPolicy == config.FallbackAlways {
		return nil
	}
	token, err := promptForToken("SEEDx admin token (leave empty for demo balance): ")
	if err != nil {
		return err
	}
	a.client.Token = token
	return nil
}

func promptForToken(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(token)), err
}

func (a *app) policy() deploy.BalancePolicy {
	return deploy.PolicyFromConfig(a.cfg.Treasury)
}

func (a *app) controller() *deploy.Controller {
	return deploy.NewController(a.client, deploy.ControllerConfig{
		Timeout: a.cfg.SubmitTimeoutDuration(),
		Logger:  a.logger.Named("deploy"),
	})
}

func (a *app) ledgerPath() string {
	if a.cfg.Ledger.Path != "" {
		return a.cfg.Ledger.Path
	}
	return filepath.Join(util.DataDir(config.AppName), config.LedgerFileName)
}

// openLedger returns nil when the journal is disabled.
func (a *app) openLedger(ctx context.Context) (*database.Database, error) {
	if !a.cfg.Ledger.Enabled {
		return nil, nil
	}
	db, err := database.Open(ctx, a.ledgerPath())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("receipt journal opened", zap.String("path", db.Path()))
	return db, nil
}

func (a *app) runWizard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.ensureSession(); err != nil {
		return err
	}
	ledger, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer ledger.Close()

	deps := tui.Deps{
		Ctx:         ctx,
		Projects:    a.client,
		Balance:     a.client,
		Policy:      a.policy(),
		Controller:  a.controller(),
		Logger:      a.logger.Named("tui"),
		ReceiptsDir: util.ReceiptsDir(config.AppName),
		OnComplete: func(r models.Receipt) {
			a.logger.Info("deployment flow completed", zap.String("receipt_id", r.ID))
		},
	}
	if ledger != nil {
		deps.Journal = ledger
	}
	p := tea.NewProgram(tui.NewMainModel(deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
