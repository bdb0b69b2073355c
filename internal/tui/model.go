package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"go.uber.org/zap"
)

// ProjectLister loads the fundable projects.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
}

// ReceiptJournal records confirmed allocations locally.
type ReceiptJournal interface {
	RecordReceipt(ctx context.Context, rec models.ReceiptRecord) (int64, error)
}

// Deps are the collaborators the console needs. Journal and OnComplete are optional.
type Deps struct {
	Ctx         context.Context
	Projects    ProjectLister
	Balance     deploy.BalanceFetcher
	Policy      deploy.BalancePolicy
	Controller  *deploy.Controller
	Journal     ReceiptJournal
	Logger      *zap.Logger
	ReceiptsDir string
	OnComplete  func(models.Receipt)
}

// MainModel is the root bubbletea model. It owns global keys and window
// size and delegates everything else to the deployment wizard.
type MainModel struct {
	wizard WizardModel
	err    error
	width  int
	height int
}

func NewMainModel(deps Deps) MainModel {
	m := MainModel{wizard: NewWizardModel(deps)}
	if deps.Controller == nil {
		m.err = fmt.Errorf("no deployment controller configured")
	}
	return m
}

func (m MainModel) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return m.wizard.Init()
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.wizard.dismiss()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	if m.err != nil {
		return m, nil
	}
	next, cmd := m.wizard.Update(msg)
	m.wizard = next.(WizardModel)
	return m, cmd
}

func (m MainModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\nPress Ctrl+C to quit.", m.err)
	}
	return m.wizard.View()
}
