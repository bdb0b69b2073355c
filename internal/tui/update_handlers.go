package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
	"github.com/seedx/console/internal/models"
	"github.com/seedx/console/internal/util"
)

var (
	selectStep = []deploy.Step{deploy.StepSelectProject}
	amountStep = []deploy.Step{deploy.StepEnterAmount}
	reviewStep = []deploy.Step{deploy.StepReview}
	doneStep   = []deploy.Step{deploy.StepSubmitted}
)

func newWizardKeys() *HandlerRegistry {
	r := NewHandlerRegistry()

	// Step 1
	r.Register(KeyBinding{Key: "up", Handler: handleCursorUp, Description: "Move", Steps: selectStep})
	r.Register(KeyBinding{Key: "k", Handler: handleCursorUp, Steps: selectStep})
	r.Register(KeyBinding{Key: "down", Handler: handleCursorDown, Steps: selectStep})
	r.Register(KeyBinding{Key: "j", Handler: handleCursorDown, Steps: selectStep})
	r.Register(KeyBinding{Key: " ", Handler: handleSelect, Description: "Select", Steps: selectStep})
	r.Register(KeyBinding{Key: "enter", Handler: handleSelectAndNext, Description: "Continue", Steps: selectStep})
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "Quit", Steps: selectStep})
	r.Register(KeyBinding{Key: "esc", Handler: handleQuit, Steps: selectStep})

	// Step 2
	r.Register(KeyBinding{Key: "enter", Handler: handleNext, Description: "Review", Steps: amountStep})
	r.Register(KeyBinding{Key: "esc", Handler: handleBack, Description: "Back", Steps: amountStep})
	r.Register(KeyBinding{Key: "tab", Handler: handleCycleShortcut, Description: "25/50/75/100%", Steps: amountStep})
	for i, pct := range config.ShortcutPercents {
		r.Register(KeyBinding{
			Key:     "alt+" + string(rune('1'+i)),
			Handler: func(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) { return m.applyShortcut(pct), nil, true },
			Steps:   amountStep,
		})
	}

	// Step 3
	r.Register(KeyBinding{Key: "enter", Handler: handleSubmit, Description: "Deploy", Steps: reviewStep})
	r.Register(KeyBinding{Key: "y", Handler: handleSubmit, Steps: reviewStep})
	r.Register(KeyBinding{Key: "esc", Handler: handleBack, Description: "Back", Steps: reviewStep})
	r.Register(KeyBinding{Key: "b", Handler: handleBack, Steps: reviewStep})
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "Quit", Steps: reviewStep})

	// Step 4
	r.Register(KeyBinding{Key: "enter", Handler: handleReset, Description: "New deployment", Steps: doneStep})
	r.Register(KeyBinding{Key: "r", Handler: handleReset, Steps: doneStep})
	r.Register(KeyBinding{Key: "p", Handler: handleExport, Description: "Export PDF", Steps: doneStep})
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "Quit", Steps: doneStep})

	return r
}

func handleCursorUp(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if m.cursor > 0 {
		m.cursor--
	}
	return m, nil, true
}

func handleCursorDown(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if m.cursor < len(m.projects)-1 {
		m.cursor++
	}
	return m, nil, true
}

func handleSelect(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if len(m.projects) == 0 {
		return m, nil, true
	}
	if err := m.wizard.SelectProject(m.projects[m.cursor].ID); err != nil {
		util.LogError(m.logger, "select project", err)
	}
	return m, nil, true
}

func handleSelectAndNext(m WizardModel, key string) (WizardModel, tea.Cmd, bool) {
	m, _, _ = handleSelect(m, key)
	return handleNext(m, key)
}

func handleNext(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	balance := m.balanceAmount()
	if m.wizard.Step == deploy.StepEnterAmount && m.balance == nil {
		m.status = "Treasury balance is still loading"
		return m, nil, true
	}
	if err := m.wizard.Next(balance); err != nil {
		if errors.Is(err, deploy.ErrNoProjectSelected) {
			m.status = "Select a project first"
		}
		return m, nil, true
	}
	m.status = ""
	m.notice = deploy.Notice{}
	if m.wizard.Step == deploy.StepEnterAmount {
		return m, m.amountInput.Focus(), true
	}
	m.amountInput.Blur()
	return m, nil, true
}

func handleBack(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if err := m.wizard.Back(); err != nil {
		if errors.Is(err, deploy.ErrSubmissionInFlight) {
			m.status = "Submission in progress"
		}
		return m, nil, true
	}
	m.status = ""
	m.notice = deploy.Notice{}
	if m.wizard.Step == deploy.StepEnterAmount {
		return m, m.amountInput.Focus(), true
	}
	m.amountInput.Blur()
	return m, nil, true
}

func handleCycleShortcut(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	return m.applyShortcut(deploy.NextShortcut(m.shortcut)), nil, true
}

// applyShortcut fills the amount with pct% of the balance.
func (m WizardModel) applyShortcut(pct int) WizardModel {
	if m.balance == nil {
		m.status = "Treasury balance is still loading"
		return m
	}
	m.shortcut = pct
	m.amountInput.SetValue(deploy.PercentOf(m.balance.Amount, pct))
	m.amountInput.CursorEnd()
	m.syncAmount()
	return m
}

func handleSubmit(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if m.deps.Controller == nil {
		return m, nil, true
	}
	project, ok := m.selectedProject()
	if !ok {
		project = models.Project{ID: m.wizard.ProjectID}
	}
	attempt, err := m.deps.Controller.Begin(m.wizard, project)
	if err != nil {
		if !errors.Is(err, deploy.ErrSubmissionInFlight) {
			util.LogError(m.logger, "begin submission", err)
		}
		return m, nil, true
	}
	m.notice = deploy.Notice{}
	m.status = ""
	return m, tea.Batch(submitCmd(m.ctx, m.deps.Controller, attempt), m.spinner.Tick), true
}

func handleReset(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	next, cmd := m.reset()
	return next, cmd, true
}

func handleExport(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	if m.summary == nil {
		return m, nil, true
	}
	m.status = "Exporting receipt..."
	return m, exportReceiptCmd(m.deps.ReceiptsDir, *m.summary), true
}

func handleQuit(m WizardModel, _ string) (WizardModel, tea.Cmd, bool) {
	m.dismiss()
	return m, tea.Quit, true
}
