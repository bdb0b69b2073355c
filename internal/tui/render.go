package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/seedx/console/internal/config"
	"github.com/seedx/console/internal/deploy"
)

func (m WizardModel) View() string {
	if m.quit {
		return ""
	}
	width := contentWidth(m.width)
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("SEEDx Capital Deployment"))
	b.WriteString("\n")
	b.WriteString(m.renderStepper())
	b.WriteString("\n\n")
	b.WriteString(m.renderBalance())
	b.WriteString("\n\n")

	switch m.wizard.Step {
	case deploy.StepSelectProject:
		b.WriteString(m.renderProjects(width))
	case deploy.StepEnterAmount:
		b.WriteString(m.renderAmount())
	case deploy.StepReview:
		b.WriteString(m.renderReview(width))
	case deploy.StepSubmitted:
		b.WriteString(m.renderSubmitted(width))
	}

	if n := m.renderNotice(width); n != "" {
		b.WriteString("\n\n")
		b.WriteString(n)
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(CurrentTheme.Warning.Render(truncateLabel(m.status, width)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter(width))

	return CurrentTheme.Base.Render(Frame().Width(width).Render(b.String()))
}

func (m WizardModel) renderStepper() string {
	parts := make([]string, 0, len(deploy.Steps))
	for _, s := range deploy.Steps {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s < m.wizard.Step:
			parts = append(parts, CurrentTheme.StepDone.Render("✓ "+label))
		case s == m.wizard.Step:
			parts = append(parts, CurrentTheme.StepNow.Render(label))
		default:
			parts = append(parts, CurrentTheme.StepTodo.Render(label))
		}
	}
	return strings.Join(parts, CurrentTheme.Dim.Render(" › "))
}

func (m WizardModel) renderBalance() string {
	if m.balance == nil {
		return CurrentTheme.Dim.Render("Treasury balance: loading...")
	}
	line := "Treasury balance: " + CurrentTheme.Amount.Render(FormatBalance(*m.balance))
	if m.balance.IsFallback() {
		line += " " + CurrentTheme.Demo.Render("DEMO")
		if m.balance.Reason != "" {
			line += " " + CurrentTheme.Dim.Render(m.balance.Reason)
		}
	}
	return line
}

func (m WizardModel) renderProjects(width int) string {
	switch {
	case m.projectsLoading:
		return CurrentTheme.Dim.Render("Loading projects...")
	case m.projectsErr != nil:
		return CurrentTheme.Error.Render("Could not load projects. Press q to quit and try again.")
	case len(m.projects) == 0:
		return CurrentTheme.Dim.Render("No projects available for deployment.")
	}

	var lines []string
	lines = append(lines, CurrentTheme.Focused.Render("Select a project"))
	start, end := visibleWindow(len(m.projects), m.cursor, config.MaxVisibleProjects)
	if start > 0 {
		lines = append(lines, CurrentTheme.Dim.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		p := m.projects[i]
		pointer := "  "
		if i == m.cursor {
			pointer = CurrentTheme.Cursor.Render("› ")
		}
		mark := "○ "
		nameStyle := CurrentTheme.Project
		if p.ID == m.wizard.ProjectID {
			mark = "● "
			nameStyle = CurrentTheme.Selected
		}
		name := truncateLabel(p.Name, width-fundingBarWidth-8)
		bar := ""
		if p.TargetAmount.IsPositive() {
			pct, _ := p.FundingProgress().Div(decimalHundred).Float64()
			bar = " " + m.funding.ViewAs(pct)
		}
		lines = append(lines, pointer+mark+nameStyle.Render(name)+bar)
		if meta := FormatProjectMeta(p); meta != "" {
			lines = append(lines, "    "+CurrentTheme.Dim.Render(truncateLabel(meta, width-4)))
		}
		if p.Description != "" && i == m.cursor {
			desc := strings.SplitN(p.Description, "\n", config.DescriptionLines+1)[0]
			lines = append(lines, "    "+CurrentTheme.Dim.Render(truncateLabel(desc, width-4)))
		}
	}
	if end < len(m.projects) {
		lines = append(lines, CurrentTheme.Dim.Render(fmt.Sprintf("  ↓ %d more", len(m.projects)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderAmount() string {
	var lines []string
	if p, ok := m.selectedProject(); ok {
		lines = append(lines, "Project: "+CurrentTheme.Selected.Render(p.Name))
	}
	lines = append(lines, CurrentTheme.Focused.Render("Amount to deploy ("+m.currency()+")"))
	lines = append(lines, CurrentTheme.Input.Render(m.amountInput.View()))

	shortcuts := make([]string, 0, len(config.ShortcutPercents))
	for i, pct := range config.ShortcutPercents {
		label := fmt.Sprintf("alt+%d %d%%", i+1, pct)
		if pct == m.shortcut {
			shortcuts = append(shortcuts, CurrentTheme.Highlight.Render(label))
		} else {
			shortcuts = append(shortcuts, CurrentTheme.Dim.Render(label))
		}
	}
	lines = append(lines, strings.Join(shortcuts, "  "))

	if m.balance != nil {
		check := deploy.ValidateAmount(m.wizard.Amount, m.balance.Amount)
		if msg := check.Reason.Message(); msg != "" {
			lines = append(lines, CurrentTheme.Error.Render(msg))
		} else if check.Valid {
			lines = append(lines, CurrentTheme.Dim.Render("Deploying "+deploy.FormatNGN(check.Amount)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderReview(width int) string {
	name := m.wizard.ProjectID
	if p, ok := m.selectedProject(); ok {
		name = p.Name
	}
	amount := deploy.ParseAmount(m.wizard.Amount)
	rows := [][2]string{
		{"Project", name},
		{"Amount", deploy.FormatNGN(amount) + " " + m.currency()},
		{"Type", "Capital allocation"},
	}
	if m.balance != nil {
		rows = append(rows, [2]string{"Balance after", deploy.FormatNGN(m.balance.Amount.Sub(amount))})
	}
	var lines []string
	lines = append(lines, CurrentTheme.Focused.Render("Review deployment"))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %-14s %s", r[0], CurrentTheme.Amount.Render(r[1])))
	}
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Width(width-4).Render(CurrentTheme.Warning.Render(config.GovernanceDisclosure)))
	if m.wizard.IdempotencyKey != "" {
		lines = append(lines, CurrentTheme.Dim.Render("Request key "+m.wizard.IdempotencyKey))
	}
	if m.wizard.Submitting {
		lines = append(lines, "")
		lines = append(lines, m.spinner.View()+" "+CurrentTheme.Highlight.Render("Submitting…"))
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderSubmitted(width int) string {
	var lines []string
	lines = append(lines, CurrentTheme.Success.Render("Deployment submitted"))
	if r := m.wizard.Receipt; r != nil {
		if r.ID != "" {
			lines = append(lines, "  Receipt  "+r.ID)
		}
		if r.Status != "" {
			lines = append(lines, "  Status   "+r.Status)
		}
		if r.TxHash != "" {
			lines = append(lines, "  Tx       "+truncateLabel(r.TxHash, width-13))
		}
	}
	return strings.Join(lines, "\n")
}

func (m WizardModel) renderNotice(width int) string {
	if m.notice.IsZero() {
		return ""
	}
	style := CurrentTheme.Success
	if m.notice.Kind == deploy.NoticeError {
		style = CurrentTheme.Error
	}
	body := lipgloss.NewStyle().Width(width - 4).Render(m.notice.Text)
	return style.Render(m.notice.Title) + "\n" + body
}

func (m WizardModel) renderFooter(width int) string {
	help := m.keys.HelpForStep(m.wizard.Step)
	return CurrentTheme.Dim.Render(truncateLabel(help, width)) + "\n" + CurrentTheme.Dim.Render(VersionLabel())
}
