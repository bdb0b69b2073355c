package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seedx/console/internal/deploy"
)

type KeyHandler func(m WizardModel, key string) (WizardModel, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	Steps       []deploy.Step
}

func (b KeyBinding) AppliesToStep(step deploy.Step) bool {
	if len(b.Steps) == 0 {
		return true
	}
	for _, s := range b.Steps {
		if s == step {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
}

func (r *HandlerRegistry) Handle(m WizardModel, key string) (WizardModel, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToStep(m.wizard.Step) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) GetBindingsForStep(step deploy.Step) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToStep(step) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpForStep(step deploy.Step) string {
	bindings := r.GetBindingsForStep(step)
	seen := make(map[string]bool)
	var parts []string
	for _, b := range bindings {
		if b.Description == "" {
			continue
		}
		if seen[b.Description] {
			continue
		}
		seen[b.Description] = true
		key := b.Key
		if key == " " {
			key = "space"
		}
		parts = append(parts, "["+key+"] "+b.Description)
	}
	return strings.Join(parts, " | ")
}
