package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	formLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	formHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// formField describes one labeled input.
type formField struct {
	key         string
	label       string
	placeholder string
	secret      bool
	value       string
}

// form is a vertical stack of labeled text inputs with a single focus.
// Every data-entry screen reuses it so keyboard behavior stays uniform.
type form struct {
	title  string
	fields []formField
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newForm(title string, fields ...formField) *form {
	f := &form{title: title, fields: fields}
	f.inputs = make([]textinput.Model, len(fields))
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = 256
		in.SetValue(field.value)
		if field.secret {
			in.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			in.Focus()
		}
		f.inputs[i] = in
	}
	return f
}

// Update moves focus on tab/up/down and forwards everything else to the
// focused input. Enter on the last field reports submission.
func (f *form) Update(msg tea.Msg) (submitted bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return false, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return false, nil
		case "enter":
			if f.focus < len(f.inputs)-1 {
				f.setFocus(f.focus + 1)
				return false, nil
			}
			return true, nil
		}
	}
	if f.focus >= 0 && f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return false, cmd
}

func (f *form) setFocus(idx int) {
	if len(f.inputs) == 0 {
		return
	}
	if idx < 0 {
		idx = len(f.inputs) - 1
	}
	if idx >= len(f.inputs) {
		idx = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = idx
	f.inputs[f.focus].Focus()
}

// Value returns the trimmed value of the field with the given key.
func (f *form) Value(key string) string {
	for i, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

// SetError shows a validation message under the form.
func (f *form) SetError(msg string) { f.errMsg = msg }

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		b.WriteString(formLabelStyle.Render(field.label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString(formErrorStyle.Render("✗ " + f.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(formHintStyle.Render("Enter → submit    Tab → next field    Esc → back"))
	return b.String()
}
