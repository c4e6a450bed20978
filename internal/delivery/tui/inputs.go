package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newInput returns a textinput seeded with value.
func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 256
	in.Width = 48
	return in
}

// form is a small vertical stack of labelled inputs with one focused at a
// time. up/down move focus; all other keys go to the focused input.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...[2]string) form {
	f := form{}
	for _, field := range fields {
		f.labels = append(f.labels, field[0])
		f.inputs = append(f.inputs, newInput("", field[1]))
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f form) update(msg tea.KeyMsg) (form, tea.Cmd) {
	switch msg.String() {
	case "up":
		f = f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		return f, nil
	case "down":
		f = f.setFocus((f.focus + 1) % len(f.inputs))
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) setFocus(i int) form {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
	return f
}

// value returns the trimmed value of the input labelled label.
func (f form) value(label string) string {
	for i, l := range f.labels {
		if l == label {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

func (f form) view(fieldErrs map[string]string) string {
	var b strings.Builder
	for i, label := range f.labels {
		b.WriteString(styleLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg := fieldErrs[label]; msg != "" {
			b.WriteString(styleError.Render(msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}
