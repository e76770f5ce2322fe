package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmartins/livraria/internal/tui/styles"
)

// Form is a small stack of labelled text inputs. Enter moves to the next
// field and submits on the last; esc cancels. Field values are plain
// strings — each flow parses and validates them on submit.
type Form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

// NewForm creates a form with one input per label.
func NewForm(title string, labels ...string) Form {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 40
		ti.Prompt = "> "
		ti.PlaceholderStyle = styles.DimStyle
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return Form{title: title, labels: labels, inputs: inputs}
}

// SetPlaceholder sets the hint text of field i.
func (f *Form) SetPlaceholder(i int, hint string) {
	f.inputs[i].Placeholder = hint
}

// Value returns the current text of field i.
func (f Form) Value(i int) string {
	return f.inputs[i].Value()
}

// Update handles input events; submitted is true when enter is pressed on
// the last field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return f, nil, true
			}
			f.inputs[f.focus].Blur()
			f.focus++
			f.inputs[f.focus].Focus()
			return f, nil, false
		case "tab", "down":
			f.inputs[f.focus].Blur()
			f.focus = (f.focus + 1) % len(f.inputs)
			f.inputs[f.focus].Focus()
			return f, nil, false
		case "shift+tab", "up":
			f.inputs[f.focus].Blur()
			f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
			f.inputs[f.focus].Focus()
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the form inside a bordered panel.
func (f Form) View() string {
	rows := make([]string, 0, 2*len(f.inputs)+1)
	rows = append(rows, styles.TitleStyle.Render(f.title), "")
	for i, label := range f.labels {
		style := styles.SubtitleStyle
		if i == f.focus {
			style = styles.AccentStyle
		}
		rows = append(rows, style.Render(label), f.inputs[i].View())
	}
	rows = append(rows, styles.HelpStyle.Render("enter: next/confirm • esc: cancel"))

	return styles.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
