package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// field describes one form input.
type field struct {
	label       string
	placeholder string
	value       string // initial value, restored on reset
}

// form is a column of labelled text inputs with one focused input.
type form struct {
	fields []field
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) *form {
	f := &form{fields: fields}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fd.placeholder
		ti.CharLimit = 256
		ti.Width = 40
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(fd.value)
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

// value returns the raw text of input i.
func (f *form) value(i int) string { return f.inputs[i].Value() }

func (f *form) setValue(i int, s string) { f.inputs[i].SetValue(s) }

// reset restores every input to its initial value and focuses the first one.
func (f *form) reset() {
	for i, fd := range f.fields {
		f.inputs[i].SetValue(fd.value)
	}
	f.setFocus(0)
}

// update forwards msg to the focused input and reports whether its text changed.
func (f *form) update(msg tea.Msg) (tea.Cmd, bool) {
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, f.inputs[f.focus].Value() != before
}

func (f *form) setWidth(w int) {
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *form) view() string {
	rows := make([]string, 0, len(f.inputs)*2)
	for i, in := range f.inputs {
		style := inputStyle
		if i == f.focus {
			style = inputFocusedStyle
		}
		rows = append(rows, labelStyle.Render(f.fields[i].label), style.Render(in.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
