package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// formKind says what submitting the open form does.
type formKind int

const (
	employeeForm formKind = iota
	productForm
	loginForm
	profileForm
)

// field is a single-line labelled input.
type field struct {
	key      string
	label    string
	input    textinput.Model
	readOnly bool
}

// form is a vertical stack of fields with one focused at a time.
type form struct {
	kind   formKind
	title  string
	fields []*field
	focus  int
}

func newForm(kind formKind, title string) *form {
	return &form{kind: kind, title: title}
}

// add appends an editable field.
func (f *form) add(key, label, value, placeholder string) *form {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	f.fields = append(f.fields, &field{key: key, label: label, input: ti})
	return f
}

// addPassword appends a masked field.
func (f *form) addPassword(key, label, value string) *form {
	f.add(key, label, value, "")
	ti := &f.fields[len(f.fields)-1].input
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return f
}

// addReadOnly appends a field that is shown but never focused.
func (f *form) addReadOnly(key, label, value, placeholder string) *form {
	f.add(key, label, value, placeholder)
	f.fields[len(f.fields)-1].readOnly = true
	return f
}

// value returns the trimmed text of the field with key, or "".
func (f *form) value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

// rawValue returns the untrimmed text; passwords keep their spaces.
func (f *form) rawValue(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return fl.input.Value()
		}
	}
	return ""
}

// start focuses the first editable field.
func (f *form) start() tea.Cmd {
	f.focus = -1
	return f.move(1)
}

// move shifts focus by step (+1 or -1), skipping read-only fields and
// wrapping at either end.
func (f *form) move(step int) tea.Cmd {
	n := len(f.fields)
	if n == 0 {
		return nil
	}
	if f.focus >= 0 && f.focus < n {
		f.fields[f.focus].input.Blur()
	}
	next := f.focus
	for range n {
		next = (next + step + n) % n
		if !f.fields[next].readOnly {
			f.focus = next
			return f.fields[next].input.Focus()
		}
	}
	f.focus = -1
	return nil
}

// onLast reports whether the last editable field has focus.
func (f *form) onLast() bool {
	for i := len(f.fields) - 1; i >= 0; i-- {
		if !f.fields[i].readOnly {
			return i == f.focus
		}
	}
	return true
}

// Update forwards msg to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) View(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render(f.title))
	b.WriteString("\n\n")

	width := 0
	for _, fl := range f.fields {
		width = max(width, len(fl.label))
	}
	for i, fl := range f.fields {
		label := fl.label + strings.Repeat(" ", width-len(fl.label)) + "  "
		switch {
		case i == f.focus:
			b.WriteString(st.selected.Render(label))
		default:
			b.WriteString(st.label.Render(label))
		}
		if fl.readOnly {
			v := fl.input.Value()
			if v == "" {
				v = fl.input.Placeholder
			}
			b.WriteString(st.subtle.Render(v))
		} else {
			b.WriteString(fl.input.View())
		}
		b.WriteString("\n")
	}
	return b.String()
}
