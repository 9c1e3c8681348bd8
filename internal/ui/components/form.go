// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// =============================================================================
// FIELD DEFINITIONS
// =============================================================================

// FieldKind selects the input widget of a field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldArea
	FieldSelect
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form field.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
	Options     []Option // FieldSelect only
	Default     string
	Required    bool
	Height      int // FieldArea rows, default 4
}

type formField struct {
	Field
	input  textinput.Model
	area   textarea.Model
	option int
}

// =============================================================================
// KEY MAP
// =============================================================================

// FormKeyMap defines the keys a form reacts to.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Down   key.Binding
	Up     key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
}

// DefaultFormKeyMap returns the default form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-Tab", "previous field")),
		Down:   key.NewBinding(key.WithKeys("down")),
		Up:     key.NewBinding(key.WithKeys("up")),
		Left:   key.NewBinding(key.WithKeys("left")),
		Right:  key.NewBinding(key.WithKeys("right")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "submit")),
	}
}

// =============================================================================
// FORM
// =============================================================================

// Form is a vertical list of fields followed by a submit button. Focus
// index len(fields) is the button.
type Form struct {
	fields   []*formField
	focus    int
	submit   string
	width    int
	disabled bool
	keys     FormKeyMap
}

// NewForm builds a form. The first field starts focused once Focus is called.
func NewForm(submit string, fields ...Field) *Form {
	f := &Form{submit: submit, keys: DefaultFormKeyMap(), width: 60}
	for _, fd := range fields {
		ff := &formField{Field: fd}
		switch fd.Kind {
		case FieldArea:
			ff.area = textarea.New()
			ff.area.Placeholder = fd.Placeholder
			ff.area.ShowLineNumbers = false
			ff.area.CharLimit = 0
			h := fd.Height
			if h <= 0 {
				h = 4
			}
			ff.area.SetHeight(h)
			ff.area.SetValue(fd.Default)
		case FieldSelect:
			ff.option = optionIndex(fd.Options, fd.Default)
		default:
			ff.input = textinput.New()
			ff.input.Prompt = ""
			ff.input.Placeholder = fd.Placeholder
			ff.input.SetValue(fd.Default)
		}
		f.fields = append(f.fields, ff)
	}
	f.SetWidth(f.width)
	return f
}

func optionIndex(opts []Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return 0
}

// SetWidth sets the width available to inputs.
func (f *Form) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	f.width = w
	for _, ff := range f.fields {
		switch ff.Kind {
		case FieldArea:
			ff.area.SetWidth(w - 2)
		case FieldText:
			ff.input.Width = w - 2
		}
	}
}

// SetDisabled disables the submit button while a request is pending.
func (f *Form) SetDisabled(disabled bool) { f.disabled = disabled }

// Disabled reports whether the submit button is disabled.
func (f *Form) Disabled() bool { return f.disabled }

// Focus focuses the current field.
func (f *Form) Focus() tea.Cmd {
	return f.setFocus(f.focus)
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for _, ff := range f.fields {
		switch ff.Kind {
		case FieldArea:
			ff.area.Blur()
		case FieldText:
			ff.input.Blur()
		}
	}
}

// FocusIndex returns the focused position; len(fields) is the button.
func (f *Form) FocusIndex() int { return f.focus }

// OnButton reports whether the submit button is focused.
func (f *Form) OnButton() bool { return f.focus == len(f.fields) }

func (f *Form) setFocus(i int) tea.Cmd {
	n := len(f.fields) + 1
	f.focus = ((i % n) + n) % n
	f.Blur()
	if f.OnButton() {
		return nil
	}
	ff := f.fields[f.focus]
	switch ff.Kind {
	case FieldArea:
		return ff.area.Focus()
	case FieldText:
		return ff.input.Focus()
	}
	return nil
}

// Update handles a message. submitted is true when the button was pressed
// on an enabled form.
func (f *Form) Update(msg tea.Msg) (submitted bool, cmd tea.Cmd) {
	var cur *formField
	if !f.OnButton() {
		cur = f.fields[f.focus]
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		inArea := cur != nil && cur.Kind == FieldArea
		switch {
		case key.Matches(km, f.keys.Next):
			return false, f.setFocus(f.focus + 1)
		case key.Matches(km, f.keys.Prev):
			return false, f.setFocus(f.focus - 1)
		case !inArea && key.Matches(km, f.keys.Down):
			return false, f.setFocus(f.focus + 1)
		case !inArea && key.Matches(km, f.keys.Up):
			return false, f.setFocus(f.focus - 1)
		case cur != nil && cur.Kind == FieldSelect && key.Matches(km, f.keys.Left):
			cur.cycle(-1)
			return false, nil
		case cur != nil && cur.Kind == FieldSelect && key.Matches(km, f.keys.Right):
			cur.cycle(1)
			return false, nil
		case key.Matches(km, f.keys.Submit) && !inArea:
			if cur == nil {
				return !f.disabled, nil
			}
			return false, f.setFocus(f.focus + 1)
		}
	}

	if cur == nil {
		return false, nil
	}
	switch cur.Kind {
	case FieldArea:
		cur.area, cmd = cur.area.Update(msg)
	case FieldText:
		cur.input, cmd = cur.input.Update(msg)
	}
	return false, cmd
}

func (ff *formField) cycle(delta int) {
	n := len(ff.Options)
	if n == 0 {
		return
	}
	ff.option = ((ff.option+delta)%n + n) % n
}

// =============================================================================
// VALUES
// =============================================================================

func (f *Form) field(key string) *formField {
	for _, ff := range f.fields {
		if ff.Key == key {
			return ff
		}
	}
	return nil
}

// Value returns the current value of key, or "" for an unknown key.
func (f *Form) Value(key string) string {
	ff := f.field(key)
	if ff == nil {
		return ""
	}
	switch ff.Kind {
	case FieldArea:
		return ff.area.Value()
	case FieldSelect:
		if len(ff.Options) == 0 {
			return ""
		}
		return ff.Options[ff.option].Value
	default:
		return ff.input.Value()
	}
}

// Values returns every field value keyed by field key.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, ff := range f.fields {
		out[ff.Key] = f.Value(ff.Key)
	}
	return out
}

// SetValue sets key. Select fields ignore values that are not an option.
func (f *Form) SetValue(key, value string) {
	ff := f.field(key)
	if ff == nil {
		return
	}
	switch ff.Kind {
	case FieldArea:
		ff.area.SetValue(value)
	case FieldSelect:
		for i, o := range ff.Options {
			if o.Value == value {
				ff.option = i
			}
		}
	default:
		ff.input.SetValue(value)
	}
}

// SetOptions replaces a select field's options, keeping the current value
// when it is still offered.
func (f *Form) SetOptions(key string, opts []Option) {
	ff := f.field(key)
	if ff == nil || ff.Kind != FieldSelect {
		return
	}
	current := f.Value(key)
	ff.Options = opts
	ff.option = optionIndex(opts, current)
}

// Missing returns the labels of required fields that are blank.
func (f *Form) Missing() []string {
	var missing []string
	for _, ff := range f.fields {
		if ff.Required && strings.TrimSpace(f.Value(ff.Key)) == "" {
			missing = append(missing, ff.Label)
		}
	}
	return missing
}

// Reset restores every field to its default.
func (f *Form) Reset() {
	for _, ff := range f.fields {
		switch ff.Kind {
		case FieldArea:
			ff.area.SetValue(ff.Default)
		case FieldSelect:
			ff.option = optionIndex(ff.Options, ff.Default)
		default:
			ff.input.SetValue(ff.Default)
		}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form.
func (f *Form) View(theme *styles.Theme) string {
	var sb strings.Builder
	for i, ff := range f.fields {
		focused := i == f.focus
		label := ff.Label
		if ff.Required {
			label += " *"
		}
		if focused {
			sb.WriteString(theme.FormLabelFocused.Render("› " + label))
		} else {
			sb.WriteString(theme.FormLabel.Render("  " + label))
		}
		sb.WriteString("\n")

		switch ff.Kind {
		case FieldArea:
			sb.WriteString(indent(ff.area.View(), 2))
		case FieldSelect:
			sb.WriteString("  " + f.renderOptions(theme, ff, focused))
		default:
			sb.WriteString("  " + ff.input.View())
		}
		sb.WriteString("\n")
	}

	button := theme.Button
	switch {
	case f.disabled:
		button = theme.ButtonDisabled
	case f.OnButton():
		button = theme.ButtonFocused
	}
	sb.WriteString(button.Render(f.submit))
	return sb.String()
}

func (f *Form) renderOptions(theme *styles.Theme, ff *formField, focused bool) string {
	if len(ff.Options) == 0 {
		return theme.Muted.Render("(trống)")
	}
	parts := make([]string, 0, len(ff.Options)+2)
	if focused {
		parts = append(parts, theme.Muted.Render("◀ "))
	}
	for i, o := range ff.Options {
		if i == ff.option {
			parts = append(parts, theme.OptionSelected.Render(o.Label))
		} else {
			parts = append(parts, theme.Option.Render(o.Label))
		}
	}
	if focused {
		parts = append(parts, theme.Muted.Render(" ▶"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
