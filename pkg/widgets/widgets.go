package widgets

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/turris-cz/foris/pkg/validators"
)

// Built-in field-type tags recognised by the default registry.
const (
	TypeText     = "text"
	TypePassword = "password"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeDropdown = "dropdown"
	TypeRadio    = "radio"
	TypeHidden   = "hidden"
	TypeNumber   = "number"
	TypeEmail    = "email"
)

// Option is one selectable choice of a dropdown or radio widget.
type Option struct {
	Value string
	Label string
}

// Widget is the concrete rendering/validation adapter behind a field. It is
// built once per field via the registry, seeded with either the current value
// (display path) or a validation outcome (post-validate path), and rendered
// into markup.
type Widget struct {
	kind       string
	name       string
	options    []Option
	validators []validators.Validator
	attrs      map[string]string

	value   string
	checked bool
	note    string
}

func newWidget(kind, name string, options []Option, list []validators.Validator, attrs map[string]string) *Widget {
	w := &Widget{
		kind:       kind,
		name:       name,
		options:    slices.Clone(options),
		validators: slices.Clone(list),
		attrs:      make(map[string]string, len(attrs)),
	}
	for key, value := range attrs {
		w.attrs[key] = value
	}
	return w
}

// Name returns the field name the widget renders under.
func (w *Widget) Name() string { return w.name }

// Kind returns the field-type tag the widget was built for.
func (w *Widget) Kind() string { return w.kind }

// ID returns the HTML id attribute value.
func (w *Widget) ID() string { return "field-" + w.name }

// Note returns the validation note recorded by Validate, empty when the value
// passed or Validate has not run.
func (w *Widget) Note() string { return w.note }

// Value returns the currently bound value.
func (w *Widget) Value() string { return w.value }

// AddClass appends a CSS class token to the widget's class attribute.
func (w *Widget) AddClass(class string) {
	if class == "" {
		return
	}
	existing := w.attrs["class"]
	if existing == "" {
		w.attrs["class"] = class
		return
	}
	w.attrs["class"] = existing + " " + class
}

// SetValue seeds the widget with the current field value for display.
// Checkboxes interpret the value as a checked flag ("0", "" and false mean
// unchecked) and keep their submit value fixed at "1".
func (w *Widget) SetValue(value any) {
	if w.kind == TypeCheckbox {
		w.checked = truthy(value)
		w.value = "1"
		return
	}
	w.value = Stringify(value)
}

// Validate binds the widget against merged form data and records a note when
// any validator rejects the value. The note is returned; an empty note means
// the value passed.
func (w *Widget) Validate(data map[string]any, name string) string {
	raw := data[name]
	w.SetValue(raw)
	checked := Stringify(raw)
	if w.kind == TypeCheckbox {
		if w.checked {
			checked = "1"
		} else {
			checked = ""
		}
	}
	w.note = ""
	for _, v := range w.validators {
		if err := v.Validate(checked); err != nil {
			w.note = err.Error()
			break
		}
	}
	return w.note
}

// Render produces the control markup. Output is deterministic: attributes are
// emitted in sorted key order so repeated renders are byte-identical.
func (w *Widget) Render() string {
	switch w.kind {
	case TypeTextarea:
		return w.renderTextarea()
	case TypeCheckbox:
		return w.renderCheckbox()
	case TypeDropdown:
		return w.renderDropdown()
	case TypeRadio:
		return w.renderRadio()
	default:
		return w.renderInput(w.kind)
	}
}

func (w *Widget) renderInput(inputType string) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(html.EscapeString(inputType))
	b.WriteString(`" id="`)
	b.WriteString(html.EscapeString(w.ID()))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(w.name))
	b.WriteString(`" value="`)
	b.WriteString(html.EscapeString(w.value))
	b.WriteString(`"`)
	w.writeAttrs(&b)
	b.WriteString(" />")
	return b.String()
}

func (w *Widget) renderTextarea() string {
	var b strings.Builder
	b.WriteString(`<textarea id="`)
	b.WriteString(html.EscapeString(w.ID()))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(w.name))
	b.WriteString(`"`)
	w.writeAttrs(&b)
	b.WriteString(">")
	b.WriteString(html.EscapeString(w.value))
	b.WriteString("</textarea>")
	return b.String()
}

func (w *Widget) renderCheckbox() string {
	var b strings.Builder
	b.WriteString(`<input type="checkbox" id="`)
	b.WriteString(html.EscapeString(w.ID()))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(w.name))
	b.WriteString(`" value="1"`)
	if w.checked {
		b.WriteString(` checked="checked"`)
	}
	w.writeAttrs(&b)
	b.WriteString(" />")
	return b.String()
}

func (w *Widget) renderDropdown() string {
	var b strings.Builder
	b.WriteString(`<select id="`)
	b.WriteString(html.EscapeString(w.ID()))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(w.name))
	b.WriteString(`"`)
	w.writeAttrs(&b)
	b.WriteString(">\n")
	for _, option := range w.options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(option.Value))
		b.WriteString(`"`)
		if option.Value == w.value {
			b.WriteString(` selected="selected"`)
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(option.Label))
		b.WriteString("</option>\n")
	}
	b.WriteString("</select>")
	return b.String()
}

func (w *Widget) renderRadio() string {
	var b strings.Builder
	for idx, option := range w.options {
		if idx > 0 {
			b.WriteByte('\n')
		}
		id := fmt.Sprintf("%s-%d", w.ID(), idx)
		b.WriteString(`<label for="`)
		b.WriteString(html.EscapeString(id))
		b.WriteString(`"><input type="radio" id="`)
		b.WriteString(html.EscapeString(id))
		b.WriteString(`" name="`)
		b.WriteString(html.EscapeString(w.name))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(option.Value))
		b.WriteString(`"`)
		if option.Value == w.value {
			b.WriteString(` checked="checked"`)
		}
		w.writeAttrs(&b)
		b.WriteString(" /> ")
		b.WriteString(html.EscapeString(option.Label))
		b.WriteString("</label>")
	}
	return b.String()
}

func (w *Widget) writeAttrs(b *strings.Builder) {
	if len(w.attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(w.attrs))
	for key := range w.attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(html.EscapeString(key))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(w.attrs[key]))
		b.WriteString(`"`)
	}
}

// Stringify renders a merged-data value the way it would appear in a request:
// booleans collapse to "1"/"", nil to "".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	default:
		s := Stringify(v)
		return s != "" && s != "0"
	}
}
