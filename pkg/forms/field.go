package forms

import (
	"fmt"
	"html"
	"strings"

	"github.com/turris-cz/foris/pkg/nuci"
	"github.com/turris-cz/foris/pkg/validators"
	"github.com/turris-cz/foris/pkg/widgets"
)

// anyValue is the requirement sentinel: the required field must be present in
// the merged data, its value does not matter.
type anyValue struct{}

// Preproc extracts a field value from a raw configuration node. The default
// takes the node's scalar value.
type Preproc func(node *nuci.Node) any

// Field is a leaf of the form tree: a single named, typed input with
// validators, an optional binding into the remote configuration and a set of
// visibility requirements on other fields.
type Field struct {
	form *Form

	name       string
	fieldType  string
	label      string
	required   bool
	hint       string
	validators []validators.Validator
	options    []widgets.Option
	attrs      map[string]string

	nuciPath    string
	nuciPreproc Preproc

	requirements map[string]any
}

// FieldOption customises a field at construction time.
type FieldOption func(*Field, *fieldConfig)

type fieldConfig struct {
	defaultValue any
	hasDefault   bool
}

// WithLabel sets the display name rendered in the field's label tag.
func WithLabel(label string) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.label = label
	}
}

// Required marks the field mandatory, appending a NotEmpty validator.
func Required() FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.required = true
	}
}

// WithDefault registers the compiled-in default value for the field.
func WithDefault(value any) FieldOption {
	return func(_ *Field, cfg *fieldConfig) {
		cfg.defaultValue = value
		cfg.hasDefault = true
	}
}

// WithValidators appends validators, checked in order; the first failure
// becomes the field's note.
func WithValidators(list ...validators.Validator) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.validators = append(f.validators, list...)
	}
}

// WithNuciPath binds the field to a path in the remote configuration tree.
// The preproc extracts the field value from the matched node; nil keeps the
// default raw-value extractor.
func WithNuciPath(path string, preproc Preproc) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.nuciPath = path
		if preproc != nil {
			f.nuciPreproc = preproc
		}
	}
}

// WithHint attaches a short sanitized help text rendered under the field.
func WithHint(hint string) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.hint = sanitizeDescription(hint)
	}
}

// WithAttr sets an extra HTML attribute on the rendered control.
func WithAttr(key, value string) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.attrs[key] = value
	}
}

// WithOptions supplies the selectable choices of dropdown and radio fields.
func WithOptions(options ...widgets.Option) FieldOption {
	return func(f *Field, _ *fieldConfig) {
		f.options = append(f.options, options...)
	}
}

func newField(form *Form, fieldType, name string, options ...FieldOption) (*Field, error) {
	if name == "" {
		return nil, fmt.Errorf("forms: field name is required")
	}
	if !form.registry.Known(fieldType) {
		return nil, fmt.Errorf("forms: unknown field type %q for field %q", fieldType, name)
	}
	field := &Field{
		form:         form,
		name:         name,
		fieldType:    fieldType,
		attrs:        map[string]string{},
		requirements: map[string]any{},
		nuciPreproc:  func(node *nuci.Node) any { return node.Value },
	}
	cfg := fieldConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(field, &cfg)
	}
	for idx, v := range field.validators {
		if v == nil {
			return nil, fmt.Errorf("forms: field %q: validator %d is nil", name, idx)
		}
	}
	if field.required {
		field.validators = append(field.validators, validators.NotEmpty{})
	}
	if cfg.hasDefault {
		value := cfg.defaultValue
		if fieldType == widgets.TypeCheckbox {
			value = coerceBool(value)
		}
		if _, exists := form.defaults[name]; !exists {
			form.defaults[name] = value
		}
	}
	return field, nil
}

// Name returns the field name, rendered as the HTML name attribute.
func (f *Field) Name() string { return f.name }

// Type returns the field-type tag.
func (f *Field) Type() string { return f.fieldType }

// Label returns the display name.
func (f *Field) Label() string { return f.label }

// Hidden reports whether the field renders as a hidden input.
func (f *Field) Hidden() bool { return f.fieldType == widgets.TypeHidden }

// Requires declares that this field is only active while another field is
// present in the merged data. With a value the requirement additionally pins
// that field to the exact value; without one, any value satisfies it.
func (f *Field) Requires(name string, value ...any) *Field {
	f.form.requirementMap[name] = append(f.form.requirementMap[name], f.name)
	if len(value) == 0 {
		f.requirements[name] = anyValue{}
	} else {
		f.requirements[name] = value[0]
	}
	return f
}

// meetsRequirements checks every requirement edge against the given data.
// Fields with no requirements are always active.
func (f *Field) meetsRequirements(data map[string]any) bool {
	for reqName, reqValue := range f.requirements {
		current, present := data[reqName]
		if !present {
			return false
		}
		if _, any := reqValue.(anyValue); any {
			continue
		}
		if current != reqValue {
			return false
		}
	}
	return true
}

// Widget returns the rendering adapter bound to the current presentation
// state, building it on first access. Before the form is validated the
// widget is seeded with the merged value for display; afterwards it is
// validated against the merged data and carries the resulting note.
func (f *Field) Widget() (*widgets.Widget, error) {
	p, err := f.form.presentationState()
	if err != nil {
		return nil, err
	}
	if w, ok := p.widgets[f.name]; ok {
		return w, nil
	}

	attrs := make(map[string]string, len(f.attrs)+2)
	for key, value := range f.attrs {
		attrs[key] = value
	}
	classes := strings.Fields(attrs["class"])
	if len(f.form.requirementMap[f.name]) > 0 {
		classes = append(classes, "has-requirements")
	}
	if len(classes) > 0 {
		attrs["class"] = strings.Join(classes, " ")
	}
	for key, value := range validators.AsDataAttrs(f.validators) {
		attrs["data-"+key] = value
	}

	w, err := f.form.registry.Build(f.fieldType, f.name, f.options, f.validators, attrs)
	if err != nil {
		return nil, err
	}
	if f.form.validated {
		w.Validate(p.data, f.name)
	} else {
		w.SetValue(p.data[f.name])
	}
	if w.Note() != "" {
		w.AddClass("field-validation-fail")
	}
	p.widgets[f.name] = w
	return w, nil
}

// Errors returns the field's validation note, empty while valid.
func (f *Field) Errors() (string, error) {
	w, err := f.Widget()
	if err != nil {
		return "", err
	}
	return w.Note(), nil
}

// LabelTag renders the label element. Radio groups carry their own per-option
// labels, so their group label has no for attribute.
func (f *Field) LabelTag() (string, error) {
	w, err := f.Widget()
	if err != nil {
		return "", err
	}
	if f.fieldType == widgets.TypeRadio {
		return "<label>" + html.EscapeString(f.label) + "</label>", nil
	}
	return `<label for="` + html.EscapeString(w.ID()) + `">` + html.EscapeString(f.label) + "</label>", nil
}

// Render produces the field markup: label, bound control and hint. Hidden
// fields emit only the control.
func (f *Field) Render() (string, error) {
	w, err := f.Widget()
	if err != nil {
		return "", err
	}
	if f.Hidden() {
		return w.Render(), nil
	}

	var b strings.Builder
	if f.label != "" {
		label, err := f.LabelTag()
		if err != nil {
			return "", err
		}
		b.WriteString(label)
		b.WriteByte('\n')
	}
	b.WriteString(w.Render())
	if f.hint != "" {
		b.WriteString("\n<small class=\"hint\">")
		b.WriteString(f.hint)
		b.WriteString("</small>")
	}
	return b.String(), nil
}
