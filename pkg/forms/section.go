package forms

import (
	"html"
	"strings"
)

// Section is a titled grouping of fields and nested sections. It contributes
// no value of its own; at render time it filters its children by the
// requirement predicate evaluated against the form's live merged data.
type Section struct {
	element

	form        *Form
	title       string
	description string
}

func newSection(form *Form, name, title, description string) *Section {
	return &Section{
		element:     newElement(name),
		form:        form,
		title:       title,
		description: sanitizeDescription(description),
	}
}

// Title returns the section heading.
func (s *Section) Title() string { return s.title }

// Description returns the sanitized section description.
func (s *Section) Description() string { return s.description }

// AddSection nests a titled section.
func (s *Section) AddSection(name, title, description string) *Section {
	nested := newSection(s.form, name, title, description)
	s.add(nested)
	return nested
}

// AddField declares a field of the given type under this section. The field
// is registered with the owning form (defaults, requirement graph) at
// construction time. Unknown type tags and nil validators are programmer
// errors reported immediately.
func (s *Section) AddField(fieldType, name string, options ...FieldOption) (*Field, error) {
	field, err := newField(s.form, fieldType, name, options...)
	if err != nil {
		return nil, err
	}
	s.add(field)
	return field, nil
}

func (s *Section) meetsRequirements(map[string]any) bool { return true }

// Render wraps the markup of requirement-satisfying children in a titled
// block. The description is emitted as sanitized markup, not re-escaped.
func (s *Section) Render() (string, error) {
	data, err := s.form.Data()
	if err != nil {
		return "", err
	}
	var rendered []string
	for _, child := range s.children {
		if !child.meetsRequirements(data) {
			continue
		}
		markup, err := child.Render()
		if err != nil {
			return "", err
		}
		rendered = append(rendered, markup)
	}

	var b strings.Builder
	b.WriteString("<section>\n<h2>")
	b.WriteString(html.EscapeString(s.title))
	b.WriteString("</h2>\n")
	if s.description != "" {
		b.WriteString("<p>")
		b.WriteString(s.description)
		b.WriteString("</p>\n")
	}
	b.WriteString(strings.Join(rendered, "\n"))
	b.WriteString("\n</section>")
	return b.String(), nil
}
