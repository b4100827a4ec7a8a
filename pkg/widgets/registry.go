package widgets

import (
	"fmt"
	"strings"
	"sync"

	"github.com/turris-cz/foris/pkg/validators"
)

// Constructor builds a widget for one field-type tag. Every constructor takes
// the same signature; tags without selectable choices ignore options.
type Constructor func(name string, options []Option, list []validators.Validator, attrs map[string]string) *Widget

// Registry is the capability table mapping field-type tags to widget
// constructors. The zero value is unusable; NewRegistry installs the built-in
// tags. Later registrations under the same tag win.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry constructs a registry with the built-in widget constructors
// registered.
func NewRegistry() *Registry {
	reg := &Registry{constructors: make(map[string]Constructor)}
	reg.registerBuiltins()
	return reg
}

// Register adds a constructor under a field-type tag.
func (r *Registry) Register(tag string, ctor Constructor) error {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return fmt.Errorf("widgets: tag is required")
	}
	if ctor == nil {
		return fmt.Errorf("widgets: constructor for %q is required", trimmed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[trimmed] = ctor
	return nil
}

// Build constructs the widget for a field-type tag. Unknown tags are a
// programmer error surfaced to the caller.
func (r *Registry) Build(tag, name string, options []Option, list []validators.Validator, attrs map[string]string) (*Widget, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("widgets: no constructor registered for type %q", tag)
	}
	return ctor(name, options, list, attrs), nil
}

// Known reports whether a constructor is registered for the tag.
func (r *Registry) Known(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[tag]
	return ok
}

func (r *Registry) registerBuiltins() {
	for _, tag := range []string{
		TypeText, TypePassword, TypeTextarea, TypeCheckbox,
		TypeDropdown, TypeRadio, TypeHidden, TypeNumber, TypeEmail,
	} {
		kind := tag
		r.constructors[kind] = func(name string, options []Option, list []validators.Validator, attrs map[string]string) *Widget {
			return newWidget(kind, name, options, list, attrs)
		}
	}
}
