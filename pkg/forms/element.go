package forms

// Child is a node attachable under a form or section: a Section or a Field.
type Child interface {
	Name() string
	Render() (string, error)

	// meetsRequirements reports whether the node should render against the
	// given merged data. Sections are always active; fields consult their
	// requirement edges.
	meetsRequirements(data map[string]any) bool
}

// element is the shared tree-node state: a stable name and children kept in
// insertion order, which is also render order. The by-name index only serves
// lookups; order lives in the slice.
type element struct {
	name     string
	children []Child
	byName   map[string]Child
}

func newElement(name string) element {
	return element{name: name, byName: make(map[string]Child)}
}

// Name returns the node name, unique among siblings.
func (e *element) Name() string { return e.name }

// add attaches a child. Re-adding a name replaces the child but keeps its
// original position, so assembly code may override a field without
// disturbing render order.
func (e *element) add(child Child) {
	if _, exists := e.byName[child.Name()]; exists {
		for idx, existing := range e.children {
			if existing.Name() == child.Name() {
				e.children[idx] = child
				break
			}
		}
	} else {
		e.children = append(e.children, child)
	}
	e.byName[child.Name()] = child
}

// Remove detaches a child by name. Unknown names are a no-op. Forms are
// normally immutable in structure after assembly; detach exists for feature
// modules that build variants of a shared layout.
func (e *element) Remove(name string) {
	if _, exists := e.byName[name]; !exists {
		return
	}
	delete(e.byName, name)
	for idx, existing := range e.children {
		if existing.Name() == name {
			e.children = append(e.children[:idx], e.children[idx+1:]...)
			break
		}
	}
}

// Children returns the child nodes in render order.
func (e *element) Children() []Child {
	return e.children
}

// collectFields gathers every field of a subtree, depth-first, preserving
// declaration order.
func collectFields(children []Child, out []*Field) []*Field {
	for _, child := range children {
		switch node := child.(type) {
		case *Field:
			out = append(out, node)
		case *Section:
			out = collectFields(node.children, out)
		}
	}
	return out
}
