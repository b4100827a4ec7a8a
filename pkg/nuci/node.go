package nuci

import "strings"

// Node is one element of a configuration tree. Leaf nodes carry a scalar
// Value; interior nodes carry Children in document order.
type Node struct {
	Name     string
	Value    string
	Children []*Node
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindChild resolves a dot-separated path ("uci.network.wan.proto") relative
// to this node. A nil result means no node exists at that path; absence is an
// expected outcome, not an error.
func (n *Node) FindChild(path string) *Node {
	if n == nil {
		return nil
	}
	current := n
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil
		}
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}
