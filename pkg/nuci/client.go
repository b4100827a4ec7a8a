package nuci

import "fmt"

// StoreError marks a fault in the backing configuration store. It wraps the
// underlying cause so callers can distinguish "store unavailable" from a
// programmer error and decide whether to retry or surface an outage page.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("nuci: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Client reads configuration trees from the store. The filter selects a
// subtree; an empty filter requests the full tree.
type Client interface {
	Get(filter string) (*Node, error)
}

// ClientFunc adapts a function into a Client.
type ClientFunc func(filter string) (*Node, error)

// Get delegates to the underlying function.
func (fn ClientFunc) Get(filter string) (*Node, error) {
	return fn(filter)
}

// StaticClient serves a fixed tree, honouring the filter as a path into it.
// Useful for tests and local development.
type StaticClient struct {
	Root *Node
}

// Get returns the subtree selected by filter. A filter that matches nothing
// yields an empty tree rather than an error.
func (c StaticClient) Get(filter string) (*Node, error) {
	if c.Root == nil {
		return nil, &StoreError{Op: "get", Err: fmt.Errorf("no configuration loaded")}
	}
	if filter == "" {
		return c.Root, nil
	}
	if sub := c.Root.FindChild(filter); sub != nil {
		return sub, nil
	}
	return &Node{Name: c.Root.Name}, nil
}
