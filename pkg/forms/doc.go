// Package forms implements the declarative form engine behind the
// administrative interface. A Form owns a tree of Sections and Fields, merges
// field values from compiled-in defaults, the persisted configuration store
// and submitted request data (in that precedence order), computes which
// fields are active from the inter-field requirement graph, validates and
// renders only the active set, and persists accepted changes through a
// staged-edit commit protocol.
//
// A Form instance is single-threaded: it must never be shared across
// concurrent requests. All mutable state (the merged-data and widget-binding
// caches, the validated flag) is owned by one instance and recomputed from
// scratch on invalidation, never patched incrementally.
package forms
