// Package nuci is the boundary to the persisted router configuration. It
// exposes path-addressed read access to configuration trees, a staged-edit
// queue that batches writes from independent feature modules, and a commit
// call that flushes every staged edit as one transaction. Store failures are
// wrapped in StoreError so callers can tell an unavailable backing store
// apart from a programming mistake.
package nuci
