// Package validators defines the validator capability consumed by form
// fields: a stateless predicate over a submitted value plus a serializable
// client payload so the same constraints can be mirrored by browser-side
// checks. Builtins cover the common router-configuration constraints
// (non-empty, regexp, length and numeric ranges, addresses); Tag exposes the
// go-playground/validator rule language for anything beyond them.
package validators
