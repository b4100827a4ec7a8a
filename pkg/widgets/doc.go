// Package widgets provides the rendering adapters behind form fields. Every
// field-type tag maps to a single Constructor with one unified signature, so
// adding a new input kind means registering one entry in the capability table
// instead of growing a conditional. A Widget binds a value (or, after form
// validation, a validation note) and renders deterministic HTML markup.
package widgets
