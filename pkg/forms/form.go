package forms

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/turris-cz/foris/pkg/nuci"
	"github.com/turris-cz/foris/pkg/widgets"
)

// Callback operation tags. Any other tag returned from a save callback is an
// unsupported operation and aborts the save before commit.
const (
	OpNone       = "none"
	OpEditConfig = "edit_config"
)

// ErrNotValidated is returned by Save when Validate has not run on the form.
var ErrNotValidated = errors.New("forms: form was not validated before save")

// UnsupportedCallbackError reports a save callback returning an unknown
// operation tag. This is a programming mistake in the feature module, not a
// user error, and the save is aborted without committing.
type UnsupportedCallbackError struct {
	Op string
}

func (e *UnsupportedCallbackError) Error() string {
	return fmt.Sprintf("forms: unsupported callback operation %q", e.Op)
}

// CallbackResult is the tagged outcome of a save callback: either nothing to
// do, or a batch of configuration edits to stage.
type CallbackResult struct {
	Op    string
	Edits []any
}

// CallbackNone reports that the callback handled everything itself.
func CallbackNone() CallbackResult {
	return CallbackResult{Op: OpNone}
}

// CallbackEditConfig stages the given edits for the batched commit.
func CallbackEditConfig(edits ...any) CallbackResult {
	return CallbackResult{Op: OpEditConfig, Edits: edits}
}

// Callback receives the merged active data on save and answers with the
// configuration edits it wants persisted.
type Callback func(data map[string]any) (CallbackResult, error)

// presentation couples the two caches that must never drift apart: the
// merged-active data view and the widget bindings derived from it. It is
// rebuilt as a unit on the first read after InvalidateData.
type presentation struct {
	data    map[string]any
	widgets map[string]*widgets.Widget
}

// Form is the root of a form tree. It owns the merged data view, the
// requirement graph, validation and rendering, and the save protocol. Build
// one per request; instances are not safe for concurrent use.
type Form struct {
	element

	requestData    map[string]string
	remoteData     map[string]any
	defaults       map[string]any
	requirementMap map[string][]string
	callbacks      []Callback

	registry     *widgets.Registry
	client       nuci.Client
	filter       string
	configurator *nuci.Configurator
	logger       zerolog.Logger

	// remote fetch memo: evaluated at most once per form, kept across
	// InvalidateData so a form lifetime observes one consistent snapshot.
	remoteFetched bool
	remoteTree    *nuci.Node

	cache     *presentation
	validated bool
	valid     bool
}

// Option customises a Form.
type Option func(*Form)

// WithRequestData seeds the submitted request values.
func WithRequestData(data map[string]string) Option {
	return func(f *Form) {
		f.requestData = data
	}
}

// WithClient wires the configuration store the form reads from; filter
// selects the subtree fetched on first demand.
func WithClient(client nuci.Client, filter string) Option {
	return func(f *Form) {
		f.client = client
		f.filter = filter
	}
}

// WithConfigurator wires the staged-edit queue Save commits through.
func WithConfigurator(configurator *nuci.Configurator) Option {
	return func(f *Form) {
		f.configurator = configurator
	}
}

// WithRegistry overrides the widget capability table.
func WithRegistry(registry *widgets.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithLogger injects a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger.With().Str("component", "forms").Logger()
	}
}

// New constructs an empty form.
func New(name string, options ...Option) *Form {
	f := &Form{
		element:        newElement(name),
		requestData:    map[string]string{},
		remoteData:     map[string]any{},
		defaults:       map[string]any{},
		requirementMap: map[string][]string{},
		registry:       widgets.NewRegistry(),
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.requestData == nil {
		f.requestData = map[string]string{}
	}
	return f
}

// AddSection attaches a titled section under the form root.
func (f *Form) AddSection(name, title, description string) *Section {
	section := newSection(f, name, title, description)
	f.add(section)
	return section
}

// Sections returns the top-level sections in render order.
func (f *Form) Sections() []*Section {
	var sections []*Section
	for _, child := range f.children {
		if section, ok := child.(*Section); ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// AddCallback registers a save callback. Callbacks run on Save in
// registration order.
func (f *Form) AddCallback(cb Callback) {
	f.callbacks = append(f.callbacks, cb)
}

// SetRequestData replaces the submitted request values. The caller must
// follow up with InvalidateData for the change to become visible.
func (f *Form) SetRequestData(data map[string]string) {
	if data == nil {
		data = map[string]string{}
	}
	f.requestData = data
}

// InvalidateData drops the merged-data view and the widget bindings derived
// from it, together. The remote-config snapshot survives: it is fetched at
// most once per form lifetime.
func (f *Form) InvalidateData() {
	f.cache = nil
}

// Data returns the merged view of field values, filtered down to active
// fields: defaults overlaid by persisted configuration overlaid by submitted
// request data, with checkbox values coerced to booleans. The result is
// memoized until InvalidateData.
func (f *Form) Data() (map[string]any, error) {
	p, err := f.presentationState()
	if err != nil {
		return nil, err
	}
	return p.data, nil
}

func (f *Form) presentationState() (*presentation, error) {
	if f.cache != nil {
		return f.cache, nil
	}
	if err := f.updateRemoteData(); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(f.defaults))
	f.logger.Debug().Interface("defaults", f.defaults).Msg("merging defaults")
	for name, value := range f.defaults {
		merged[name] = value
	}
	f.logger.Debug().Interface("remote", f.remoteData).Msg("merging remote config data")
	for name, value := range f.remoteData {
		merged[name] = value
	}
	f.logger.Debug().Interface("request", f.requestData).Msg("merging request data")
	for name, value := range f.requestData {
		merged[name] = value
	}

	f.cache = &presentation{
		data:    f.cleanData(merged),
		widgets: make(map[string]*widgets.Widget),
	}
	return f.cache, nil
}

// cleanData coerces declared fields to their semantic type and filters the
// map down to fields whose requirements hold against the coerced values.
func (f *Form) cleanData(merged map[string]any) map[string]any {
	fields := f.allFields()
	coerced := make(map[string]any, len(fields))
	for _, field := range fields {
		value, present := merged[field.name]
		if !present {
			continue
		}
		if field.fieldType == widgets.TypeCheckbox {
			value = coerceBool(value)
		}
		coerced[field.name] = value
	}

	data := make(map[string]any, len(coerced))
	for _, field := range fields {
		if !field.meetsRequirements(coerced) {
			continue
		}
		if value, present := coerced[field.name]; present {
			data[field.name] = value
		}
	}
	return data
}

// updateRemoteData extracts values for remote-bound fields from the config
// snapshot. Fields whose path matches nothing stay absent.
func (f *Form) updateRemoteData() error {
	tree, err := f.remoteConfig()
	if err != nil {
		return err
	}
	for _, field := range f.allFields() {
		if field.nuciPath == "" {
			continue
		}
		node := tree.FindChild(field.nuciPath)
		if node == nil {
			continue
		}
		f.remoteData[field.name] = field.nuciPreproc(node)
	}
	return nil
}

// remoteConfig fetches the configuration subtree on first demand and memoizes
// the result for the form's lifetime. Store faults surface as StoreError.
func (f *Form) remoteConfig() (*nuci.Node, error) {
	if f.remoteFetched {
		return f.remoteTree, nil
	}
	if f.client == nil {
		// forms without remote bindings work fine offline
		f.remoteFetched = true
		f.remoteTree = &nuci.Node{}
		return f.remoteTree, nil
	}
	f.logger.Debug().Str("filter", f.filter).Msg("fetching remote config")
	tree, err := f.client.Get(f.filter)
	if err != nil {
		var storeErr *nuci.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, &nuci.StoreError{Op: "get", Err: err}
	}
	f.remoteFetched = true
	f.remoteTree = tree
	return tree, nil
}

// allFields gathers every declared field of the tree in declaration order.
func (f *Form) allFields() []*Field {
	return collectFields(f.children, nil)
}

// ActiveFields returns the fields whose requirements hold against the
// current merged data.
func (f *Form) ActiveFields() ([]*Field, error) {
	data, err := f.Data()
	if err != nil {
		return nil, err
	}
	var active []*Field
	for _, field := range f.allFields() {
		if field.meetsRequirements(data) {
			active = append(active, field)
		}
	}
	return active, nil
}

// Validate marks the form validated, rebinds every active field's widget
// against the merged data and returns the overall validity. The validated
// flag is permanent for the form's lifetime: from now on widgets bind through
// their validators instead of being seeded for display.
func (f *Form) Validate() (bool, error) {
	f.validated = true
	if f.cache != nil {
		// force every widget to re-bind against its validators
		f.cache.widgets = make(map[string]*widgets.Widget)
	}
	active, err := f.ActiveFields()
	if err != nil {
		return false, err
	}
	valid := true
	for _, field := range active {
		w, err := field.Widget()
		if err != nil {
			return false, err
		}
		if w.Note() != "" {
			f.logger.Debug().Str("field", field.name).Str("note", w.Note()).Msg("field failed validation")
			valid = false
		}
	}
	f.valid = valid
	return valid, nil
}

// Validated reports whether Validate has run.
func (f *Form) Validated() bool { return f.validated }

// Valid reports the outcome of the last Validate call.
func (f *Form) Valid() bool { return f.valid }

// Errors aggregates the validation notes of active fields, one per line.
// Empty until the form has been validated.
func (f *Form) Errors() (string, error) {
	if !f.validated {
		return "", nil
	}
	active, err := f.ActiveFields()
	if err != nil {
		return "", err
	}
	var notes []string
	for _, field := range active {
		w, err := field.Widget()
		if err != nil {
			return "", err
		}
		if note := w.Note(); note != "" {
			notes = append(notes, note)
		}
	}
	return strings.Join(notes, "\n"), nil
}

// Render walks the tree and concatenates the children's markup behind an
// aggregate error block. Rendering is read-only: repeated calls over
// unchanged data yield identical bytes.
func (f *Form) Render() (string, error) {
	errorsNote, err := f.Errors()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(`<div class="errors">`)
	b.WriteString(html.EscapeString(errorsNote))
	b.WriteString("</div>")
	for _, child := range f.children {
		markup, err := child.Render()
		if err != nil {
			return "", err
		}
		b.WriteByte('\n')
		b.WriteString(markup)
	}
	return b.String(), nil
}

// Save runs the registered callbacks over the merged active data, staging
// their configuration edits, then issues exactly one commit for the whole
// batch. Unvalidated forms are refused with ErrNotValidated.
func (f *Form) Save() error {
	if !f.validated {
		return ErrNotValidated
	}
	data, err := f.Data()
	if err != nil {
		return err
	}
	if err := f.processCallbacks(data); err != nil {
		return err
	}
	if f.configurator == nil {
		return fmt.Errorf("forms: form %q has no configurator", f.name)
	}
	return f.configurator.Commit()
}

func (f *Form) processCallbacks(data map[string]any) error {
	for idx, cb := range f.callbacks {
		f.logger.Debug().Int("callback", idx).Msg("processing save callback")
		result, err := cb(data)
		if err != nil {
			return fmt.Errorf("forms: save callback %d: %w", idx, err)
		}
		switch result.Op {
		case OpNone:
		case OpEditConfig:
			if f.configurator == nil {
				return fmt.Errorf("forms: form %q has no configurator", f.name)
			}
			for _, edit := range result.Edits {
				f.configurator.AddConfigUpdate(edit)
			}
		default:
			return &UnsupportedCallbackError{Op: result.Op}
		}
	}
	return nil
}

// coerceBool applies the checkbox coercion rule: nil, empty values and
// anything that stringifies to "0" (including numeric zero) are false,
// everything else present is true.
func coerceBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	default:
		s := widgets.Stringify(v)
		return s != "" && s != "0"
	}
}
