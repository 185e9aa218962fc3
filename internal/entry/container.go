package entry

import (
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

// container carries everything the edit lifecycle needs to know about one
// inline-editable block. Entry and Section embed it.
type container struct {
	id        domain.ComponentID
	label     string
	record    *domain.Record
	view      *schema.Schema
	editDecl  *schema.Schema
	statePath string

	configureStart  func(*Action)
	configureSave   func(*Action)
	configureCancel func(*Action)

	// edit is the bound edit schema, built once per container.
	edit *schema.Schema
}

func (c *container) base() *container { return c }

func (c *container) Children() []Component { return nil }

func (c *container) ID() domain.ComponentID { return c.id }

func (c *container) GetLabel() string { return c.label }

func (c *container) GetRecord() *domain.Record { return c.record }

// GetViewSchema returns the read-only schema, reading straight from the
// record.
func (c *container) GetViewSchema() *schema.Schema {
	view := c.view
	if view == nil {
		view = schema.New()
	}
	view.ForRecord(c.record)
	if c.record != nil {
		view.Model(c.record.Type)
	}

	return view
}

// Actions returns the triad after the container's customization hooks ran,
// without visibility filtering.
func (c *container) Actions() []Action {
	actions := []Action{StartAction(), SaveAction(), CancelAction()}
	hooks := []func(*Action){c.configureStart, c.configureSave, c.configureCancel}
	for i, hook := range hooks {
		if hook != nil {
			hook(&actions[i])
		}
	}

	return actions
}

func (c *container) action(kind ActionKind) Action {
	for _, action := range c.Actions() {
		if action.Kind == kind {
			return action
		}
	}

	return Action{}
}

func (c *container) HintActions(h Host) []BoundAction {
	out := make([]BoundAction, 0, 2)
	for _, action := range c.Actions() {
		if action.Visible(h, c.id) {
			out = append(out, action.Bind(c.id))
		}
	}

	return out
}

func (c *container) ResolvedSchema(h Host) (*schema.Schema, error) {
	return h.Resolver().Resolve(c)
}

// Entry is an inline-editable block whose actions are rendered as hints
// next to its label.
type Entry struct {
	container
}

var _ Editable = (*Entry)(nil)

func NewEntry(id domain.ComponentID) *Entry {
	return &Entry{container: container{id: id}}
}

func (e *Entry) Label(label string) *Entry {
	e.label = label
	return e
}

func (e *Entry) Record(record *domain.Record) *Entry {
	e.record = record
	e.edit = nil
	return e
}

func (e *Entry) ViewSchema(s *schema.Schema) *Entry {
	e.view = s
	return e
}

func (e *Entry) EditSchema(s *schema.Schema) *Entry {
	e.editDecl = s
	e.edit = nil
	return e
}

// StatePath overrides the default binding path of the edit schema.
func (e *Entry) StatePath(path string) *Entry {
	e.statePath = path
	e.edit = nil
	return e
}

func (e *Entry) ConfigureStartAction(fn func(*Action)) *Entry {
	e.configureStart = fn
	return e
}

func (e *Entry) ConfigureSaveAction(fn func(*Action)) *Entry {
	e.configureSave = fn
	return e
}

func (e *Entry) ConfigureCancelAction(fn func(*Action)) *Entry {
	e.configureCancel = fn
	return e
}

// Section is an inline-editable block with a heading; its actions live in
// the section header.
type Section struct {
	container

	heading     string
	description string
	collapsible bool
}

var _ Editable = (*Section)(nil)

func NewSection(id domain.ComponentID, heading string) *Section {
	return &Section{container: container{id: id}, heading: heading}
}

func (s *Section) GetLabel() string {
	if s.label != "" {
		return s.label
	}

	return s.heading
}

func (s *Section) GetHeading() string { return s.heading }

func (s *Section) GetDescription() string { return s.description }

func (s *Section) IsCollapsible() bool { return s.collapsible }

func (s *Section) Heading(heading string) *Section {
	s.heading = heading
	return s
}

func (s *Section) Description(description string) *Section {
	s.description = description
	return s
}

func (s *Section) Collapsible(collapsible bool) *Section {
	s.collapsible = collapsible
	return s
}

func (s *Section) Label(label string) *Section {
	s.label = label
	return s
}

func (s *Section) Record(record *domain.Record) *Section {
	s.record = record
	s.edit = nil
	return s
}

func (s *Section) ViewSchema(view *schema.Schema) *Section {
	s.view = view
	return s
}

func (s *Section) EditSchema(edit *schema.Schema) *Section {
	s.editDecl = edit
	s.edit = nil
	return s
}

func (s *Section) StatePath(path string) *Section {
	s.statePath = path
	s.edit = nil
	return s
}

func (s *Section) ConfigureStartAction(fn func(*Action)) *Section {
	s.configureStart = fn
	return s
}

func (s *Section) ConfigureSaveAction(fn func(*Action)) *Section {
	s.configureSave = fn
	return s
}

func (s *Section) ConfigureCancelAction(fn func(*Action)) *Section {
	s.configureCancel = fn
	return s
}
