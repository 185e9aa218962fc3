package entry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

// Page is the reference host: it owns one edit session, the mounted
// component trees and the field errors of the current turn.
type Page struct {
	session  *domain.EditSession
	trees    []Component
	resolver *Resolver
	records  Persister
	notifier Notifier
	redraw   func()
	logger   zerolog.Logger

	slots       map[string]map[string]any
	fieldErrors map[domain.ComponentID]map[string][]string
}

var (
	_ Host            = (*Page)(nil)
	_ ScratchProvider = (*Page)(nil)
)

type PageOption func(*Page)

// WithRedraw sets the callback run after a successful save.
func WithRedraw(fn func()) PageOption {
	return func(p *Page) {
		p.redraw = fn
	}
}

func WithLogger(logger zerolog.Logger) PageOption {
	return func(p *Page) {
		p.logger = logger
	}
}

// WithExtraSlot exposes another top-level state slot edit schemas may bind to.
func WithExtraSlot(name string) PageOption {
	return func(p *Page) {
		name = strings.TrimSpace(name)
		if name == "" || name == domain.ScratchSlot {
			return
		}
		if _, ok := p.slots[name]; !ok {
			p.slots[name] = map[string]any{}
		}
	}
}

func NewPage(session *domain.EditSession, records Persister, notifier Notifier, opts ...PageOption) *Page {
	if session == nil {
		session = domain.NewEditSession("")
	}

	p := &Page{
		session:     session,
		records:     records,
		notifier:    notifier,
		logger:      zerolog.Nop(),
		slots:       map[string]map[string]any{},
		fieldErrors: map[domain.ComponentID]map[string][]string{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resolver = NewResolver(session, p)

	return p
}

// Mount attaches the component trees and binds every edit schema. Ids must
// be present and unique across all trees, and no edit schema may bind to
// the scratch of another entry.
func (p *Page) Mount(trees ...Component) error {
	seen := map[domain.ComponentID]struct{}{}
	for _, tree := range p.trees {
		_ = Walk([]Component{tree}, func(e Editable) error {
			seen[e.ID()] = struct{}{}
			return nil
		})
	}

	err := Walk(trees, func(e Editable) error {
		id := e.ID()
		if id == "" {
			return fmt.Errorf("mount %q: %w", e.GetLabel(), ErrMissingComponentID)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("mount %s: %w", id, ErrDuplicateComponentID)
		}
		seen[id] = struct{}{}

		return nil
	})
	if err != nil {
		return err
	}

	owners := map[string]domain.ComponentID{}
	err = Walk(append(slices.Clone(p.trees), trees...), func(e Editable) error {
		id := e.ID()
		if err := e.GetViewSchema().Check(); err != nil {
			return fmt.Errorf("mount %s: %w: %w", id, ErrInvalidSchema, err)
		}
		edit, err := p.resolver.EditSchema(e)
		if err != nil {
			return fmt.Errorf("mount %s: %w", id, err)
		}

		path := edit.Path()
		if owner, ok := owners[path]; ok {
			return fmt.Errorf("mount %s: %w: %q is already bound by %s", id, ErrStatePathConflict, path, owner)
		}
		owners[path] = id

		segments := schema.SplitPath(path)
		if segments[0] == domain.ScratchSlot {
			other := domain.ComponentID(segments[1])
			if _, mounted := seen[other]; mounted && other != id {
				return fmt.Errorf("mount %s: %w: %q belongs to %s", id, ErrStatePathConflict, path, other)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	p.trees = append(p.trees, trees...)
	p.logger.Debug().Int("entries", len(seen)).Msg("page mounted")

	return nil
}

// MustMount is Mount for statically declared pages.
func (p *Page) MustMount(trees ...Component) *Page {
	if err := p.Mount(trees...); err != nil {
		panic(err)
	}

	return p
}

func (p *Page) Session() *domain.EditSession {
	return p.session
}

func (p *Page) EditableEntry(id domain.ComponentID) (Editable, bool) {
	e, ok := Find(p.trees, id)
	if !ok {
		p.logger.Debug().Str("component", string(id)).Msg("editable entry not found")
	}

	return e, ok
}

// Editables lists the mounted editable containers in tree order.
func (p *Page) Editables() []Editable {
	var out []Editable
	_ = Walk(p.trees, func(e Editable) error {
		out = append(out, e)
		return nil
	})

	return out
}

func (p *Page) Resolver() *Resolver {
	return p.resolver
}

func (p *Page) Records() Persister {
	return p.records
}

func (p *Page) Notify(ctx context.Context, notification domain.Notification) {
	if p.notifier == nil {
		return
	}

	if err := p.notifier.Send(ctx, notification); err != nil {
		p.logger.Warn().Err(err).Str("title", notification.Title).Msg("notification not delivered")
	}
}

func (p *Page) Redraw() {
	if p.redraw != nil {
		p.redraw()
	}
}

func (p *Page) ReportErrors(id domain.ComponentID, verr *schema.ValidationError) {
	if verr.Empty() {
		delete(p.fieldErrors, id)
		return
	}

	p.fieldErrors[id] = maps.Clone(verr.Fields)
	p.logger.Info().Str("component", string(id)).Int("fields", len(verr.Fields)).Msg("validation failed")
}

func (p *Page) ClearErrors(id domain.ComponentID) {
	delete(p.fieldErrors, id)
}

func (p *Page) FieldErrors(id domain.ComponentID) map[string][]string {
	return maps.Clone(p.fieldErrors[id])
}

func (p *Page) ScratchSlots() []string {
	slots := []string{domain.ScratchSlot}
	extra := make([]string, 0, len(p.slots))
	for name := range p.slots {
		extra = append(extra, name)
	}
	slices.Sort(extra)

	return append(slots, extra...)
}

// Get reads a dotted path. The scratch slot is served from the edit
// session; other slots live on the page.
func (p *Page) Get(path string) (any, bool) {
	segments := schema.SplitPath(path)
	if len(segments) == 0 {
		return nil, false
	}

	if segments[0] != domain.ScratchSlot {
		slot, ok := p.slots[segments[0]]
		if !ok {
			return nil, false
		}
		return schema.GetPath(slot, segments[1:])
	}

	if len(segments) == 1 {
		out := make(map[string]any, len(p.session.Scratch))
		for id, fields := range p.session.Scratch {
			out[string(id)] = fields
		}
		return out, true
	}

	fields, ok := p.session.Scratch[domain.ComponentID(segments[1])]
	if !ok {
		return nil, false
	}

	return schema.GetPath(fields, segments[2:])
}

func (p *Page) Set(path string, value any) error {
	segments := schema.SplitPath(path)
	if len(segments) < 2 {
		return fmt.Errorf("set %q: %w", path, schema.ErrPathConflict)
	}

	if segments[0] != domain.ScratchSlot {
		slot, ok := p.slots[segments[0]]
		if !ok {
			return fmt.Errorf("set %q: %w", path, ErrUnknownSlot)
		}
		return schema.SetPath(slot, segments[1:], value)
	}

	id := domain.ComponentID(segments[1])
	if len(segments) == 2 {
		fields, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("set %q: %w", path, schema.ErrPathConflict)
		}
		p.session.FieldsFor(id)
		p.session.Scratch[id] = fields
		return nil
	}

	return schema.SetPath(p.session.FieldsFor(id), segments[2:], value)
}

// Delete drops the value held at a dotted path. Dropping a whole scratch
// entry removes it from the edit session.
func (p *Page) Delete(path string) {
	segments := schema.SplitPath(path)
	if len(segments) < 2 {
		return
	}

	if segments[0] != domain.ScratchSlot {
		if slot, ok := p.slots[segments[0]]; ok {
			schema.DeletePath(slot, segments[1:])
		}
		return
	}

	id := domain.ComponentID(segments[1])
	if len(segments) == 2 {
		delete(p.session.Scratch, id)
		return
	}
	if fields, ok := p.session.Scratch[id]; ok {
		schema.DeletePath(fields, segments[2:])
	}
}

func (p *Page) StartEditableEntryAction(id domain.ComponentID) BoundAction {
	return p.action(KindStart, StartAction(), id)
}

func (p *Page) SaveEditableEntryAction(id domain.ComponentID) BoundAction {
	return p.action(KindSave, SaveAction(), id)
}

func (p *Page) CancelEditableEntryAction(id domain.ComponentID) BoundAction {
	return p.action(KindCancel, CancelAction(), id)
}

// action returns the container's customized action when the id is mounted
// and the default one otherwise.
func (p *Page) action(kind ActionKind, fallback Action, id domain.ComponentID) BoundAction {
	if e, ok := Find(p.trees, id); ok {
		return e.base().action(kind).Bind(id)
	}

	return fallback.Bind(id)
}

// Dispatch runs an action by its dispatch name, "<action>.<component id>".
func (p *Page) Dispatch(ctx context.Context, name string) error {
	actionName, id, ok := strings.Cut(strings.TrimSpace(name), ".")
	if !ok || id == "" {
		return fmt.Errorf("dispatch %q: %w", name, ErrUnknownAction)
	}

	var bound BoundAction
	switch actionName {
	case StartActionName:
		bound = p.StartEditableEntryAction(domain.ComponentID(id))
	case SaveActionName:
		bound = p.SaveEditableEntryAction(domain.ComponentID(id))
	case CancelActionName:
		bound = p.CancelEditableEntryAction(domain.ComponentID(id))
	default:
		return fmt.Errorf("dispatch %q: %w", name, ErrUnknownAction)
	}

	p.logger.Debug().Str("action", actionName).Str("component", id).Msg("dispatch editable entry action")
	if err := bound.Run(ctx, p); err != nil {
		p.logger.Warn().Err(err).Str("action", actionName).Str("component", id).Msg("editable entry action failed")
		return err
	}

	return nil
}
