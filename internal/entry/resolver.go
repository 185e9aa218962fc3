package entry

import (
	"fmt"
	"slices"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

// Resolver picks the schema a container shows and builds bound edit schemas.
type Resolver struct {
	session  *domain.EditSession
	provider ScratchProvider
}

func NewResolver(session *domain.EditSession, provider ScratchProvider) *Resolver {
	return &Resolver{session: session, provider: provider}
}

// Resolve returns the edit schema while the session edits c and the view
// schema otherwise.
func (r *Resolver) Resolve(c Editable) (*schema.Schema, error) {
	if r.session.IsEditing(c.ID()) {
		return r.EditSchema(c)
	}

	return c.GetViewSchema(), nil
}

// EditSchema builds the edit schema of c on first use and caches it on the
// container.
func (r *Resolver) EditSchema(c Editable) (*schema.Schema, error) {
	base := c.base()
	if base.edit != nil {
		return base.edit, nil
	}

	path := base.statePath
	if path == "" {
		path = domain.StatePathFor(base.id)
	}

	segments := schema.SplitPath(path)
	if len(segments) == 0 || !slices.Contains(r.provider.ScratchSlots(), segments[0]) {
		root := ""
		if len(segments) > 0 {
			root = segments[0]
		}
		return nil, fmt.Errorf(
			"%w: entry %q binds to %q but the host has no %q slot; declare the slot on the host or set the state path explicitly",
			ErrInvalidStatePath, base.id, path, root,
		)
	}
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: entry %q binds to the whole %q slot", ErrInvalidStatePath, base.id, path)
	}

	decl := base.editDecl
	if decl == nil {
		decl = schema.New()
	}
	if err := decl.Check(); err != nil {
		return nil, fmt.Errorf("%w: entry %q: %w", ErrInvalidSchema, base.id, err)
	}

	edit := decl.Clone().AtPath(path).Bind(r.provider).ForRecord(base.record)
	if base.record != nil {
		edit.Model(base.record.Type)
	}
	base.edit = edit

	return edit, nil
}

// Discard drops the scratch the edit schema of c is bound to, wherever the
// state path points.
func (r *Resolver) Discard(c Editable) error {
	edit, err := r.EditSchema(c)
	if err != nil {
		return err
	}

	r.provider.Delete(edit.Path())

	return nil
}

// Prime fills the edit schema of c from its record, replacing whatever the
// scratch held before. A container without a record starts from defaults.
func (r *Resolver) Prime(c Editable) error {
	edit, err := r.EditSchema(c)
	if err != nil {
		return err
	}

	if edit.Record() == nil {
		return edit.Fill(nil)
	}

	return edit.FillFromRecord()
}
