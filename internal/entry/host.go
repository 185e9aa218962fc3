package entry

import (
	"context"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

// Persister stores saved records and their relations.
type Persister interface {
	Update(ctx context.Context, record domain.Record) error
	SaveRelation(ctx context.Context, record domain.Record, relation string, items []domain.Attributes) error
}

type Notifier interface {
	Send(ctx context.Context, notification domain.Notification) error
}

// Host is the page an editable container lives on. Actions reach the
// session, the registry and the outside world only through it.
type Host interface {
	Session() *domain.EditSession
	EditableEntry(id domain.ComponentID) (Editable, bool)
	Resolver() *Resolver
	Records() Persister
	Notify(ctx context.Context, notification domain.Notification)
	Redraw()
	ReportErrors(id domain.ComponentID, verr *schema.ValidationError)
	ClearErrors(id domain.ComponentID)
}

// ScratchProvider is the state store edit schemas bind to. ScratchSlots
// lists the top-level keys it can hold. Delete drops whatever a path holds
// and is a no-op for missing paths.
type ScratchProvider interface {
	schema.StateStore
	Delete(path string)
	ScratchSlots() []string
}
