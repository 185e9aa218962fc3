package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/schema"
)

type ActionKind string

const (
	KindStart  ActionKind = "start"
	KindSave   ActionKind = "save"
	KindCancel ActionKind = "cancel"
)

const (
	StartActionName  = "startEditableEntry"
	SaveActionName   = "saveEditableEntry"
	CancelActionName = "cancelEditableEntry"
)

const (
	SavedTitle      = "Saved"
	SaveFailedTitle = "Save failed"
)

// Action describes one of the Start, Save and Cancel operations. It holds no
// component id; the id is passed to every call.
type Action struct {
	Kind  ActionKind
	Name  string
	Label string
	Icon  string
	Color string
	Size  string
	Link  bool

	visible func(Host, domain.ComponentID) bool
	effect  func(context.Context, Host, domain.ComponentID) error
}

func StartAction() Action {
	return Action{
		Kind:    KindStart,
		Name:    StartActionName,
		Label:   "Edit",
		Icon:    "heroicon-o-pencil",
		Size:    "xs",
		Link:    true,
		visible: func(h Host, id domain.ComponentID) bool { return !h.Session().IsEditing(id) },
		effect:  start,
	}
}

func SaveAction() Action {
	return Action{
		Kind:    KindSave,
		Name:    SaveActionName,
		Label:   "Save",
		Icon:    "heroicon-o-arrow-down-tray",
		Size:    "xs",
		Link:    true,
		visible: editing,
		effect:  save,
	}
}

func CancelAction() Action {
	return Action{
		Kind:    KindCancel,
		Name:    CancelActionName,
		Label:   "Cancel",
		Color:   "gray",
		Size:    "xs",
		Link:    true,
		visible: editing,
		effect:  cancel,
	}
}

func (a Action) Visible(h Host, id domain.ComponentID) bool {
	if a.visible == nil {
		return true
	}

	return a.visible(h, id)
}

func (a Action) Invoke(ctx context.Context, h Host, id domain.ComponentID) error {
	if a.effect == nil {
		return nil
	}

	return a.effect(ctx, h, id)
}

func (a Action) Bind(id domain.ComponentID) BoundAction {
	return BoundAction{Action: a, ComponentID: id}
}

// BoundAction pairs an action with a component id for one render or one
// dispatch. It is never stored on the action itself.
type BoundAction struct {
	Action
	ComponentID domain.ComponentID
}

// DispatchName is the name a client sends back to trigger the action, for
// example "saveEditableEntry.c1".
func (b BoundAction) DispatchName() string {
	return DispatchName(b.Name, b.ComponentID)
}

// DispatchName joins an action name and a component id the way
// Page.Dispatch splits them.
func DispatchName(action string, id domain.ComponentID) string {
	return action + "." + string(id)
}

func (b BoundAction) Shown(h Host) bool {
	return b.Visible(h, b.ComponentID)
}

func (b BoundAction) Run(ctx context.Context, h Host) error {
	return b.Invoke(ctx, h, b.ComponentID)
}

func editing(h Host, id domain.ComponentID) bool {
	return h.Session().IsEditing(id)
}

func start(_ context.Context, h Host, id domain.ComponentID) error {
	c, ok := h.EditableEntry(id)
	if !ok {
		return nil
	}

	if prev, editing := h.Session().Active(); editing && prev != id {
		if other, ok := h.EditableEntry(prev); ok {
			if err := h.Resolver().Discard(other); err != nil {
				return err
			}
		}
	}
	h.Session().BeginEdit(id)
	h.ClearErrors(id)

	if err := h.Resolver().Prime(c); err != nil {
		return fmt.Errorf("prime edit schema: %w", err)
	}

	return nil
}

func save(ctx context.Context, h Host, id domain.ComponentID) error {
	c, ok := h.EditableEntry(id)
	if !ok || !h.Session().IsEditing(id) {
		return nil
	}

	edit, err := h.Resolver().EditSchema(c)
	if err != nil {
		return err
	}

	state, err := edit.State()
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			h.ReportErrors(id, verr)
			return err
		}
		return fmt.Errorf("evaluate edit schema: %w", err)
	}

	record := c.GetRecord()
	if record == nil {
		return saveFailed(ctx, h, id, schema.ErrNoRecord)
	}

	updated := record.Merge(state)
	if err := h.Records().Update(ctx, updated); err != nil {
		return saveFailed(ctx, h, id, fmt.Errorf("update record: %w", err))
	}

	// The main record is stored from here on, keep it in memory even when a
	// relation fails below.
	relations := edit.RelationshipState()
	if err := edit.SaveRelationships(ctx, h.Records()); err != nil {
		*record = updated
		return saveFailed(ctx, h, id, err)
	}

	for name, items := range relations {
		updated.Relations[name] = items
	}
	*record = updated

	if err := h.Resolver().Discard(c); err != nil {
		return err
	}
	h.Session().EndEdit(id)
	h.ClearErrors(id)
	h.Notify(ctx, domain.Notification{
		Title:       SavedTitle,
		Status:      domain.NotificationSuccess,
		ComponentID: id,
	})
	h.Redraw()

	return nil
}

func saveFailed(ctx context.Context, h Host, id domain.ComponentID, err error) error {
	h.Notify(ctx, domain.Notification{
		Title:       SaveFailedTitle,
		Body:        err.Error(),
		Status:      domain.NotificationDanger,
		ComponentID: id,
	})

	return fmt.Errorf("%w %s: %w", ErrPersistence, id, err)
}

func cancel(_ context.Context, h Host, id domain.ComponentID) error {
	c, ok := h.EditableEntry(id)
	if !ok {
		return nil
	}

	if err := h.Resolver().Discard(c); err != nil {
		return err
	}
	h.Session().EndEdit(id)
	h.ClearErrors(id)

	return nil
}
