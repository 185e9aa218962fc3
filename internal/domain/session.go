package domain

import (
	"strings"
	"time"
)

// ScratchSlot is the page-level slot that holds uncommitted edits, keyed by
// component id.
const ScratchSlot = "editableEntryData"

type SessionID string

type ComponentID string

// EditSession tracks which component of a page is in edit mode and the
// uncommitted field values of that component. One value belongs to exactly
// one page session.
type EditSession struct {
	ID SessionID

	// Page and RecordID name what the edit state was captured against.
	Page              string
	RecordID          RecordID
	ActiveComponentID ComponentID
	Scratch           map[ComponentID]map[string]any
	UpdatedAt         time.Time
}

func NewEditSession(id SessionID) *EditSession {
	return &EditSession{
		ID:      id,
		Scratch: map[ComponentID]map[string]any{},
	}
}

// Scope binds the session to a page and record. Moving to another page or
// record drops the active component and every scratch entry, and reports
// whether anything was dropped.
func (s *EditSession) Scope(page string, record RecordID) bool {
	if s.Page == page && s.RecordID == record {
		return false
	}

	discarded := s.ActiveComponentID != "" || len(s.Scratch) > 0
	s.Page = page
	s.RecordID = record
	s.ActiveComponentID = ""
	s.Scratch = map[ComponentID]map[string]any{}

	return discarded
}

func (s *EditSession) IsEditing(id ComponentID) bool {
	if s == nil || id == "" {
		return false
	}

	return s.ActiveComponentID == id
}

func (s *EditSession) Active() (ComponentID, bool) {
	if s == nil || s.ActiveComponentID == "" {
		return "", false
	}

	return s.ActiveComponentID, true
}

// BeginEdit marks id as the single active component. Scratch entries that
// belong to any other component are purged so abandoned edits never pile up.
func (s *EditSession) BeginEdit(id ComponentID) {
	if id == "" {
		return
	}

	s.ActiveComponentID = id
	for other := range s.Scratch {
		if other != id {
			delete(s.Scratch, other)
		}
	}
}

// EndEdit clears the active marker when it points at id and drops the
// scratch entry of id.
func (s *EditSession) EndEdit(id ComponentID) {
	if s.ActiveComponentID == id {
		s.ActiveComponentID = ""
	}

	delete(s.Scratch, id)
}

func (s *EditSession) FieldsFor(id ComponentID) map[string]any {
	if s.Scratch == nil {
		s.Scratch = map[ComponentID]map[string]any{}
	}

	fields, ok := s.Scratch[id]
	if !ok || fields == nil {
		fields = map[string]any{}
		s.Scratch[id] = fields
	}

	return fields
}

func (s *EditSession) HasScratch(id ComponentID) bool {
	if s == nil {
		return false
	}

	_, ok := s.Scratch[id]
	return ok
}

// StatePathFor returns the dotted binding path of the scratch entry of id.
func StatePathFor(id ComponentID) string {
	return strings.Join([]string{ScratchSlot, string(id)}, ".")
}
