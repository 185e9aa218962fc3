package application

import (
	"github.com/bnema/editable-entry/internal/domain"
)

type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

type PageView struct {
	SessionID     domain.SessionID      `json:"session_id"`
	Page          string                `json:"page"`
	Title         string                `json:"title,omitempty"`
	RecordID      domain.RecordID       `json:"record_id"`
	RecordType    domain.RecordType     `json:"record_type,omitempty"`
	Active        domain.ComponentID    `json:"active,omitempty"`
	Entries       []EntryView           `json:"entries"`
	Notifications []domain.Notification `json:"notifications,omitempty"`
}

type EntryView struct {
	ID          domain.ComponentID  `json:"id"`
	Kind        string              `json:"kind"`
	Label       string              `json:"label"`
	Description string              `json:"description,omitempty"`
	Collapsible bool                `json:"collapsible,omitempty"`
	Mode        Mode                `json:"mode"`
	Fields      []FieldView         `json:"fields"`
	Actions     []ActionView        `json:"actions"`
	Errors      map[string][]string `json:"errors,omitempty"`
}

type FieldView struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Kind   string   `json:"kind"`
	Value  any      `json:"value"`
	Errors []string `json:"errors,omitempty"`
}

type ActionView struct {
	Name     string `json:"name"`
	Dispatch string `json:"dispatch"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Entry returns the view of one entry.
func (v PageView) Entry(id domain.ComponentID) (EntryView, bool) {
	for _, e := range v.Entries {
		if e.ID == id {
			return e, true
		}
	}

	return EntryView{}, false
}
