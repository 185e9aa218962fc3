package application

import (
	"errors"
	"strings"

	"github.com/bnema/editable-entry/internal/domain"
)

var ErrInvalidPageRef = errors.New("page reference needs a session, a page and a record")

// PageRef addresses one page turn: a session looking at a page layout for
// one record.
type PageRef struct {
	SessionID domain.SessionID
	Page      string
	RecordID  domain.RecordID
}

func (r PageRef) Validate() error {
	if strings.TrimSpace(string(r.SessionID)) == "" ||
		strings.TrimSpace(r.Page) == "" ||
		strings.TrimSpace(string(r.RecordID)) == "" {
		return ErrInvalidPageRef
	}

	return nil
}

type SetFieldCommand struct {
	Ref         PageRef
	ComponentID domain.ComponentID
	// Field is a dotted path below the entry's edit state, e.g. "name" or
	// "phones.0.number".
	Field string
	Value any
}

type PutRecordCommand struct {
	ID         domain.RecordID
	Type       domain.RecordType
	Attributes domain.Attributes
}
