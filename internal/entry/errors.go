package entry

import "errors"

var (
	// ErrInvalidStatePath is a setup error: an edit schema binds to a path
	// whose root is not a scratch slot exposed by the host page.
	ErrInvalidStatePath     = errors.New("edit schema state path is not backed by a host scratch slot")
	ErrMissingComponentID   = errors.New("editable component has no id")
	ErrDuplicateComponentID = errors.New("duplicate editable component id")
	ErrInvalidSchema        = errors.New("invalid editable schema")
	ErrUnknownSlot          = errors.New("unknown scratch slot")
	ErrStatePathConflict    = errors.New("edit schema state path is owned by another entry")
	ErrUnknownAction        = errors.New("unknown editable entry action")
	ErrPersistence          = errors.New("persist editable entry")
)
