package domain

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrSessionNotFound = errors.New("edit session not found")
	ErrLayoutNotFound  = errors.New("page layout not found")
)
