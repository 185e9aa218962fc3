package ports

import (
	"context"

	"github.com/bnema/editable-entry/internal/domain"
)

type SessionRepository interface {
	GetByID(ctx context.Context, id domain.SessionID) (domain.EditSession, error)
	Save(ctx context.Context, session domain.EditSession) error
	Delete(ctx context.Context, id domain.SessionID) error
}
