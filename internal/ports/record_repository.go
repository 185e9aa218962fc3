package ports

import (
	"context"

	"github.com/bnema/editable-entry/internal/domain"
)

type RecordRepository interface {
	GetByID(ctx context.Context, id domain.RecordID) (domain.Record, error)
	List(ctx context.Context) ([]domain.Record, error)
	Put(ctx context.Context, record domain.Record) error
	Update(ctx context.Context, record domain.Record) error
	SaveRelation(ctx context.Context, record domain.Record, relation string, items []domain.Attributes) error
}
