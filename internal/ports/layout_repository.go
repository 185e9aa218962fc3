package ports

import (
	"context"

	"github.com/bnema/editable-entry/internal/layout"
)

type LayoutRepository interface {
	GetByName(ctx context.Context, name string) (layout.Page, error)
	List(ctx context.Context) ([]string, error)
}
