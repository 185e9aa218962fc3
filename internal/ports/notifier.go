package ports

import (
	"context"

	"github.com/bnema/editable-entry/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, notification domain.Notification) error
}
