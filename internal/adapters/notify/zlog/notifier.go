package zlog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

// Notifier writes notifications to a zerolog logger: successes at info
// level, failures at error level.
type Notifier struct {
	logger zerolog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(logger zerolog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) Send(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := n.logger.Info()
	if notification.Status == domain.NotificationDanger {
		event = n.logger.Error()
	}

	event.
		Str("status", string(notification.Status)).
		Str("component", string(notification.ComponentID)).
		Str("body", notification.Body).
		Msg(notification.Title)

	return nil
}
