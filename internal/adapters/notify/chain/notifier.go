package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

// Notifier delivers through the primary sink and falls back to the second
// one when the primary fails.
type Notifier struct {
	primary  ports.Notifier
	fallback ports.Notifier
}

var _ ports.Notifier = (*Notifier)(nil)

var (
	errNilPrimaryNotifier  = errors.New("primary notifier is nil")
	errNilFallbackNotifier = errors.New("fallback notifier is nil")
)

func NewNotifier(primary ports.Notifier, fallback ports.Notifier) *Notifier {
	notifier, err := NewNotifierChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return notifier
}

func NewNotifierChecked(primary ports.Notifier, fallback ports.Notifier) (*Notifier, error) {
	if primary == nil {
		return nil, errNilPrimaryNotifier
	}
	if fallback == nil {
		return nil, errNilFallbackNotifier
	}

	return &Notifier{primary: primary, fallback: fallback}, nil
}

func (n *Notifier) Send(ctx context.Context, notification domain.Notification) error {
	err := n.primary.Send(ctx, notification)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := n.fallback.Send(ctx, notification)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary notifier send failed: %w; fallback notifier send failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
