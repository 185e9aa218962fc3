package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/domain"
	portmocks "github.com/bnema/editable-entry/internal/ports/mocks"
)

var saved = domain.Notification{Title: "Saved", Status: domain.NotificationSuccess, ComponentID: "c1"}

func TestNotifierUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier := NewNotifier(primary, fallback)

	primary.EXPECT().Send(mock.Anything, saved).Return(nil).Once()

	require.NoError(t, notifier.Send(context.Background(), saved))
}

func TestNotifierFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier := NewNotifier(primary, fallback)

	primary.EXPECT().Send(mock.Anything, saved).Return(errors.New("terminal closed")).Once()
	fallback.EXPECT().Send(mock.Anything, saved).Return(nil).Once()

	require.NoError(t, notifier.Send(context.Background(), saved))
}

func TestNotifierReturnsCombinedErrorWhenBothFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier := NewNotifier(primary, fallback)

	primaryErr := errors.New("terminal closed")
	fallbackErr := errors.New("log sink closed")
	primary.EXPECT().Send(mock.Anything, saved).Return(primaryErr).Once()
	fallback.EXPECT().Send(mock.Anything, saved).Return(fallbackErr).Once()

	err := notifier.Send(context.Background(), saved)
	require.Error(t, err)
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, fallbackErr)
}

func TestNotifierSkipsFallbackOnContextCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockNotifier(t)
	fallback := portmocks.NewMockNotifier(t)
	notifier := NewNotifier(primary, fallback)

	primary.EXPECT().Send(mock.Anything, saved).Return(context.Canceled).Once()

	err := notifier.Send(context.Background(), saved)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewNotifierCheckedRejectsNilSinks(t *testing.T) {
	t.Parallel()

	_, err := NewNotifierChecked(nil, portmocks.NewMockNotifier(t))
	assert.ErrorIs(t, err, errNilPrimaryNotifier)

	_, err = NewNotifierChecked(portmocks.NewMockNotifier(t), nil)
	assert.ErrorIs(t, err, errNilFallbackNotifier)

	assert.Panics(t, func() { NewNotifier(nil, nil) })
}
