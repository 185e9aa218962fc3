package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/editable-entry/internal/domain"
)

func TestNotifierPrintsOneLinePerNotification(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewNotifier(&buf)

	require.NoError(t, notifier.Send(context.Background(), domain.Notification{
		Title: "Saved", Status: domain.NotificationSuccess, ComponentID: "c1",
	}))
	require.NoError(t, notifier.Send(context.Background(), domain.Notification{
		Title: "Save failed", Body: "disk full", Status: domain.NotificationDanger, ComponentID: "c1",
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Saved")
	assert.Contains(t, string(lines[0]), "(c1)")
	assert.Contains(t, string(lines[1]), "Save failed")
	assert.Contains(t, string(lines[1]), "disk full")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestNotifierReportsWriteErrors(t *testing.T) {
	err := NewNotifier(failingWriter{}).Send(context.Background(), domain.Notification{Title: "Saved"})
	assert.ErrorContains(t, err, "broken pipe")
}
