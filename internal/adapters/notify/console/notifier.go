package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

// Notifier prints one styled line per notification.
type Notifier struct {
	out    io.Writer
	mu     sync.Mutex
	styles styles
}

var _ ports.Notifier = (*Notifier)(nil)

type styles struct {
	success lipgloss.Style
	danger  lipgloss.Style
	body    lipgloss.Style
	meta    lipgloss.Style
}

func newStyles() styles {
	return styles{
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		danger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out, styles: newStyles()}
}

func (n *Notifier) Send(ctx context.Context, notification domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintln(n.out, n.render(notification)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}

	return nil
}

func (n *Notifier) render(notification domain.Notification) string {
	mark, style := "✓", n.styles.success
	if notification.Status == domain.NotificationDanger {
		mark, style = "✗", n.styles.danger
	}

	line := style.Render(mark + " " + notification.Title)
	if notification.Body != "" {
		line += " " + n.styles.body.Render(notification.Body)
	}
	if notification.ComponentID != "" {
		line += " " + n.styles.meta.Render("("+string(notification.ComponentID)+")")
	}

	return line
}
