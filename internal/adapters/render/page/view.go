package page

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
)

type RenderOptions struct {
	// HideActions drops the action hints under each entry.
	HideActions bool
}

func renderPage(view application.PageView, opts RenderOptions, s styles) string {
	title := view.Title
	if title == "" {
		title = view.Page
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(pageHeader(view)),
	}

	if len(view.Entries) == 0 {
		lines = append(lines, s.empty.Render("No editable entries on this page."))
	}

	for _, e := range view.Entries {
		block := renderEntry(e, opts, s)
		if e.Mode == application.ModeEdit {
			lines = append(lines, s.editing.Render(block))
			continue
		}
		lines = append(lines, s.entry.Render(block))
	}

	if len(view.Notifications) > 0 {
		notes := make([]string, 0, len(view.Notifications))
		for _, n := range view.Notifications {
			notes = append(notes, renderNotification(n, s))
		}
		lines = append(lines, s.entry.Render(lipgloss.JoinVertical(lipgloss.Left, notes...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func pageHeader(view application.PageView) string {
	record := string(view.RecordID)
	if view.RecordType != "" {
		record = fmt.Sprintf("%s %s", view.RecordType, view.RecordID)
	}

	header := fmt.Sprintf("record: %s  session: %s", record, view.SessionID)
	if view.Active != "" {
		header += fmt.Sprintf("  editing: %s", view.Active)
	}

	return header
}

func renderEntry(e application.EntryView, opts RenderOptions, s styles) string {
	label := e.Label
	if label == "" {
		label = string(e.ID)
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.heading.Render(label),
			" ",
			s.mode.Render(fmt.Sprintf("[%s %s]", e.ID, e.Mode)),
		),
	}
	if e.Description != "" {
		parts = append(parts, s.description.Render(e.Description))
	}

	if len(e.Fields) == 0 {
		parts = append(parts, s.empty.Render("no fields"))
	}
	for _, field := range e.Fields {
		parts = append(parts, fieldLines(field, s)...)
	}

	for _, message := range orphanErrors(e) {
		parts = append(parts, s.fieldError.Render("! "+message))
	}

	if !opts.HideActions && len(e.Actions) > 0 {
		parts = append(parts, actionLine(e.Actions, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func fieldLines(field application.FieldView, s styles) []string {
	key := s.fieldKey.Render(field.Label + ":")

	var lines []string
	if items, ok := asItems(field.Value); ok {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, key, " ", s.fieldValue.Render(itemCount(len(items)))))
		for _, item := range items {
			lines = append(lines, s.fieldValue.Render("  - "+formatItem(item)))
		}
	} else {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, key, " ", formatValue(field.Value, s)))
	}

	for _, message := range field.Errors {
		lines = append(lines, s.fieldError.Render("  ! "+message))
	}

	return lines
}

// orphanErrors returns messages for paths no rendered field shows, such as
// nested repeater item errors.
func orphanErrors(e application.EntryView) []string {
	shown := make(map[string]struct{}, len(e.Fields))
	for _, field := range e.Fields {
		shown[field.Name] = struct{}{}
	}

	var out []string
	for _, path := range sortedKeys(e.Errors) {
		if _, ok := shown[path]; ok {
			continue
		}
		for _, message := range e.Errors[path] {
			out = append(out, fmt.Sprintf("%s: %s", path, message))
		}
	}

	return out
}

func actionLine(actions []application.ActionView, s styles) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, s.action.Render(action.Label)+" "+s.actionName.Render("("+action.Dispatch+")"))
	}

	return strings.Join(parts, "  ")
}

func renderNotification(n domain.Notification, s styles) string {
	marker := s.success.Render("✓ " + n.Title)
	if n.Status == domain.NotificationDanger {
		marker = s.danger.Render("✗ " + n.Title)
	}
	if n.Body == "" {
		return marker
	}

	return marker + " " + s.fieldValue.Render(n.Body)
}

func formatValue(value any, s styles) string {
	switch v := value.(type) {
	case nil:
		return s.empty.Render("(empty)")
	case string:
		if v == "" {
			return s.empty.Render("(empty)")
		}
		return s.fieldValue.Render(v)
	case bool:
		if v {
			return s.fieldValue.Render("yes")
		}
		return s.fieldValue.Render("no")
	default:
		return s.fieldValue.Render(fmt.Sprint(v))
	}
}

func asItems(value any) ([]map[string]any, bool) {
	switch v := value.(type) {
	case []map[string]any:
		return v, true
	case []domain.Attributes:
		items := make([]map[string]any, 0, len(v))
		for _, item := range v {
			items = append(items, item)
		}
		return items, true
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, raw := range v {
			switch item := raw.(type) {
			case map[string]any:
				items = append(items, item)
			case domain.Attributes:
				items = append(items, item)
			}
		}
		return items, true
	default:
		return nil, false
	}
}

func formatItem(item map[string]any) string {
	parts := make([]string, 0, len(item))
	for _, key := range sortedKeys(item) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, item[key]))
	}

	return strings.Join(parts, " ")
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}

	return fmt.Sprintf("%d items", n)
}

// sortedKeys returns the map's keys in ascending order.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}
