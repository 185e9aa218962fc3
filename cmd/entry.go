package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
)

var errInvalidAssignment = errors.New("expected field=value")

func newEntryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Start, edit, save or cancel an editable entry",
	}

	cmd.AddCommand(
		newEntryActionCmd(app, "start", "Switch an entry to edit mode", entry.StartActionName),
		newEntryActionCmd(app, "save", "Validate and persist an entry's edits", entry.SaveActionName),
		newEntryActionCmd(app, "cancel", "Discard an entry's edits", entry.CancelActionName),
		newEntrySetCmd(app),
	)

	return cmd
}

func newEntryActionCmd(app *app, use string, short string, action string) *cobra.Command {
	var output outputFlags

	cmd := &cobra.Command{
		Use:   use + " <component-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ComponentID(args[0])
			view, err := app.pageService(nil).Invoke(cmd.Context(), app.ref.pageRef(), entry.DispatchName(action, id))
			if view.Page != "" {
				if writeErr := writePageOutput(cmd, app, view, output); writeErr != nil {
					return errors.Join(err, writeErr)
				}
			}

			return err
		},
	}
	output.register(cmd)

	return cmd
}

func newEntrySetCmd(app *app) *cobra.Command {
	var output outputFlags

	cmd := &cobra.Command{
		Use:   "set <component-id> <field=value>...",
		Short: "Write field values into an entry being edited",
		Long:  "Write field values into the edit state of an entry. Values are taken as text and coerced by the field; values starting with '[' or '{' are read as YAML flow collections, e.g. phones='[{number: 555-0100}]'.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ComponentID(args[0])
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			service := app.pageService(nil)
			var view application.PageView
			for _, a := range assignments {
				view, err = service.SetField(cmd.Context(), application.SetFieldCommand{
					Ref:         app.ref.pageRef(),
					ComponentID: id,
					Field:       a.field,
					Value:       a.value,
				})
				if err != nil {
					return err
				}
			}

			return writePageOutput(cmd, app, view, output)
		},
	}
	output.register(cmd)

	return cmd
}

type assignment struct {
	field string
	value any
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		field, raw, ok := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidAssignment, arg)
		}

		value, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", field, err)
		}
		out = append(out, assignment{field: field, value: value})
	}

	return out, nil
}

func parseValue(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return raw, nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, err
	}

	return value, nil
}
