package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
)

func newRecordCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage stored records",
	}

	cmd.AddCommand(
		newRecordPutCmd(app),
		newRecordListCmd(app),
	)

	return cmd
}

func newRecordPutCmd(app *app) *cobra.Command {
	var recordType string

	cmd := &cobra.Command{
		Use:   "put <record-id> [field=value]...",
		Short: "Create a record or merge attributes into it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			attributes := domain.Attributes{}
			for _, a := range assignments {
				attributes[a.field] = a.value
			}

			record, err := app.pageService(nil).PutRecord(cmd.Context(), application.PutRecordCommand{
				ID:         domain.RecordID(args[0]),
				Type:       domain.RecordType(recordType),
				Attributes: attributes,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored record %s (attributes: %d)\n", record.ID, len(record.Attributes))
			return nil
		},
	}
	cmd.Flags().StringVar(&recordType, "type", "", "Record type, matched against a page's record-type")

	return cmd
}

func newRecordListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.pageService(nil).Records(cmd.Context())
			if err != nil {
				return err
			}
			slices.SortFunc(records, func(a, b domain.Record) int {
				return strings.Compare(string(a.ID), string(b.ID))
			})

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, record := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", record.ID, record.Type, formatAttributes(record.Attributes))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")

	return cmd
}

func formatAttributes(attributes domain.Attributes) string {
	parts := make([]string, 0, len(attributes))
	for _, key := range sortedKeys(attributes) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, attributes[key]))
	}

	return strings.Join(parts, " ")
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
