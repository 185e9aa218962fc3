package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/editable-entry/internal/domain"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage edit sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Discard the session's edit state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.pageService(nil).Reset(cmd.Context(), domain.SessionID(app.ref.session)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset session %s\n", app.ref.session)
			return nil
		},
	})

	return cmd
}
