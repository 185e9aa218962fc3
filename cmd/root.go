package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ee",
		Short:         "Editable entries: view and edit record fields in place",
		Long:          "ee renders page layouts of editable entries over stored records. Each entry toggles between a read-only view and an edit form through its start, save and cancel actions, with edit state kept per session.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&app.ref.session, "session", app.config.GetString(sessionKey), "Edit session ID")
	rootCmd.PersistentFlags().StringVar(&app.ref.page, "page", app.config.GetString(pageKey), "Page layout name")
	rootCmd.PersistentFlags().StringVar(&app.ref.record, "record", app.config.GetString(recordKey), "Record ID")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPageCmd(app),
		newEntryCmd(app),
		newRecordCmd(app),
		newSessionCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
