package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	pagerender "github.com/bnema/editable-entry/internal/adapters/render/page"
	"github.com/bnema/editable-entry/internal/application"
)

type outputFlags struct {
	asJSON      bool
	hideActions bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the page view as JSON")
	cmd.Flags().BoolVar(&o.hideActions, "hide-actions", false, "Do not list entry actions")
}

func newPageCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Show page layouts",
	}

	cmd.AddCommand(
		newPageShowCmd(app),
		newPageListCmd(app),
	)

	return cmd
}

func newPageShowCmd(app *app) *cobra.Command {
	var output outputFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a page for a record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.pageService(nil).View(cmd.Context(), app.ref.pageRef())
			if err != nil {
				return err
			}

			return writePageOutput(cmd, app, view, output)
		},
	}
	output.register(cmd)

	return cmd
}

func newPageListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available page layouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := app.pageService(nil).Layouts(cmd.Context())
			if err != nil {
				return err
			}

			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no layouts")
				return nil
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func writePageOutput(cmd *cobra.Command, app *app, view application.PageView, output outputFlags) error {
	if output.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	rendered, err := app.renderer(view, pagerender.RenderOptions{HideActions: output.hideActions})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
