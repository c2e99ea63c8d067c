package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd(newApp appFactory) *cobra.Command {
	style := &styleFlags{}

	cmd := &cobra.Command{
		Use:   "render <outline.yaml>",
		Short: "Write a deck from a saved outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outline, err := readOutline(args[0])
			if err != nil {
				return err
			}

			app, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			res, err := app.decks.RenderOutline(cmd.Context(), outline, style.style(), style.output)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	style.register(cmd, true)
	return cmd
}
