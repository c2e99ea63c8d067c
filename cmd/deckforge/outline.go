package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newOutlineCmd(newApp appFactory) *cobra.Command {
	var (
		output  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "outline <topic>",
		Short: "Generate an outline without writing a deck",
		Long: `Generates slide titles and content for a topic and saves them as YAML,
so the outline can be edited and turned into a deck with "render".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, true)
			if err != nil {
				return err
			}

			outline, err := app.decks.SynthesizeOutline(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if preview {
				rendered, err := renderMarkdown(outlineMarkdown(outline), "")
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.ErrOrStderr(), rendered)
			}

			if output == "" || output == "-" {
				return writeOutline(cmd.OutOrStdout(), outline)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := writeOutline(f, outline); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Outline saved: %s (%d slides)\n", output, outline.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write the YAML outline to this file instead of stdout")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "Show a formatted preview on stderr")
	return cmd
}
