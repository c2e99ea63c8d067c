package main

import (
	"errors"
	"io"

	"github.com/phrazzld/deckforge/internal/service"
	"github.com/spf13/cobra"
)

func newConvertCmd(newApp appFactory) *cobra.Command {
	style := &styleFlags{}
	var (
		text     string
		maxChars int
	)

	cmd := &cobra.Command{
		Use:   "convert [file|url|-]",
		Short: "Split a document, web page or text into slides",
		Long: `Reads a .txt, .md or .docx file, an http(s) page, standard input ("-") or
the --text flag, splits it into slides of at most --max-chars characters and
writes the deck. No model is called.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ContentRequest{
				Text:       text,
				MaxChars:   maxChars,
				Style:      style.style(),
				OutputPath: style.output,
			}

			switch {
			case len(args) == 1 && args[0] == "-":
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Text = string(raw)
			case len(args) == 1:
				req.Source = args[0]
			case text == "":
				return errors.New("provide a file, a URL, \"-\" or --text")
			}

			app, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			res, err := app.decks.ContentDeck(cmd.Context(), req)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Text to convert instead of a file")
	cmd.Flags().IntVarP(&maxChars, "max-chars", "m", 0, "Maximum characters per slide (default from config)")
	style.register(cmd, false)
	return cmd
}
