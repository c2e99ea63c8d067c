package main

import (
	"strings"

	"github.com/phrazzld/deckforge/internal/service"
	"github.com/spf13/cobra"
)

func newTopicCmd(newApp appFactory) *cobra.Command {
	style := &styleFlags{}

	cmd := &cobra.Command{
		Use:   "topic <topic>",
		Short: "Generate a deck about a topic",
		Long: `Asks the configured model for slide titles about the topic, then for the
content of each slide, and writes the deck. The topic is the main title unless
--title is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, true)
			if err != nil {
				return err
			}

			res, err := app.decks.TopicDeck(cmd.Context(), service.TopicRequest{
				Topic:      strings.Join(args, " "),
				Style:      style.style(),
				OutputPath: style.output,
			})
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
