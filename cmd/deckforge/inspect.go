package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/deckforge/internal/deck/pptx"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "inspect <deck.pptx>",
		Short: "Print the slides of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := pptx.Read(args[0])
			if err != nil {
				return err
			}

			md := presentationMarkdown(pres)
			if pretty {
				rendered, err := renderMarkdown(md, "")
				if err != nil {
					return err
				}
				md = rendered
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Format the output for the terminal")
	return cmd
}

// presentationMarkdown lists every slide with its title, body paragraphs and
// body font.
func presentationMarkdown(pres *pptx.Presentation) string {
	var b strings.Builder
	if pres.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", pres.Title)
	}
	for i, slide := range pres.Slides {
		fmt.Fprintf(&b, "## Slide %d: %s\n\n", i+1, slide.Title.Text())
		if slide.Body == nil {
			continue
		}
		for _, p := range slide.Body.Paragraphs {
			text := p.Text()
			if text == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s", text)
			if len(p.Runs) > 0 && p.Runs[0].Font.Size > 0 {
				fmt.Fprintf(&b, " _(%s", p.Runs[0].Font.SizeLabel())
				if c := p.Runs[0].Font.Color; c != "" {
					fmt.Fprintf(&b, ", #%s", c)
				}
				b.WriteString(")_")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
