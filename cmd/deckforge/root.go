package main

import (
	"github.com/phrazzld/deckforge/internal/service"
	"github.com/spf13/cobra"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

// styleFlags are the typography overrides accepted by deck-producing commands.
type styleFlags struct {
	mainTitle     string
	titleFontSize float64
	fontSize      float64
	fontColor     string
	output        string
}

func (s *styleFlags) register(cmd *cobra.Command, withTitleSize bool) {
	cmd.Flags().StringVarP(&s.mainTitle, "title", "t", "", "Main title shown on the first slide")
	if withTitleSize {
		cmd.Flags().Float64Var(&s.titleFontSize, "title-font-size", 0, "Slide title size in points (default from config)")
	}
	cmd.Flags().Float64VarP(&s.fontSize, "font-size", "s", 0, "Body text size in points, 12 to 48 (default from config)")
	cmd.Flags().StringVarP(&s.fontColor, "color", "c", "", "Body text color as RRGGBB (default from config)")
	cmd.Flags().StringVarP(&s.output, "out", "o", "", "Output .pptx path (default <output_dir>/<output_file>)")
}

func (s *styleFlags) style() service.Style {
	return service.Style{
		MainTitle:     s.mainTitle,
		TitleFontSize: s.titleFontSize,
		BodyFontSize:  s.fontSize,
		FontColor:     s.fontColor,
	}
}

// appFactory builds the application for a command. Tests replace it.
type appFactory func(cmd *cobra.Command, withLLM bool) (*application, error)

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	newApp := func(cmd *cobra.Command, withLLM bool) (*application, error) {
		return newApplication(cmd.Context(), appOptions{
			configPath: flags.configPath,
			logLevel:   flags.logLevel,
			withLLM:    withLLM,
			stderr:     cmd.ErrOrStderr(),
		})
	}

	return buildRootCmd(flags, newApp)
}

func buildRootCmd(flags *rootFlags, newApp appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "deckforge",
		Short: "Build PowerPoint decks from topics and documents",
		Long: `deckforge turns a topic into a generated slide deck, or splits existing
text (a file, a web page or pasted text) into slides.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file (default ./config.yaml if present)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newTopicCmd(newApp),
		newConvertCmd(newApp),
		newOutlineCmd(newApp),
		newRenderCmd(newApp),
		newInspectCmd(),
		newServeCmd(newApp),
	)
	return root
}
