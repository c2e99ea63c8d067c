package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/deckforge/internal/mocks"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config file that keeps decks under dir and
// disables pacing so tests run fast.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`server:
  log_level: error
llm:
  retry_delay_seconds: 0
  call_interval_ms: 0
  max_attempts: 2
deck:
  output_dir: %q
`, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeGenerator answers title prompts with two titles and every other
// prompt with a sentence naming the slide.
func fakeGenerator() *mocks.MockTextGenerator {
	return &mocks.MockTextGenerator{
		GenerateTextFn: func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "slide titles") {
				return "Introduction\nKey Ideas", nil
			}
			return "Content for this slide.", nil
		},
	}
}

// testApp returns an appFactory that reads configPath and uses gen in
// place of a real provider. A nil gen keeps the configured provider.
func testApp(configPath string, gen *mocks.MockTextGenerator) appFactory {
	return func(cmd *cobra.Command, withLLM bool) (*application, error) {
		opts := appOptions{
			configPath: configPath,
			withLLM:    withLLM,
			stderr:     cmd.ErrOrStderr(),
		}
		if gen != nil {
			opts.generator = gen
		}
		return newApplication(cmd.Context(), opts)
	}
}

// runCmd executes the root command with args and returns stdout and stderr.
func runCmd(t *testing.T, newApp appFactory, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := buildRootCmd(&rootFlags{}, newApp)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
