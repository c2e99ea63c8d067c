package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/deckforge/internal/config"
	"github.com/phrazzld/deckforge/internal/deck/pptx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicCommand(t *testing.T) {
	dir := t.TempDir()
	gen := fakeGenerator()
	newApp := testApp(writeTestConfig(t, dir), gen)
	out := filepath.Join(dir, "ai.pptx")

	stdout, _, err := runCmd(t, newApp, "", "topic", "Machine", "Learning", "-o", out, "-s", "20", "-c", "1F497D")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Presentation saved: ")
	assert.Contains(t, stdout, "(3 slides)")
	assert.Equal(t, 3, gen.CallCount())

	pres, err := pptx.Read(out)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 3)
	assert.Equal(t, "Machine Learning", pres.Slides[0].Title.Text())
	assert.Equal(t, "Introduction", pres.Slides[1].Title.Text())
	require.NotNil(t, pres.Slides[1].Body)
	assert.Equal(t, "Content for this slide.", pres.Slides[1].Body.Text())
	assert.Equal(t, 20.0, pres.Slides[1].Body.Paragraphs[0].Runs[0].Font.Size)
	assert.Equal(t, "1F497D", pres.Slides[1].Body.Paragraphs[0].Runs[0].Font.Color)
}

func TestTopicCommand_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())

	_, _, err := runCmd(t, newApp, "", "topic", "Rust")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "presentation.pptx"))
}

func TestTopicCommand_MissingAPIKey(t *testing.T) {
	t.Setenv("DECKFORGE_LLM_GEMINI_API_KEY", "")
	dir := t.TempDir()

	_, _, err := runCmd(t, testApp(writeTestConfig(t, dir), nil), "", "topic", "Rust")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	assert.NoFileExists(t, filepath.Join(dir, "presentation.pptx"))
}

func TestConvertCommand_Text(t *testing.T) {
	dir := t.TempDir()
	gen := fakeGenerator()
	newApp := testApp(writeTestConfig(t, dir), gen)
	out := filepath.Join(dir, "text.pptx")

	stdout, _, err := runCmd(t, newApp, "",
		"convert", "--text", "First paragraph.\n\nSecond paragraph.", "-m", "50", "-t", "Notes", "-o", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "(3 slides)")
	assert.Zero(t, gen.CallCount())

	pres, err := pptx.Read(out)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 3)
	assert.Equal(t, "Notes", pres.Slides[0].Title.Text())
	assert.Equal(t, "Content", pres.Slides[1].Title.Text())
	assert.Equal(t, "First paragraph.", pres.Slides[1].Body.Text())
	assert.Equal(t, "Second paragraph.", pres.Slides[2].Body.Text())
}

func TestConvertCommand_Stdin(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())
	out := filepath.Join(dir, "stdin.pptx")

	_, _, err := runCmd(t, newApp, "Piped text.", "convert", "-", "-o", out)
	require.NoError(t, err)

	pres, err := pptx.Read(out)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 2)
	assert.Equal(t, "Piped text.", pres.Slides[1].Body.Text())
}

func TestConvertCommand_File(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())
	src := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("Alpha.\n\nBeta."), 0o600))

	_, _, err := runCmd(t, newApp, "", "convert", src)
	require.NoError(t, err)

	pres, err := pptx.Read(filepath.Join(dir, "presentation.pptx"))
	require.NoError(t, err)
	assert.Equal(t, "notes", pres.Slides[0].Title.Text())
}

func TestConvertCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"convert"}},
		{name: "missing file", args: []string{"convert", filepath.Join(dir, "missing.txt")}},
		{name: "blank text", args: []string{"convert", "--text", "   \n\n  "}},
		{name: "file and text", args: []string{"convert", "--text", "x", filepath.Join(dir, "config.yaml")}},
		{name: "font too small", args: []string{"convert", "--text", "x", "-s", "8"}},
		{name: "bad color", args: []string{"convert", "--text", "x", "-c", "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, newApp, "", tt.args...)
			assert.Error(t, err)
		})
	}
	assert.NoFileExists(t, filepath.Join(dir, "presentation.pptx"))
}

func TestOutlineRenderInspect(t *testing.T) {
	dir := t.TempDir()
	gen := fakeGenerator()
	newApp := testApp(writeTestConfig(t, dir), gen)
	outlinePath := filepath.Join(dir, "outline.yaml")
	deckPath := filepath.Join(dir, "rendered.pptx")

	stdout, _, err := runCmd(t, newApp, "", "outline", "Go", "-o", outlinePath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Outline saved: ")
	assert.NoFileExists(t, filepath.Join(dir, "presentation.pptx"))

	outline, err := readOutline(outlinePath)
	require.NoError(t, err)
	assert.Equal(t, "Go", outline.Topic)
	require.Len(t, outline.Slides, 2)

	calls := gen.CallCount()
	stdout, _, err = runCmd(t, newApp, "", "render", outlinePath, "-o", deckPath, "--title-font-size", "36")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(3 slides)")
	assert.Equal(t, calls, gen.CallCount(), "render must not call the model")

	stdout, _, err = runCmd(t, newApp, "", "inspect", deckPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "## Slide 1: Go")
	assert.Contains(t, stdout, "## Slide 2: Introduction")
	assert.Contains(t, stdout, "- Content for this slide. _(24pt, #000000)_")
}

func TestOutlineCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())

	stdout, _, err := runCmd(t, newApp, "", "outline", "Go")
	require.NoError(t, err)

	outline, err := decodeOutline([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, 2, outline.Len())
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	newApp := testApp(writeTestConfig(t, dir), fakeGenerator())

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("topic: Go\nslides: []\n"), 0o600))

	_, _, err := runCmd(t, newApp, "", "render", empty)
	assert.Error(t, err)

	_, _, err = runCmd(t, newApp, "", "render", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "presentation.pptx"))
}

func TestInspectCommand_NotADeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.pptx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, _, err := runCmd(t, testApp(writeTestConfig(t, dir), nil), "", "inspect", path)
	assert.Error(t, err)
}
