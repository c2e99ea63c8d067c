package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/phrazzld/deckforge/internal/domain"
	"gopkg.in/yaml.v3"
)

// readOutline loads an outline saved by the outline command.
func readOutline(path string) (domain.Outline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Outline{}, fmt.Errorf("failed to read outline: %w", err)
	}
	return decodeOutline(raw)
}

func decodeOutline(raw []byte) (domain.Outline, error) {
	var outline domain.Outline
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&outline); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Outline{}, fmt.Errorf("%w: outline file is empty", domain.ErrNothingToRender)
		}
		return domain.Outline{}, fmt.Errorf("%w: invalid outline: %v", domain.ErrInvalidFormat, err)
	}
	return outline, nil
}

// writeOutline encodes outline as YAML.
func writeOutline(w io.Writer, outline domain.Outline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(outline); err != nil {
		return err
	}
	return enc.Close()
}

// outlineMarkdown renders the outline as a Markdown document for preview.
func outlineMarkdown(outline domain.Outline) string {
	var b strings.Builder
	if outline.Topic != "" {
		fmt.Fprintf(&b, "# %s\n\n", outline.Topic)
	}
	for i, slide := range outline.Slides {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, slide.Title)
		if slide.HasBody() {
			b.WriteString(strings.TrimSpace(slide.Body))
			b.WriteString("\n\n")
		} else {
			b.WriteString("_No content._\n\n")
		}
	}
	for _, w := range outline.Warnings {
		fmt.Fprintf(&b, "> %s\n\n", w)
	}
	return b.String()
}

// renderMarkdown formats Markdown for the terminal. style is a glamour
// standard style name; empty picks one from the terminal background.
func renderMarkdown(md, style string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
