package main

import (
	"bytes"
	"testing"

	"github.com/phrazzld/deckforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutline_ReadableByDecode(t *testing.T) {
	outline := domain.Outline{
		Topic: "Go",
		Slides: []domain.SlideUnit{
			{Title: "Goroutines", Body: "Lightweight threads. Scheduled by the runtime."},
			{Title: "Channels", Body: ""},
		},
		Warnings: []string{`No content generated for "Channels"`},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutline(&buf, outline))
	assert.Contains(t, buf.String(), "topic: Go")

	got, err := decodeOutline(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, outline, got)
}

func TestDecodeOutline_Errors(t *testing.T) {
	_, err := decodeOutline(nil)
	assert.ErrorIs(t, err, domain.ErrNothingToRender)

	_, err = decodeOutline([]byte("slides: [title: x"))
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = decodeOutline([]byte("topic: Go\nsections: []\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestOutlineMarkdown(t *testing.T) {
	md := outlineMarkdown(domain.Outline{
		Topic: "Go",
		Slides: []domain.SlideUnit{
			{Title: "Goroutines", Body: "Cheap threads."},
			{Title: "Channels"},
		},
		Warnings: []string{"missing body"},
	})

	assert.Contains(t, md, "# Go\n")
	assert.Contains(t, md, "## 1. Goroutines\n\nCheap threads.")
	assert.Contains(t, md, "## 2. Channels\n\n_No content._")
	assert.Contains(t, md, "> missing body")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown("# Title\n\nSome text.", "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Some text.")
}
