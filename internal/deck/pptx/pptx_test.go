package pptx_test

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/deckforge/internal/deck/pptx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeck() *pptx.Presentation {
	p := pptx.New("Demo")
	p.Created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.AddTitleSlide("Demo", pptx.Font{Size: 30})

	s := p.AddContentSlide("Rock & Roll <live>", pptx.Font{Size: 30})
	s.Body.AddParagraph("First line\nsecond line.", pptx.Font{Size: 24, Color: "1a2b3c"})
	s.Body.AddParagraph("Đây là tiếng Việt.", pptx.Font{Size: 24, Color: "1A2B3C"})

	p.AddContentSlide("Empty", pptx.Font{Size: 30})
	return p
}

func encode(t *testing.T, p *pptx.Presentation) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestWriteTo_PackageParts(t *testing.T) {
	data := encode(t, sampleDeck())

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, "[Content_Types].xml", names[0])
	for _, want := range []string{
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/slideLayout2.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
	} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, "ppt/slides/slide4.xml")

	// Every part must be well-formed XML.
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		dec := xml.NewDecoder(rc)
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err, "part %s", f.Name)
		}
		rc.Close()
	}
}

func TestWriteTo_RunFormatting(t *testing.T) {
	data := encode(t, sampleDeck())
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var slide2 string
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide2.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			raw, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			slide2 = string(raw)
		}
	}

	assert.Contains(t, slide2, `sz="3000"`)
	assert.Contains(t, slide2, `sz="2400"`)
	assert.Contains(t, slide2, `<a:srgbClr val="1A2B3C"/>`)
	assert.Contains(t, slide2, `Rock &amp; Roll &lt;live&gt;`)
	assert.Contains(t, slide2, `<a:br>`)
	assert.Contains(t, slide2, `<p:ph idx="1"/>`)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = sampleDeck().WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := pptx.Read(path)
	require.NoError(t, err)

	assert.Equal(t, "Demo", got.Title)
	require.Len(t, got.Slides, 3)

	first := got.Slides[0]
	assert.Equal(t, pptx.LayoutTitle, first.Layout)
	assert.Equal(t, "Demo", first.Title.Text())
	assert.Nil(t, first.Body)
	assert.Equal(t, 30.0, first.Title.Paragraphs[0].Runs[0].Font.Size)

	second := got.Slides[1]
	assert.Equal(t, pptx.LayoutTitleAndContent, second.Layout)
	assert.Equal(t, "Rock & Roll <live>", second.Title.Text())
	require.NotNil(t, second.Body)
	require.Len(t, second.Body.Paragraphs, 2)
	assert.Equal(t, "First line\nsecond line.", second.Body.Paragraphs[0].Text())
	assert.Equal(t, "Đây là tiếng Việt.", second.Body.Paragraphs[1].Text())
	for _, p := range second.Body.Paragraphs {
		for _, r := range p.Runs {
			assert.Equal(t, 24.0, r.Font.Size)
			assert.Equal(t, "1A2B3C", r.Font.Color)
		}
	}

	third := got.Slides[2]
	assert.Equal(t, "Empty", third.Title.Text())
	require.NotNil(t, third.Body)
	assert.Empty(t, third.Body.Paragraphs)
	assert.Equal(t, "", third.Body.Text())
}

func TestDecode(t *testing.T) {
	data := encode(t, sampleDeck())

	got, err := pptx.Decode(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, got.Slides, 3)
}

func TestWriteTo_Errors(t *testing.T) {
	t.Run("no slides", func(t *testing.T) {
		_, err := pptx.New("x").WriteTo(io.Discard)
		assert.ErrorIs(t, err, pptx.ErrNoSlides)
	})

	t.Run("bad color", func(t *testing.T) {
		p := pptx.New("x")
		s := p.AddContentSlide("t", pptx.Font{})
		s.Body.AddParagraph("b", pptx.Font{Color: "blue"})
		_, err := p.WriteTo(io.Discard)
		assert.ErrorIs(t, err, pptx.ErrInvalidFont)
	})

	t.Run("negative size", func(t *testing.T) {
		p := pptx.New("x")
		p.AddTitleSlide("t", pptx.Font{Size: -1})
		_, err := p.WriteTo(io.Discard)
		assert.ErrorIs(t, err, pptx.ErrInvalidFont)
	})
}

func TestRead_NotPresentation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<doc/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = pptx.Decode(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.ErrorIs(t, err, pptx.ErrNotPresentation)

	_, err = pptx.Decode(strings.NewReader("not a zip"), 9)
	assert.Error(t, err)
}

func TestTextFrame_AddParagraph(t *testing.T) {
	var f pptx.TextFrame
	f.AddParagraph("a\n\nb", pptx.Font{Size: 10})

	require.Len(t, f.Paragraphs, 1)
	runs := f.Paragraphs[0].Runs
	require.Len(t, runs, 4)
	assert.Equal(t, "a", runs[0].Text)
	assert.Equal(t, "\n", runs[1].Text)
	assert.Equal(t, "\n", runs[2].Text)
	assert.Equal(t, "b", runs[3].Text)
	assert.Equal(t, "a\n\nb", f.Text())
}

func TestFont_SizeLabel(t *testing.T) {
	assert.Equal(t, "24pt", pptx.Font{Size: 24}.SizeLabel())
	assert.Equal(t, "10.5pt", pptx.Font{Size: 10.5}.SizeLabel())
	assert.Equal(t, "inherited", pptx.Font{}.SizeLabel())
}
