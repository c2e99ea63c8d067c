package pptx

import (
	"strconv"
	"strings"
	"time"
)

// Layout identifies the slide layout a slide is based on.
type Layout int

const (
	// LayoutTitle has a single centered title placeholder.
	LayoutTitle Layout = iota + 1
	// LayoutTitleAndContent has a title and a body placeholder.
	LayoutTitleAndContent
)

func (l Layout) String() string {
	switch l {
	case LayoutTitle:
		return "title"
	case LayoutTitleAndContent:
		return "title_and_content"
	default:
		return "unknown"
	}
}

// Font describes run formatting. Zero values inherit from the layout.
type Font struct {
	// Size in points.
	Size float64
	// Color as six hex digits, for example "1F497D".
	Color string
}

// SizeLabel formats a point size for display, for example "24pt".
func (f Font) SizeLabel() string {
	if f.Size == 0 {
		return "inherited"
	}
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + "pt"
}

// Run is a span of text with uniform formatting. A Run whose text is "\n"
// is a line break.
type Run struct {
	Text string
	Font Font
}

// Paragraph is an ordered list of runs.
type Paragraph struct {
	Runs []Run
}

// Text returns the paragraph's text with line breaks as "\n".
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// TextFrame is the text content of a placeholder.
type TextFrame struct {
	Paragraphs []Paragraph
}

// Text returns all paragraphs joined by newlines.
func (f *TextFrame) Text() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(f.Paragraphs))
	for i, p := range f.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// AddParagraph appends a paragraph holding text in the given font. Newlines in
// text become line breaks within the paragraph.
func (f *TextFrame) AddParagraph(text string, font Font) {
	var p Paragraph
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.Runs = append(p.Runs, Run{Text: "\n", Font: font})
		}
		if line != "" {
			p.Runs = append(p.Runs, Run{Text: line, Font: font})
		}
	}
	f.Paragraphs = append(f.Paragraphs, p)
}

// Slide is one slide of a presentation.
type Slide struct {
	Layout Layout
	Title  TextFrame
	// Body is nil for title-only slides.
	Body *TextFrame
}

// Presentation is an in-memory deck.
type Presentation struct {
	// Title is stored in the document properties.
	Title string
	// Created is stored in the document properties. Zero means the time of writing.
	Created time.Time
	Slides  []*Slide
}

// New returns an empty presentation.
func New(title string) *Presentation {
	return &Presentation{Title: title}
}

// AddTitleSlide appends a slide that only shows title.
func (p *Presentation) AddTitleSlide(title string, font Font) *Slide {
	s := &Slide{Layout: LayoutTitle}
	s.Title.AddParagraph(title, font)
	p.Slides = append(p.Slides, s)
	return s
}

// AddContentSlide appends a slide with a title and an empty body.
func (p *Presentation) AddContentSlide(title string, font Font) *Slide {
	s := &Slide{Layout: LayoutTitleAndContent, Body: &TextFrame{}}
	s.Title.AddParagraph(title, font)
	p.Slides = append(p.Slides, s)
	return s
}
