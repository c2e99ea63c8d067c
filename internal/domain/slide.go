package domain

import (
	"fmt"
	"strings"
)

// SegmentTitle is the title given to every slide produced by content segmentation.
const SegmentTitle = "Content"

// SlideUnit is one planned slide: a title and its body text.
type SlideUnit struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body"  yaml:"body"`
}

// NewSlideUnit creates a SlideUnit, trimming surrounding whitespace from the title.
// Returns an error if the title is empty.
func NewSlideUnit(title, body string) (SlideUnit, error) {
	unit := SlideUnit{
		Title: strings.TrimSpace(title),
		Body:  body,
	}

	if err := unit.Validate(); err != nil {
		return SlideUnit{}, err
	}

	return unit, nil
}

// Validate checks that the slide has a title.
func (s SlideUnit) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: slide title cannot be empty", ErrValidation)
	}
	return nil
}

// HasBody reports whether any content was produced for the slide.
func (s SlideUnit) HasBody() bool {
	return strings.TrimSpace(s.Body) != ""
}

// Outline is the ordered list of slides planned for a deck.
// Slide order is presentation order.
type Outline struct {
	Topic  string      `json:"topic,omitempty"  yaml:"topic,omitempty"`
	Slides []SlideUnit `json:"slides"           yaml:"slides"`

	// Warnings holds displayable messages for slides whose content could not be
	// generated. The affected slides are kept with an empty body.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Len returns the number of planned slides.
func (o Outline) Len() int {
	return len(o.Slides)
}

// Validate checks every slide in the outline.
func (o Outline) Validate() error {
	for i, slide := range o.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}
