package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Typography defaults.
const (
	DefaultTitleFontSize = 30.0
	DefaultBodyFontSize  = 24.0
	MinBodyFontSize      = 12.0
	MaxBodyFontSize      = 48.0
)

// RGB is a 24-bit color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Black is the default body color.
var Black = RGB{}

// ParseRGB parses a color written as "RRGGBB" or "#RRGGBB".
func ParseRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: color %q must have six hex digits", ErrInvalidFormat, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q is not hexadecimal", ErrInvalidFormat, s)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as six uppercase hex digits, the form used by OOXML.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return "#" + c.Hex()
}

// DeckSpec holds the caller-supplied settings for one deck.
// It is immutable for the duration of a run.
type DeckSpec struct {
	MainTitle     string
	TitleFontSize float64 // points
	BodyFontSize  float64 // points
	BodyColor     RGB
}

// NewDeckSpec returns a DeckSpec with the default typography.
func NewDeckSpec(mainTitle string) DeckSpec {
	return DeckSpec{
		MainTitle:     strings.TrimSpace(mainTitle),
		TitleFontSize: DefaultTitleFontSize,
		BodyFontSize:  DefaultBodyFontSize,
		BodyColor:     Black,
	}
}

// Validate checks if the DeckSpec has valid data.
func (d DeckSpec) Validate() error {
	if strings.TrimSpace(d.MainTitle) == "" {
		return fmt.Errorf("%w: main title cannot be empty", ErrValidation)
	}

	if d.TitleFontSize <= 0 {
		return fmt.Errorf("%w: title font size must be positive", ErrValidation)
	}

	if d.BodyFontSize <= 0 {
		return fmt.Errorf("%w: body font size must be positive", ErrValidation)
	}

	return nil
}
