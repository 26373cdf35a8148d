package ocr

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// pixelBonus is added to a glyph's bonus for every template pixel, so denser
// glyphs win over sparse ones that happen to fit inside them.
const pixelBonus = 5

var (
	// ErrSpanCountMismatch is returned when the number of marked glyph spans
	// in the reference image differs from the number of expected characters.
	ErrSpanCountMismatch = errors.New("glyph span count doesn't match character count")

	// ErrNoGlyphPixels is returned when no pixel reaches the threshold.
	ErrNoGlyphPixels = errors.New("no glyph pixels above threshold")

	// ErrInvalidThreshold is returned for thresholds outside [0,1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

	// ErrNegativeSpaceWidth is returned when the space advance is below 0.
	ErrNegativeSpaceWidth = errors.New("space width must not be negative")
)

// CalibrationParams describes the reference image handed to GenerateFont.
type CalibrationParams struct {
	// Chars lists the glyphs of the image from left to right.
	Chars string `json:"chars"`

	// Secondary lists characters that are only matched when nothing else
	// fits, e.g. "." which matches inside many other glyphs.
	Secondary string `json:"secondary"`

	// Bonuses adds a fixed score reward for hard-to-read characters.
	Bonuses map[string]float64 `json:"bonuses,omitempty"`

	// BaseY is the baseline row in the reference image.
	BaseY int `json:"basey"`

	// SpaceWidth is the advance of a space in pixels.
	SpaceWidth int `json:"spacewidth"`

	// Threshold is the minimal coverage (0-1) for a pixel to become part
	// of a template.
	Threshold float64 `json:"threshold"`

	// Shadow selects the two-color (font + black shadow) layout.
	Shadow bool `json:"shadow"`
}

// glyphSpan is a run of marked columns in the bottom row.
type glyphSpan struct {
	start, end int
}

// GenerateFont builds a FontDefinition from an unblended reference image.
//
// The bottom row of the image marks the glyph cells: a pixel with red and
// alpha at 255 means the column belongs to a glyph, and each contiguous run
// of such columns is one glyph, assigned to Chars in order. All other rows
// hold the unblended glyph pixels. The vertical extent of all glyphs
// together fixes one height and one baseline for the whole font.
func GenerateFont(unblended *PixelBuffer, p CalibrationParams) (*FontDefinition, error) {
	if p.Threshold < 0 || p.Threshold > 1 || math.IsNaN(p.Threshold) {
		return nil, fmt.Errorf("failed to generate font: %w (got %v)", ErrInvalidThreshold, p.Threshold)
	}
	if p.SpaceWidth < 0 {
		return nil, fmt.Errorf("failed to generate font: %w (got %d)", ErrNegativeSpaceWidth, p.SpaceWidth)
	}
	threshold := p.Threshold * 255
	chars := []rune(p.Chars)

	spans := findGlyphSpans(unblended)
	if len(spans) != len(chars) {
		return nil, fmt.Errorf("failed to generate font: %w (%d spans, %d characters)",
			ErrSpanCountMismatch, len(spans), len(chars))
	}

	// shared vertical bounds over every glyph, marker row excluded
	miny := unblended.Height - 1
	maxy := 0
	found := false
	for _, s := range spans {
		for x := s.start; x < s.end; x++ {
			for y := 0; y < unblended.Height-1; y++ {
				if float64(unblended.Data[unblended.Offset(x, y)]) >= threshold {
					miny = min(miny, y)
					maxy = max(maxy, y)
					found = true
				}
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("failed to generate font: %w", ErrNoGlyphPixels)
	}

	font := &FontDefinition{
		Chars:      make([]Charinfo, 0, len(spans)),
		SpaceWidth: p.SpaceWidth,
		Shadow:     p.Shadow,
		Height:     maxy + 1 - miny,
		BaseY:      p.BaseY - miny,
	}

	for i, s := range spans {
		chr := string(chars[i])
		ci := Charinfo{
			Chr:       chr,
			Width:     s.end - s.start,
			Bonus:     p.Bonuses[chr],
			Secondary: strings.ContainsRune(p.Secondary, chars[i]),
		}
		font.Width = max(font.Width, ci.Width)

		for x := 0; x < ci.Width; x++ {
			for y := 0; y < font.Height; y++ {
				o := unblended.Offset(x+s.start, y+miny)
				if float64(unblended.Data[o]) < threshold {
					continue
				}
				px := GlyphPixel{DX: x, DY: y, Intensity: int(unblended.Data[o])}
				if p.Shadow {
					px.Shadow = int(unblended.Data[o+1])
				}
				ci.Pixels = append(ci.Pixels, px)
				ci.Bonus += pixelBonus
			}
		}
		ci.Bonus = math.Round(ci.Bonus*1000) / 1000
		font.Chars = append(font.Chars, ci)
	}

	return font, nil
}

// findGlyphSpans scans the bottom row for marker runs. A run reaching the
// right edge is closed there.
func findGlyphSpans(img *PixelBuffer) []glyphSpan {
	var spans []glyphSpan
	if img.Height == 0 {
		return spans
	}
	row := img.Height - 1
	start := -1
	for x := 0; x < img.Width; x++ {
		o := img.Offset(x, row)
		marked := img.Data[o] == 255 && img.Data[o+3] == 255
		switch {
		case marked && start < 0:
			start = x
		case !marked && start >= 0:
			spans = append(spans, glyphSpan{start: start, end: x})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, glyphSpan{start: start, end: img.Width})
	}
	return spans
}
