package ocr

import (
	"encoding/json"
	"fmt"
)

// GlyphPixel is one sampled template offset relative to the top-left of the
// glyph cell. Shadow is only meaningful for shadow fonts.
type GlyphPixel struct {
	DX        int
	DY        int
	Intensity int
	Shadow    int
}

// Charinfo is the template of a single character.
type Charinfo struct {
	Chr       string
	Width     int
	Bonus     float64
	Secondary bool
	Pixels    []GlyphPixel
}

// FontDefinition is a calibrated glyph catalog. Chars order decides ties.
// It must not be modified once it is in use.
type FontDefinition struct {
	Chars      []Charinfo
	Width      int
	SpaceWidth int
	Shadow     bool
	Height     int
	// BaseY is the baseline row measured from the top of the glyph cell,
	// shared by every glyph.
	BaseY     int
	MinRating *float64
}

// pixelStride is the number of ints per pixel in the flat JSON layout.
func (f *FontDefinition) pixelStride() int {
	if f.Shadow {
		return 4
	}
	return 3
}

// Glyph returns the template for chr, or nil.
func (f *FontDefinition) Glyph(chr string) *Charinfo {
	for i := range f.Chars {
		if f.Chars[i].Chr == chr {
			return &f.Chars[i]
		}
	}
	return nil
}

// Validate checks the invariants the matcher relies on. Matching does not
// call it; loaders do.
func (f *FontDefinition) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid font cell %dx%d", f.Width, f.Height)
	}
	if f.SpaceWidth < 0 {
		return fmt.Errorf("invalid space width %d", f.SpaceWidth)
	}
	for _, c := range f.Chars {
		if c.Width < 0 || c.Width > f.Width {
			return fmt.Errorf("glyph %q: width %d outside cell width %d", c.Chr, c.Width, f.Width)
		}
		for _, p := range c.Pixels {
			if p.DX < 0 || p.DX >= c.Width || p.DY < 0 || p.DY >= f.Height {
				return fmt.Errorf("glyph %q: pixel (%d,%d) outside %dx%d glyph", c.Chr, p.DX, p.DY, c.Width, f.Height)
			}
		}
	}
	return nil
}

// jsonChar and jsonFont mirror the on-disk font artifact, which stores
// pixels as a flat list of (dx, dy, intensity[, shadow]) tuples.
type jsonChar struct {
	Width     int     `json:"width"`
	Chr       string  `json:"chr"`
	Bonus     float64 `json:"bonus"`
	Secondary bool    `json:"secondary"`
	Pixels    []int   `json:"pixels"`
}

type jsonFont struct {
	Chars      []jsonChar `json:"chars"`
	Width      int        `json:"width"`
	SpaceWidth int        `json:"spacewidth"`
	Shadow     bool       `json:"shadow"`
	Height     int        `json:"height"`
	BaseY      *int       `json:"basey"`
	MinRating  *float64   `json:"minrating,omitempty"`
}

// MarshalJSON encodes the font in the flat-pixel artifact format.
func (f FontDefinition) MarshalJSON() ([]byte, error) {
	stride := f.pixelStride()
	basey := f.BaseY
	out := jsonFont{
		Chars:      make([]jsonChar, len(f.Chars)),
		Width:      f.Width,
		SpaceWidth: f.SpaceWidth,
		Shadow:     f.Shadow,
		Height:     f.Height,
		BaseY:      &basey,
		MinRating:  f.MinRating,
	}
	for i, c := range f.Chars {
		flat := make([]int, 0, len(c.Pixels)*stride)
		for _, p := range c.Pixels {
			flat = append(flat, p.DX, p.DY, p.Intensity)
			if f.Shadow {
				flat = append(flat, p.Shadow)
			}
		}
		out.Chars[i] = jsonChar{
			Width:     c.Width,
			Chr:       c.Chr,
			Bonus:     c.Bonus,
			Secondary: c.Secondary,
			Pixels:    flat,
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat-pixel artifact format.
func (f *FontDefinition) UnmarshalJSON(data []byte) error {
	var in jsonFont
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.BaseY == nil {
		return fmt.Errorf("font definition is missing basey")
	}

	def := FontDefinition{
		Chars:      make([]Charinfo, len(in.Chars)),
		Width:      in.Width,
		SpaceWidth: in.SpaceWidth,
		Shadow:     in.Shadow,
		Height:     in.Height,
		BaseY:      *in.BaseY,
		MinRating:  in.MinRating,
	}
	stride := def.pixelStride()
	for i, c := range in.Chars {
		if len(c.Pixels)%stride != 0 {
			return fmt.Errorf("glyph %q: pixel list length %d is not a multiple of %d", c.Chr, len(c.Pixels), stride)
		}
		px := make([]GlyphPixel, 0, len(c.Pixels)/stride)
		for a := 0; a < len(c.Pixels); a += stride {
			p := GlyphPixel{DX: c.Pixels[a], DY: c.Pixels[a+1], Intensity: c.Pixels[a+2]}
			if def.Shadow {
				p.Shadow = c.Pixels[a+3]
			}
			px = append(px, p)
		}
		def.Chars[i] = Charinfo{
			Chr:       c.Chr,
			Width:     c.Width,
			Bonus:     c.Bonus,
			Secondary: c.Secondary,
			Pixels:    px,
		}
	}
	*f = def
	return nil
}
