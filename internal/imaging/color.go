package imaging

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one sampled pixel.
//
// RGB is the triplet form accepted by the font tools, so a sampled text
// color can be passed straight to font_read_line.
type ColorResult struct {
	Hex   string    `json:"hex"` // "#rrggbb", alpha excluded
	RGB   ocr.Color `json:"rgb"`
	Alpha uint8     `json:"alpha"`
	HSL   HSLColor  `json:"hsl"`
}

func newColorResult(r, g, b, a uint8) ColorResult {
	c := ocr.Color{int(r), int(g), int(b)}
	return ColorResult{
		Hex:   c.Hex(),
		RGB:   c,
		Alpha: a,
		HSL:   toHSL(c),
	}
}

// SampleColor returns the color at (x, y).
func SampleColor(buf *ocr.PixelBuffer, x, y int) (*ColorResult, error) {
	if !buf.InBounds(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width, buf.Height)
	}
	res := newColorResult(buf.Pixel(x, y))
	return &res, nil
}

// LabeledPoint is a coordinate with an optional label, like "chat_text".
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several points. Any point outside the image
// fails the whole call.
func SampleColorsMulti(buf *ocr.PixelBuffer, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(buf, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// defaultMergeDistance is the CIELAB distance under which two colors are
// counted as the same text color. Anti-aliased edges are blends and fall
// outside it, so they do not merge into the ink.
const defaultMergeDistance = 0.05

// ColorFrequency is one candidate text color and how much of the region it
// covers.
type ColorFrequency struct {
	Hex        string    `json:"hex"`
	RGB        ocr.Color `json:"rgb"`
	Percentage float64   `json:"percentage"`
}

// TextColorsResult lists candidate text colors, most frequent first.
type TextColorsResult struct {
	Background ColorFrequency   `json:"background"`
	Colors     []ColorFrequency `json:"colors"`
}

// SuggestTextColors proposes colors to pass to the line reader for the text
// inside region (the whole image when region is nil).
//
// Pixels are grouped with their nearest earlier group when the CIELAB
// distance is below mergeDistance (0 selects a default). The largest group
// is reported as the background and excluded from Colors. Ties are broken
// by hex value so the result is stable.
func SuggestTextColors(buf *ocr.PixelBuffer, count int, region *ocr.Rect, mergeDistance float64) (*TextColorsResult, error) {
	r := ocr.Rect{W: buf.Width, H: buf.Height}
	if region != nil {
		r = *region
	}
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > buf.Width || r.Y+r.H > buf.Height {
		return nil, fmt.Errorf("region (%d,%d %dx%d) outside image bounds %dx%d", r.X, r.Y, r.W, r.H, buf.Width, buf.Height)
	}
	if mergeDistance <= 0 {
		mergeDistance = defaultMergeDistance
	}

	counts := make(map[ocr.Color]int)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cr, cg, cb, _ := buf.Pixel(x, y)
			counts[ocr.Color{int(cr), int(cg), int(cb)}]++
		}
	}

	exact := make([]ocr.Color, 0, len(counts))
	for c := range counts {
		exact = append(exact, c)
	}
	sort.Slice(exact, func(i, j int) bool {
		if counts[exact[i]] != counts[exact[j]] {
			return counts[exact[i]] > counts[exact[j]]
		}
		return exact[i].Hex() < exact[j].Hex()
	})

	type group struct {
		color ocr.Color
		lab   colorful.Color
		n     int
	}
	var groups []*group
	for _, c := range exact {
		cc := toColorful(c)
		var best *group
		bestDist := math.Inf(1)
		for _, g := range groups {
			if d := cc.DistanceLab(g.lab); d < mergeDistance && d < bestDist {
				best, bestDist = g, d
			}
		}
		if best != nil {
			best.n += counts[c]
			continue
		}
		groups = append(groups, &group{color: c, lab: cc, n: counts[c]})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].n > groups[j].n })

	total := float64(r.W * r.H)
	freq := func(g *group) ColorFrequency {
		return ColorFrequency{
			Hex:        g.color.Hex(),
			RGB:        g.color,
			Percentage: float64(g.n) / total * 100,
		}
	}

	res := &TextColorsResult{Background: freq(groups[0])}
	for _, g := range groups[1:] {
		if len(res.Colors) >= count {
			break
		}
		res.Colors = append(res.Colors, freq(g))
	}
	return res, nil
}

func toColorful(c ocr.Color) colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

func toHSL(c ocr.Color) HSLColor {
	h, s, l := toColorful(c).Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
