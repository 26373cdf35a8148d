package ocr

import (
	"testing"
)

// testGlyphs are 3x5 bitmaps drawn in 4-pixel cells (one blank column).
var testGlyphs = map[rune][]string{
	'A': {
		".#.",
		"#.#",
		"###",
		"#.#",
		"#.#",
	},
	'B': {
		"##.",
		"#.#",
		"##.",
		"#.#",
		"##.",
	},
}

var (
	white = Color{255, 255, 255}
	red   = Color{255, 0, 0}
	green = Color{0, 255, 0}
	bgCol = Color{20, 30, 40}
)

// referenceImage builds an unblended calibration image for chars: one
// 4-column marked span per glyph separated by unmarked columns, glyph rows
// 1-5 and the marker row at the bottom.
func referenceImage(chars string) *PixelBuffer {
	n := len([]rune(chars))
	buf := NewPixelBuffer(1+n*5, 8)
	for i := 0; i < len(buf.Data); i += 4 {
		buf.Data[i+3] = 255
	}
	for i, c := range []rune(chars) {
		sx := 1 + i*5
		for x := 0; x < 4; x++ {
			buf.SetPixel(sx+x, buf.Height-1, 255, 0, 0, 255)
		}
		for row, line := range testGlyphs[c] {
			for col, ch := range line {
				if ch == '#' {
					buf.SetPixel(sx+col, 1+row, 255, 255, 255, 255)
				}
			}
		}
	}
	return buf
}

// testFont calibrates the "AB" reference font.
func testFont(t *testing.T) *FontDefinition {
	t.Helper()
	font, err := GenerateFont(referenceImage("AB"), CalibrationParams{
		Chars:      "AB",
		BaseY:      5,
		SpaceWidth: 3,
		Threshold:  0.5,
	})
	if err != nil {
		t.Fatalf("GenerateFont failed: %v", err)
	}
	return font
}

// filledBuffer returns a buffer painted with c.
func filledBuffer(width, height int, c Color) *PixelBuffer {
	buf := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetPixel(x, y, uint8(c[0]), uint8(c[1]), uint8(c[2]), 255)
		}
	}
	return buf
}

// drawGlyph paints the template of chr with its cell origin at x and its
// baseline at y, blending ink over the existing pixel by intensity.
func drawGlyph(buf *PixelBuffer, font *FontDefinition, chr string, ink Color, x, y int) int {
	g := font.Glyph(chr)
	top := y - font.BaseY
	for _, p := range g.Pixels {
		px, py := x+p.DX, top+p.DY
		r, gg, b, _ := buf.Pixel(px, py)
		a := float64(p.Intensity) / 255
		mix := ink.Vec()
		if font.Shadow {
			mix = mix.Scale(float64(p.Shadow) / 255)
		}
		buf.SetPixel(px, py,
			clampByte(mix[0]*a+float64(r)*(1-a)),
			clampByte(mix[1]*a+float64(gg)*(1-a)),
			clampByte(mix[2]*a+float64(b)*(1-a)),
			255)
	}
	return g.Width
}

// drawText renders text starting at x on baseline y; spaces advance by the
// font's space width. It returns the x where each glyph was drawn.
func drawText(buf *PixelBuffer, font *FontDefinition, text string, ink Color, x, y int) []int {
	var anchors []int
	for _, c := range text {
		if c == ' ' {
			x += font.SpaceWidth
			continue
		}
		anchors = append(anchors, x)
		x += drawGlyph(buf, font, string(c), ink, x, y)
	}
	return anchors
}
