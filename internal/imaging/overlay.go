package imaging

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// OverlayResult is an image with scan areas outlined on it.
type OverlayResult struct {
	PreviewResult
	Rects int `json:"rects"`
}

// DrawRects outlines each rect on a copy of buf in colorHex, numbers them
// from 1 when label is set, then scales and encodes the result. Outlines
// are clipped to the image.
func DrawRects(buf *ocr.PixelBuffer, rects []ocr.Rect, colorHex string, label bool, scale float64) (*OverlayResult, error) {
	if colorHex == "" {
		colorHex = "#ff00ff"
	}
	col, err := ocr.ParseColor(colorHex)
	if err != nil {
		return nil, err
	}

	out := ocr.NewPixelBuffer(buf.Width, buf.Height)
	copy(out.Data, buf.Data)

	for i, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("rect %d has no area: %dx%d", i, r.W, r.H)
		}
		outlineRect(out, r, col)
		if label {
			drawLabel(out, r.X, r.Y+r.H+1, strconv.Itoa(i+1), col)
		}
	}

	preview, err := Preview(out, scale)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{PreviewResult: *preview, Rects: len(rects)}, nil
}

func outlineRect(buf *ocr.PixelBuffer, r ocr.Rect, c ocr.Color) {
	set := func(x, y int) {
		buf.SetPixel(x, y, uint8(c[0]), uint8(c[1]), uint8(c[2]), 255)
	}
	x2, y2 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= x2; x++ {
		set(x, r.Y)
		set(x, y2)
	}
	for y := r.Y; y <= y2; y++ {
		set(r.X, y)
		set(x2, y)
	}
}

// labelDigits is a 3x5 pixel digit font.
var labelDigits = [10][5]string{
	{"111", "101", "101", "101", "111"},
	{"010", "110", "010", "010", "111"},
	{"111", "001", "111", "100", "111"},
	{"111", "001", "111", "001", "111"},
	{"101", "101", "111", "001", "001"},
	{"111", "100", "111", "001", "111"},
	{"111", "100", "111", "101", "111"},
	{"111", "001", "001", "001", "001"},
	{"111", "101", "111", "101", "111"},
	{"111", "101", "111", "001", "111"},
}

// drawLabel writes a decimal number with its top-left corner at (x, y).
// SetPixel drops anything outside the buffer.
func drawLabel(buf *ocr.PixelBuffer, x, y int, text string, c ocr.Color) {
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			x += 4
			continue
		}
		for row, line := range labelDigits[ch-'0'] {
			for col, px := range line {
				if px == '1' {
					buf.SetPixel(x+col, y+row, uint8(c[0]), uint8(c[1]), uint8(c[2]), 255)
				}
			}
		}
		x += 4
	}
}
