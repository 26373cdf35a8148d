package ocr

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrSizeMismatch is returned when a capture and its background reference
// do not have the same dimensions.
var ErrSizeMismatch = errors.New("background size doesn't match capture")

// highErrorComponent is the residual above which a pixel counts as badly
// explained by the font/background pair.
const highErrorComponent = 0.01

// UnblendResult holds a calibration-ready buffer and the quality metrics
// collected while producing it.
type UnblendResult struct {
	// Buffer stores coverage in red and blue, luminance (shadow fonts) or
	// coverage in green, and alpha fixed at 255.
	Buffer *PixelBuffer `json:"-"`

	// MeanError is the average residual component over all pixels. Only
	// computed for shadow fonts.
	MeanError float64 `json:"mean_error"`

	// HighErrorPixels counts pixels whose residual exceeded 1%.
	HighErrorPixels int `json:"high_error_pixels"`
}

// UnblendKnownBg separates a capture into font coverage using a second
// capture of the same region where the glyph pixels show the plain
// background. With shadow set, black is treated as the second font color and
// the green channel receives the font luminance.
func UnblendKnownBg(img, bg *PixelBuffer, shadow bool, font Color) (*UnblendResult, error) {
	if bg == nil || img.Width != bg.Width || img.Height != bg.Height {
		return nil, fmt.Errorf("failed to unblend: %w", ErrSizeMismatch)
	}

	out := NewPixelBuffer(img.Width, img.Height)
	res := &UnblendResult{Buffer: out}
	fc := font.Vec()
	var totalErr float64

	for i := 0; i < len(img.Data); i += 4 {
		x, y, noise := Decompose2(img.vecAt(i), fc, bg.vecAt(i))
		if shadow {
			if noise > highErrorComponent {
				res.HighErrorPixels++
			}
			totalErr += noise
			// main color + black = 100% - background - error
			m := 1 - y - math.Abs(noise)
			out.Data[i] = clampByte(m * 255)
			out.Data[i+1] = clampByte(x / m * 255)
			out.Data[i+2] = out.Data[i]
		} else {
			v := clampByte(x * 255)
			out.Data[i] = v
			out.Data[i+1] = v
			out.Data[i+2] = v
		}
		out.Data[i+3] = 255
	}

	if shadow && img.Width*img.Height > 0 {
		res.MeanError = totalErr / float64(img.Width*img.Height)
		slog.Debug("unblend error",
			"avg_pct", math.Round(res.MeanError*1000)/10,
			"high_error_pixels", res.HighErrorPixels)
	}
	return res, nil
}

// UnblendTrans converts a capture whose alpha channel already isolates the
// glyphs (extracted font sheets, pixel fonts with 0/255 alpha) into the
// calibration layout.
func UnblendTrans(img *PixelBuffer, shadow bool, font Color) *PixelBuffer {
	out := NewPixelBuffer(img.Width, img.Height)
	pxlum := float64(font[0] + font[1] + font[2])
	for i := 0; i < len(img.Data); i += 4 {
		a := img.Data[i+3]
		out.Data[i] = a
		if shadow {
			lum := float64(img.Data[i]) + float64(img.Data[i+1]) + float64(img.Data[i+2])
			out.Data[i+1] = clampByte(lum / pxlum * 255)
		} else {
			out.Data[i+1] = a
		}
		out.Data[i+2] = a
		out.Data[i+3] = 255
	}
	return out
}
