package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from an image and encodes it as PNG.
// Scaling uses nearest neighbor so single-pixel glyph detail stays sharp.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := scaleImage(imaging.Crop(img, image.Rect(x1, y1, x2, y2)), scale)

	encoded, err := EncodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// CropBuffer copies r out of buf. Calibration uses it to cut a reference
// strip out of a larger screenshot.
func CropBuffer(buf *ocr.PixelBuffer, r ocr.Rect) (*ocr.PixelBuffer, error) {
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > buf.Width || r.Y+r.H > buf.Height {
		return nil, fmt.Errorf("crop region (%d,%d %dx%d) outside image bounds %dx%d", r.X, r.Y, r.W, r.H, buf.Width, buf.Height)
	}
	cropped := imaging.Crop(buf.Image(), image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
	return ocr.FromImage(cropped), nil
}

// scaleImage resizes img by scale; 1 or a non-positive scale is a no-op.
func scaleImage(img *image.NRGBA, scale float64) *image.NRGBA {
	if scale == 1.0 || scale <= 0 {
		return img
	}
	w := int(float64(img.Bounds().Dx()) * scale)
	h := int(float64(img.Bounds().Dy()) * scale)
	if w < 1 || h < 1 {
		return img
	}
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}
