package ocr

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// PixelBuffer is an RGBA raster with a row-major byte layout of 4 bytes per
// pixel, non-premultiplied. The recognition functions only read from it;
// unblending and calibration always produce a new buffer.
type PixelBuffer struct {
	Width  int
	Height int
	Data   []byte
}

// NewPixelBuffer allocates a zeroed (fully transparent black) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*4),
	}
}

// FromImage copies any image into a PixelBuffer whose (0,0) is the top-left
// corner of the image bounds.
func FromImage(img image.Image) *PixelBuffer {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	buf := NewPixelBuffer(b.Dx(), b.Dy())
	for y := 0; y < buf.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+buf.Width*4]
		copy(buf.Data[y*buf.Width*4:], row)
	}
	return buf
}

// Image returns a copy of the buffer as an *image.NRGBA.
func (b *PixelBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Data)
	return img
}

// Offset returns the index of the red byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (x + y*b.Width) * 4
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *PixelBuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Pixel returns the RGBA bytes at (x, y). The caller must ensure the
// coordinate is in bounds.
func (b *PixelBuffer) Pixel(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Data[i], b.Data[i+1], b.Data[i+2], b.Data[i+3]
}

// SetPixel writes the RGBA bytes at (x, y). Out-of-range writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, r, g, bl, a uint8) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.Offset(x, y)
	b.Data[i] = r
	b.Data[i+1] = g
	b.Data[i+2] = bl
	b.Data[i+3] = a
}

// vecAt reads the color channels of the pixel at byte offset i.
func (b *PixelBuffer) vecAt(i int) Vec3 {
	return Vec3{float64(b.Data[i]), float64(b.Data[i+1]), float64(b.Data[i+2])}
}

// clampByte converts a computed channel value to a byte the same way a
// clamped 8-bit store does: NaN becomes 0, out-of-range values saturate and
// ties round to even.
func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
