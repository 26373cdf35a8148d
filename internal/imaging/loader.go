package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// ImageCache provides thread-safe caching of loaded images and their pixel
// buffers.
//
// Entries are keyed by the path string used to load them. Recognition tools
// work on the RGBA PixelBuffer form, which is converted once per image and
// shared afterwards, so a buffer returned by Buffer must not be modified.
//
// Images produced by the server itself (an unblended calibration strip, for
// example) can be registered with Put under any key and are then addressed
// like files.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	img image.Image
	buf *ocr.PixelBuffer
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]*cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are the ones registered with the image package: PNG,
// JPEG and GIF, plus BMP through imgio.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

// Buffer returns the image at path as an RGBA pixel buffer.
func (c *ImageCache) Buffer(path string) (*ocr.PixelBuffer, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e.buf == nil {
		e.buf = ocr.FromImage(e.img)
	}
	return e.buf, nil
}

// Put registers an in-memory buffer under key, replacing any cached entry.
func (c *ImageCache) Put(key string, buf *ocr.PixelBuffer) {
	c.mu.Lock()
	c.entries[key] = &cacheEntry{img: buf.Image(), buf: buf}
	c.mu.Unlock()
}

func (c *ImageCache) entry(path string) (*cacheEntry, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another caller may have loaded it meanwhile
	if e, ok := c.entries[path]; ok {
		return e, nil
	}
	e = &cacheEntry{img: img}
	c.entries[path] = e
	return e, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit". Recognition always works on 8 bits
	// per channel; 16-bit sources are reduced when converted.
	ColorDepth string `json:"color_depth"`

	// HasAlpha is true for image types with an alpha channel. Images with
	// alpha can be unblended without a background capture.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is 0 for in-memory entries.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and describes it.
//
// The format comes from the file extension; in-memory entries without one
// report "memory".
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	var size int64
	format := "memory"
	if stat, err := os.Stat(path); err == nil {
		size = stat.Size()
		format = formatFromExt(path)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: size,
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	}
	return "unknown"
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
