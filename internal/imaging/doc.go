// Package imaging is the capture side of the server: it turns image files
// into the pixel buffers the recognition engine reads, and turns buffers back
// into PNG data for clients.
//
// The package covers loading and caching, region crops, color sampling,
// text color suggestion, and outlining scan areas for debugging.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. Crop
// regions given as corners are inclusive at (x1,y1) and exclusive at (x2,y2);
// regions given as ocr.Rect use X, Y, W, H.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffers returned by
// ImageCache.Buffer are shared and must be treated as read-only. All other
// functions are stateless and leave their inputs unmodified.
//
// # Color Representation
//
// Colors are reported as "#rrggbb" hex, as an ocr.Color triplet (the form the
// font tools accept) and as HSL. Color math is done with go-colorful.
package imaging
