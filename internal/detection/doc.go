// Package detection locates candidate text in a capture before it is read.
//
// Pixel font recognition needs a baseline and a starting column. When the
// caller only knows the text color, DetectTextRegions clusters the pixels
// that can hold that color into line and word boxes. The lowest ink row of
// a box is a baseline hint and its left edge a column hint for
// ocr.FindReadLine, which refines both.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// Detection is a heuristic. Glyphs with descenders put the baseline hint
// below the real baseline, and glyphs touching other ink of a similar
// color merge into one region.
package detection
