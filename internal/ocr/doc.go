// Package ocr reads text drawn in a fixed pixel font from screen captures.
//
// The captured text is alpha or color blended against a background that is
// not known in advance, so glyphs cannot be compared pixel by pixel. Instead
// every template pixel asks whether the observed color could be a blend of
// the expected ink color at the template's intensity with any valid second
// color (CanBlend). The sum of those gamut violations is the glyph's score.
//
// # Workflow
//
// A font is calibrated once from a reference capture:
//
//  1. Unblend the capture into font coverage with UnblendKnownBg (a second
//     capture shows the plain background) or UnblendTrans (alpha already
//     isolates the glyphs).
//  2. Mark the glyph cells in the bottom row and call GenerateFont.
//  3. Store the FontDefinition as JSON; it is immutable from then on.
//
// At recognition time a Reader matches glyphs against a PixelBuffer:
//
//	font := ...                         // loaded FontDefinition
//	buf := ocr.FromImage(capture)
//	res := ocr.FindReadLine(buf, font, []ocr.Color{{255, 255, 0}}, 120, 48, -1, -1)
//	fmt.Println(res.Text)
//
// # Coordinates
//
// Recognition anchors use the text baseline: y is the baseline row and x
// the first column of a glyph cell (or the first column after it when
// reading backward). The baseline offset inside the cell is the font's BaseY.
//
// # Misses
//
// Not finding text is an ordinary outcome. ReadChar and FindChar return nil,
// ReadLine and FindReadLine return empty text. Errors are reserved for
// structurally invalid calibration input.
//
// # Concurrency
//
// All functions are pure with respect to their inputs. A FontDefinition and a
// Reader may be shared freely between goroutines; a Reader's Collector must
// then be safe for concurrent use, which ScoreRecorder is.
package ocr
