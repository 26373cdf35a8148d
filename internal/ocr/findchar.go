package ocr

import "sync"

// defaultSearchHeight is the height of the FindReadLine window when the
// caller leaves it unspecified.
const defaultSearchHeight = 7

// FindChar searches a rectangle for a glyph with default options.
func FindChar(buf *PixelBuffer, font *FontDefinition, col Color, x, y, w, h int) *CharMatch {
	return NewReader(font).FindChar(buf, col, x, y, w, h)
}

// FindReadLine locates and reads a line with default options.
func FindReadLine(buf *PixelBuffer, font *FontDefinition, colors []Color, x, y, w, h int) LineResult {
	return NewReader(font).FindReadLine(buf, colors, x, y, w, h)
}

// FindChar tries every anchor in [x, x+w) × [y, y+h), with y meaning the
// baseline, and returns the match with the lowest size score. It returns nil
// when the rectangle is empty, when any anchor's glyph cell would leave the
// buffer, or when nothing matches.
//
// Columns are evaluated concurrently; the result is the same as a
// left-to-right, top-to-bottom scan keeping the first best match.
func (r *Reader) FindChar(buf *PixelBuffer, col Color, x, y, w, h int) *CharMatch {
	font := r.Font
	if w <= 0 || h <= 0 {
		return nil
	}
	if x < 0 || y-font.BaseY < 0 {
		return nil
	}
	if x+w+font.Width > buf.Width || y+h-font.BaseY+font.Height > buf.Height {
		return nil
	}

	columns := make([]*CharMatch, w)
	var wg sync.WaitGroup
	for i := 0; i < w; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var best *CharMatch
			for cy := y; cy < y+h; cy++ {
				m := r.ReadChar(buf, col, x+i, cy, false, false)
				if m != nil && (best == nil || m.SizeScore < best.SizeScore) {
					best = m
				}
			}
			columns[i] = best
		}(i)
	}
	wg.Wait()

	var best *CharMatch
	for _, m := range columns {
		if m != nil && (best == nil || m.SizeScore < best.SizeScore) {
			best = m
		}
	}
	return best
}

// FindReadLine reads a line from an approximate position inside it. A
// negative w or h selects a window of about one glyph cell centered on
// (x, y). The first color locates the starting glyph; the line is then read
// in both directions with all colors. An empty Text with the search window as
// DebugArea means no glyph was found.
func (r *Reader) FindReadLine(buf *PixelBuffer, colors []Color, x, y, w, h int) LineResult {
	font := r.Font
	if w < 0 {
		w = font.Width + font.SpaceWidth
		x -= (w + 1) / 2
	}
	if h < 0 {
		h = defaultSearchHeight
		y -= h / 2
	}
	miss := LineResult{DebugArea: Rect{X: x, Y: y, W: w, H: h}}
	if len(colors) == 0 {
		return miss
	}

	chr := r.FindChar(buf, colors[0], x, y, w, h)
	if chr == nil {
		return miss
	}
	return r.ReadLine(buf, colors, chr.X, chr.Y, true, true)
}
