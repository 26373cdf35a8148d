package ocr

import "math"

// maxCharScore is the highest raw score a match may have. Empirical.
const maxCharScore = 400

// CharMatch is the best glyph found at an anchor.
type CharMatch struct {
	Chr       string    `json:"chr"`
	Glyph     *Charinfo `json:"-"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Score     float64   `json:"score"`
	SizeScore float64   `json:"sizescore"`
}

// Reader runs recognition against one font. The zero Collector disables
// score recording. A Reader holds no mutable state and may be shared
// between goroutines as long as its Collector is safe for concurrent use.
type Reader struct {
	Font      *FontDefinition
	Collector ScoreCollector
}

// NewReader returns a Reader for font without score recording.
func NewReader(font *FontDefinition) *Reader {
	return &Reader{Font: font}
}

// ReadChar matches a single character with default options.
func ReadChar(buf *PixelBuffer, font *FontDefinition, col Color, x, y int, backward, allowSecondary bool) *CharMatch {
	return NewReader(font).ReadChar(buf, col, x, y, backward, allowSecondary)
}

// ReadChar scores every glyph of the font at an exact location and returns
// the best one, or nil when the glyph cell leaves the buffer or nothing
// scores under the acceptance limit.
//
// y is the baseline row of the text. Reading forward, x is the first column
// of the glyph cell; reading backward, x is the first column after it.
func (r *Reader) ReadChar(buf *PixelBuffer, col Color, x, y int, backward, allowSecondary bool) *CharMatch {
	font := r.Font
	top := y - font.BaseY

	if top < 0 || top+font.Height >= buf.Height {
		return nil
	}
	if !backward {
		if x < 0 || x+font.Width > buf.Width {
			return nil
		}
	} else {
		if x-font.Width < 0 || x > buf.Width {
			return nil
		}
	}

	ink := col.Vec()
	var best *CharMatch
	bestSize := math.Inf(1)

	for gi := range font.Chars {
		glyph := &font.Chars[gi]
		if glyph.Secondary && !allowSecondary {
			continue
		}
		gx := x
		if backward {
			gx = x - glyph.Width
		}

		score := glyphScore(buf, font.Shadow, glyph, ink, gx, top)
		size := score - glyph.Bonus
		if r.Collector != nil {
			r.Collector.Collect(CharScore{X: x, Y: top, Color: col, Chr: glyph.Chr, Score: score, SizeScore: size})
		}
		if size < bestSize {
			bestSize = size
			best = &CharMatch{Chr: glyph.Chr, Glyph: glyph, X: x, Y: y, Score: score, SizeScore: size}
		}
	}

	if best == nil || best.Score > maxCharScore {
		return nil
	}
	return best
}

// glyphScore sums the clamped blend penalty of every template pixel placed
// with its cell origin at (gx, top).
func glyphScore(buf *PixelBuffer, shadow bool, glyph *Charinfo, ink Vec3, gx, top int) float64 {
	var score float64
	for _, p := range glyph.Pixels {
		i := buf.Offset(gx+p.DX, top+p.DY)
		mix := ink
		if shadow {
			mix = ink.Scale(float64(p.Shadow) / 255)
		}
		penalty := CanBlend(buf.vecAt(i), mix, float64(p.Intensity)/255)
		score += max(0, penalty)
	}
	return score
}
