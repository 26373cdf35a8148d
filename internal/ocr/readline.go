package ocr

import "strings"

// Rect is a pixel rectangle, used to report the area a scan covered.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// LineResult is the text read from one line and the area that was scanned.
type LineResult struct {
	Text      string `json:"text"`
	DebugArea Rect   `json:"debug_area"`
}

// ReadLine reads a line with default options.
func ReadLine(buf *PixelBuffer, font *FontDefinition, colors []Color, x, y int, forward, backward bool) LineResult {
	return NewReader(font).ReadLine(buf, colors, x, y, forward, backward)
}

// ReadLine reads the text of a line whose position and color are known.
// y is the baseline row and x the first column of a glyph cell. The line is
// read to the right when forward is set and to the left of x when backward
// is set.
//
// With more than one color the scanner detects the best color at the
// start and keeps it while glyphs keep matching. On a miss it detects the
// color once more, then skips one space width, and stops when that fails
// as well.
func (r *Reader) ReadLine(buf *PixelBuffer, colors []Color, x, y int, forward, backward bool) LineResult {
	x1, x2 := x, x
	var before, after string

	if forward {
		p := r.newLinePass(buf, colors, x, y, dirForward)
		after = p.run()
		x2 = p.edge()
	}
	if backward {
		p := r.newLinePass(buf, colors, x, y, dirBackward)
		before = p.run()
		x1 = p.edge()
	}

	return LineResult{
		Text: before + after,
		DebugArea: Rect{
			X: x1,
			Y: y - r.Font.BaseY,
			W: x2 - x1,
			H: r.Font.Height,
		},
	}
}

type direction int

const (
	dirForward  direction = 1
	dirBackward direction = -1
)

type scanState int

const (
	stateMatchGlyph scanState = iota
	stateRetryColor
	stateTrySpace
	stateTerminated
)

func (s scanState) String() string {
	switch s {
	case stateMatchGlyph:
		return "MatchGlyph"
	case stateRetryColor:
		return "RetryColor"
	case stateTrySpace:
		return "TrySpace"
	case stateTerminated:
		return "Terminated"
	}
	return "unknown"
}

// missTransition picks the state that follows a failed glyph match:
// re-detect the color once, then skip one space, then give up.
func missTransition(multicolor, triedRecolor, triedSpace bool) scanState {
	switch {
	case multicolor && !triedRecolor:
		return stateRetryColor
	case !triedSpace:
		return stateTrySpace
	default:
		return stateTerminated
	}
}

// linePass scans one direction of a line.
type linePass struct {
	r      *Reader
	buf    *PixelBuffer
	colors []Color
	x, y   int
	dir    direction

	dx           int
	col          *Color
	triedSpace   bool
	triedRecolor bool
	pieces       []string
}

func (r *Reader) newLinePass(buf *PixelBuffer, colors []Color, x, y int, dir direction) *linePass {
	p := &linePass{r: r, buf: buf, colors: colors, x: x, y: y, dir: dir}
	if len(colors) == 1 {
		c := colors[0]
		p.col = &c
	}
	return p
}

func (p *linePass) multicolor() bool {
	return len(p.colors) > 1
}

// step moves the cursor n pixels in the scan direction.
func (p *linePass) step(n int) {
	p.dx += int(p.dir) * n
}

func (p *linePass) cursor() int {
	return p.x + p.dx
}

// spaceWidth is the font's space advance. A negative advance would step
// back onto text already read, so it counts as zero.
func (p *linePass) spaceWidth() int {
	return max(p.r.Font.SpaceWidth, 0)
}

// edge is the boundary of the text found by a finished pass: the cursor
// minus the space skip that failed last.
func (p *linePass) edge() int {
	return p.cursor() - int(p.dir)*p.spaceWidth()
}

// run drives the state machine until it terminates and returns the text in
// reading order.
func (p *linePass) run() string {
	state := stateMatchGlyph
	for state != stateTerminated {
		switch state {
		case stateMatchGlyph:
			if !p.matchGlyph() {
				state = missTransition(p.multicolor(), p.triedRecolor, p.triedSpace)
			}
		case stateRetryColor:
			p.col = nil
			p.triedRecolor = true
			state = stateMatchGlyph
		case stateTrySpace:
			p.step(p.spaceWidth())
			p.triedRecolor = false
			p.triedSpace = true
			state = stateMatchGlyph
		}
	}

	if p.dir == dirBackward {
		for i, j := 0, len(p.pieces)-1; i < j; i, j = i+1, j-1 {
			p.pieces[i], p.pieces[j] = p.pieces[j], p.pieces[i]
		}
	}
	return strings.Join(p.pieces, "")
}

// matchGlyph reads the glyph at the cursor and advances past it.
func (p *linePass) matchGlyph() bool {
	if p.col == nil {
		p.col = p.detectColor()
		if p.col == nil {
			return false
		}
	}
	m := p.r.ReadChar(p.buf, *p.col, p.cursor(), p.y, p.dir == dirBackward, true)
	if m == nil {
		return false
	}

	sp := ""
	if p.triedSpace {
		sp = " "
	}
	if p.dir == dirForward {
		p.pieces = append(p.pieces, sp+m.Chr)
	} else {
		p.pieces = append(p.pieces, m.Chr+sp)
	}
	p.triedSpace = false
	p.triedRecolor = false
	p.step(max(m.Glyph.Width, 1))
	return true
}

// detectColor returns the candidate color with the best size score at the
// cursor, or nil if no color matches any primary glyph.
func (p *linePass) detectColor() *Color {
	var best *Color
	var bestScore float64
	for i := range p.colors {
		m := p.r.ReadChar(p.buf, p.colors[i], p.cursor(), p.y, p.dir == dirBackward, false)
		if m != nil && (best == nil || m.SizeScore < bestScore) {
			c := p.colors[i]
			best = &c
			bestScore = m.SizeScore
		}
	}
	return best
}
