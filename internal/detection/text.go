package detection

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// inkCoverage is the minimum share of the text color a pixel must be able
// to hold to count as ink.
const inkCoverage = 0.5

// Bounds is a bounding box, right and bottom edges exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// TextRegion is a cluster of ink pixels that likely holds one line or word.
type TextRegion struct {
	Bounds Bounds `json:"bounds"`
	// Baseline is the lowest ink row, a starting hint for the line readers.
	Baseline int     `json:"baseline"`
	Pixels   int     `json:"pixels"`
	Density  float64 `json:"density"`
}

// TextRegionsResult contains detected text regions in reading order.
type TextRegionsResult struct {
	Regions []TextRegion `json:"regions"`
	Count   int          `json:"count"`
}

// DetectTextRegions finds clusters of pixels that could be text drawn in
// col inside region (the whole buffer when nil).
//
// A pixel is ink when it can be a blend of col at half coverage or more
// with some other color. Ink rows separated by at most one blank row form
// a band; within a band, ink columns separated by at most gap blank columns
// form one region. The regions only locate text. Reading it is up to the
// font tools.
func DetectTextRegions(buf *ocr.PixelBuffer, col ocr.Color, region *ocr.Rect, gap int) (*TextRegionsResult, error) {
	r := ocr.Rect{W: buf.Width, H: buf.Height}
	if region != nil {
		r = *region
	}
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > buf.Width || r.Y+r.H > buf.Height {
		return nil, fmt.Errorf("region (%d,%d %dx%d) outside image bounds %dx%d", r.X, r.Y, r.W, r.H, buf.Width, buf.Height)
	}
	if gap < 0 {
		gap = 0
	}

	ink := inkMask(buf, col, r)
	rowHas := func(y int) bool {
		for x := 0; x < r.W; x++ {
			if ink[y][x] {
				return true
			}
		}
		return false
	}

	candidates := make([]TextRegion, 0)
	for _, band := range runs(r.H, 1, rowHas) {
		colHas := func(x int) bool {
			for y := band[0]; y < band[1]; y++ {
				if ink[y][x] {
					return true
				}
			}
			return false
		}
		for _, span := range runs(r.W, gap, colHas) {
			candidates = append(candidates, measure(ink, r, span[0], band[0], span[1], band[1]))
		}
	}

	merged := mergeOverlappingRegions(candidates)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Bounds.Y1 != merged[j].Bounds.Y1 {
			return merged[i].Bounds.Y1 < merged[j].Bounds.Y1
		}
		return merged[i].Bounds.X1 < merged[j].Bounds.X1
	})

	return &TextRegionsResult{
		Regions: merged,
		Count:   len(merged),
	}, nil
}

// inkMask marks the ink pixels of r, indexed relative to r.
func inkMask(buf *ocr.PixelBuffer, col ocr.Color, r ocr.Rect) [][]bool {
	target := col.Vec()
	mask := make([][]bool, r.H)
	for y := range mask {
		mask[y] = make([]bool, r.W)
		for x := range mask[y] {
			pr, pg, pb, _ := buf.Pixel(r.X+x, r.Y+y)
			observed := ocr.Vec3{float64(pr), float64(pg), float64(pb)}
			mask[y][x] = ocr.CanBlend(observed, target, inkCoverage) <= 0
		}
	}
	return mask
}

// runs returns the [start, end) ranges of indexes below n for which has is
// true, joining ranges separated by at most gap misses.
func runs(n, gap int, has func(int) bool) [][2]int {
	var out [][2]int
	start, last := -1, -1
	for i := 0; i < n; i++ {
		if !has(i) {
			continue
		}
		if start >= 0 && i-last-1 > gap {
			out = append(out, [2]int{start, last + 1})
			start = -1
		}
		if start < 0 {
			start = i
		}
		last = i
	}
	if start >= 0 {
		out = append(out, [2]int{start, last + 1})
	}
	return out
}

// measure tightens the box [x1,x2)x[y1,y2) of the mask to its ink and
// converts it to image coordinates.
func measure(ink [][]bool, r ocr.Rect, x1, y1, x2, y2 int) TextRegion {
	minY, maxY := y2, y1-1
	pixels := 0
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if ink[y][x] {
				pixels++
				minY = min(minY, y)
				maxY = max(maxY, y)
			}
		}
	}
	b := Bounds{X1: r.X + x1, Y1: r.Y + minY, X2: r.X + x2, Y2: r.Y + maxY + 1}
	return TextRegion{
		Bounds:   b,
		Baseline: b.Y2 - 1,
		Pixels:   pixels,
		Density:  density(pixels, b),
	}
}

func density(pixels int, b Bounds) float64 {
	area := (b.X2 - b.X1) * (b.Y2 - b.Y1)
	if area == 0 {
		return 0
	}
	return math.Round(float64(pixels)/float64(area)*1000) / 1000
}

// mergeOverlappingRegions combines overlapping text regions
func mergeOverlappingRegions(regions []TextRegion) []TextRegion {
	merged := make([]TextRegion, 0, len(regions))

	for _, r := range regions {
		foundMerge := false
		for i := range merged {
			if regionsOverlap(r.Bounds, merged[i].Bounds) {
				m := &merged[i]
				m.Bounds = mergeBounds(r.Bounds, m.Bounds)
				m.Baseline = max(m.Baseline, r.Baseline)
				m.Pixels += r.Pixels
				m.Density = density(m.Pixels, m.Bounds)
				foundMerge = true
				break
			}
		}
		if !foundMerge {
			merged = append(merged, r)
		}
	}

	return merged
}

// regionsOverlap checks if two bounds overlap
func regionsOverlap(a, b Bounds) bool {
	return a.X1 < b.X2 && a.X2 > b.X1 && a.Y1 < b.Y2 && a.Y2 > b.Y1
}

// mergeBounds combines two bounds into their union
func mergeBounds(a, b Bounds) Bounds {
	return Bounds{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}
