package ocr

import (
	"fmt"
	"sort"
	"sync"
)

// CharScore is one candidate glyph evaluated by ReadChar. Y is the top row
// of the glyph cell, not the baseline.
type CharScore struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Color     Color   `json:"color"`
	Chr       string  `json:"chr"`
	Score     float64 `json:"score"`
	SizeScore float64 `json:"sizescore"`
}

// Key groups scores by position and color.
func (s CharScore) Key() string {
	return fmt.Sprintf("%d;%d %s", s.X, s.Y, s.Color.Hex())
}

// ScoreCollector receives every candidate score computed by a Reader.
// Implementations used with FindChar must be safe for concurrent use.
type ScoreCollector interface {
	Collect(s CharScore)
}

// ScoreRecorder is a ScoreCollector that keeps all scores in memory.
type ScoreRecorder struct {
	mu     sync.Mutex
	scores map[string][]CharScore
}

// NewScoreRecorder creates an empty recorder.
func NewScoreRecorder() *ScoreRecorder {
	return &ScoreRecorder{scores: make(map[string][]CharScore)}
}

// Collect implements ScoreCollector.
func (r *ScoreRecorder) Collect(s CharScore) {
	r.mu.Lock()
	k := s.Key()
	r.scores[k] = append(r.scores[k], s)
	r.mu.Unlock()
}

// Keys returns the recorded position/color keys in sorted order.
func (r *ScoreRecorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.scores))
	for k := range r.scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scores returns a copy of the scores recorded under key.
func (r *ScoreRecorder) Scores(key string) []CharScore {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CharScore(nil), r.scores[key]...)
}

// Top returns the n best candidates under key ordered by size score.
func (r *ScoreRecorder) Top(key string, n int) []CharScore {
	s := r.Scores(key)
	sort.SliceStable(s, func(i, j int) bool { return s[i].SizeScore < s[j].SizeScore })
	if len(s) > n {
		s = s[:n]
	}
	return s
}

// Reset drops everything recorded so far.
func (r *ScoreRecorder) Reset() {
	r.mu.Lock()
	r.scores = make(map[string][]CharScore)
	r.mu.Unlock()
}

// RenderFont draws every glyph template side by side on a black strip with
// two pixels of spacing, intensity in grey. Shadow fonts show the shadow
// luminance in red instead.
func RenderFont(font *FontDefinition) *PixelBuffer {
	spacing := font.Width + 2
	buf := NewPixelBuffer(spacing*len(font.Chars), font.Height+1)
	for i := 0; i < len(buf.Data); i += 4 {
		buf.Data[i+3] = 255
	}
	for a, chr := range font.Chars {
		bx := a * spacing
		for _, p := range chr.Pixels {
			if font.Shadow {
				buf.SetPixel(bx+p.DX, p.DY, uint8(p.Shadow), 0, 0, 255)
			} else {
				v := uint8(p.Intensity)
				buf.SetPixel(bx+p.DX, p.DY, v, v, v, 255)
			}
		}
	}
	return buf
}
