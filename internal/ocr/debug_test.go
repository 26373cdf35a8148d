package ocr

import "testing"

func TestRenderFont(t *testing.T) {
	font := testFont(t)
	buf := RenderFont(font)

	if buf.Width != 12 || buf.Height != 6 {
		t.Fatalf("size: got %dx%d, want 12x6", buf.Width, buf.Height)
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"A apex", 1, 0, 255},
		{"A hole", 1, 1, 0},
		{"B corner", 6, 0, 255},
		{"spacing column", 4, 2, 0},
		{"spare bottom row", 0, 5, 0},
	}
	for _, tt := range tests {
		r, g, b, a := buf.Pixel(tt.x, tt.y)
		if r != tt.want || g != tt.want || b != tt.want || a != 255 {
			t.Errorf("%s: got (%d,%d,%d,%d), want grey %d", tt.name, r, g, b, a, tt.want)
		}
	}
}

func TestRenderFont_Shadow(t *testing.T) {
	font := &FontDefinition{
		Width: 2, Height: 2, BaseY: 1, Shadow: true,
		Chars: []Charinfo{{Chr: "'", Width: 2, Pixels: []GlyphPixel{{0, 0, 255, 200}}}},
	}
	r, g, b, _ := RenderFont(font).Pixel(0, 0)
	if r != 200 || g != 0 || b != 0 {
		t.Errorf("got (%d,%d,%d), want (200,0,0)", r, g, b)
	}
}

func TestCharScore_Key(t *testing.T) {
	s := CharScore{X: 12, Y: -3, Color: Color{255, 0, 16}}
	if got := s.Key(); got != "12;-3 #ff0010" {
		t.Errorf("got %q", got)
	}
}
