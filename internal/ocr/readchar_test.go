package ocr

import (
	"reflect"
	"testing"
)

func TestReadChar_ExactGlyph(t *testing.T) {
	font := testFont(t)

	for _, chr := range []string{"A", "B"} {
		t.Run(chr, func(t *testing.T) {
			buf := filledBuffer(12, 10, bgCol)
			drawGlyph(buf, font, chr, white, 4, 6)

			m := ReadChar(buf, font, white, 4, 6, false, false)
			if m == nil {
				t.Fatal("no match")
			}
			if m.Chr != chr {
				t.Errorf("Chr: got %q, want %q", m.Chr, chr)
			}
			if m.Score != 0 {
				t.Errorf("Score: got %v, want 0", m.Score)
			}
			if m.SizeScore != -m.Glyph.Bonus {
				t.Errorf("SizeScore: got %v, want %v", m.SizeScore, -m.Glyph.Bonus)
			}
			if m.X != 4 || m.Y != 6 {
				t.Errorf("anchor: got (%d,%d), want (4,6)", m.X, m.Y)
			}
		})
	}
}

func TestReadChar_Backward(t *testing.T) {
	font := testFont(t)
	buf := filledBuffer(12, 10, bgCol)
	drawGlyph(buf, font, "B", white, 4, 6)

	// backward anchors sit on the first column after the cell
	m := ReadChar(buf, font, white, 8, 6, true, false)
	if m == nil || m.Chr != "B" || m.Score != 0 {
		t.Fatalf("backward read: got %+v, want B with score 0", m)
	}
}

func TestReadChar_PartialIntensity(t *testing.T) {
	font := testFont(t)
	// dim the template so the glyph is drawn half transparent
	for i := range font.Chars {
		for j := range font.Chars[i].Pixels {
			font.Chars[i].Pixels[j].Intensity = 128
		}
	}
	buf := filledBuffer(12, 10, Color{90, 10, 200})
	drawGlyph(buf, font, "A", Color{255, 255, 0}, 4, 6)

	m := ReadChar(buf, font, Color{255, 255, 0}, 4, 6, false, false)
	if m == nil || m.Chr != "A" {
		t.Fatalf("got %+v, want A", m)
	}
	if m.Score > 5 {
		t.Errorf("blended glyph should score near 0, got %v", m.Score)
	}
}

func TestReadChar_NoMatch(t *testing.T) {
	font := testFont(t)
	buf := filledBuffer(12, 10, bgCol)

	if m := ReadChar(buf, font, white, 4, 6, false, false); m != nil {
		t.Errorf("empty background matched %+v", m)
	}

	drawGlyph(buf, font, "A", red, 4, 6)
	if m := ReadChar(buf, font, white, 4, 6, false, false); m != nil {
		t.Errorf("wrong color matched %+v", m)
	}
}

func TestReadChar_OutOfBounds(t *testing.T) {
	font := testFont(t)
	buf := filledBuffer(12, 10, white)

	tests := []struct {
		name     string
		x, y     int
		backward bool
	}{
		{"above top", 2, 3, false},
		{"cell touches last row", 2, 9, false},
		{"negative x", -1, 6, false},
		{"past right edge", 9, 6, false},
		{"backward before left edge", 3, 6, true},
		{"backward past right edge", 13, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := ReadChar(buf, font, white, tt.x, tt.y, tt.backward, true); m != nil {
				t.Errorf("got %+v, want nil", m)
			}
		})
	}

	// the last valid positions
	if m := ReadChar(buf, font, white, 8, 8, false, true); m == nil {
		t.Error("cell ending one row above the bottom should be readable")
	}
	if m := ReadChar(buf, font, white, 12, 8, true, true); m == nil {
		t.Error("backward cell ending at the right edge should be readable")
	}
}

func TestReadChar_Secondary(t *testing.T) {
	font := &FontDefinition{
		Width: 2, Height: 3, BaseY: 2, SpaceWidth: 2,
		Chars: []Charinfo{
			{Chr: "|", Width: 2, Bonus: 15, Pixels: []GlyphPixel{{0, 0, 255, 0}, {0, 1, 255, 0}, {0, 2, 255, 0}}},
			{Chr: ".", Width: 2, Bonus: 5, Secondary: true, Pixels: []GlyphPixel{{0, 2, 255, 0}}},
		},
	}
	buf := filledBuffer(6, 6, bgCol)
	buf.SetPixel(1, 3, 255, 255, 255, 255)

	if m := ReadChar(buf, font, white, 1, 3, false, false); m != nil {
		t.Errorf("secondary glyph matched without permission: %+v", m)
	}
	m := ReadChar(buf, font, white, 1, 3, false, true)
	if m == nil || m.Chr != "." {
		t.Fatalf("got %+v, want .", m)
	}

	// a full bar prefers the denser glyph even though "." fits too
	buf.SetPixel(1, 1, 255, 255, 255, 255)
	buf.SetPixel(1, 2, 255, 255, 255, 255)
	m = ReadChar(buf, font, white, 1, 3, false, true)
	if m == nil || m.Chr != "|" {
		t.Errorf("got %+v, want |", m)
	}
}

func TestReadChar_TieKeepsCatalogOrder(t *testing.T) {
	px := []GlyphPixel{{1, 1, 255, 0}}
	font := &FontDefinition{
		Width: 3, Height: 3, BaseY: 2,
		Chars: []Charinfo{
			{Chr: "first", Width: 3, Bonus: 5, Pixels: px},
			{Chr: "second", Width: 3, Bonus: 5, Pixels: px},
		},
	}
	buf := filledBuffer(5, 5, bgCol)
	buf.SetPixel(2, 1, 255, 255, 255, 255)

	m := ReadChar(buf, font, white, 1, 2, false, false)
	if m == nil || m.Chr != "first" {
		t.Errorf("got %+v, want first", m)
	}
}

func TestReadChar_ShadowFont(t *testing.T) {
	// ink pixel on top, black shadow pixel below it
	font := &FontDefinition{
		Width: 2, Height: 2, BaseY: 1, Shadow: true,
		Chars: []Charinfo{
			{Chr: "'", Width: 2, Bonus: 10, Pixels: []GlyphPixel{{0, 0, 255, 255}, {0, 1, 255, 0}}},
		},
	}
	buf := filledBuffer(4, 4, Color{80, 120, 160})
	ink := Color{255, 200, 40}
	buf.SetPixel(1, 1, 255, 200, 40, 255)
	buf.SetPixel(1, 2, 0, 0, 0, 255)

	m := ReadChar(buf, font, ink, 1, 2, false, false)
	if m == nil || m.Score != 0 {
		t.Fatalf("got %+v, want exact shadow match", m)
	}

	// without the shadow the lower pixel can't be explained
	buf.SetPixel(1, 2, 80, 120, 160, 255)
	if m := ReadChar(buf, font, ink, 1, 2, false, false); m != nil && m.Score == 0 {
		t.Errorf("missing shadow still scored 0: %+v", m)
	}
}

func TestReadChar_Collector(t *testing.T) {
	font := testFont(t)
	buf := filledBuffer(12, 10, bgCol)
	drawGlyph(buf, font, "A", white, 4, 6)

	rec := NewScoreRecorder()
	r := &Reader{Font: font, Collector: rec}
	want := ReadChar(buf, font, white, 4, 6, false, false)
	got := r.ReadChar(buf, white, 4, 6, false, false)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("collector changed the result: %+v vs %+v", got, want)
	}

	keys := rec.Keys()
	if len(keys) != 1 || keys[0] != "4;2 #ffffff" {
		t.Fatalf("keys: got %v", keys)
	}
	scores := rec.Scores(keys[0])
	if len(scores) != 2 {
		t.Fatalf("want one score per glyph, got %d", len(scores))
	}
	if top := rec.Top(keys[0], 1); top[0].Chr != "A" {
		t.Errorf("best recorded candidate: got %s, want A", top[0].Chr)
	}

	rec.Reset()
	if len(rec.Keys()) != 0 {
		t.Error("Reset kept scores")
	}
}

func TestReadChar_Deterministic(t *testing.T) {
	font := testFont(t)
	buf := filledBuffer(12, 10, bgCol)
	drawGlyph(buf, font, "B", white, 4, 6)

	first := ReadChar(buf, font, white, 4, 6, false, false)
	for i := 0; i < 5; i++ {
		if got := ReadChar(buf, font, white, 4, 6, false, false); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}
