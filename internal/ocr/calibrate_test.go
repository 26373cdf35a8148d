package ocr

import (
	"errors"
	"testing"
)

func TestGenerateFont(t *testing.T) {
	font := testFont(t)

	if font.Width != 4 {
		t.Errorf("Width: got %d, want 4", font.Width)
	}
	if font.Height != 5 {
		t.Errorf("Height: got %d, want 5", font.Height)
	}
	if font.BaseY != 4 {
		t.Errorf("BaseY: got %d, want 4", font.BaseY)
	}
	if font.SpaceWidth != 3 {
		t.Errorf("SpaceWidth: got %d, want 3", font.SpaceWidth)
	}
	if len(font.Chars) != 2 || font.Chars[0].Chr != "A" || font.Chars[1].Chr != "B" {
		t.Fatalf("Chars: got %+v, want A then B", font.Chars)
	}

	for _, c := range font.Chars {
		if c.Width != 4 {
			t.Errorf("%s width: got %d, want 4", c.Chr, c.Width)
		}
		if len(c.Pixels) != 10 {
			t.Errorf("%s pixels: got %d, want 10", c.Chr, len(c.Pixels))
		}
		if c.Bonus != 50 {
			t.Errorf("%s bonus: got %v, want 50", c.Chr, c.Bonus)
		}
		for _, p := range c.Pixels {
			if p.Intensity != 255 {
				t.Errorf("%s pixel (%d,%d) intensity %d, want 255", c.Chr, p.DX, p.DY, p.Intensity)
			}
		}
	}

	if err := font.Validate(); err != nil {
		t.Errorf("calibrated font fails validation: %v", err)
	}

	// pixels are stored column by column, so A starts with the left column
	// at its second row
	if p := font.Chars[0].Pixels[0]; p.DX != 0 || p.DY != 1 {
		t.Errorf("first A pixel: got (%d,%d), want (0,1) in column-major order", p.DX, p.DY)
	}
}

func TestGenerateFont_Options(t *testing.T) {
	font, err := GenerateFont(referenceImage("AB"), CalibrationParams{
		Chars:      "AB",
		Secondary:  "B",
		Bonuses:    map[string]float64{"A": 1.25},
		BaseY:      5,
		SpaceWidth: 2,
		Threshold:  1,
		Shadow:     true,
	})
	if err != nil {
		t.Fatalf("GenerateFont failed: %v", err)
	}

	a, b := font.Glyph("A"), font.Glyph("B")
	if a.Secondary || !b.Secondary {
		t.Errorf("secondary flags: A=%v B=%v, want false/true", a.Secondary, b.Secondary)
	}
	if a.Bonus != 51.25 {
		t.Errorf("A bonus: got %v, want 51.25", a.Bonus)
	}
	if !font.Shadow {
		t.Error("Shadow flag not carried over")
	}
	for _, p := range a.Pixels {
		if p.Shadow != 255 {
			t.Errorf("shadow sample should come from the green channel, got %d", p.Shadow)
		}
	}
}

func TestGenerateFont_SpanCountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		chars string
	}{
		{"too many characters", "ABC"},
		{"too few characters", "A"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateFont(referenceImage("AB"), CalibrationParams{Chars: tt.chars, BaseY: 5, Threshold: 0.5})
			if !errors.Is(err, ErrSpanCountMismatch) {
				t.Errorf("got %v, want ErrSpanCountMismatch", err)
			}
		})
	}
}

func TestGenerateFont_NegativeSpaceWidth(t *testing.T) {
	_, err := GenerateFont(referenceImage("AB"), CalibrationParams{Chars: "AB", BaseY: 5, SpaceWidth: -4, Threshold: 0.5})
	if !errors.Is(err, ErrNegativeSpaceWidth) {
		t.Errorf("got %v, want ErrNegativeSpaceWidth", err)
	}

	font, err := GenerateFont(referenceImage("AB"), CalibrationParams{Chars: "AB", BaseY: 5, SpaceWidth: 0, Threshold: 0.5})
	if err != nil || font.SpaceWidth != 0 {
		t.Errorf("zero space width: got %v, %v", font, err)
	}
}

func TestGenerateFont_InvalidInput(t *testing.T) {
	_, err := GenerateFont(referenceImage("AB"), CalibrationParams{Chars: "AB", Threshold: 1.5})
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("threshold 1.5: got %v, want ErrInvalidThreshold", err)
	}

	blank := NewPixelBuffer(6, 4)
	for x := 1; x < 5; x++ {
		blank.SetPixel(x, 3, 255, 0, 0, 255)
	}
	_, err = GenerateFont(blank, CalibrationParams{Chars: "A", Threshold: 0.5})
	if !errors.Is(err, ErrNoGlyphPixels) {
		t.Errorf("blank glyph: got %v, want ErrNoGlyphPixels", err)
	}
}

func TestFindGlyphSpans(t *testing.T) {
	buf := NewPixelBuffer(8, 2)
	mark := func(x int) { buf.SetPixel(x, 1, 255, 0, 0, 255) }
	mark(0)
	mark(1)
	mark(4)
	mark(6)
	mark(7)
	// red without full alpha is not a marker
	buf.SetPixel(3, 1, 255, 0, 0, 128)

	spans := findGlyphSpans(buf)
	want := []glyphSpan{{0, 2}, {4, 5}, {6, 8}}
	if len(spans) != len(want) {
		t.Fatalf("got %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d: got %v, want %v", i, spans[i], want[i])
		}
	}
}
