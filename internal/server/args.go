package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// colorArg accepts a color either as "#rrggbb" or as an [r, g, b] array.
type colorArg ocr.Color

func (c *colorArg) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := ocr.ParseColor(hex)
		if err != nil {
			return err
		}
		*c = colorArg(parsed)
		return nil
	}

	var rgb [3]int
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be \"#rrggbb\" or [r, g, b]: %s", data)
	}
	for _, v := range rgb {
		if v < 0 || v > 255 {
			return fmt.Errorf("color component %d out of range 0-255", v)
		}
	}
	*c = colorArg(rgb)
	return nil
}

func toColors(in []colorArg) []ocr.Color {
	out := make([]ocr.Color, len(in))
	for i, c := range in {
		out[i] = ocr.Color(c)
	}
	return out
}

// boolOr returns *b, or def when the argument was omitted.
func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// intOr returns *n, or def when the argument was omitted.
func intOr(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}
