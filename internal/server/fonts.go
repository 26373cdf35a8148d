package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/pixelfont-mcp/internal/fontstore"
	"github.com/ironsheep/pixelfont-mcp/internal/imaging"
	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// defaultThreshold is the calibration coverage cutoff used when the caller
// does not pass one.
const defaultThreshold = 0.5

// unblendedPrefix namespaces in-memory unblend results in the image cache.
const unblendedPrefix = "unblended:"

// loadBuffer returns the image at path, cropped to region when one is given.
func (s *Server) loadBuffer(path string, region *ocr.Rect) (*ocr.PixelBuffer, error) {
	buf, err := s.cache.Buffer(path)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return buf, nil
	}
	return imaging.CropBuffer(buf, *region)
}

// reader builds a Reader for the named font, recording scores when enabled.
func (s *Server) reader(name string) (*ocr.Reader, error) {
	font, err := s.fonts.Get(name)
	if err != nil {
		return nil, err
	}
	r := ocr.NewReader(font)
	if s.scores != nil {
		r.Collector = s.scores
	}
	return r, nil
}

func (s *Server) checkSearchArea(w, h int) error {
	if w > 0 && h > 0 && w*h > s.cfg.MaxSearchArea {
		return fmt.Errorf("search area %dx%d exceeds the limit of %d pixels", w, h, s.cfg.MaxSearchArea)
	}
	return nil
}

// === Font Calibration Handlers ===

type fontUnblendArgs struct {
	Path           string    `json:"path"`
	BackgroundPath string    `json:"background_path"`
	Color          colorArg  `json:"color"`
	Shadow         bool      `json:"shadow"`
	Region         *ocr.Rect `json:"region,omitempty"`
	StoreAs        string    `json:"store_as"`
	OutputPath     string    `json:"output_path"`
	Preview        bool      `json:"preview"`
	Scale          float64   `json:"scale"`
}

type fontUnblendResult struct {
	ocr.UnblendResult
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	StoredAs   string                 `json:"stored_as"`
	OutputPath string                 `json:"output_path,omitempty"`
	Preview    *imaging.PreviewResult `json:"preview,omitempty"`
}

// handleFontUnblend separates font coverage from a reference capture. The
// result is kept in the image cache under stored_as so font_calibrate can
// use it as its path without a round trip through disk.
func (s *Server) handleFontUnblend(args json.RawMessage) (interface{}, error) {
	var a fontUnblendArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.StoreAs == "" {
		a.StoreAs = unblendedPrefix + a.Path
	}
	if a.Scale == 0 {
		a.Scale = 4
	}

	img, err := s.loadBuffer(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	var res *ocr.UnblendResult
	if a.BackgroundPath != "" {
		bg, err := s.loadBuffer(a.BackgroundPath, a.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to load background: %w", err)
		}
		res, err = ocr.UnblendKnownBg(img, bg, a.Shadow, ocr.Color(a.Color))
		if err != nil {
			return nil, err
		}
	} else {
		res = &ocr.UnblendResult{Buffer: ocr.UnblendTrans(img, a.Shadow, ocr.Color(a.Color))}
	}

	s.cache.Put(a.StoreAs, res.Buffer)
	out := &fontUnblendResult{
		UnblendResult: *res,
		Width:         res.Buffer.Width,
		Height:        res.Buffer.Height,
		StoredAs:      a.StoreAs,
	}
	if a.OutputPath != "" {
		if err := imaging.SavePNG(a.OutputPath, res.Buffer); err != nil {
			return nil, err
		}
		out.OutputPath = a.OutputPath
	}
	if a.Preview {
		if out.Preview, err = imaging.Preview(res.Buffer, a.Scale); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type fontCalibrateArgs struct {
	Path       string             `json:"path"`
	Name       string             `json:"name"`
	Chars      string             `json:"chars"`
	Secondary  string             `json:"secondary"`
	Bonuses    map[string]float64 `json:"bonuses"`
	BaseY      int                `json:"basey"`
	SpaceWidth int                `json:"spacewidth"`
	Threshold  *float64           `json:"threshold"`
	Shadow     bool               `json:"shadow"`
	Region     *ocr.Rect          `json:"region,omitempty"`
	OutputPath string             `json:"output_path"`
}

type fontCalibrateResult struct {
	fontstore.Summary
	OutputPath string `json:"output_path,omitempty"`
}

// handleFontCalibrate builds a font from an unblended reference image and
// registers it under name.
func (s *Server) handleFontCalibrate(args json.RawMessage) (interface{}, error) {
	var a fontCalibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	buf, err := s.loadBuffer(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	font, err := ocr.GenerateFont(buf, ocr.CalibrationParams{
		Chars:      a.Chars,
		Secondary:  a.Secondary,
		Bonuses:    a.Bonuses,
		BaseY:      a.BaseY,
		SpaceWidth: a.SpaceWidth,
		Threshold:  floatOr(a.Threshold, defaultThreshold),
		Shadow:     a.Shadow,
	})
	if err != nil {
		return nil, err
	}
	if err := s.fonts.Put(a.Name, font); err != nil {
		return nil, err
	}
	s.log.Info("font calibrated", "name", a.Name, "chars", len(font.Chars), "height", font.Height)

	out := &fontCalibrateResult{Summary: fontstore.Summarize(a.Name, font)}
	if a.OutputPath != "" {
		if err := fontstore.WriteFile(a.OutputPath, font); err != nil {
			return nil, err
		}
		out.OutputPath = a.OutputPath
	}
	return out, nil
}

func floatOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}

// === Font Management Handlers ===

type fontFileArgs struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleFontLoad(args json.RawMessage) (interface{}, error) {
	var a fontFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		a.Name = strings.TrimSuffix(filepath.Base(a.Path), filepath.Ext(a.Path))
	}
	font, err := s.fonts.LoadFile(a.Name, a.Path)
	if err != nil {
		return nil, err
	}
	return fontstore.Summarize(a.Name, font), nil
}

func (s *Server) handleFontSave(args json.RawMessage) (interface{}, error) {
	var a fontFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	font, err := s.fonts.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if err := fontstore.WriteFile(a.Path, font); err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": a.Name, "path": a.Path}, nil
}

func (s *Server) handleFontList(args json.RawMessage) (interface{}, error) {
	return map[string]interface{}{"fonts": s.fonts.List()}, nil
}

type fontPreviewArgs struct {
	Font  string  `json:"font"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleFontPreview(args json.RawMessage) (interface{}, error) {
	var a fontPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 4
	}
	font, err := s.fonts.Get(a.Font)
	if err != nil {
		return nil, err
	}
	if len(font.Chars) == 0 {
		return nil, fmt.Errorf("font %q has no glyphs", a.Font)
	}
	return imaging.Preview(ocr.RenderFont(font), a.Scale)
}

// === Recognition Handlers ===

type charResult struct {
	Found bool           `json:"found"`
	Match *ocr.CharMatch `json:"match,omitempty"`
}

type fontReadCharArgs struct {
	Path           string   `json:"path"`
	Font           string   `json:"font"`
	Color          colorArg `json:"color"`
	X              int      `json:"x"`
	Y              int      `json:"y"`
	Backward       bool     `json:"backward"`
	AllowSecondary bool     `json:"allow_secondary"`
}

func (s *Server) handleFontReadChar(args json.RawMessage) (interface{}, error) {
	var a fontReadCharArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.reader(a.Font)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	m := r.ReadChar(buf, ocr.Color(a.Color), a.X, a.Y, a.Backward, a.AllowSecondary)
	return &charResult{Found: m != nil, Match: m}, nil
}

type fontReadLineArgs struct {
	Path     string     `json:"path"`
	Font     string     `json:"font"`
	Colors   []colorArg `json:"colors"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Forward  *bool      `json:"forward"`
	Backward *bool      `json:"backward"`
}

func (s *Server) handleFontReadLine(args json.RawMessage) (interface{}, error) {
	var a fontReadLineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Colors) == 0 {
		return nil, fmt.Errorf("at least one color is required")
	}
	r, err := s.reader(a.Font)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	res := r.ReadLine(buf, toColors(a.Colors), a.X, a.Y, boolOr(a.Forward, true), boolOr(a.Backward, true))
	return &res, nil
}

type fontFindCharArgs struct {
	Path  string   `json:"path"`
	Font  string   `json:"font"`
	Color colorArg `json:"color"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
	W     int      `json:"w"`
	H     int      `json:"h"`
}

func (s *Server) handleFontFindChar(args json.RawMessage) (interface{}, error) {
	var a fontFindCharArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.checkSearchArea(a.W, a.H); err != nil {
		return nil, err
	}
	r, err := s.reader(a.Font)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	m := r.FindChar(buf, ocr.Color(a.Color), a.X, a.Y, a.W, a.H)
	return &charResult{Found: m != nil, Match: m}, nil
}

type fontFindReadLineArgs struct {
	Path   string     `json:"path"`
	Font   string     `json:"font"`
	Colors []colorArg `json:"colors"`
	X      int        `json:"x"`
	Y      int        `json:"y"`
	W      *int       `json:"w"`
	H      *int       `json:"h"`
}

func (s *Server) handleFontFindReadLine(args json.RawMessage) (interface{}, error) {
	var a fontFindReadLineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Colors) == 0 {
		return nil, fmt.Errorf("at least one color is required")
	}
	w, h := intOr(a.W, -1), intOr(a.H, -1)
	if err := s.checkSearchArea(w, h); err != nil {
		return nil, err
	}
	r, err := s.reader(a.Font)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	res := r.FindReadLine(buf, toColors(a.Colors), a.X, a.Y, w, h)
	return &res, nil
}

type fontDebugScoresArgs struct {
	Key   string `json:"key"`
	Top   int    `json:"top"`
	Reset bool   `json:"reset"`
}

// handleFontDebugScores lists the positions scored since the last reset, or
// the best candidates at one position when key is given.
func (s *Server) handleFontDebugScores(args json.RawMessage) (interface{}, error) {
	var a fontDebugScoresArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.scores == nil {
		return nil, fmt.Errorf("score recording is disabled; set PIXELFONT_MCP_DEBUG_SCORES=1")
	}
	if a.Top == 0 {
		a.Top = 10
	}

	var out interface{}
	if a.Key == "" {
		out = map[string]interface{}{"keys": s.scores.Keys()}
	} else {
		out = map[string]interface{}{"key": a.Key, "scores": s.scores.Top(a.Key, a.Top)}
	}
	if a.Reset {
		s.scores.Reset()
	}
	return out, nil
}
