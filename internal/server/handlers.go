package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/pixelfont-mcp/internal/detection"
	"github.com/ironsheep/pixelfont-mcp/internal/imaging"
	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "font_read_line").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images and fonts as needed
//  4. Calls the appropriate imaging/ocr function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region and Color Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_text_colors":
		return s.handleImageTextColors(args)
	case "image_text_regions":
		return s.handleImageTextRegions(args)
	case "image_draw_rects":
		return s.handleImageDrawRects(args)

	// Font Calibration
	case "font_unblend":
		return s.handleFontUnblend(args)
	case "font_calibrate":
		return s.handleFontCalibrate(args)

	// Font Management
	case "font_load":
		return s.handleFontLoad(args)
	case "font_save":
		return s.handleFontSave(args)
	case "font_list":
		return s.handleFontList(args)
	case "font_preview":
		return s.handleFontPreview(args)

	// Recognition
	case "font_read_char":
		return s.handleFontReadChar(args)
	case "font_read_line":
		return s.handleFontReadLine(args)
	case "font_find_char":
		return s.handleFontFindChar(args)
	case "font_find_read_line":
		return s.handleFontFindReadLine(args)
	case "font_debug_scores":
		return s.handleFontDebugScores(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region and Color Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(buf, points)
}

type imageTextColorsArgs struct {
	Path          string    `json:"path"`
	Count         int       `json:"count"`
	Region        *ocr.Rect `json:"region,omitempty"`
	MergeDistance float64   `json:"merge_distance"`
}

func (s *Server) handleImageTextColors(args json.RawMessage) (interface{}, error) {
	var a imageTextColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SuggestTextColors(buf, a.Count, a.Region, a.MergeDistance)
}

type imageTextRegionsArgs struct {
	Path   string    `json:"path"`
	Color  colorArg  `json:"color"`
	Region *ocr.Rect `json:"region,omitempty"`
	Gap    *int      `json:"gap"`
}

func (s *Server) handleImageTextRegions(args json.RawMessage) (interface{}, error) {
	var a imageTextRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectTextRegions(buf, ocr.Color(a.Color), a.Region, intOr(a.Gap, 6))
}

type imageDrawRectsArgs struct {
	Path  string     `json:"path"`
	Rects []ocr.Rect `json:"rects"`
	Color string     `json:"color"`
	Label bool       `json:"label"`
	Scale float64    `json:"scale"`
}

func (s *Server) handleImageDrawRects(args json.RawMessage) (interface{}, error) {
	var a imageDrawRectsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DrawRects(buf, a.Rects, a.Color, a.Label, a.Scale)
}
