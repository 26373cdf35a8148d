package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Schema fragments shared by several tools.
var (
	pathProp = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file, or a key returned by font_unblend",
	}
	fontProp = map[string]interface{}{
		"type":        "string",
		"description": "Name of a loaded or calibrated font (see font_list)",
	}
	colorSchema = map[string]interface{}{
		"description": "Text color as \"#rrggbb\" or [r, g, b]",
		"oneOf": []interface{}{
			map[string]interface{}{"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
			map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
				"minItems": 3,
				"maxItems": 3,
			},
		},
	}
	rectSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "integer"},
			"y": map[string]interface{}{"type": "integer"},
			"w": map[string]interface{}{"type": "integer"},
			"h": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x", "y", "w", "h"},
	}
	baselineProp = map[string]interface{}{
		"type":        "integer",
		"description": "Baseline row of the text (the font's basey row inside the glyph cell)",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},

		// Region and Color Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region and return it as base64-encoded PNG. Scaling is nearest neighbor so pixel text stays sharp; use it to find glyph anchors and baselines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"x1":   map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y1":   map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"x2":   map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
					"y2":   map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to zoom in). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel. The rgb field can be passed as a text color to the font tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"x":    map[string]interface{}{"type": "integer", "description": "X coordinate (0-based, from left)"},
					"y":    map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based, from top)"},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_text_colors",
			Description: "Suggest candidate text colors for a region. Similar shades are merged, the most common color is reported as background and left out of the candidates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of candidate colors (default 5)",
						"default":     5,
					},
					"region": rectSchema,
					"merge_distance": map[string]interface{}{
						"type":        "number",
						"description": "CIELAB distance under which shades are merged (default 0.05)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_text_regions",
			Description: "Find boxes of pixels that can hold the given text color. Each region reports a baseline hint (its lowest ink row); pass its left edge and baseline to font_find_read_line.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProp,
					"color":  colorSchema,
					"region": rectSchema,
					"gap": map[string]interface{}{
						"type":        "integer",
						"description": "Blank columns allowed inside one region (default 6)",
						"default":     6,
					},
				},
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "image_draw_rects",
			Description: "Outline rectangles on the image, e.g. the debug_area returned by the line readers, and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"rects": map[string]interface{}{
						"type":        "array",
						"items":       rectSchema,
						"description": "Rectangles to outline",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as \"#rrggbb\" (default #ff00ff)",
					},
					"label": map[string]interface{}{
						"type":        "boolean",
						"description": "Number the rectangles below their bottom edge",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "rects"},
			},
		},

		// Font Calibration
		{
			Name:        "font_unblend",
			Description: "Separate font coverage from a reference capture of known glyphs. With background_path the second capture shows the same region without text; without it the capture's alpha channel is used. The result is cached under stored_as for font_calibrate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"background_path": map[string]interface{}{
						"type":        "string",
						"description": "Capture of the same region with the text hidden",
					},
					"color": colorSchema,
					"shadow": map[string]interface{}{
						"type":        "boolean",
						"description": "The font has a black drop shadow",
					},
					"region":   rectSchema,
					"store_as": map[string]interface{}{"type": "string", "description": "Cache key for the result (default \"unblended:<path>\")"},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Also save the unblended image as PNG here",
					},
					"preview": map[string]interface{}{"type": "boolean", "description": "Return the result as base64 PNG"},
					"scale":   map[string]interface{}{"type": "number", "description": "Preview scale (default 4)"},
				},
				"required": []string{"path", "color"},
			},
		},
		{
			Name:        "font_calibrate",
			Description: "Build a font from an unblended reference image. The bottom row marks each glyph with a run of pure red pixels, one run per character in chars, left to right.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProp,
					"name":      map[string]interface{}{"type": "string", "description": "Name to register the font under"},
					"chars":     map[string]interface{}{"type": "string", "description": "The characters in the reference image, in order"},
					"secondary": map[string]interface{}{"type": "string", "description": "Characters only accepted after a line has started (e.g. punctuation)"},
					"bonuses": map[string]interface{}{
						"type":                 "object",
						"additionalProperties": map[string]interface{}{"type": "number"},
						"description":          "Extra score bonus per character",
					},
					"basey":      map[string]interface{}{"type": "integer", "description": "Baseline row in the reference image"},
					"spacewidth": map[string]interface{}{"type": "integer", "description": "Width of a space in pixels"},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum coverage (0-1) for a pixel to join a glyph (default 0.5)",
					},
					"shadow":      map[string]interface{}{"type": "boolean", "description": "Record shadow luminance per pixel"},
					"region":      rectSchema,
					"output_path": map[string]interface{}{"type": "string", "description": "Also save the font JSON here"},
				},
				"required": []string{"path", "name", "chars", "basey", "spacewidth"},
			},
		},

		// Font Management
		{
			Name:        "font_load",
			Description: "Load a font JSON file and register it. The name defaults to the file name without extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{"type": "string", "description": "Name to register the font under"},
					"path": map[string]interface{}{"type": "string", "description": "Absolute path to the font JSON file"},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "font_save",
			Description: "Save a registered font as JSON.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": fontProp,
					"path": map[string]interface{}{"type": "string", "description": "Destination file"},
				},
				"required": []string{"name", "path"},
			},
		},
		{
			Name:        "font_list",
			Description: "List the registered fonts with their characters and metrics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "font_preview",
			Description: "Render every glyph template of a font side by side as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"font":  fontProp,
					"scale": map[string]interface{}{"type": "number", "description": "Scale factor (default 4)"},
				},
				"required": []string{"font"},
			},
		},

		// Recognition
		{
			Name:        "font_read_char",
			Description: "Match a single glyph at an exact position. Returns found=false when nothing matches.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProp,
					"font":            fontProp,
					"color":           colorSchema,
					"x":               map[string]interface{}{"type": "integer", "description": "First column of the glyph cell (first column after it when backward)"},
					"y":               baselineProp,
					"backward":        map[string]interface{}{"type": "boolean", "description": "Read the cell to the left of x"},
					"allow_secondary": map[string]interface{}{"type": "boolean", "description": "Also consider secondary glyphs"},
				},
				"required": []string{"path", "font", "color", "x", "y"},
			},
		},
		{
			Name:        "font_read_line",
			Description: "Read a line of text starting from a known glyph position. With several colors the best one is detected per glyph run. Returns the text and the scanned debug_area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"font": fontProp,
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       colorSchema,
						"description": "Candidate text colors",
					},
					"x":        map[string]interface{}{"type": "integer", "description": "First column of a glyph on the line"},
					"y":        baselineProp,
					"forward":  map[string]interface{}{"type": "boolean", "description": "Read to the right (default true)"},
					"backward": map[string]interface{}{"type": "boolean", "description": "Read to the left (default true)"},
				},
				"required": []string{"path", "font", "colors", "x", "y"},
			},
		},
		{
			Name:        "font_find_char",
			Description: "Search every anchor in a rectangle for the best matching glyph. x, y, w, h describe anchor positions with y as baseline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProp,
					"font":  fontProp,
					"color": colorSchema,
					"x":     map[string]interface{}{"type": "integer"},
					"y":     baselineProp,
					"w":     map[string]interface{}{"type": "integer", "description": "Number of columns to try"},
					"h":     map[string]interface{}{"type": "integer", "description": "Number of baselines to try"},
				},
				"required": []string{"path", "font", "color", "x", "y", "w", "h"},
			},
		},
		{
			Name:        "font_find_read_line",
			Description: "Read a line of text from an approximate position inside it. The first color locates a glyph near (x, y), then the whole line is read with all colors. Empty text means nothing was found; debug_area is then the search window.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"font": fontProp,
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       colorSchema,
						"description": "Candidate text colors, most likely first",
					},
					"x": map[string]interface{}{"type": "integer"},
					"y": baselineProp,
					"w": map[string]interface{}{"type": "integer", "description": "Search width (default: one glyph plus a space, centered on x)"},
					"h": map[string]interface{}{"type": "integer", "description": "Search height (default: 7 rows centered on y)"},
				},
				"required": []string{"path", "font", "colors", "x", "y"},
			},
		},
		{
			Name:        "font_debug_scores",
			Description: "Inspect candidate scores recorded by the recognition tools. Without key, lists the recorded positions as \"x;y #rrggbb\" (y is the cell top). Requires PIXELFONT_MCP_DEBUG_SCORES=1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key":   map[string]interface{}{"type": "string", "description": "Position key to show"},
					"top":   map[string]interface{}{"type": "integer", "description": "Number of best candidates to show (default 10)"},
					"reset": map[string]interface{}{"type": "boolean", "description": "Clear recorded scores afterwards"},
				},
			},
		},
	}
}
