// Package server implements the MCP (Model Context Protocol) server for
// pixel font recognition.
//
// The server reads text rendered in bitmap fonts (game HUDs, emulator
// screens, terminal captures) by template matching against calibrated
// fonts. It does not guess where text is: callers locate a line with the
// image tools, then read it with the font tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image inspection:
//   - image_load, image_dimensions: metadata
//   - image_crop: zoomed region for locating anchors and baselines
//   - image_sample_color, image_sample_colors_multi: exact pixel colors
//   - image_text_colors: candidate text colors for a region
//   - image_text_regions: boxes and baseline hints for text of one color
//   - image_draw_rects: outline scan areas for review
//
// Font calibration:
//   - font_unblend: separate font coverage from a reference capture
//   - font_calibrate: build a font from an unblended reference strip
//
// Font management:
//   - font_load, font_save, font_list, font_preview
//
// Recognition:
//   - font_read_char: one glyph at a known anchor
//   - font_read_line: a line from a known anchor and baseline
//   - font_find_char: best glyph inside a search rectangle
//   - font_find_read_line: locate a line near a hint, then read it
//   - font_debug_scores: candidate scores recorded by recent reads
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Unblend results
// are cached under a key ("unblended:<path>" by default) that any path
// argument accepts, so calibration needs no intermediate file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: the Go error string
//
// # Usage
//
//	srv := server.New(config.Load(), slog.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
