package server

import (
	"encoding/json"
	"strings"
	"testing"
)

var expectedTools = []string{
	"image_load",
	"image_dimensions",
	"image_crop",
	"image_sample_color",
	"image_sample_colors_multi",
	"image_text_colors",
	"image_text_regions",
	"image_draw_rects",
	"font_unblend",
	"font_calibrate",
	"font_load",
	"font_save",
	"font_list",
	"font_preview",
	"font_read_char",
	"font_read_line",
	"font_find_char",
	"font_find_read_line",
	"font_debug_scores",
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties missing")
			}

			// every required argument must be described
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %q not in properties", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredArgs(t *testing.T) {
	tests := []struct {
		tool string
		want []string
	}{
		{"image_crop", []string{"path", "x1", "y1", "x2", "y2"}},
		{"font_calibrate", []string{"path", "name", "chars", "basey"}},
		{"font_read_char", []string{"path", "font", "color", "x", "y"}},
		{"font_read_line", []string{"path", "font", "colors", "x", "y"}},
		{"font_find_char", []string{"path", "font", "color", "w", "h"}},
		{"font_find_read_line", []string{"path", "font", "colors"}},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			required, ok := toolMap[tt.tool].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("required should be a string slice")
			}
			have := make(map[string]bool)
			for _, r := range required {
				have[r] = true
			}
			for _, w := range tt.want {
				if !have[w] {
					t.Errorf("%s should require %q", tt.tool, w)
				}
			}
		})
	}
}

// Every advertised tool must be dispatched by executeTool.
func TestToolDefinitions_Dispatched(t *testing.T) {
	s := newTestServer(t)
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil && strings.Contains(err.Error(), "unknown tool") {
			t.Errorf("%s is listed but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("failed to marshal tools: %v", err)
	}
	if !strings.Contains(string(data), `"inputSchema"`) {
		t.Error("marshaled tools should use the inputSchema key")
	}
}
