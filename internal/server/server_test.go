package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/pixelfont-mcp/internal/config"
	"github.com/ironsheep/pixelfont-mcp/internal/fontstore"
	"github.com/ironsheep/pixelfont-mcp/internal/ocr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	s := New(&config.Config{MaxSearchArea: 4096}, quietLogger())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil || s.fonts == nil {
		t.Fatal("New() did not initialize cache and font store")
	}
	if s.scores != nil {
		t.Error("score recording should be off by default")
	}
}

func TestNew_PreloadsFontDirs(t *testing.T) {
	dir := t.TempDir()
	font := &ocr.FontDefinition{
		Width: 3, Height: 5, BaseY: 4, SpaceWidth: 2,
		Chars: []ocr.Charinfo{{Chr: "I", Width: 1, Pixels: []ocr.GlyphPixel{{DX: 0, DY: 0, Intensity: 255}}}},
	}
	if err := fontstore.WriteFile(filepath.Join(dir, "tiny.json"), font); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		MaxSearchArea: 4096,
		FontDirs:      []string{dir, filepath.Join(dir, "missing")},
		DebugScores:   true,
	}
	s := New(cfg, quietLogger())

	if names := s.fonts.Names(); len(names) != 1 || names[0] != "tiny" {
		t.Errorf("Names: got %v, want [tiny]", names)
	}
	if s.scores == nil {
		t.Error("DebugScores should enable score recording")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(&MCPResponse{JSONRPC: "2.0", ID: 1, Result: map[string]interface{}{}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success response should omit error: %s", data)
	}
}

func TestHandleRequest(t *testing.T) {
	s := New(&config.Config{MaxSearchArea: 4096}, quietLogger())

	tests := []struct {
		method   string
		id       interface{}
		wantNil  bool
		wantCode int
	}{
		{method: "initialize", id: 1},
		{method: "ping", id: "ping-1"},
		{method: "tools/list", id: 2},
		{method: "notifications/initialized", wantNil: true},
		{method: "nonexistent/method", id: 3, wantCode: -32601},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: tt.id, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("got %+v, want no response", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.ID != tt.id {
				t.Errorf("ID: got %v, want %v", resp.ID, tt.id)
			}
			if tt.wantCode != 0 {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("Error: got %+v, want code %d", resp.Error, tt.wantCode)
				}
				return
			}
			if resp.Error != nil {
				t.Errorf("Unexpected error: %v", resp.Error)
			}
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New(&config.Config{MaxSearchArea: 4096}, quietLogger())
	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "pixelfont-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != Version {
		t.Errorf("serverInfo.version: got %v", serverInfo["version"])
	}
}

func TestServe(t *testing.T) {
	s := New(&config.Config{MaxSearchArea: 4096}, quietLogger())

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`this is not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"font_list"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
	}, "\n")
	var out bytes.Buffer

	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var responses []MCPResponse
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		responses = append(responses, resp)
	}

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	for i, wantID := range []float64{1, 2, 3} {
		if responses[i].ID != wantID {
			t.Errorf("response %d: ID got %v, want %v", i, responses[i].ID, wantID)
		}
	}
	if responses[1].Error != nil {
		t.Errorf("font_list failed: %+v", responses[1].Error)
	}
	if responses[2].Error == nil || responses[2].Error.Code != -32601 {
		t.Errorf("bogus method: got %+v, want -32601", responses[2].Error)
	}
}
