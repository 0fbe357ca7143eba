package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTwoToneImageFile writes a PNG that is black on the left half and
// white on the right half, and returns its path.
func createTwoToneImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= width/2 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "two-tone.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool issues a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeToolResult unmarshals the text content of a successful tool response.
func decodeToolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("tool result is not JSON: %v", err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 100, 80)

	var info struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Format     string `json:"format"`
		PixelCount int    `json:"pixel_count"`
	}
	decodeToolResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": path}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("size: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.PixelCount != 8000 {
		t.Errorf("PixelCount: got %d, want 8000", info.PixelCount)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 200, 150)

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	decodeToolResult(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": path}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

type paletteJSON struct {
	Palette []struct {
		Index      int     `json:"index"`
		Hex        string  `json:"hex"`
		Percentage float64 `json:"percentage"`
	} `json:"palette"`
	Iterations  int    `json:"iterations"`
	State       string `json:"state"`
	SampleCount int    `json:"sample_count"`
}

func TestHandleToolsCall_ImagePalette(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 40, 40)

	var pal paletteJSON
	decodeToolResult(t, callTool(t, s, "image_palette", map[string]interface{}{
		"path":   path,
		"k":      2,
		"stride": 4,
		"seed":   7,
	}), &pal)

	if pal.State != "converged" {
		t.Errorf("State: got %s, want converged", pal.State)
	}
	if pal.SampleCount != 100 {
		t.Errorf("SampleCount: got %d, want 100", pal.SampleCount)
	}
	if len(pal.Palette) != 2 {
		t.Fatalf("got %d palette entries, want 2", len(pal.Palette))
	}

	hexes := map[string]bool{}
	for _, e := range pal.Palette {
		hexes[e.Hex] = true
		if e.Percentage != 50 {
			t.Errorf("%s: Percentage got %f, want 50", e.Hex, e.Percentage)
		}
	}
	if !hexes["#000000"] || !hexes["#FFFFFF"] {
		t.Errorf("unexpected palette %v", hexes)
	}
}

func TestHandleToolsCall_ImagePalette_Defaults(t *testing.T) {
	s := New(nil)
	// 200x100 at the default stride of 10 gives 200 samples, enough for k=20.
	path := createTwoToneImageFile(t, 200, 100)

	var pal paletteJSON
	decodeToolResult(t, callTool(t, s, "image_palette", map[string]interface{}{"path": path}), &pal)

	if pal.SampleCount != 200 {
		t.Errorf("SampleCount: got %d, want 200", pal.SampleCount)
	}
	// Only two distinct colors exist, so seeding stops early.
	if len(pal.Palette) != 2 {
		t.Errorf("got %d palette entries, want 2", len(pal.Palette))
	}
}

func TestHandleToolsCall_ImagePalette_KTooLarge(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 20, 20)

	resp := callTool(t, s, "image_palette", map[string]interface{}{"path": path, "k": 10, "stride": 10})

	if resp.Error == nil {
		t.Fatal("expected error when k exceeds the sample count")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_ImageRecolor_Inline(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 30, 20)

	var res struct {
		paletteJSON
		Image struct {
			Width       int    `json:"width"`
			Height      int    `json:"height"`
			ImageBase64 string `json:"image_base64"`
			MimeType    string `json:"mime_type"`
		} `json:"image"`
	}
	decodeToolResult(t, callTool(t, s, "image_recolor", map[string]interface{}{
		"path":   path,
		"k":      2,
		"stride": 2,
		"seed":   1,
	}), &res)

	if res.Image.Width != 30 || res.Image.Height != 20 {
		t.Errorf("image size: got %dx%d", res.Image.Width, res.Image.Height)
	}
	if res.Image.ImageBase64 == "" || res.Image.MimeType != "image/png" {
		t.Error("expected inline PNG payload")
	}
	if len(res.Palette) != 2 {
		t.Errorf("got %d palette entries, want 2", len(res.Palette))
	}
}

func TestHandleToolsCall_ImageRecolor_OutputPath(t *testing.T) {
	s := New(nil)
	path := createTwoToneImageFile(t, 30, 20)
	outPath := filepath.Join(t.TempDir(), "recolored.jpg")

	var res struct {
		OutputPath string          `json:"output_path"`
		Image      json.RawMessage `json:"image"`
	}
	decodeToolResult(t, callTool(t, s, "image_recolor", map[string]interface{}{
		"path":        path,
		"k":           2,
		"stride":      2,
		"output_path": outPath,
	}), &res)

	if res.OutputPath != outPath {
		t.Errorf("OutputPath: got %s, want %s", res.OutputPath, outPath)
	}
	if len(res.Image) != 0 {
		t.Error("image payload should be omitted when writing to disk")
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestHandleToolsCall_ImageClassifyColor(t *testing.T) {
	s := New(nil)

	var res ClassifyResult
	decodeToolResult(t, callTool(t, s, "image_classify_color", map[string]interface{}{
		"centers": []string{"#000000", "#0A0A0A"},
		"color":   "#040404",
	}), &res)

	if res.Index != 0 {
		t.Errorf("Index: got %d, want 0", res.Index)
	}
	if res.Hex != "#000000" {
		t.Errorf("Hex: got %s, want #000000", res.Hex)
	}
	if res.Distance != 12 {
		t.Errorf("Distance: got %d, want 12", res.Distance)
	}
}

func TestHandleToolsCall_ImageClassifyColor_Errors(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no centers", map[string]interface{}{"centers": []string{}, "color": "#000000"}},
		{"bad center", map[string]interface{}{"centers": []string{"red"}, "color": "#000000"}},
		{"bad color", map[string]interface{}{"centers": []string{"#000000"}, "color": "#zzzzzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := callTool(t, s, "image_classify_color", tt.args); resp.Error == nil {
				t.Error("expected tool error")
			}
		})
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "image_palette", map[string]interface{}{"path": "/nonexistent/image.png"})

	if resp.Error == nil {
		t.Fatal("expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New(nil)

	resp := callTool(t, s, "image_ocr_full", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp.Error == nil {
		t.Fatal("expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}
