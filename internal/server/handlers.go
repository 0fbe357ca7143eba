package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-recolor/internal/imaging"
	"github.com/ironsheep/image-recolor/internal/kmeans"
	"github.com/ironsheep/image-recolor/internal/recolor"
)

// defaultJPEGQuality applies when image_recolor writes a JPEG without an
// explicit quality.
const defaultJPEGQuality = 95

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_palette").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_palette":
		return s.handleImagePalette(ctx, args)
	case "image_recolor":
		return s.handleImageRecolor(ctx, args)
	case "image_classify_color":
		return s.handleImageClassifyColor(args)
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

// === Palette Handlers ===

type clusteringArgs struct {
	Path          string          `json:"path"`
	K             int             `json:"k"`
	MaxIterations int             `json:"max_iterations"`
	Stride        int             `json:"stride"`
	Seed          *uint64         `json:"seed"`
	Region        *imaging.Region `json:"region,omitempty"`
}

// options applies the defaults for any setting left at zero.
func (a clusteringArgs) options() recolor.Options {
	opts := recolor.DefaultOptions()
	if a.K != 0 {
		opts.K = a.K
	}
	if a.MaxIterations != 0 {
		opts.MaxIterations = a.MaxIterations
	}
	if a.Stride != 0 {
		opts.Stride = a.Stride
	}
	opts.Seed = a.Seed
	opts.Region = a.Region
	return opts
}

func (s *Server) handleImagePalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a clusteringArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	pal, err := recolor.ExtractPalette(ctx, img, a.options(), s.logger.With("tool", "image_palette"))
	if err != nil {
		return nil, err
	}
	imaging.SortByPercentage(pal.Entries)
	return pal, nil
}

type imageRecolorArgs struct {
	clusteringArgs
	OutputPath string `json:"output_path"`
	Quality    int    `json:"quality"`
}

// RecolorToolResult is the payload of image_recolor.
type RecolorToolResult struct {
	*recolor.Palette
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageRecolor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRecolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Quality == 0 {
		a.Quality = defaultJPEGQuality
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := recolor.Run(ctx, img, a.options(), s.logger.With("tool", "image_recolor"))
	if err != nil {
		return nil, err
	}

	out := &RecolorToolResult{Palette: res.Palette}
	if a.OutputPath != "" {
		if err := imaging.Save(a.OutputPath, res.Image, a.Quality); err != nil {
			return nil, err
		}
		out.OutputPath = a.OutputPath
	} else {
		enc, err := imaging.EncodeBase64(res.Image)
		if err != nil {
			return nil, err
		}
		out.Image = enc
	}
	return out, nil
}

// === Classification Handlers ===

type imageClassifyColorArgs struct {
	Centers []string `json:"centers"`
	Color   string   `json:"color"`
}

// ClassifyResult is the payload of image_classify_color.
type ClassifyResult struct {
	Index    int    `json:"index"`
	Hex      string `json:"hex"`
	Distance int    `json:"distance"`
}

func (s *Server) handleImageClassifyColor(args json.RawMessage) (interface{}, error) {
	var a imageClassifyColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Centers) == 0 {
		return nil, errors.New("centers must not be empty")
	}

	centers := make([]kmeans.Color, len(a.Centers))
	for i, h := range a.Centers {
		c, err := imaging.ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("center %d: %w", i, err)
		}
		centers[i] = c
	}
	query, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}

	nearest, idx := kmeans.Nearest(centers, query)
	return &ClassifyResult{
		Index:    idx,
		Hex:      imaging.HexString(nearest),
		Distance: kmeans.Distance(nearest, query),
	}, nil
}
