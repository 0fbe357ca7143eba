package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// clusteringProperties are shared by the palette and recolor tools.
func clusteringProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"k": map[string]interface{}{
			"type":        "integer",
			"description": "Number of palette colors to seed (default 20). The result may hold fewer if clusters empty out.",
			"default":     20,
		},
		"max_iterations": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum clustering iterations (default 15)",
			"default":     15,
		},
		"stride": map[string]interface{}{
			"type":        "integer",
			"description": "Sample every Nth pixel along each axis (default 10)",
			"default":     10,
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Optional random seed for reproducible palettes",
		},
		"region": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"description": "Optional region to sample. If omitted, samples the entire image.",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	recolorProps := clusteringProperties()
	recolorProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to write the result (.png, .jpg, .jpeg, .bmp). If omitted the image is returned as base64 PNG.",
	}
	recolorProps["quality"] = map[string]interface{}{
		"type":        "integer",
		"description": "JPEG quality 1-100 when output_path is a JPEG (default 95)",
		"default":     95,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Palette Operations
		{
			Name:        "image_palette",
			Description: "Reduce the image's colors to k representative colors with k-means++ clustering and return the palette with each color's share of the sampled pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": clusteringProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_recolor",
			Description: "Quantize the image to a k-color palette and remap every pixel to its nearest palette color. Returns the palette and the recolored image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": recolorProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_classify_color",
			Description: "Find which of the given palette colors is nearest to a color (Manhattan distance in RGB, first color wins ties).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"centers": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Palette colors as hex strings (#RRGGBB)",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Color to classify as a hex string (#RRGGBB)",
					},
				},
				"required": []string{"centers", "color"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
