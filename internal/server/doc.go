// Package server implements the MCP (Model Context Protocol) server that exposes
// palette reduction to MCP clients.
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
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_palette: Cluster sampled pixels into a k-color palette
//   - image_recolor: Remap every pixel to the palette, returned inline or written to disk
//   - image_classify_color: Find the nearest palette color for a given color
//
// Clustering settings (k, max_iterations, stride) default to 20, 15 and 10
// when omitted. Passing a seed makes palettes reproducible across calls.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so
// computing a palette and then recoloring the same file decodes it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
