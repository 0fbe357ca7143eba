// Package imaging is the pixel layer around the kmeans engine.
//
// It loads images, turns them into color samples for clustering, and applies
// the resulting centers back onto every pixel. It also renders the palette
// report and encodes or saves the recolored output.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Sampling
//
// Samples walks the image column by column, taking every stride-th pixel on
// both axes. A stride of 10 therefore clusters roughly 1% of the pixels, which
// keeps clustering cheap while still covering the whole frame. Only the
// remapping pass (Recolor) touches every pixel.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Recolor splits the image
// into row bands processed in parallel; every other function is sequential
// and stateless.
//
// # Color Representation
//
// Pixels are read as 8-bit non-premultiplied RGBA. Alpha is ignored for
// clustering and copied through unchanged when recoloring. Palette entries
// carry the center color as hex "#RRGGBB", 8-bit RGB and HSL.
package imaging
