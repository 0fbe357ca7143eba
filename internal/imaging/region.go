package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), both relative to the image's top-left pixel.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// toNRGBA returns img as an NRGBA image whose bounds start at (0,0). When
// region is non-nil only that part of the image is kept; it must lie inside
// the image and be non-empty.
func toNRGBA(img image.Image, region *Region) (*image.NRGBA, error) {
	if region == nil {
		return imaging.Clone(img), nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if region.X1 < 0 || region.Y1 < 0 || region.X2 > w || region.Y2 > h {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			region.X1, region.Y1, region.X2, region.Y2, w, h)
	}
	if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, region.Rect().Add(b.Min)), nil
}
