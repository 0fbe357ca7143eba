package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-recolor/internal/kmeans"
)

// Samples collects the colors that clustering runs on.
//
// The image (or region of it) is walked column by column, keeping every
// stride-th pixel along both axes, starting with the top-left pixel. Alpha is
// discarded. A stride of 1 samples every pixel.
//
// Errors are returned for a stride below 1 or an invalid region.
func Samples(img image.Image, stride int, region *Region) ([]kmeans.Color, error) {
	if stride < 1 {
		return nil, fmt.Errorf("sampling stride must be at least 1, got %d", stride)
	}

	src, err := toNRGBA(img, region)
	if err != nil {
		return nil, err
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	cols := (w + stride - 1) / stride
	rows := (h + stride - 1) / stride
	samples := make([]kmeans.Color, 0, cols*rows)

	for x := 0; x < w; x += stride {
		for y := 0; y < h; y += stride {
			samples = append(samples, pixelAt(src, x, y))
		}
	}

	return samples, nil
}

// pixelAt reads the RGB channels of src at (x, y), relative to its origin.
func pixelAt(src *image.NRGBA, x, y int) kmeans.Color {
	i := y*src.Stride + x*4
	p := src.Pix[i : i+3 : i+3]
	return kmeans.RGB(int(p[0]), int(p[1]), int(p[2]))
}
