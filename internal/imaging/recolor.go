package imaging

import (
	"errors"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-recolor/internal/kmeans"
)

// RecolorResult holds a remapped image and how many pixels went to each
// center.
type RecolorResult struct {
	// Image has the source dimensions with its origin at (0,0).
	Image *image.NRGBA

	// Counts[i] is the number of pixels mapped to centers[i].
	Counts []int
}

// Recolor replaces every pixel of img with its nearest center, keeping the
// pixel's alpha.
//
// Rows are split into bands and processed in parallel. Each pixel depends
// only on its own value and the centers, so the output is identical to a
// sequential pass; ties resolve to the earliest center as in kmeans.Classify.
func Recolor(img image.Image, centers []kmeans.Color) (*RecolorResult, error) {
	if len(centers) == 0 {
		return nil, errors.New("recolor requires at least one center")
	}

	src, err := toNRGBA(img, nil)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(src.Rect)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	var mu sync.Mutex
	counts := make([]int, len(centers))

	parallel.Line(h, func(start, end int) {
		local := make([]int, len(centers))
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				idx := kmeans.Classify(centers, pixelAt(src, x, y))
				c := centers[idx]

				i := y*dst.Stride + x*4
				dst.Pix[i+0] = clampChannel(c.R)
				dst.Pix[i+1] = clampChannel(c.G)
				dst.Pix[i+2] = clampChannel(c.B)
				dst.Pix[i+3] = src.Pix[i+3]
				local[idx]++
			}
		}

		mu.Lock()
		for i, n := range local {
			counts[i] += n
		}
		mu.Unlock()
	})

	return &RecolorResult{Image: dst, Counts: counts}, nil
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
