package imaging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-recolor/internal/kmeans"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PaletteEntry describes one cluster center of a quantized image.
type PaletteEntry struct {
	Index      int      `json:"index"`      // Position of the center in the center set
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB"
	RGB        RGBColor `json:"rgb"`        // RGB components
	HSL        HSLColor `json:"hsl"`        // HSL representation
	Pixels     int      `json:"pixels"`     // Number of pixels (or samples) mapped to this center
	Percentage float64  `json:"percentage"` // Share of all counted pixels (0-100)
}

// BuildPalette describes each center along with its share of counts.
//
// counts[i] is the number of pixels assigned to centers[i] (as returned by
// Recolor or CountMembers). Entries are returned in center order.
func BuildPalette(centers []kmeans.Color, counts []int) ([]PaletteEntry, error) {
	if len(counts) != len(centers) {
		return nil, fmt.Errorf("palette has %d centers but %d counts", len(centers), len(counts))
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	entries := make([]PaletteEntry, len(centers))
	for i, c := range centers {
		rgb := RGBColor{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
		cf := toColorful(rgb)
		h, s, l := cf.Hsl()

		var pct float64
		if total > 0 {
			pct = float64(counts[i]) / float64(total) * 100
		}

		entries[i] = PaletteEntry{
			Index:      i,
			Hex:        strings.ToUpper(cf.Hex()),
			RGB:        rgb,
			HSL:        HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
			Pixels:     counts[i],
			Percentage: pct,
		}
	}
	return entries, nil
}

// CountMembers counts how many samples classify to each center.
func CountMembers(samples, centers []kmeans.Color) []int {
	counts := make([]int, len(centers))
	if len(centers) == 0 {
		return counts
	}
	for _, s := range samples {
		counts[kmeans.Classify(centers, s)]++
	}
	return counts
}

// SortByPercentage orders entries from most to least common. Entries with
// equal share keep their center order.
func SortByPercentage(entries []PaletteEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Pixels > entries[j].Pixels
	})
}

// ParseHexColor parses "#RRGGBB" (or "#RGB") into a kmeans color.
func ParseHexColor(s string) (kmeans.Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return kmeans.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return kmeans.RGB(int(r), int(g), int(b)), nil
}

// HexString formats a kmeans color as "#RRGGBB".
func HexString(c kmeans.Color) string {
	rgb := RGBColor{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
	return strings.ToUpper(toColorful(rgb).Hex())
}

func toColorful(c RGBColor) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
