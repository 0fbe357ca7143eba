package kmeans

import "fmt"

// Color is a point in RGB space.
//
// Channels are plain ints so that summing a whole cluster never overflows. A
// Color is a value: Add and Div return new colors and leave their operands
// untouched.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGB is shorthand for Color{R: r, G: g, B: b}.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Distance returns the Manhattan (L1) distance between a and b.
func Distance(a, b Color) int {
	return abs(a.R-b.R) + abs(a.G-b.G) + abs(a.B-b.B)
}

// Equal reports whether c and other match on every channel.
func (c Color) Equal(other Color) bool {
	return c == other
}

// Add returns the per-channel sum of c and other. Channels are not clamped.
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Div divides every channel by count, rounding to the nearest integer with
// halves rounded up (2.5 -> 3, -2.5 -> -2).
//
// Div panics if count is not positive.
func (c Color) Div(count int) Color {
	if count <= 0 {
		panic(fmt.Sprintf("kmeans: Color.Div by non-positive count %d", count))
	}
	return Color{
		R: roundDiv(c.R, count),
		G: roundDiv(c.G, count),
		B: roundDiv(c.B, count),
	}
}

// String formats the color as "(r,g,b)".
func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// roundDiv computes floor(v/n + 1/2) for n > 0.
func roundDiv(v, n int) int {
	num, den := 2*v+n, 2*n
	q := num / den
	if num%den != 0 && num < 0 {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
