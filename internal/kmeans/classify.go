package kmeans

// Classify returns the index of the center nearest to query.
//
// Ties go to the center that appears first. Classify returns -1 when centers
// is empty.
func Classify(centers []Color, query Color) int {
	best := -1
	bestDist := 0
	for i, c := range centers {
		d := Distance(query, c)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Nearest returns the center nearest to query along with its index. The index
// is -1 (and the color zero) when centers is empty.
func Nearest(centers []Color, query Color) (Color, int) {
	idx := Classify(centers, query)
	if idx < 0 {
		return Color{}, -1
	}
	return centers[idx], idx
}
