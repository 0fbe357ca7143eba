package kmeans

import (
	"fmt"
	"math/rand/v2"
)

// SeedCenters picks k initial centers from samples using k-means++.
//
// The first center is chosen uniformly at random. Each following center is
// drawn with probability proportional to a sample's distance to its nearest
// already-chosen center, which spreads the initial centers across the data.
// Centers are not deduplicated; if samples holds fewer than k distinct colors
// some centers may coincide.
//
// If every remaining sample coincides with a chosen center before k centers
// are found, SeedCenters returns the centers picked so far together with an
// error wrapping ErrDegenerateWeights.
func SeedCenters(rng *rand.Rand, samples []Color, k int) ([]Color, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySampleSet
	}
	if k < 1 || k > len(samples) {
		return nil, fmt.Errorf("k=%d with %d samples: %w", k, len(samples), ErrInvalidK)
	}

	centers := make([]Color, 0, k)
	centers = append(centers, samples[rng.IntN(len(samples))])

	// nearest[i] tracks the distance from samples[i] to its closest center so
	// far; each round only needs to compare against the newest center.
	nearest := make([]int, len(samples))
	for i, s := range samples {
		nearest[i] = Distance(s, centers[0])
	}

	for len(centers) < k {
		idx, err := WeightedIndex(rng, nearest)
		if err != nil {
			return centers, fmt.Errorf("seeding center %d of %d: %w", len(centers)+1, k, err)
		}
		next := samples[idx]
		centers = append(centers, next)

		for i, s := range samples {
			if d := Distance(s, next); d < nearest[i] {
				nearest[i] = d
			}
		}
	}

	return centers, nil
}
