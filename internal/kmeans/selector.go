package kmeans

import (
	"fmt"
	"math/rand/v2"
)

// WeightedIndex draws an index from weights, where index i is returned with
// probability weights[i] / sum(weights).
//
// A running cumulative sum is built, a value u is drawn uniformly from
// [0, sum), and the first index whose cumulative sum exceeds u is returned.
// Zero-weight entries can therefore never be selected.
//
// Errors:
//   - ErrNoWeights if weights is empty
//   - ErrNegativeWeight if any weight is below zero
//   - ErrDegenerateWeights if every weight is zero
func WeightedIndex(rng *rand.Rand, weights []int) (int, error) {
	if len(weights) == 0 {
		return 0, ErrNoWeights
	}

	totals := make([]int, len(weights))
	sum := 0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("weight %d at index %d: %w", w, i, ErrNegativeWeight)
		}
		sum += w
		totals[i] = sum
	}
	if sum == 0 {
		return 0, ErrDegenerateWeights
	}

	u := rng.IntN(sum)
	for i, total := range totals {
		if u < total {
			return i, nil
		}
	}

	// Unreachable: u < sum == totals[len-1].
	return len(totals) - 1, nil
}
