package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCenters_PicksFromSamples(t *testing.T) {
	samples := []Color{RGB(0, 0, 0), RGB(10, 10, 10), RGB(200, 0, 0), RGB(0, 200, 0), RGB(0, 0, 200)}

	for seed := uint64(0); seed < 20; seed++ {
		centers, err := SeedCenters(testRand(seed), samples, 3)
		require.NoError(t, err)
		require.Len(t, centers, 3)
		for _, c := range centers {
			assert.Contains(t, samples, c)
		}
	}
}

func TestSeedCenters_SpreadsAcrossGroups(t *testing.T) {
	// Two tight groups far apart: the second center can only be drawn from
	// the group the first one missed, because same-group weights are zero.
	samples := []Color{
		RGB(0, 0, 0), RGB(0, 0, 0), RGB(0, 0, 0),
		RGB(255, 255, 255), RGB(255, 255, 255),
	}

	for seed := uint64(0); seed < 20; seed++ {
		centers, err := SeedCenters(testRand(seed), samples, 2)
		require.NoError(t, err)
		require.Len(t, centers, 2)
		assert.False(t, centers[0].Equal(centers[1]), "seed %d: centers coincide", seed)
	}
}

func TestSeedCenters_Reproducible(t *testing.T) {
	samples := make([]Color, 0, 64)
	for i := 0; i < 64; i++ {
		samples = append(samples, RGB(i*4, 255-i*3, (i*37)%256))
	}

	a, err := SeedCenters(testRand(42), samples, 8)
	require.NoError(t, err)
	b, err := SeedCenters(testRand(42), samples, 8)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSeedCenters_Degenerate(t *testing.T) {
	samples := []Color{RGB(9, 9, 9), RGB(9, 9, 9), RGB(9, 9, 9)}

	centers, err := SeedCenters(testRand(7), samples, 3)
	require.ErrorIs(t, err, ErrDegenerateWeights)
	assert.Equal(t, []Color{RGB(9, 9, 9)}, centers)
}

func TestSeedCenters_InvalidInput(t *testing.T) {
	samples := []Color{RGB(1, 2, 3), RGB(4, 5, 6)}

	_, err := SeedCenters(testRand(1), nil, 1)
	assert.ErrorIs(t, err, ErrEmptySampleSet)

	_, err = SeedCenters(testRand(1), samples, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = SeedCenters(testRand(1), samples, 3)
	assert.ErrorIs(t, err, ErrInvalidK)
}
