package kmeans

import "errors"

var (
	// ErrEmptySampleSet is returned when clustering is requested with no samples.
	ErrEmptySampleSet = errors.New("kmeans: sample set is empty")

	// ErrInvalidK is returned when k is below 1 or exceeds the number of samples.
	ErrInvalidK = errors.New("kmeans: k out of range")

	// ErrInvalidMaxIterations is returned when the iteration cap is below 1.
	ErrInvalidMaxIterations = errors.New("kmeans: max iterations must be positive")

	// ErrNoWeights is returned by WeightedIndex for an empty weight slice.
	ErrNoWeights = errors.New("kmeans: no weights")

	// ErrNegativeWeight is returned by WeightedIndex when a weight is below zero.
	ErrNegativeWeight = errors.New("kmeans: negative weight")

	// ErrDegenerateWeights is returned when every weight is zero. During seeding
	// this means all remaining samples coincide with an already chosen center.
	ErrDegenerateWeights = errors.New("kmeans: all weights are zero")
)
