package kmeans

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// State describes where the refinement loop stopped.
type State int

const (
	// Running is the state of the loop before it terminates.
	Running State = iota
	// Converged means an iteration reproduced the previous centers exactly.
	Converged
	// IterationLimitReached means the loop hit Config.MaxIterations first.
	IterationLimitReached
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case IterationLimitReached:
		return "iteration_limit_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventKind identifies the progress events sent to an Observer.
type EventKind int

const (
	// EventSeeded fires once after the initial centers are chosen.
	EventSeeded EventKind = iota
	// EventIteration fires after every assign/update round.
	EventIteration
	// EventDone fires once when the loop terminates.
	EventDone
)

// Event reports clustering progress. Observers cannot influence the result.
type Event struct {
	Kind       EventKind
	Iteration  int
	Centers    int   // number of centers after this step
	Dropped    int   // clusters dropped as empty during this iteration
	State      State // terminal state, set on EventDone
	Degenerate bool  // seeding stopped early, set on EventSeeded
}

// Observer receives progress events.
type Observer func(Event)

// Config controls a clustering run. K and MaxIterations are required.
type Config struct {
	// K is the number of centers to seed (1 <= K <= len(samples)).
	K int

	// MaxIterations caps the number of assign/update rounds.
	MaxIterations int

	// Seed fixes the random source for reproducible results. When nil the
	// source is seeded from the current time.
	Seed *uint64

	// Observer, if set, is called with progress events.
	Observer Observer
}

// Result is the outcome of Cluster.
type Result struct {
	// Centers holds between 1 and K colors, ordered by cluster index.
	Centers []Color

	// Iterations is the number of assign/update rounds performed.
	Iterations int

	// State is Converged or IterationLimitReached.
	State State

	// Degenerate is set when seeding found fewer than K distinct positions
	// and clustering continued with the smaller set.
	Degenerate bool
}

// Cluster seeds k centers from samples with k-means++ and refines them until
// they stop moving or cfg.MaxIterations rounds have run.
//
// Each round assigns every sample to its nearest center (first center wins a
// tie), then replaces each center with the rounded mean of its members.
// Clusters left empty are dropped, so the returned set can be smaller than K.
//
// Errors wrap ErrEmptySampleSet, ErrInvalidK or ErrInvalidMaxIterations.
// Degenerate seeding is not an error: it is reported through
// Result.Degenerate.
func Cluster(samples []Color, cfg Config) (*Result, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySampleSet
	}
	if cfg.K < 1 || cfg.K > len(samples) {
		return nil, fmt.Errorf("k=%d with %d samples: %w", cfg.K, len(samples), ErrInvalidK)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("max iterations %d: %w", cfg.MaxIterations, ErrInvalidMaxIterations)
	}

	rng := newRand(cfg.Seed)
	notify := cfg.Observer
	if notify == nil {
		notify = func(Event) {}
	}

	result := &Result{State: Running}

	centers, err := SeedCenters(rng, samples, cfg.K)
	if err != nil {
		if !errors.Is(err, ErrDegenerateWeights) {
			return nil, err
		}
		result.Degenerate = true
	}
	notify(Event{Kind: EventSeeded, Centers: len(centers), Degenerate: result.Degenerate})

	for result.State == Running {
		clusters := assign(samples, centers)
		next := update(clusters)
		result.Iterations++

		notify(Event{
			Kind:      EventIteration,
			Iteration: result.Iterations,
			Centers:   len(next),
			Dropped:   len(centers) - len(next),
		})

		switch {
		case equalCenters(centers, next):
			result.State = Converged
		case result.Iterations >= cfg.MaxIterations:
			result.State = IterationLimitReached
		}
		centers = next
	}

	result.Centers = centers
	notify(Event{Kind: EventDone, Iteration: result.Iterations, Centers: len(centers), State: result.State})
	return result, nil
}

// assign builds the cluster partition: clusters[i] holds, in sample order,
// every sample whose nearest center is centers[i].
func assign(samples, centers []Color) [][]Color {
	clusters := make([][]Color, len(centers))
	for _, s := range samples {
		idx := Classify(centers, s)
		clusters[idx] = append(clusters[idx], s)
	}
	return clusters
}

// update returns the rounded mean of every non-empty cluster, in cluster
// order. Empty clusters contribute no center.
func update(clusters [][]Color) []Color {
	centers := make([]Color, 0, len(clusters))
	for _, members := range clusters {
		if len(members) == 0 {
			continue
		}
		var sum Color
		for _, m := range members {
			sum = sum.Add(m)
		}
		centers = append(centers, sum.Div(len(members)))
	}
	return centers
}

func equalCenters(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func newRand(seed *uint64) *rand.Rand {
	s := uint64(time.Now().UnixNano())
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
