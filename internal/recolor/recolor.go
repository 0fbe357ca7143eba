// Package recolor wires sampling, clustering and remapping into the palette
// reduction pipeline shared by the CLI and the MCP server.
package recolor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/ironsheep/image-recolor/internal/imaging"
	"github.com/ironsheep/image-recolor/internal/kmeans"
	"github.com/ironsheep/image-recolor/internal/logging"
)

// Default values used by the CLI and the MCP tools when a caller leaves a
// setting unspecified. The kmeans engine itself has no defaults.
const (
	DefaultK             = 20
	DefaultMaxIterations = 15
	DefaultStride        = 10
)

// Options configures a pipeline run.
type Options struct {
	// K is the number of palette colors to seed.
	K int `json:"k"`

	// MaxIterations caps the clustering rounds.
	MaxIterations int `json:"max_iterations"`

	// Stride is the sampling step along both axes.
	Stride int `json:"stride"`

	// Seed makes seeding reproducible when set.
	Seed *uint64 `json:"seed,omitempty"`

	// Region restricts sampling to part of the image. Recoloring always
	// covers the full image.
	Region *imaging.Region `json:"region,omitempty"`
}

// DefaultOptions returns Options populated with the package defaults.
func DefaultOptions() Options {
	return Options{K: DefaultK, MaxIterations: DefaultMaxIterations, Stride: DefaultStride}
}

// Validate checks the settings that can be checked without the image.
func (o Options) Validate() error {
	var errs []error
	if o.K < 1 {
		errs = append(errs, fmt.Errorf("k must be at least 1, got %d", o.K))
	}
	if o.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations))
	}
	if o.Stride < 1 {
		errs = append(errs, fmt.Errorf("stride must be at least 1, got %d", o.Stride))
	}
	return errors.Join(errs...)
}

// Palette is the result of sampling and clustering an image.
type Palette struct {
	// Centers are the final cluster colors, in cluster order.
	Centers []kmeans.Color `json:"-"`

	// Entries describe each center. Pixel counts are over the samples.
	Entries []imaging.PaletteEntry `json:"palette"`

	Iterations  int          `json:"iterations"`
	State       kmeans.State `json:"state"`
	Degenerate  bool         `json:"degenerate,omitempty"`
	SampleCount int          `json:"sample_count"`
}

// Result is the outcome of a full recolor run.
type Result struct {
	*Palette

	// Image is the recolored image. Entries in the embedded Palette count
	// full-resolution pixels rather than samples.
	Image *image.NRGBA `json:"-"`
}

// ExtractPalette samples img and clusters the samples.
//
// k larger than the number of samples is an error: lower the stride or k.
func ExtractPalette(ctx context.Context, img image.Image, opts Options, logger *slog.Logger) (*Palette, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	samples, err := imaging.Samples(img, opts.Stride, opts.Region)
	if err != nil {
		return nil, err
	}
	logger.Debug("sampled image", "samples", len(samples), "stride", opts.Stride)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := kmeans.Cluster(samples, kmeans.Config{
		K:             opts.K,
		MaxIterations: opts.MaxIterations,
		Seed:          opts.Seed,
		Observer:      observer(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("clustering %d samples: %w", len(samples), err)
	}
	logger.Info("clustering finished",
		"state", res.State,
		"iterations", res.Iterations,
		"centers", len(res.Centers),
		"elapsed", time.Since(start).Round(time.Millisecond))

	entries, err := imaging.BuildPalette(res.Centers, imaging.CountMembers(samples, res.Centers))
	if err != nil {
		return nil, err
	}

	return &Palette{
		Centers:     res.Centers,
		Entries:     entries,
		Iterations:  res.Iterations,
		State:       res.State,
		Degenerate:  res.Degenerate,
		SampleCount: len(samples),
	}, nil
}

// Run extracts the palette of img and remaps every pixel to it.
func Run(ctx context.Context, img image.Image, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	pal, err := ExtractPalette(ctx, img, opts, logger)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := imaging.Recolor(img, pal.Centers)
	if err != nil {
		return nil, err
	}
	logger.Debug("recolored image",
		"pixels", out.Image.Bounds().Dx()*out.Image.Bounds().Dy(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	entries, err := imaging.BuildPalette(pal.Centers, out.Counts)
	if err != nil {
		return nil, err
	}
	pal.Entries = entries

	return &Result{Palette: pal, Image: out.Image}, nil
}

func observer(logger *slog.Logger) kmeans.Observer {
	return func(e kmeans.Event) {
		switch e.Kind {
		case kmeans.EventSeeded:
			if e.Degenerate {
				logger.Warn("fewer distinct colors than k, continuing with smaller palette", "centers", e.Centers)
				return
			}
			logger.Debug("seeded centers", "centers", e.Centers)
		case kmeans.EventIteration:
			logger.Debug("iteration", "n", e.Iteration, "centers", e.Centers, "dropped", e.Dropped)
		}
	}
}
