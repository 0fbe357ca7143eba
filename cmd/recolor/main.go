package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ironsheep/image-recolor/internal/imaging"
	"github.com/ironsheep/image-recolor/internal/logging"
	"github.com/ironsheep/image-recolor/internal/recolor"
	"github.com/ironsheep/image-recolor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `recolor - reduce an image to a k-color palette

Usage:
  recolor [options] <input> <output>   Quantize input and write output (.png, .jpg, .bmp)
  recolor serve                        Run the MCP server over stdin/stdout
  recolor --version                    Print version information

Options:
`

const envHelp = `
Environment variables:
  RECOLOR_K, RECOLOR_MAX_ITERATIONS, RECOLOR_STRIDE, RECOLOR_SEED
                             Defaults for the matching options
  RECOLOR_LOG_LEVEL=debug    Log level (debug, info, warn, error)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, logging.FromEnv()))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "recolor %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "serve":
			logger.Info("starting MCP server", "version", Version, "commit", GitCommit)
			if err := server.New(logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("server error", "err", err)
				return 1
			}
			return 0
		}
	}

	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "recolor: %v\n", err)
		return 2
	}

	if err := quantize(ctx, cfg, stdout, logger); err != nil {
		logger.Error("recolor failed", "input", cfg.input, "err", err)
		return 1
	}
	return 0
}

type config struct {
	opts    recolor.Options
	quality int
	json    bool
	input   string
	output  string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	defaults := recolor.DefaultOptions()
	cfg := &config{}

	fs := flag.NewFlagSet("recolor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
		fmt.Fprint(stderr, envHelp)
	}

	k, err := envInt("RECOLOR_K", defaults.K)
	if err != nil {
		return nil, err
	}
	maxIter, err := envInt("RECOLOR_MAX_ITERATIONS", defaults.MaxIterations)
	if err != nil {
		return nil, err
	}
	stride, err := envInt("RECOLOR_STRIDE", defaults.Stride)
	if err != nil {
		return nil, err
	}
	var seed seedValue
	if v, ok := os.LookupEnv("RECOLOR_SEED"); ok {
		if err := seed.Set(v); err != nil {
			return nil, fmt.Errorf("RECOLOR_SEED: %w", err)
		}
	}

	fs.IntVar(&cfg.opts.K, "k", k, "number of palette colors")
	fs.IntVar(&cfg.opts.MaxIterations, "iterations", maxIter, "maximum clustering iterations")
	fs.IntVar(&cfg.opts.Stride, "stride", stride, "sample every Nth pixel along each axis")
	fs.Var(&seed, "seed", "random seed for reproducible palettes (default: time based)")
	fs.IntVar(&cfg.quality, "quality", 95, "JPEG output quality (1-100)")
	fs.BoolVar(&cfg.json, "json", false, "print the palette as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected <input> and <output>, got %d arguments", fs.NArg())
	}

	cfg.opts.Seed = seed.value
	cfg.input, cfg.output = fs.Arg(0), fs.Arg(1)
	if err := cfg.opts.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func quantize(ctx context.Context, cfg *config, stdout io.Writer, logger *slog.Logger) error {
	img, err := imaging.NewImageCache().Load(cfg.input)
	if err != nil {
		return err
	}

	res, err := recolor.Run(ctx, img, cfg.opts, logger)
	if err != nil {
		return err
	}

	if err := imaging.Save(cfg.output, res.Image, cfg.quality); err != nil {
		return err
	}
	logger.Info("wrote image", "path", cfg.output, "colors", len(res.Centers))

	if cfg.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Palette)
	}

	imaging.SortByPercentage(res.Entries)
	for _, e := range res.Entries {
		fmt.Fprintf(stdout, "%s  rgb(%3d,%3d,%3d)  %6.2f%%\n", e.Hex, e.RGB.R, e.RGB.G, e.RGB.B, e.Percentage)
	}
	return nil
}

// seedValue is a flag.Value for an optional uint64 seed.
type seedValue struct {
	value *uint64
}

func (s *seedValue) String() string {
	if s == nil || s.value == nil {
		return ""
	}
	return strconv.FormatUint(*s.value, 10)
}

func (s *seedValue) Set(v string) error {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid seed %q", v)
	}
	s.value = &n
	return nil
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", name, v)
	}
	return n, nil
}
