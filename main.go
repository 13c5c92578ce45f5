package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rmitchellscott/inkwash/internal/batch"
	"github.com/rmitchellscott/inkwash/internal/config"
	"github.com/rmitchellscott/inkwash/internal/dither"
	"github.com/rmitchellscott/inkwash/internal/imageprocessing"
	"github.com/rmitchellscott/inkwash/internal/logging"
	"github.com/rmitchellscott/inkwash/internal/preset"
	"github.com/rmitchellscott/inkwash/internal/version"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.String())
		os.Exit(0)
	}

	var (
		mode       = flag.String("mode", config.DefaultMode(), "dither mode: "+strings.Join(dither.ModeNames(), ", "))
		levels     = flag.Int("levels", config.DefaultLevels(), "number of output palette levels (>= 2)")
		seed       = flag.Uint64("seed", 0, "seed for the random dither mode")
		serpentine = flag.Bool("serpentine", false, "alternate scan direction per row for diffusion modes")
		width      = flag.Int("width", 0, "resize to this width before dithering (requires -height)")
		height     = flag.Int("height", 0, "resize to this height before dithering (requires -width)")
		fit        = flag.String("fit", "contain", "resize fit: contain, cover, stretch")
		color      = flag.Bool("color", false, "dither RGB channels independently instead of converting to grayscale")
		presetPath = flag.String("preset", "", "path to a YAML preset file")
		profile    = flag.String("profile", "", "profile name inside the preset file")
		batchDir   = flag.String("batch", "", "dither every image in this directory")
		outDir     = flag.String("out", "", "output directory for batch mode (default: alongside inputs)")
		workers    = flag.Int("workers", config.DefaultWorkers(), "concurrent workers in batch mode")
	)
	flag.Parse()

	opts, err := buildOptions(flagValues{
		mode:       *mode,
		levels:     *levels,
		seed:       *seed,
		serpentine: *serpentine,
		width:      *width,
		height:     *height,
		fit:        *fit,
		color:      *color,
		presetPath: *presetPath,
		profile:    *profile,
	})
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Invalid configuration", "error", err)
		os.Exit(1)
	}

	if *batchDir != "" {
		if err := runBatch(*batchDir, *outDir, *workers, opts); err != nil {
			logging.ErrorWithComponent(logging.ComponentBatch, "Batch run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] input [output]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)
	output := flag.Arg(1)
	if output == "" {
		output = filepath.Join(filepath.Dir(input), batch.DeriveOutputName(filepath.Base(input)))
	}

	if err := runSingle(input, output, opts); err != nil {
		logging.ErrorWithComponent(logging.ComponentPipeline, "Dithering failed", "error", err)
		os.Exit(1)
	}
}

type flagValues struct {
	mode       string
	levels     int
	seed       uint64
	serpentine bool
	width      int
	height     int
	fit        string
	color      bool
	presetPath string
	profile    string
}

// buildOptions turns flags, or a preset profile when one is named, into
// pipeline options. Mode and level validation happens here so a bad run is
// rejected before any file is touched.
func buildOptions(fv flagValues) (imageprocessing.Options, error) {
	if fv.presetPath != "" {
		f, err := preset.Load(fv.presetPath)
		if err != nil {
			return imageprocessing.Options{}, err
		}
		if fv.profile == "" {
			return imageprocessing.Options{}, fmt.Errorf("-preset requires -profile")
		}
		p, err := f.Profile(fv.profile)
		if err != nil {
			return imageprocessing.Options{}, err
		}
		return p.Options()
	}

	parsed, err := dither.ParseMode(fv.mode)
	if err != nil {
		return imageprocessing.Options{}, err
	}
	if fv.levels < 2 {
		return imageprocessing.Options{}, fmt.Errorf("%w: level count %d, need at least 2", dither.ErrInvalidParameter, fv.levels)
	}
	if (fv.width > 0) != (fv.height > 0) {
		return imageprocessing.Options{}, fmt.Errorf("-width and -height must be set together")
	}

	opts := imageprocessing.Options{
		Width:      fv.width,
		Height:     fv.height,
		Grayscale:  !fv.color,
		Mode:       parsed,
		Levels:     fv.levels,
		Seed:       fv.seed,
		Serpentine: fv.serpentine,
	}
	switch fv.fit {
	case "contain":
		opts.Fit = imageprocessing.FitContain
	case "cover":
		opts.Fit = imageprocessing.FitCover
	case "stretch":
		opts.Fit = imageprocessing.FitStretch
	default:
		return imageprocessing.Options{}, fmt.Errorf("unknown fit mode %q", fv.fit)
	}
	return opts, nil
}

func runSingle(input, output string, opts imageprocessing.Options) error {
	img, format, err := imageprocessing.DecodeFile(input)
	if err != nil {
		return err
	}
	logging.InfoWithComponent(logging.ComponentDecode, "Decoded image",
		"input", input, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	out, err := imageprocessing.Process(img, opts)
	if err != nil {
		return err
	}
	if err := imageprocessing.EncodeFile(output, out, opts.Levels); err != nil {
		return err
	}

	logging.InfoWithComponent(logging.ComponentEncode, "Wrote dithered image",
		"output", output, "mode", opts.Mode.String(), "levels", opts.Levels)
	return nil
}

func runBatch(inputDir, outputDir string, workers int, opts imageprocessing.Options) error {
	if outputDir == "" {
		outputDir = inputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs, err := batch.CollectJobs(inputDir, outputDir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		logging.WarnWithComponent(logging.ComponentBatch, "No images found", "dir", inputDir)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.InfoWithComponent(logging.ComponentBatch, "Starting batch run",
		"jobs", len(jobs), "workers", workers, "mode", opts.Mode.String())

	runner := &batch.Runner{Workers: workers, Options: opts}
	return runner.Run(ctx, jobs)
}
