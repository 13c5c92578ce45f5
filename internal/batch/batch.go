package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rmitchellscott/inkwash/internal/imageprocessing"
	"github.com/rmitchellscott/inkwash/internal/logging"
)

// Job is one image to dither: an input file and where the result goes.
type Job struct {
	Input  string
	Output string
}

// Runner dithers a set of images concurrently. Each job owns its decoded
// buffers exclusively, so no locking is needed; the only shared state is
// the options struct, which is read-only for the whole run.
type Runner struct {
	Workers int
	Options imageprocessing.Options
}

// Run processes all jobs with up to Workers of them in flight, cancelling
// the remaining work on the first failure. The sequential data dependency
// of error diffusion lives inside a single image; across images there is
// none, so batches parallelize freely.
func (r *Runner) Run(ctx context.Context, jobs []Job) error {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.runOne(job)
		})
	}
	return g.Wait()
}

func (r *Runner) runOne(job Job) error {
	id := uuid.New()
	start := time.Now()

	img, format, err := imageprocessing.DecodeFile(job.Input)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentBatch, "Failed to decode image",
			"job_id", id, "input", job.Input, "error", err)
		return fmt.Errorf("%s: %w", job.Input, err)
	}

	out, err := imageprocessing.Process(img, r.Options)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentBatch, "Failed to dither image",
			"job_id", id, "input", job.Input, "error", err)
		return fmt.Errorf("%s: %w", job.Input, err)
	}

	if err := imageprocessing.EncodeFile(job.Output, out, r.Options.Levels); err != nil {
		logging.ErrorWithComponent(logging.ComponentBatch, "Failed to encode image",
			"job_id", id, "output", job.Output, "error", err)
		return fmt.Errorf("%s: %w", job.Output, err)
	}

	logging.InfoWithComponent(logging.ComponentBatch, "Dithered image",
		"job_id", id, "input", job.Input, "output", job.Output,
		"format", format, "duration", time.Since(start))
	return nil
}

// imageExtensions are the container formats the decoder registers.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// CollectJobs scans a directory (non-recursively) for decodable images and
// pairs each with an output path in outputDir. Results are sorted by input
// path so runs are reproducible.
func CollectJobs(inputDir, outputDir string) ([]Job, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}
		input := filepath.Join(inputDir, entry.Name())
		jobs = append(jobs, Job{
			Input:  input,
			Output: filepath.Join(outputDir, DeriveOutputName(entry.Name())),
		})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Input < jobs[j].Input })
	return jobs, nil
}

// DeriveOutputName maps an input filename to its dithered counterpart:
// the same base name with a "-dithered" suffix and a .png extension, since
// quantized output compresses best as PNG.
func DeriveOutputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-dithered.png"
}
