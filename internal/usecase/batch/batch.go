// Package batch runs the transform pipeline over many images with a
// bounded worker pool. Images are independent; one failure never aborts
// the rest of the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"image-stamper/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

type pipeline interface {
	Process(ctx context.Context, src domain.SourceImage, wm domain.WatermarkConfig, rz domain.ResizeConfig) (*domain.ProcessedImage, error)
}

// Outcome is the per-image verdict: either a result or a typed error
// tagged with the source name.
type Outcome struct {
	Name   string
	Result *domain.ProcessedImage
	Err    error
}

type Runner struct {
	pipeline    pipeline
	concurrency int
	timeout     time.Duration
	logger      *zlog.Zerolog
}

func NewRunner(p pipeline, concurrency int, timeout time.Duration, logger *zlog.Zerolog) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		pipeline:    p,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Run processes every source against one configuration snapshot.
// Outcomes are index-aligned with sources regardless of which worker
// finishes first.
func (r *Runner) Run(ctx context.Context, sources []domain.SourceImage, wm domain.WatermarkConfig, rz domain.ResizeConfig) []Outcome {
	outcomes := make([]Outcome, len(sources))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.processOne(ctx, sources[idx], wm, rz)
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (r *Runner) processOne(ctx context.Context, src domain.SourceImage, wm domain.WatermarkConfig, rz domain.ResizeConfig) Outcome {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res, err := r.pipeline.Process(ctx, src, wm, rz)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%q: %w", src.Name, domain.ErrTimeout)
		}
		if r.logger != nil {
			r.logger.Error().Err(err).Str("image", src.Name).Msg("Image failed")
		}
		return Outcome{Name: src.Name, Err: err}
	}

	return Outcome{Name: src.Name, Result: res}
}
