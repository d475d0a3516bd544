// Package app wires the batch tool together: source loading, the worker
// pool, bundling and the output sink.
package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"image-stamper/internal/bundle"
	"image-stamper/internal/config"
	"image-stamper/internal/domain"
	"image-stamper/internal/repository/sink"
	local_sink "image-stamper/internal/repository/sink/local"
	minio_sink "image-stamper/internal/repository/sink/minio"
	"image-stamper/internal/usecase/batch"
	"image-stamper/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg    *config.Config
	logger *zlog.Zerolog
	runner *batch.Runner
	sink   sink.Sink
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	var pipe *processor.Pipeline
	if cfg.App.FontPath != "" {
		ttf, err := os.ReadFile(cfg.App.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", cfg.App.FontPath, err)
		}
		pipe, err = processor.NewPipelineWithFont(logger, ttf)
		if err != nil {
			return nil, err
		}
	} else {
		pipe = processor.NewPipeline(logger)
	}

	runner := batch.NewRunner(pipe, cfg.App.Concurrency, cfg.App.PerImageTimeout, logger)

	var out sink.Sink
	var err error
	if cfg.Minio.Enabled {
		out, err = minio_sink.NewStorage(ctx, minio_sink.Config{
			Endpoint: cfg.Minio.Endpoint,
			User:     cfg.Minio.User,
			Password: cfg.Minio.Password,
			Bucket:   cfg.Minio.Bucket,
			UseSSL:   cfg.Minio.UseSSL,
		}, cfg.DefaultRetryStrategy())
		if err != nil {
			return nil, fmt.Errorf("failed to create minio sink: %w", err)
		}
	} else {
		out, err = local_sink.NewStorage(cfg.Output.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local sink: %w", err)
		}
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		runner: runner,
		sink:   out,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	sources, err := loadSources(a.cfg.App.InputDir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no images found in %s", a.cfg.App.InputDir)
	}

	a.logger.Info().
		Int("images", len(sources)).
		Int("concurrency", a.cfg.App.Concurrency).
		Str("format", a.cfg.Resize.Format).
		Msg("Starting batch")

	outcomes := a.runner.Run(ctx, sources, a.cfg.WatermarkConfig(), a.cfg.ResizeConfig())

	results := make([]*domain.ProcessedImage, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		results = append(results, o.Result)
	}

	a.logger.Info().
		Int("succeeded", len(results)).
		Int("failed", failed).
		Msg("Batch finished")

	if len(results) == 0 {
		return fmt.Errorf("all %d images failed", len(sources))
	}

	prefix := a.cfg.App.BundlePrefix
	if prefix == "" {
		prefix = bundle.DefaultPrefix
	}

	if a.cfg.App.StoreImages {
		for i, res := range results {
			name := bundle.EntryName(prefix, i+1, res)
			if err := a.sink.Store(ctx, name, res.Data, res.Format.MimeType()); err != nil {
				return fmt.Errorf("store %s: %w", name, err)
			}
		}
	}

	if a.cfg.App.StoreBundle {
		var buf bytes.Buffer
		if err := bundle.Write(&buf, prefix, results); err != nil {
			return fmt.Errorf("build bundle: %w", err)
		}

		name := bundle.ArchiveName(prefix, time.Now())
		if err := a.sink.Store(ctx, name, buf.Bytes(), "application/zip"); err != nil {
			return fmt.Errorf("store bundle: %w", err)
		}
		a.logger.Info().Str("bundle", name).Int("size_bytes", buf.Len()).Msg("Bundle stored")
	}

	return nil
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func loadSources(dir string) ([]domain.SourceImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}

	var sources []domain.SourceImage
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		sources = append(sources, domain.SourceImage{Name: e.Name(), Data: data})
	}
	return sources, nil
}
