// Package processor implements the single-image transform pipeline:
// validate, decode and resize, composite the watermark, encode, describe.
package processor

import (
	"context"
	"fmt"

	"image-stamper/internal/domain"
	"image-stamper/internal/usecase/processor/operations"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// Pipeline holds no per-invocation state; one instance is safe for
// concurrent use across a whole batch.
type Pipeline struct {
	stamper  *operations.Stamper
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewPipeline(logger *zlog.Zerolog) *Pipeline {
	return &Pipeline{
		stamper:  operations.NewStamper(),
		validate: validator.New(),
		logger:   logger,
	}
}

func NewPipelineWithFont(logger *zlog.Zerolog, ttf []byte) (*Pipeline, error) {
	stamper, err := operations.NewStamperWithFont(ttf)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		stamper:  stamper,
		validate: validator.New(),
		logger:   logger,
	}, nil
}

func (p *Pipeline) Process(ctx context.Context, src domain.SourceImage, wm domain.WatermarkConfig, rz domain.ResizeConfig) (*domain.ProcessedImage, error) {
	// Configs are checked before decoding so a broken config fails fast
	// instead of wasting decode work.
	if err := p.validate.Struct(wm); err != nil {
		return nil, fmt.Errorf("%w: watermark: %v", domain.ErrInvalidConfig, err)
	}
	if err := p.validate.Struct(rz); err != nil {
		return nil, fmt.Errorf("%w: resize: %v", domain.ErrInvalidConfig, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, geom, err := operations.DecodeResize(src.Data, rz.MaxWidth)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", src.Name, err)
	}

	if err := p.stamper.Apply(base, geom, wm); err != nil {
		return nil, fmt.Errorf("%q: %w", src.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := operations.Encode(base, rz.Format, rz.Quality)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", src.Name, err)
	}

	w, h := geom.Round()
	result := &domain.ProcessedImage{
		ID:           uuid.NewString(),
		OriginalName: src.Name,
		Data:         data,
		Format:       rz.Format,
		Width:        w,
		Height:       h,
		SizeBytes:    len(data),
	}

	if p.logger != nil {
		p.logger.Debug().
			Str("image", src.Name).
			Int("width", w).
			Int("height", h).
			Int("size_bytes", result.SizeBytes).
			Str("format", string(rz.Format)).
			Msg("Image processed")
	}

	return result, nil
}
