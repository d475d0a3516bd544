package domain

import "image/color"

type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
	PositionCenter      Position = "center"
	PositionTiled       Position = "tiled"
)

const (
	DefaultWatermarkText    = "© image-stamper"
	DefaultWatermarkOpacity = 0.5
	DefaultFontSize         = 32.0
	DefaultPadding          = 30.0
	DefaultMaxWidth         = 1920
	DefaultQuality          = 0.85
	DefaultTilingGap        = 50.0
)

// WatermarkConfig is constructed once by the caller and stays immutable
// for the whole pipeline invocation.
type WatermarkConfig struct {
	Text             string
	FontSizeBase     float64     `validate:"gt=0"`
	Color            color.NRGBA
	Opacity          float64     `validate:"gte=0,lte=1"`
	Contrast         float64     `validate:"gte=-100,lte=100"`
	Position         Position    `validate:"oneof=top-left top-right bottom-left bottom-right center tiled"`
	Padding          float64     `validate:"gte=0"`
	RotationDegrees  float64
	TilingGapPercent float64     `validate:"gte=0"`
}

type ResizeConfig struct {
	MaxWidth int     `validate:"gt=0"`
	Quality  float64 `validate:"gte=0,lte=1"`
	Format   Format  `validate:"oneof=jpeg png webp"`
}
