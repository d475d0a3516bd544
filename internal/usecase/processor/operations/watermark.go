package operations

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"image-stamper/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	// referenceWidth couples watermark size to output resolution: a 32pt
	// watermark looks proportionally similar on a 400px and a 4000px image.
	referenceWidth = 1000.0
	minFontSize    = 12.0
)

type Stamper struct {
	font *truetype.Font
}

func NewStamper() *Stamper {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return &Stamper{}
	}
	return &Stamper{font: f}
}

func NewStamperWithFont(ttf []byte) (*Stamper, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %v", domain.ErrInvalidConfig, err)
	}
	return &Stamper{font: f}, nil
}

type anchor struct {
	x, y float64
}

// Apply paints the watermark onto base in place. Base pixels outside the
// glyph coverage keep their resized values. Empty text and zero opacity
// are accepted no-ops.
func (s *Stamper) Apply(base *image.NRGBA, geom Geometry, cfg domain.WatermarkConfig) error {
	if cfg.Text == "" || cfg.Opacity <= 0 {
		return nil
	}
	if s.font == nil {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return fmt.Errorf("%w: load font: %v", domain.ErrSurface, err)
		}
		s.font = f
	}

	scale := geom.Width / referenceWidth
	fontSize := scaledFontSize(cfg.FontSizeBase, scale)
	padding := cfg.Padding * scale

	face := truetype.NewFace(s.font, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	textW := measureString(face, cfg.Text)
	// Single-line convention: nominal text height equals the font size,
	// not the glyph bounding box.
	textH := fontSize

	points, err := anchors(cfg.Position, geom.Width, geom.Height, textW, textH, padding, cfg.TilingGapPercent)
	if err != nil {
		return err
	}

	stamp := renderStamp(face, cfg, textW)
	if stamp == nil {
		return nil
	}

	sw := stamp.Bounds().Dx()
	sh := stamp.Bounds().Dy()
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(cfg.Opacity * 255))})

	for _, a := range points {
		x := int(math.Round(a.x - float64(sw)/2))
		y := int(math.Round(a.y - float64(sh)/2))
		r := image.Rect(x, y, x+sw, y+sh)
		draw.DrawMask(base, r, stamp, stamp.Bounds().Min, mask, image.Point{}, draw.Over)
	}
	return nil
}

// renderStamp draws one instance of the text on its own transparent
// layer and bakes in the contrast filter and the rotation. The finished
// layer is reused for every anchor, so no paint state can leak between
// instances.
func renderStamp(face font.Face, cfg domain.WatermarkConfig, textW float64) *image.NRGBA {
	w := int(math.Ceil(textW))
	if w < 1 {
		return nil
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	h := ascent + metrics.Descent.Ceil()
	if h < 1 {
		return nil
	}

	layer := image.NewNRGBA(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(cfg.Color),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(cfg.Text)

	stamp := layer
	if cfg.Contrast != 0 {
		stamp = imaging.AdjustContrast(stamp, clampContrast(cfg.Contrast))
	}
	if rot := math.Mod(cfg.RotationDegrees, 360); rot != 0 {
		stamp = imaging.Rotate(stamp, rot, color.NRGBA{})
	}
	return stamp
}

func anchors(pos domain.Position, w, h, textW, textH, pad, gapPct float64) ([]anchor, error) {
	switch pos {
	case domain.PositionTopLeft:
		return []anchor{{pad + textW/2, pad + textH/2}}, nil
	case domain.PositionTopRight:
		return []anchor{{w - pad - textW/2, pad + textH/2}}, nil
	case domain.PositionBottomLeft:
		return []anchor{{pad + textW/2, h - pad - textH/2}}, nil
	case domain.PositionBottomRight:
		return []anchor{{w - pad - textW/2, h - pad - textH/2}}, nil
	case domain.PositionCenter:
		return []anchor{{w / 2, h / 2}}, nil
	case domain.PositionTiled:
		return tiledAnchors(w, h, textW, textH, gapPct)
	default:
		return nil, fmt.Errorf("%w: unknown position %q", domain.ErrInvalidConfig, pos)
	}
}

// tiledAnchors starts one full watermark before the origin and runs one
// past every edge, so rotation never leaves a corner gap. The gap is
// relative to the watermark's own rendered size, keeping its look
// resolution-independent.
func tiledAnchors(w, h, textW, textH, gapPct float64) ([]anchor, error) {
	stepX := textW + textW*(gapPct/100)
	stepY := textH + textH*(gapPct/100)
	if stepX <= 0 || stepY <= 0 {
		return nil, fmt.Errorf("%w: non-positive tiling step %.2fx%.2f", domain.ErrInvalidConfig, stepX, stepY)
	}

	var out []anchor
	for y := -textH; y < h+textH; y += stepY {
		for x := -textW; x < w+textW; x += stepX {
			out = append(out, anchor{x: x, y: y})
		}
	}
	return out, nil
}

func measureString(face font.Face, s string) float64 {
	d := &font.Drawer{Face: face}
	return float64(d.MeasureString(s)) / 64
}

// scaledFontSize keeps the watermark legible on small outputs: the
// floor wins over the scale factor.
func scaledFontSize(base, scale float64) float64 {
	return math.Max(base*scale, minFontSize)
}

func clampContrast(v float64) float64 {
	return math.Max(-100, math.Min(100, v))
}
