package operations

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"image-stamper/internal/domain"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Geometry carries the float output dimensions. Rounding happens once at
// result assembly, so placement math never accumulates rounding error.
type Geometry struct {
	Width  float64
	Height float64
	Scaled bool
}

func (g Geometry) Round() (int, int) {
	return int(math.Round(g.Width)), int(math.Round(g.Height))
}

// FitWidth clamps the width to maxWidth and derives the height from the
// exact source ratio. Images already narrower keep their resolution.
func FitWidth(origW, origH, maxWidth int) Geometry {
	if origW <= maxWidth {
		return Geometry{Width: float64(origW), Height: float64(origH)}
	}
	w := float64(maxWidth)
	return Geometry{
		Width:  w,
		Height: float64(origH) * (w / float64(origW)),
		Scaled: true,
	}
}

// DecodeResize decodes raw bytes and draws them into a fresh surface at
// the target geometry. The source is never upscaled and never mutated.
func DecodeResize(data []byte, maxWidth int) (*image.NRGBA, Geometry, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Geometry{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	bounds := img.Bounds()
	geom := FitWidth(bounds.Dx(), bounds.Dy(), maxWidth)

	w, h := geom.Round()
	if w < 1 || h < 1 {
		return nil, Geometry{}, fmt.Errorf("%w: degenerate %dx%d surface", domain.ErrSurface, w, h)
	}

	if !geom.Scaled {
		return imaging.Clone(img), geom, nil
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), geom, nil
}
