package operations

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"image-stamper/internal/domain"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

// Encode serializes the composited surface. Quality is the 0..1 encoder
// hint; lossless formats ignore it.
func Encode(img image.Image, format domain.Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case domain.FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality(quality)))
	case domain.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case domain.FormatWebP:
		err = nativewebp.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrEncode, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrEncode, format, err)
	}

	return buf.Bytes(), nil
}

func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		n = 1
	}
	if n > 100 {
		n = 100
	}
	return n
}
