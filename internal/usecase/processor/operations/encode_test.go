package operations

import (
	"bytes"
	"image"
	"testing"

	"image-stamper/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	src := baseSurface(120, 80)

	tests := []struct {
		name    string
		format  domain.Format
		quality float64
	}{
		{name: "jpeg", format: domain.FormatJPEG, quality: 0.85},
		{name: "jpeg min quality", format: domain.FormatJPEG, quality: 0},
		{name: "png", format: domain.FormatPNG, quality: 0.5},
		{name: "webp", format: domain.FormatWebP, quality: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(src, tt.format, tt.quality)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, _, err := image.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, 120, decoded.Bounds().Dx())
			require.Equal(t, 80, decoded.Bounds().Dy())
		})
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := Encode(baseSurface(10, 10), domain.Format("bmp"), 0.5)
	require.ErrorIs(t, err, domain.ErrEncode)
}

func TestJPEGQualityMapping(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 0, want: 1},
		{in: 0.85, want: 85},
		{in: 1, want: 100},
		{in: 1.5, want: 100},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, jpegQuality(tt.in))
	}
}
