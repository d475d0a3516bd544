package operations

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"image-stamper/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func testImageBytes(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 40, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, format)
	require.NoError(t, err)

	return buf.Bytes()
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name       string
		origW      int
		origH      int
		maxWidth   int
		wantW      float64
		wantH      float64
		wantScaled bool
	}{
		{
			name:     "narrower image keeps resolution",
			origW:    800,
			origH:    600,
			maxWidth: 1920,
			wantW:    800,
			wantH:    600,
		},
		{
			name:     "exact width keeps resolution",
			origW:    1920,
			origH:    1080,
			maxWidth: 1920,
			wantW:    1920,
			wantH:    1080,
		},
		{
			name:       "wider image clamps to max width",
			origW:      2000,
			origH:      1000,
			maxWidth:   1000,
			wantW:      1000,
			wantH:      500,
			wantScaled: true,
		},
		{
			name:       "fractional height survives as float",
			origW:      3000,
			origH:      1000,
			maxWidth:   1000,
			wantW:      1000,
			wantH:      1000.0 / 3.0,
			wantScaled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom := FitWidth(tt.origW, tt.origH, tt.maxWidth)
			require.Equal(t, tt.wantW, geom.Width)
			require.InDelta(t, tt.wantH, geom.Height, 1e-9)
			require.Equal(t, tt.wantScaled, geom.Scaled)
		})
	}
}

func TestDecodeResize(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		maxWidth int
		wantW    int
		wantH    int
		wantErr  error
	}{
		{
			name:     "no-op below max width",
			data:     testImageBytes(t, 200, 100, imaging.PNG),
			maxWidth: 1000,
			wantW:    200,
			wantH:    100,
		},
		{
			name:     "downscale keeps aspect ratio",
			data:     testImageBytes(t, 2000, 1000, imaging.PNG),
			maxWidth: 1000,
			wantW:    1000,
			wantH:    500,
		},
		{
			name:     "jpeg source",
			data:     testImageBytes(t, 640, 480, imaging.JPEG),
			maxWidth: 320,
			wantW:    320,
			wantH:    240,
		},
		{
			name:     "broken bytes",
			data:     []byte("not-an-image"),
			maxWidth: 1000,
			wantErr:  domain.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, geom, err := DecodeResize(tt.data, tt.maxWidth)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, base)

			w, h := geom.Round()
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
			require.Equal(t, tt.wantW, base.Bounds().Dx())
			require.Equal(t, tt.wantH, base.Bounds().Dy())
		})
	}
}

func TestDecodeResizeRatioTolerance(t *testing.T) {
	data := testImageBytes(t, 1333, 777, imaging.PNG)

	base, geom, err := DecodeResize(data, 500)
	require.NoError(t, err)

	w, h := geom.Round()
	require.Equal(t, 500, w)
	require.InDelta(t, 777.0/1333.0, float64(h)/float64(w), 0.01)
	require.Equal(t, w, base.Bounds().Dx())
	require.Equal(t, h, base.Bounds().Dy())
}
