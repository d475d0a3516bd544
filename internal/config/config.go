package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"image-stamper/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	App struct {
		InputDir        string        `yaml:"input_dir" env:"INPUT_DIR" env-default:"./images"`
		Concurrency     int           `yaml:"concurrency" env:"CONCURRENCY" env-default:"4"`
		PerImageTimeout time.Duration `yaml:"per_image_timeout" env:"PER_IMAGE_TIMEOUT" env-default:"0"`
		BundlePrefix    string        `yaml:"bundle_prefix" env:"BUNDLE_PREFIX" env-default:"watermarked"`
		StoreImages     bool          `yaml:"store_images" env:"STORE_IMAGES" env-default:"false"`
		StoreBundle     bool          `yaml:"store_bundle" env:"STORE_BUNDLE" env-default:"true"`
		FontPath        string        `yaml:"font_path" env:"FONT_PATH" env-default:""`
	} `yaml:"app"`

	Watermark struct {
		Text      string  `yaml:"text" env:"WATERMARK_TEXT" env-default:"© image-stamper"`
		FontSize  float64 `yaml:"font_size" env:"WATERMARK_FONT_SIZE" env-default:"32"`
		Color     string  `yaml:"color" env:"WATERMARK_COLOR" env-default:"255,255,255"`
		Opacity   float64 `yaml:"opacity" env:"WATERMARK_OPACITY" env-default:"0.5"`
		Contrast  float64 `yaml:"contrast" env:"WATERMARK_CONTRAST" env-default:"0"`
		Position  string  `yaml:"position" env:"WATERMARK_POSITION" env-default:"bottom-right"`
		Padding   float64 `yaml:"padding" env:"WATERMARK_PADDING" env-default:"30"`
		Rotation  float64 `yaml:"rotation" env:"WATERMARK_ROTATION" env-default:"0"`
		TilingGap float64 `yaml:"tiling_gap" env:"WATERMARK_TILING_GAP" env-default:"50"`
	} `yaml:"watermark"`

	Resize struct {
		MaxWidth int     `yaml:"max_width" env:"RESIZE_MAX_WIDTH" env-default:"1920"`
		Quality  float64 `yaml:"quality" env:"RESIZE_QUALITY" env-default:"0.85"`
		Format   string  `yaml:"format" env:"RESIZE_FORMAT" env-default:"jpeg"`
	} `yaml:"resize"`

	Output struct {
		Dir string `yaml:"dir" env:"OUTPUT_DIR" env-default:"./out"`
	} `yaml:"output"`

	Minio struct {
		Enabled  bool   `yaml:"enabled" env:"MINIO_ENABLED" env-default:"false"`
		Endpoint string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
		User     string `yaml:"user" env:"MINIO_USER" env-default:"minioadmin"`
		Password string `yaml:"password" env:"MINIO_PASSWORD" env-default:"minioadmin"`
		Bucket   string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"stamped"`
		UseSSL   bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
	} `yaml:"minio"`
}

func MustLoad() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return cfg, nil
}

// WatermarkConfig converts the flat settings into the immutable value
// object the pipeline consumes. Partial-update ergonomics stay on this
// side of the boundary.
func (c *Config) WatermarkConfig() domain.WatermarkConfig {
	return domain.WatermarkConfig{
		Text:             c.Watermark.Text,
		FontSizeBase:     c.Watermark.FontSize,
		Color:            ParseColor(c.Watermark.Color),
		Opacity:          c.Watermark.Opacity,
		Contrast:         c.Watermark.Contrast,
		Position:         domain.Position(c.Watermark.Position),
		Padding:          c.Watermark.Padding,
		RotationDegrees:  c.Watermark.Rotation,
		TilingGapPercent: c.Watermark.TilingGap,
	}
}

func (c *Config) ResizeConfig() domain.ResizeConfig {
	return domain.ResizeConfig{
		MaxWidth: c.Resize.MaxWidth,
		Quality:  c.Resize.Quality,
		Format:   domain.Format(strings.ToLower(c.Resize.Format)),
	}
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    2 * time.Second,
		Backoff:  1.5,
	}
}

// ParseColor accepts "r,g,b" or "r,g,b,a" with 0-255 components. Bad
// input falls back to opaque white.
func ParseColor(s string) color.NRGBA {
	fallback := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return fallback
	}

	vals := make([]uint8, 0, 4)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fallback
		}
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		vals = append(vals, uint8(n))
	}

	out := color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
	if len(vals) == 4 {
		out.A = vals[3]
	}
	return out
}
