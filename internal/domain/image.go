package domain

import (
	"encoding/base64"
	"strings"
)

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

func (f Format) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatWebP:
		return ".webp"
	default:
		return ".jpg"
	}
}

// SourceImage is one raw input: undecoded bytes plus the identifier they
// arrived under.
type SourceImage struct {
	Name string
	Data []byte
}

// ProcessedImage is the immutable outcome of one pipeline invocation.
type ProcessedImage struct {
	ID           string
	OriginalName string
	Data         []byte
	Format       Format
	Width        int
	Height       int
	SizeBytes    int
}

func (p *ProcessedImage) DataURI() string {
	return "data:" + p.Format.MimeType() + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// SizeFromDataURI estimates the binary payload size of a data URI. The
// scheme/mime prefix is stripped before applying the base64 3/4 ratio,
// otherwise the estimate overstates the size.
func SizeFromDataURI(uri string) int {
	payload := uri
	if i := strings.IndexByte(uri, ','); i >= 0 {
		payload = uri[i+1:]
	}
	return len(payload) * 3 / 4
}
