// Package bundle archives batch results into a single downloadable zip.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"image-stamper/internal/domain"
)

const DefaultPrefix = "watermarked"

// EntryName builds the per-image archive entry: <prefix>_<seq>_<name>,
// with the extension normalized to the encoded format.
func EntryName(prefix string, seq int, result *domain.ProcessedImage) string {
	name := result.OriginalName
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return fmt.Sprintf("%s_%d_%s%s", prefix, seq, name, result.Format.Ext())
}

// ArchiveName names the whole-batch bundle: <prefix>_BUNDLE_<timestamp>.zip.
func ArchiveName(prefix string, ts time.Time) string {
	return fmt.Sprintf("%s_BUNDLE_%s.zip", prefix, ts.Format("20060102-150405"))
}

// Write zips the results in input order. Sequence numbers are 1-based.
func Write(w io.Writer, prefix string, results []*domain.ProcessedImage) error {
	zw := zip.NewWriter(w)
	for i, res := range results {
		f, err := zw.Create(EntryName(prefix, i+1, res))
		if err != nil {
			return fmt.Errorf("create archive entry: %w", err)
		}
		if _, err := f.Write(res.Data); err != nil {
			return fmt.Errorf("write archive entry: %w", err)
		}
	}
	return zw.Close()
}
