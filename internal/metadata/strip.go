// Package metadata removes embedded metadata ahead of optimization: PNG/APNG
// chunks through go-png-meta-web-strip, JPEG EXIF reduced to the orientation
// tag, and TIFF tags beyond the baseline set. Other formats pass through.
package metadata

import (
	"bytes"
	"fmt"

	webstrip "github.com/ideamans/go-png-meta-web-strip"
	"github.com/hackclub/imgopt/internal/imgformat"
)

// Strip removes non-rendering metadata from data, dispatching on format.
// WebP, GIF, BMP, SVG, SVGZ, AVIF, HEIC and JXL are returned unchanged.
func Strip(data []byte, format imgformat.Format) ([]byte, error) {
	switch format {
	case imgformat.PNG, imgformat.APNG:
		return stripPNG(data)
	case imgformat.JPEG:
		return stripJPEG(data)
	case imgformat.TIFF:
		return stripTIFF(data)
	case imgformat.WEBP, imgformat.GIF, imgformat.BMP, imgformat.SVG, imgformat.SVGZ,
		imgformat.AVIF, imgformat.HEIC, imgformat.JXL:
		return data, nil
	default:
		return nil, fmt.Errorf("metadata: unhandled format %q", format)
	}
}

func stripPNG(data []byte) ([]byte, error) {
	out, err := webstrip.Strip(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("metadata: png strip: %w", err)
	}
	return out, nil
}
