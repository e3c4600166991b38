package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// RecompressPNGLossless stands in for oxipng: no Go oxipng binding exists in
// the corpus (see DESIGN.md), so this re-decodes and re-encodes with the
// standard library's PNG encoder at its best-compression and default levels,
// keeping whichever output is smaller. This is the "oxipng" method tag's
// implementation throughout internal/optimize and internal/header.
func RecompressPNGLossless(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png decode: %w", err)
	}
	return encodeSmallestPNG(img)
}

func encodeSmallestPNG(img image.Image) ([]byte, error) {
	var best []byte
	for _, level := range []png.CompressionLevel{png.BestCompression, png.DefaultCompression} {
		enc := &png.Encoder{
			CompressionLevel: level,
		}
		var buf bytes.Buffer
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("png encode: %w", err)
		}
		if best == nil || buf.Len() < len(best) {
			best = buf.Bytes()
		}
	}
	return best, nil
}
