package metadata

import (
	"fmt"

	"github.com/hackclub/imgopt/internal/codec"
)

// stripTIFF decodes and re-encodes through mdouchement/tiff, which only
// round-trips pixel data and the baseline tags it understands — any ICC
// profile, XMP block, or maker-note tag the source carried is dropped by
// the decode/encode cycle itself.
func stripTIFF(data []byte) ([]byte, error) {
	compression, err := codec.TIFFCompressionOf(data)
	if err != nil {
		compression = codec.TIFFAdobeDeflate
	}
	out, err := codec.ReencodeTIFF(data, compression)
	if err != nil {
		return nil, fmt.Errorf("metadata: tiff strip: %w", err)
	}
	return out, nil
}
