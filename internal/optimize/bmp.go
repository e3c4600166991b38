package optimize

import (
	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeBMP converts a fully-opaque 32-bit BMP down to 24-bit, the only
// size reduction available for an uncompressed format, per spec.md §4.6.9.
func optimizeBMP(data []byte) ([]candidate, error) {
	img, err := codec.DecodeBMP(data)
	if err != nil {
		return nil, nil
	}
	if !codec.Is32BitFullyOpaque(img) {
		return nil, nil
	}
	out, err := codec.EncodeBMP(codec.To24Bit(img))
	if err != nil {
		return nil, nil
	}
	return []candidate{{data: out, tag: method.BmpPillow}}, nil
}
