package codec

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg" // decode fallback for generic image.Image sources

	"github.com/gen2brain/jpegli"
)

// EncodeJPEGLossy re-encodes decoded pixels through jpegli, a WASM-hosted
// (wazero) port of Google's jpegli encoder. It targets the same quality/size
// frontier mozjpeg does, which is why the optimizer keeps the "mozjpeg"
// method tag for its output (see SPEC_FULL §4.6.2) even though no cjpeg
// subprocess runs on the primary path.
func EncodeJPEGLossy(img image.Image, quality int, progressive bool) ([]byte, error) {
	var buf bytes.Buffer
	opts := &jpegli.EncodingOptions{
		Quality:            quality,
		ProgressiveLevel:   progressiveLevel(progressive),
		OptimizeCoding:     true,
	}
	if err := jpegli.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("jpegli encode: %w", err)
	}
	return buf.Bytes(), nil
}

func progressiveLevel(progressive bool) int {
	if progressive {
		return 2
	}
	return 0
}

// DecodeJPEG decodes JPEG bytes to an image.Image for the lossy re-encode
// path (spec.md §4.6.2 step 3: "decode to a raw/bitmap representation").
func DecodeJPEG(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg decode: %w", err)
	}
	return img, nil
}
