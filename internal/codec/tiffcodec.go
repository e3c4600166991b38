package codec

import (
	"bytes"
	"fmt"

	"github.com/mdouchement/tiff"
)

type TIFFCompression int

const (
	TIFFNone         TIFFCompression = tiff.Uncompressed
	TIFFAdobeDeflate TIFFCompression = tiff.DeflateZ
	TIFFLZW          TIFFCompression = tiff.LZW
)

// ReencodeTIFF decodes then re-saves a TIFF with the requested compression
// scheme, used to produce the adobe_deflate and lzw candidates of spec.md
// §4.6.8. Both candidates are raced against each other by the optimizer.
func ReencodeTIFF(data []byte, compression TIFFCompression) ([]byte, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tiff decode: %w", err)
	}
	var buf bytes.Buffer
	opts := &tiff.Options{Compression: int(compression), Predictor: compression == TIFFAdobeDeflate}
	if err := tiff.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("tiff encode: %w", err)
	}
	return buf.Bytes(), nil
}

// TIFFCompressionOf inspects the compression tag of a TIFF's first IFD,
// used by the header analyzer.
func TIFFCompressionOf(data []byte) (TIFFCompression, error) {
	c, err := tiff.DecodeCompression(bytes.NewReader(data))
	if err != nil {
		return TIFFNone, fmt.Errorf("tiff compression tag: %w", err)
	}
	return TIFFCompression(c), nil
}
