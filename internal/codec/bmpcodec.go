package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/bmp"
)

// DecodeBMP decodes BMP bytes to an image.Image.
func DecodeBMP(data []byte) (image.Image, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("bmp decode: %w", err)
	}
	return img, nil
}

// EncodeBMP re-encodes an image.Image as BMP.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("bmp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Is32BitFullyOpaque reports whether a decoded BMP's NRGBA plane carries an
// alpha channel that is 0xFF everywhere, the condition spec.md §4.6.9 uses
// to decide whether a 32-bit BMP can be safely narrowed to 24-bit RGB.
func Is32BitFullyOpaque(img image.Image) bool {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		return false
	}
	b := nrgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if nrgba.NRGBAAt(x, y).A != 0xFF {
				return false
			}
		}
	}
	return true
}

// To24Bit drops the alpha channel, producing a 24-bit RGB image for BMP
// re-encoding.
func To24Bit(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 0xFF})
		}
	}
	return dst
}
