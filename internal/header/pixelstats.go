package header

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// flatPixelThreshold is the L1 color distance below which an adjacent pixel
// pair counts as "flat" (spec.md GLOSSARY).
const flatPixelThreshold = 24

// flatPixelRatio computes the fraction of adjacent horizontal/vertical pixel
// pairs whose L1 distance is below flatPixelThreshold.
func flatPixelRatio(img image.Image) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 && h < 2 {
		return 0
	}
	var flat, total int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r0, g0, bl0 := rgb8(img, x, y)
			if x+1 < b.Max.X {
				r1, g1, bl1 := rgb8(img, x+1, y)
				if l1Dist(r0, g0, bl0, r1, g1, bl1) < flatPixelThreshold {
					flat++
				}
				total++
			}
			if y+1 < b.Max.Y {
				r1, g1, bl1 := rgb8(img, x, y+1)
				if l1Dist(r0, g0, bl0, r1, g1, bl1) < flatPixelThreshold {
					flat++
				}
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(flat) / float64(total)
}

// uniqueColorRatio computes |unique RGB triples| / pixel count.
func uniqueColorRatio(img image.Image) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	seen := make(map[uint32]struct{}, n)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(img, x, y)
			key := uint32(r)<<16 | uint32(g)<<8 | uint32(bl)
			seen[key] = struct{}{}
		}
	}
	return float64(len(seen)) / float64(n)
}

func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func l1Dist(r0, g0, b0, r1, g1, b1 uint8) int {
	return absInt(int(r0)-int(r1)) + absInt(int(g0)-int(g1)) + absInt(int(b0)-int(b1))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
