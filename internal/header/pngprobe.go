package header

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"image/png"

	"github.com/hackclub/imgopt/internal/codec"
)

// smallFileThreshold and probePixelThreshold gate which PNG probes run on
// the whole file versus a cropped sample (spec.md §4.2.1).
const (
	smallFileThreshold = 50 * 1024
	probePixelThreshold = 250_000
	probeSampleDim      = 256
)

// oxipngProbeRatio estimates how much a lossless re-deflate alone would
// shrink the file: recompressed size / sampled size. Runs on the whole file
// under smallFileThreshold, otherwise on a central crop.
func oxipngProbeRatio(data []byte, img image.Image) ProbeValue {
	sample := data
	if len(data) >= smallFileThreshold && img != nil {
		cropped := cropCentral(img, probeSampleDim, probeSampleDim)
		encoded, err := encodePNG(cropped)
		if err != nil {
			return Failed()
		}
		sample = encoded
	}
	recompressed, err := codec.RecompressPNGLossless(sample)
	if err != nil || len(sample) == 0 {
		return Failed()
	}
	return Value(float64(len(recompressed)) / float64(len(sample)))
}

// pngQuantizeRatio approximates pngquant's effect with the fixed 256-color
// stdlib palette image/color/palette.Plan9 plus Floyd-Steinberg dithering:
// paletted-encoded size / truecolor-encoded size of the same thumbnail. Only
// meaningful for non-palette source images.
func pngQuantizeRatio(img image.Image, isPaletteMode bool) ProbeValue {
	if isPaletteMode || img == nil {
		return Unmeasured
	}
	thumb := cropCentral(img, probeSampleDim, probeSampleDim)
	b := thumb.Bounds()

	truecolor, err := encodePNG(thumb)
	if err != nil {
		return Failed()
	}

	paletted := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, b, thumb, image.Point{})
	quantized, err := encodePNG(paletted)
	if err != nil {
		return Failed()
	}
	if len(truecolor) == 0 {
		return Failed()
	}
	return Value(float64(len(quantized)) / float64(len(truecolor)))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cropCentral extracts a w×h window from the center of img, clamped to its
// bounds, used by every PNG content probe (spec.md GLOSSARY: "64x64 central
// crop", generalized to probeSampleDim for the heavier PNG probes).
func cropCentral(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w > b.Dx() {
		w = b.Dx()
	}
	if h > b.Dy() {
		h = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-w)/2
	y0 := b.Min.Y + (b.Dy()-h)/2
	rect := image.Rect(0, 0, w, h)
	dst := image.NewRGBA(rect)
	draw.Draw(dst, rect, img, image.Point{X: x0, Y: y0}, draw.Src)
	return dst
}
