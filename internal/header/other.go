package header

import (
	"bytes"
	"context"
	"image/gif"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/imgformat"
)

// analyzeVipsBacked covers WebP and (non-animated) GIF dimensions through
// libvips. AVIF/HEIC/JXL, TIFF and BMP get their own functions below.
func analyzeVipsBacked(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		FrameCount: 1,
		RawData:    data,
	}

	meta, err := codec.Metadata(data)
	if err == nil {
		info.Dimensions = Dimensions{W: meta.Width, H: meta.Height}
		info.HasICCProfile = meta.HasICCProfile
		if meta.HasAlpha {
			info.ColorType = ColorRGBA
		} else {
			info.ColorType = ColorRGB
		}
	} else {
		info.ColorType = ColorRGB
	}

	if format == imgformat.GIF {
		if g, gifErr := gif.DecodeAll(bytes.NewReader(data)); gifErr == nil {
			info.FrameCount = len(g.Image)
			info.IsPaletteMode = true
			info.ColorCount = len(g.Image[0].Palette)
		}
	}

	cropped, cropErr := codec.CropCentral(data, 64, 64)
	if cropErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	sample, decodeErr := decodeImage(cropped)
	if decodeErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))
	return info, nil
}

func analyzeTIFF(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		FrameCount: 1,
		ColorType:  ColorRGB,
		RawData:    data,
	}

	meta, err := codec.Metadata(data)
	if err == nil {
		info.Dimensions = Dimensions{W: meta.Width, H: meta.Height}
		info.HasICCProfile = meta.HasICCProfile
		if meta.HasAlpha {
			info.ColorType = ColorRGBA
		}
	}

	cropped, cropErr := codec.CropCentral(data, 64, 64)
	if cropErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	sample, decodeErr := decodeImage(cropped)
	if decodeErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))
	return info, nil
}

func analyzeBMP(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		FrameCount: 1,
		ColorType:  ColorRGB,
		RawData:    data,
	}

	img, err := codec.DecodeBMP(data)
	if err != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	b := img.Bounds()
	info.Dimensions = Dimensions{W: b.Dx(), H: b.Dy()}
	if codec.Is32BitFullyOpaque(img) {
		info.ColorType = ColorRGB
	} else {
		info.ColorType = ColorRGBA
	}

	sample := cropCentral(img, 64, 64)
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))
	return info, nil
}

// analyzeNextGen covers AVIF/HEIC/JXL: next-gen containers that libvips may
// or may not have been built with support for. Metadata is best-effort —
// failure degrades to zero-value dimensions rather than an error, since the
// optimizer can still operate on the original bytes via the metadata-strip
// and lossy-reencode candidates without header-derived dimensions.
func analyzeNextGen(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		FrameCount: 1,
		ColorType:  ColorRGBA,
		RawData:    data,
	}

	meta, err := codec.Metadata(data)
	if err != nil {
		info.FlatPixelRatio = Unmeasured
		info.UniqueColorRatio = Unmeasured
		return info, nil
	}
	info.Dimensions = Dimensions{W: meta.Width, H: meta.Height}
	info.HasICCProfile = meta.HasICCProfile
	if !meta.HasAlpha {
		info.ColorType = ColorRGB
	}

	cropped, cropErr := codec.CropCentral(data, 64, 64)
	if cropErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	sample, decodeErr := decodeImage(cropped)
	if decodeErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))
	return info, nil
}
