package header

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/imgformat"
	"github.com/hackclub/imgopt/internal/subprocess"
)

var pngProbeRunner = subprocess.New(5 * time.Second)

func analyzePNG(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:   format,
		FileSize: len(data),
		RawData:  data,
	}

	var ihdrSeen bool
	codec.WalkPNGChunks(data, func(c codec.PNGChunk) bool {
		switch c.Type {
		case "IHDR":
			if len(c.Data) >= 13 {
				info.Dimensions.W = int(binary.BigEndian.Uint32(c.Data[0:4]))
				info.Dimensions.H = int(binary.BigEndian.Uint32(c.Data[4:8]))
				info.BitDepth = int(c.Data[8])
				info.ColorType = pngColorType(c.Data[9])
				info.IsPaletteMode = c.Data[9] == 3
				ihdrSeen = true
			}
		case "PLTE":
			info.ColorCount = len(c.Data) / 3
		case "iCCP":
			info.HasICCProfile = true
		case "tEXt", "zTXt", "iTXt", "eXIf":
			info.HasMetadataChunks = true
		}
		return true
	})
	if !ihdrSeen {
		return info, nil
	}
	info.FrameCount = 1

	img, decodeErr := decodeImage(data)
	if decodeErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		info.OxipngProbeRatio = Failed()
		return info, nil
	}

	sample := cropCentral(img, 64, 64)
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))
	info.OxipngProbeRatio = oxipngProbeRatio(data, img)
	info.PNGQuantizeRatio = pngQuantizeRatio(img, info.IsPaletteMode)
	info.PNGLossyProxyRatio = pngLossyProxyRatio(ctx, data, info)

	return info, nil
}

func pngColorType(raw byte) ColorType {
	switch raw {
	case 0:
		return ColorGrayscale
	case 2:
		return ColorRGB
	case 3:
		return ColorPalette
	case 4:
		return ColorGrayscale
	case 6:
		return ColorRGBA
	default:
		return ColorRGB
	}
}

// pngLossyProxyRatio unifies png_pngquant_probe_ratio and png_quantize_ratio
// into a single field (SPEC_FULL.md §4.7 Open Question resolution): the real
// pngquant-probe subprocess is preferred whenever the file is small and low
// resolution enough to run it cheaply; otherwise the stdlib quantize-ratio
// proxy already computed above is reused.
func pngLossyProxyRatio(ctx context.Context, data []byte, info Info) ProbeValue {
	if info.IsPaletteMode {
		return Unmeasured
	}
	pixels := info.Dimensions.W * info.Dimensions.H
	if len(data) < smallFileThreshold && pixels > 0 && pixels < probePixelThreshold {
		if v, ok := pngquantProbe(ctx, data); ok {
			return v
		}
	}
	return info.PNGQuantizeRatio
}

func pngquantProbe(ctx context.Context, data []byte) (ProbeValue, bool) {
	out, err := pngProbeRunner.Run(ctx, []string{"pngquant", "--quality=65-80", "--speed=3", "-"}, data, 3*time.Second, 99)
	if err != nil {
		return Unmeasured, false
	}
	if len(out) == 0 {
		// Exit 99: pngquant could not meet the minimum quality; not an error,
		// but not a usable measurement either.
		return Failed(), true
	}
	return Value(float64(len(out)) / float64(len(data))), true
}
