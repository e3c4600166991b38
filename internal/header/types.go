// Package header analyzes format-specific headers and runs cheap content
// probes, producing an immutable HeaderInfo per request. It must not decode
// full pixel data for formats whose headers alone suffice.
package header

import "github.com/hackclub/imgopt/internal/imgformat"

type ColorType string

const (
	ColorRGB       ColorType = "rgb"
	ColorRGBA      ColorType = "rgba"
	ColorPalette   ColorType = "palette"
	ColorGrayscale ColorType = "grayscale"
	ColorCMYK      ColorType = "cmyk"
)

type Dimensions struct {
	W, H int
}

// Info is produced once per request by Analyze and consumed by exactly one
// Predictor or Optimizer call; it never crosses a request boundary.
type Info struct {
	Format     imgformat.Format
	FileSize   int
	Dimensions Dimensions
	ColorType  ColorType
	BitDepth   int

	HasICCProfile     bool
	HasEXIF           bool
	HasMetadataChunks bool

	// JPEG
	EstimatedQuality int
	IsProgressive    bool

	// PNG
	IsPaletteMode bool
	ColorCount    int

	// Content probes — unset (ProbeValue zero value) when not applicable;
	// Failed() when the probe ran and failed.
	UniqueColorRatio     ProbeValue
	FlatPixelRatio       ProbeValue
	PNGQuantizeRatio     ProbeValue
	OxipngProbeRatio     ProbeValue
	PNGLossyProxyRatio   ProbeValue // unifies png_pngquant_probe_ratio / png_quantize_ratio, see SPEC_FULL §4.7
	SVGBloatRatio        ProbeValue

	FrameCount int // >= 1

	// RawData is a reference to the input bytes, set by every analyzer and
	// read by the estimator's JPEG thumbnail probe. Never retained beyond
	// the request.
	RawData []byte
}
