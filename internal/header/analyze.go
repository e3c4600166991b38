package header

import (
	"context"
	"fmt"

	"github.com/hackclub/imgopt/internal/imgformat"
)

// Analyze parses format-specific headers and runs the content probes that
// the predictors and optimizers both read, producing one immutable Info per
// request. format must already have been established by imgformat.Detect.
func Analyze(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	switch format {
	case imgformat.PNG, imgformat.APNG:
		return analyzePNG(ctx, data, format)
	case imgformat.JPEG:
		return analyzeJPEG(ctx, data, format)
	case imgformat.SVG, imgformat.SVGZ:
		return analyzeSVG(ctx, data, format)
	case imgformat.WEBP, imgformat.GIF:
		return analyzeVipsBacked(ctx, data, format)
	case imgformat.TIFF:
		return analyzeTIFF(ctx, data, format)
	case imgformat.BMP:
		return analyzeBMP(ctx, data, format)
	case imgformat.AVIF, imgformat.HEIC, imgformat.JXL:
		return analyzeNextGen(ctx, data, format)
	default:
		return Info{}, fmt.Errorf("header: unhandled format %q", format)
	}
}
