package optimize

import (
	"context"
	"fmt"
	"time"

	"github.com/hackclub/imgopt/internal/header"
	"github.com/hackclub/imgopt/internal/imgformat"
	"github.com/hackclub/imgopt/internal/method"
	"github.com/hackclub/imgopt/internal/subprocess"
)

// Router dispatches Optimize calls to the per-format candidate generators
// and enforces the never-larger-than-input guarantee at the boundary.
type Router struct {
	runner *subprocess.Runner
}

func NewRouter(toolTimeout time.Duration) *Router {
	return &Router{runner: subprocess.New(toolTimeout)}
}

// Optimize produces the smallest valid re-encoding of data under cfg,
// falling back to the original bytes (method.None) when nothing beats it.
func (r *Router) Optimize(ctx context.Context, data []byte, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	format, err := imgformat.Detect(data)
	if err != nil {
		return Result{}, err
	}
	info, err := header.Analyze(ctx, data, format)
	if err != nil {
		return Result{}, fmt.Errorf("optimize: header analyze: %w", err)
	}

	var candidates []candidate
	switch format {
	case imgformat.PNG, imgformat.APNG:
		candidates, err = r.optimizePNG(ctx, data, info, cfg)
	case imgformat.JPEG:
		candidates, err = r.optimizeJPEG(ctx, data, info, cfg)
	case imgformat.WEBP:
		candidates, err = r.optimizeWebP(ctx, data, info, cfg)
	case imgformat.GIF:
		candidates, err = r.optimizeGIF(ctx, data, cfg)
	case imgformat.SVG:
		candidates, err = optimizeSVG(data)
	case imgformat.SVGZ:
		candidates, err = optimizeSVGZ(data)
	case imgformat.AVIF:
		candidates, err = optimizeAVIF(data, cfg)
	case imgformat.HEIC:
		candidates, err = optimizeHEIC(data, cfg)
	case imgformat.JXL:
		candidates, err = r.optimizeJXL(ctx, data, cfg)
	case imgformat.TIFF:
		candidates, err = optimizeTIFF(ctx, data)
	case imgformat.BMP:
		candidates, err = optimizeBMP(data)
	default:
		return Result{}, fmt.Errorf("optimize: unhandled format %q", format)
	}
	if err != nil {
		return Result{}, err
	}

	candidates = append(candidates, candidate{data: data, tag: method.None})
	best := pickBest(candidates)

	return Result{
		Data:         best.data,
		Format:       format,
		Method:       best.tag,
		OriginalSize: len(data),
		OutputSize:   len(best.data),
	}, nil
}
