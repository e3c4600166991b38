package optimize

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/header"
	"github.com/hackclub/imgopt/internal/metadata"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizePNG races a lossless oxipng-style recompression against a lossy
// pngquant+oxipng pipeline when cfg.PNGLossy allows it, per spec.md §4.6.1.
func (r *Router) optimizePNG(ctx context.Context, data []byte, info header.Info, cfg Config) ([]candidate, error) {
	input := data
	if cfg.StripMetadata {
		stripped, err := metadata.Strip(data, info.Format)
		if err == nil {
			input = stripped
		}
	}

	results := make([]candidate, 0, 2)
	g, gctx := errgroup.WithContext(ctx)

	var losslessOut, lossyOut []byte
	g.Go(func() error {
		out, err := codec.RecompressPNGLossless(input)
		if err != nil {
			return nil // probe-style failure: this candidate just doesn't exist
		}
		losslessOut = out
		return nil
	})

	if cfg.PNGLossy && !info.IsPaletteMode {
		g.Go(func() error {
			quantized, err := r.runner.Run(gctx, []string{"pngquant", "--quality", qualityRange(cfg.Quality), "--speed=3", "--force", "-"}, input, 8*time.Second, 99)
			if err != nil || len(quantized) == 0 {
				return nil
			}
			recompressed, err := codec.RecompressPNGLossless(quantized)
			if err != nil {
				recompressed = quantized
			}
			lossyOut = recompressed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if losslessOut != nil {
		results = append(results, candidate{data: losslessOut, tag: method.Oxipng})
	}
	if lossyOut != nil {
		results = append(results, candidate{data: lossyOut, tag: method.PngquantOxipng})
	}
	return results, nil
}

// qualityRange converts a single 1-100 target quality into pngquant's
// "min-max" range syntax, centered 15 points below the target.
func qualityRange(quality int) string {
	low := quality - 15
	if low < 0 {
		low = 0
	}
	high := quality
	if high > 100 {
		high = 100
	}
	return strconv.Itoa(low) + "-" + strconv.Itoa(high)
}
