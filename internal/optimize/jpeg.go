package optimize

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/header"
	"github.com/hackclub/imgopt/internal/metadata"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeJPEG races a quality-based jpegli re-encode (mozjpeg tag) against
// a structural, lossless jpegtran re-huffman-optimize (jpegtran tag), per
// spec.md §4.6.2. Both candidates start from metadata-stripped bytes when
// cfg.StripMetadata is set, since stripping never changes pixel content.
// When cfg.MaxReduction caps the mozjpeg candidate's reduction, step 4 binary
// searches quality upward until the cap is respected, dropping the mozjpeg
// candidate entirely (falling back to jpegtran/none) if even quality=100
// still exceeds it.
func (r *Router) optimizeJPEG(ctx context.Context, data []byte, info header.Info, cfg Config) ([]candidate, error) {
	input := data
	if cfg.StripMetadata {
		stripped, err := metadata.Strip(data, info.Format)
		if err == nil {
			input = stripped
		}
	}

	results := make([]candidate, 0, 2)
	g, gctx := errgroup.WithContext(ctx)

	var mozjpegOut, jpegtranOut []byte
	g.Go(func() error {
		img, err := codec.DecodeJPEG(input)
		if err != nil {
			return nil
		}
		out, err := codec.EncodeJPEGLossy(img, cfg.Quality, cfg.ProgressiveJPEG)
		if err != nil {
			return nil
		}
		mozjpegOut = out
		return nil
	})

	g.Go(func() error {
		args := []string{"jpegtran", "-copy", "none", "-optimize"}
		if cfg.ProgressiveJPEG {
			args = append(args, "-progressive")
		}
		out, err := r.runner.Run(gctx, args, input, 8*time.Second)
		if err != nil {
			return nil
		}
		jpegtranOut = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if target, ok := cfg.maxReduction(); ok && mozjpegOut != nil {
		reduction := (1 - float64(len(mozjpegOut))/float64(len(input))) * 100
		if reduction > target {
			mozjpegOut = nil
			if img, decErr := codec.DecodeJPEG(input); decErr == nil {
				encode := func(q int) ([]byte, error) {
					return codec.EncodeJPEGLossy(img, q, cfg.ProgressiveJPEG)
				}
				if _, capped, capOk := capReduction(len(input), cfg.Quality, target, encode); capOk {
					mozjpegOut = capped
				}
			}
		}
	}

	if mozjpegOut != nil {
		results = append(results, candidate{data: mozjpegOut, tag: method.Mozjpeg})
	}
	if jpegtranOut != nil {
		results = append(results, candidate{data: jpegtranOut, tag: method.Jpegtran})
	}
	return results, nil
}
