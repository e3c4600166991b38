package optimize

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/header"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeWebP races libvips' webpsave (webp_vips tag) against a cwebp
// subprocess (cwebp tag); cwebp's dedicated encoder sometimes beats
// libvips' general-purpose one at the same quality, per spec.md §4.6.3.
// When cfg.MaxReduction caps the winning candidate's reduction, step 3
// binary searches the libvips encoder's quality upward (mirroring
// original_source/optimizers/webp.py's Pillow-only capped re-encode,
// regardless of which method originally won) until the cap is respected.
func (r *Router) optimizeWebP(ctx context.Context, data []byte, info header.Info, cfg Config) ([]candidate, error) {
	saveAll := info.FrameCount > 1
	results := make([]candidate, 0, 2)
	g, gctx := errgroup.WithContext(ctx)

	var vipsOut, cwebpOut []byte
	g.Go(func() error {
		out, err := codec.EncodeWebP(data, cfg.Quality, cfg.StripMetadata, saveAll)
		if err != nil {
			return nil
		}
		vipsOut = out
		return nil
	})

	g.Go(func() error {
		args := []string{"cwebp", "-quiet", "-q", strconv.Itoa(cfg.Quality)}
		if cfg.StripMetadata {
			args = append(args, "-metadata", "none")
		}
		args = append(args, "-o", "-", "--", "-")
		out, err := r.runner.Run(gctx, args, data, 8*time.Second)
		if err != nil {
			return nil
		}
		cwebpOut = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if target, ok := cfg.maxReduction(); ok {
		best := vipsOut
		if cwebpOut != nil && (best == nil || len(cwebpOut) < len(best)) {
			best = cwebpOut
		}
		if best != nil {
			reduction := (1 - float64(len(best))/float64(len(data))) * 100
			if reduction > target {
				encode := func(q int) ([]byte, error) {
					return codec.EncodeWebP(data, q, cfg.StripMetadata, saveAll)
				}
				vipsOut = nil
				if _, capped, capOk := capReduction(len(data), cfg.Quality, target, encode); capOk {
					vipsOut = capped
				}
				cwebpOut = nil
			}
		}
	}

	if vipsOut != nil {
		results = append(results, candidate{data: vipsOut, tag: method.WebpVips})
	}
	if cwebpOut != nil {
		results = append(results, candidate{data: cwebpOut, tag: method.Cwebp})
	}
	return results, nil
}
