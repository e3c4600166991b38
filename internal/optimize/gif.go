package optimize

import (
	"context"
	"time"

	"github.com/hackclub/imgopt/internal/method"
)

// optimizeGIF shells out to gifsicle, the only GIF-aware optimizer in the
// pack's domain (no Go library does palette-aware, frame-aware GIF
// recompression), per spec.md §4.6.4.
func (r *Router) optimizeGIF(ctx context.Context, data []byte, cfg Config) ([]candidate, error) {
	args := []string{"gifsicle", "--optimize=3", "-"}

	out, err := r.runner.Run(ctx, args, data, 8*time.Second)
	if err != nil {
		return nil, nil
	}
	return []candidate{{data: out, tag: method.Gifsicle}}, nil
}
