// Package optimize dispatches each supported format to the optimizer that
// knows how to re-encode it, racing multiple candidate encodings where the
// format allows more than one method, and always enforces the invariant
// that nothing it returns is larger than the input it was given.
package optimize

import (
	"github.com/hackclub/imgopt/internal/imgformat"
	"github.com/hackclub/imgopt/internal/method"
)

// Config carries the per-request knobs the optimizer reads. Zero-value
// Quality defaults to 80 at the Router boundary. MaxReduction is nil when
// unset (no cap); a non-nil value is a percent in [0, 100] the optimizer's
// lossy candidates must not exceed, per spec.md §3/§4.6.2/§4.6.3.
type Config struct {
	Quality         int
	StripMetadata   bool
	ProgressiveJPEG bool
	PNGLossy        bool
	MaxReduction    *float64
}

func (c Config) withDefaults() Config {
	if c.Quality <= 0 {
		c.Quality = 80
	}
	return c
}

// maxReduction reports the configured cap and whether one was set.
func (c Config) maxReduction() (float64, bool) {
	if c.MaxReduction == nil {
		return 0, false
	}
	return *c.MaxReduction, true
}

// Result is what Optimize returns: the smallest valid re-encoding found,
// which is the original bytes verbatim (Method == method.None) when nothing
// beat the input.
type Result struct {
	Data         []byte
	Format       imgformat.Format
	Method       method.Tag
	OriginalSize int
	OutputSize   int
}

// candidate is an internal, not-yet-compared encoding attempt.
type candidate struct {
	data []byte
	tag  method.Tag
}

// pickBest returns the smallest candidate, breaking size ties in favor of
// the simpler method per method.Simpler, or nil if candidates is empty.
func pickBest(candidates []candidate) *candidate {
	var best *candidate
	for i := range candidates {
		c := &candidates[i]
		if c.data == nil {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if len(c.data) < len(best.data) {
			best = c
		} else if len(c.data) == len(best.data) && method.Simpler(c.tag, best.tag) {
			best = c
		}
	}
	return best
}
