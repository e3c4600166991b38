package optimize

import (
	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeHEIC, unlike AVIF, does expose a lossy candidate alongside the
// metadata-strip-only one: HEIC's HEVC payload tolerates a second
// quality-bounded encode more gracefully than AVIF's AV1 payload does in
// practice, per spec.md §4.6.7.
func optimizeHEIC(data []byte, cfg Config) ([]candidate, error) {
	results := make([]candidate, 0, 2)

	if losslessOut, err := codec.EncodeHEIC(data, 100, true, cfg.StripMetadata); err == nil {
		results = append(results, candidate{data: losslessOut, tag: method.HeicReencode})
	}
	if lossyOut, err := codec.EncodeHEIC(data, cfg.Quality, false, cfg.StripMetadata); err == nil {
		results = append(results, candidate{data: lossyOut, tag: method.HeicLossy})
	}
	return results, nil
}
