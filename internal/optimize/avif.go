package optimize

import (
	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeAVIF only strips metadata and re-saves losslessly: re-encoding an
// already-lossy AVIF through a second lossy pass compounds generation loss,
// so no quality knob is exposed here, per spec.md §4.6.6.
func optimizeAVIF(data []byte, cfg Config) ([]candidate, error) {
	out, err := codec.EncodeAVIF(data, cfg.StripMetadata)
	if err != nil {
		return nil, nil
	}
	return []candidate{{data: out, tag: method.AvifReencode}}, nil
}
