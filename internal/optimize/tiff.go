package optimize

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hackclub/imgopt/internal/codec"
	"github.com/hackclub/imgopt/internal/method"
)

// optimizeTIFF races the two lossless compression schemes mdouchement/tiff
// supports against each other, since which of them is smaller depends on
// content and isn't knowable without trying both, per spec.md §4.6.8.
func optimizeTIFF(ctx context.Context, data []byte) ([]candidate, error) {
	results := make([]candidate, 0, 2)
	g, _ := errgroup.WithContext(ctx)

	var deflateOut, lzwOut []byte
	g.Go(func() error {
		out, err := codec.ReencodeTIFF(data, codec.TIFFAdobeDeflate)
		if err != nil {
			return nil
		}
		deflateOut = out
		return nil
	})
	g.Go(func() error {
		out, err := codec.ReencodeTIFF(data, codec.TIFFLZW)
		if err != nil {
			return nil
		}
		lzwOut = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if deflateOut != nil {
		results = append(results, candidate{data: deflateOut, tag: method.TiffAdobeDeflate})
	}
	if lzwOut != nil {
		results = append(results, candidate{data: lzwOut, tag: method.TiffLzw})
	}
	return results, nil
}
