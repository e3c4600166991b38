package optimize

// qualityEncoder re-encodes the same source at a given JPEG/WebP quality.
// It is the seam capReduction binary-searches over; nothing about it is
// tied to a particular format or to Router state.
type qualityEncoder func(quality int) ([]byte, error)

// capReduction binary-searches quality in [minQuality, 100] for the highest
// quality whose output still respects maxReductionPercent, per spec.md
// §4.6.2 step 4 / §4.6.3 step 3 and Design Notes §9 ("a pure function
// returning the chosen quality and output, independent of any optimizer
// state"). It runs at most 5 iterations, mirroring
// original_source/optimizers/webp.py's _find_capped_quality.
//
// ok is false when even quality=100 still exceeds the cap — callers must
// fall back to a lossless or uncapped candidate in that case.
func capReduction(originalSize, minQuality int, maxReductionPercent float64, encode qualityEncoder) (quality int, data []byte, ok bool) {
	out100, err := encode(100)
	if err != nil || len(out100) == 0 {
		return 0, nil, false
	}
	reduction100 := (1 - float64(len(out100))/float64(originalSize)) * 100
	if reduction100 > maxReductionPercent {
		return 0, nil, false
	}

	lo, hi := minQuality, 100
	bestQuality, bestData := 100, out100

	for i := 0; i < 5; i++ {
		if hi-lo <= 1 {
			break
		}
		mid := (lo + hi) / 2
		out, err := encode(mid)
		if err != nil || len(out) == 0 {
			lo = mid
			continue
		}
		reduction := (1 - float64(len(out))/float64(originalSize)) * 100
		if reduction > maxReductionPercent {
			lo = mid
		} else {
			hi = mid
			bestQuality = mid
			bestData = out
		}
	}

	return bestQuality, bestData, true
}
