// Package predict estimates optimizer output size without running the
// optimizer, using the same header.Info content probes the optimizer's
// header analyzer already computed.
package predict

import (
	"github.com/hackclub/imgopt/internal/imgformat"
	"github.com/hackclub/imgopt/internal/method"
)

// Level is the closed {high, medium, low} scale spec.md §3 uses for both
// Potential and Confidence.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// potentialFor buckets a reduction percentage into the Level spec.md §8
// scenarios expect: >=40 high, >=15 medium, else low.
func potentialFor(reductionPercent float64) Level {
	switch {
	case reductionPercent >= 40:
		return LevelHigh
	case reductionPercent >= 15:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Prediction is the estimator's output: a predicted output size and the
// method it expects to win, with ReductionPercent always clamped to
// spec.md §8's [0, 95] range. Potential and Confidence are both always set
// (§4.7: "Every Predictor sets confidence"), and AlreadyOptimized marks a
// file whose predicted gain is too small to be worth the round trip.
type Prediction struct {
	Format           imgformat.Format
	Method           method.Tag
	PredictedSize    int
	OriginalSize     int
	ReductionPercent float64
	Potential        Level
	Confidence       Level
	AlreadyOptimized bool
}

func clampReduction(originalSize, predictedSize int) float64 {
	if originalSize <= 0 {
		return 0
	}
	reduction := 100 * (1 - float64(predictedSize)/float64(originalSize))
	if reduction < 0 {
		reduction = 0
	}
	if reduction > 95 {
		reduction = 95
	}
	return reduction
}

// newPrediction builds a Prediction from a predicted byte size. It is the
// simple constructor used by predictors whose formulas operate in bytes
// rather than in a reduction percentage directly (next-gen, TIFF, BMP);
// predictors that compute a percentage first (PNG, JPEG, WebP, GIF, SVG,
// SVGZ) call newPredictionFromReduction instead.
func newPrediction(format imgformat.Format, tag method.Tag, originalSize, predictedSize int, confidence Level, alreadyOptimized bool) Prediction {
	if predictedSize > originalSize {
		predictedSize = originalSize
		tag = method.None
	}
	reduction := clampReduction(originalSize, predictedSize)
	return Prediction{
		Format:           format,
		Method:           tag,
		PredictedSize:    predictedSize,
		OriginalSize:     originalSize,
		ReductionPercent: reduction,
		Potential:        potentialFor(reduction),
		Confidence:       confidence,
		AlreadyOptimized: alreadyOptimized,
	}
}

// newPredictionFromReduction mirrors newPrediction but takes the reduction
// percentage directly, for predictors (PNG, JPEG, WebP, GIF, SVG, SVGZ)
// whose formulas are
// naturally expressed in percent-saved terms.
func newPredictionFromReduction(format imgformat.Format, tag method.Tag, originalSize int, reductionPercent float64, confidence Level, alreadyOptimized bool) Prediction {
	if reductionPercent < 0 {
		reductionPercent = 0
	}
	if reductionPercent > 95 {
		reductionPercent = 95
	}
	predictedSize := int(float64(originalSize) * (1 - reductionPercent/100))
	if predictedSize > originalSize {
		predictedSize = originalSize
		tag = method.None
	}
	return Prediction{
		Format:           format,
		Method:           tag,
		PredictedSize:    predictedSize,
		OriginalSize:     originalSize,
		ReductionPercent: reductionPercent,
		Potential:        potentialFor(reductionPercent),
		Confidence:       confidence,
		AlreadyOptimized: alreadyOptimized,
	}
}
