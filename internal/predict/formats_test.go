package predict

import (
	"testing"

	"github.com/hackclub/imgopt/internal/header"
	"github.com/hackclub/imgopt/internal/imgformat"
	"github.com/hackclub/imgopt/internal/method"
	"github.com/hackclub/imgopt/internal/optimize"
)

func TestPredictPNG_PrefersSmallerPath(t *testing.T) {
	info := header.Info{
		Format:             imgformat.PNG,
		FileSize:           1000,
		UniqueColorRatio:   header.Value(0.1),
		OxipngProbeRatio:   header.Value(0.9),
		PNGLossyProxyRatio: header.Value(0.4),
	}
	p := predictPNG(info, optimize.Config{Quality: 80, PNGLossy: true})
	if p.Method != method.PngquantOxipng {
		t.Fatalf("expected the lossy path to win, got %s", p.Method)
	}
	if p.PredictedSize != 400 {
		t.Fatalf("expected predicted size 400, got %d", p.PredictedSize)
	}
}

func TestPredictPNG_PaletteModeUsesPngquantBucket(t *testing.T) {
	info := header.Info{
		Format:            imgformat.PNG,
		FileSize:          1000,
		IsPaletteMode:     true,
		ColorCount:        64,
		HasMetadataChunks: false,
	}
	p := predictPNG(info, optimize.Config{Quality: 80, PNGLossy: true})
	if p.Method != method.PngquantOxipng {
		t.Fatalf("expected palette-mode PNGs to predict the pngquant bucket, got %s", p.Method)
	}
	if !p.AlreadyOptimized {
		t.Fatalf("expected a palette PNG with no metadata chunks to already be optimized")
	}
}

func TestPredictPNG_LosslessOnlyWhenPNGLossyDisabled(t *testing.T) {
	info := header.Info{Format: imgformat.PNG, FileSize: 1000}
	p := predictPNG(info, optimize.Config{Quality: 80, PNGLossy: false})
	if p.Method != method.Oxipng {
		t.Fatalf("expected oxipng-only prediction when PNGLossy is false, got %s", p.Method)
	}
}

func TestNewPrediction_NeverExceedsOriginal(t *testing.T) {
	p := newPrediction(imgformat.JPEG, method.Mozjpeg, 100, 150, LevelMedium, false)
	if p.PredictedSize > p.OriginalSize {
		t.Fatalf("predicted size %d exceeds original %d", p.PredictedSize, p.OriginalSize)
	}
	if p.Method != method.None {
		t.Fatalf("expected fallback to method.None, got %s", p.Method)
	}
}

func TestClampReduction_Bounds(t *testing.T) {
	if r := clampReduction(100, 200); r != 0 {
		t.Fatalf("expected 0 for a growing prediction, got %f", r)
	}
	if r := clampReduction(100, 0); r != 95 {
		t.Fatalf("expected clamp to 95, got %f", r)
	}
	if r := clampReduction(100, 50); r != 50 {
		t.Fatalf("expected 50, got %f", r)
	}
}

func TestPredictJPEG_HigherTargetQualityPrefersJpegtran(t *testing.T) {
	info := header.Info{Format: imgformat.JPEG, FileSize: 100000, EstimatedQuality: 60}
	p := predictJPEG(info, optimize.Config{Quality: 90})
	if p.Method != method.Jpegtran {
		t.Fatalf("expected jpegtran when target quality exceeds estimated source quality, got %s", p.Method)
	}
}

func TestPredictJPEG_LowerTargetQualityPrefersMozjpeg(t *testing.T) {
	info := header.Info{Format: imgformat.JPEG, FileSize: 100000, EstimatedQuality: 90}
	p := predictJPEG(info, optimize.Config{Quality: 60})
	if p.Method != method.Mozjpeg {
		t.Fatalf("expected mozjpeg when target quality is well below estimated source quality, got %s", p.Method)
	}
	if p.Confidence != LevelMedium {
		t.Fatalf("expected jpeg predictions to always report medium confidence, got %s", p.Confidence)
	}
}

func TestPredictJPEG_AlreadyOptimizedWhenTargetAboveSourceAndNoExif(t *testing.T) {
	info := header.Info{Format: imgformat.JPEG, FileSize: 100000, EstimatedQuality: 50, HasEXIF: false}
	p := predictJPEG(info, optimize.Config{Quality: 80})
	if !p.AlreadyOptimized {
		t.Fatal("expected already_optimized when target quality well exceeds source and there is no EXIF to strip")
	}
}

func TestPredictSVG_UsesBloatRatioFormula(t *testing.T) {
	info := header.Info{Format: imgformat.SVG, FileSize: 1000, SVGBloatRatio: header.Value(0.5)}
	p := predictSVG(info)
	// base=28, k=0.98: (28 + 1000*0.5*0.98)/1000*100 = 51.8%, well under the 60 cap.
	if p.ReductionPercent < 50 || p.ReductionPercent > 60 {
		t.Fatalf("expected reduction in [50, 60], got %f", p.ReductionPercent)
	}
	if p.Potential != LevelHigh {
		t.Fatalf("expected high potential for a heavily bloated SVG, got %s", p.Potential)
	}
}

func TestPredictSVGZ_SmallerCoefficientsThanSVG(t *testing.T) {
	info := header.Info{Format: imgformat.SVGZ, FileSize: 1000, SVGBloatRatio: header.Value(0.5)}
	p := predictSVGZ(info)
	if p.ReductionPercent > 30 {
		t.Fatalf("expected SVGZ reduction capped at 30, got %f", p.ReductionPercent)
	}
	if p.Potential != LevelLow {
		t.Fatalf("expected SVGZ potential to always be low, got %s", p.Potential)
	}
}

func TestPredictGIF_AnimatedUsesFlatReduction(t *testing.T) {
	info := header.Info{Format: imgformat.GIF, FileSize: 5000, FrameCount: 3}
	p := predictGIF(info, optimize.Config{Quality: 80})
	if p.ReductionPercent != 15.0 {
		t.Fatalf("expected animated GIFs to predict a flat 15%% reduction, got %f", p.ReductionPercent)
	}
}

func TestPredictWebP_NegativeDeltaIsAlreadyOptimized(t *testing.T) {
	info := header.Info{Format: imgformat.WEBP, FileSize: 1000, Dimensions: header.Dimensions{W: 1000, H: 1000}}
	p := predictWebP(info, optimize.Config{Quality: 95})
	if !p.AlreadyOptimized {
		t.Fatal("expected a low-bpp (low source quality) WebP re-encoded at high target quality to be already optimized")
	}
}
