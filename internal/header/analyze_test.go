package header

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hackclub/imgopt/internal/imgformat"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestAnalyzePNG_FlatImageHasHighFlatRatio(t *testing.T) {
	data := solidPNG(t, 128, 128, color.RGBA{10, 20, 30, 255})
	info, err := Analyze(context.Background(), data, imgformat.PNG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ratio, ok := info.FlatPixelRatio.Get()
	if !ok {
		t.Fatal("expected a flat pixel ratio measurement")
	}
	if ratio < 0.99 {
		t.Fatalf("solid color image should be ~100%% flat, got %f", ratio)
	}
	if info.Dimensions.W != 128 || info.Dimensions.H != 128 {
		t.Fatalf("unexpected dimensions: %+v", info.Dimensions)
	}
	if info.ColorType != ColorRGB {
		t.Fatalf("expected RGB color type, got %s", info.ColorType)
	}
}

func TestAnalyzePNG_PaletteDetection(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 16, 16), []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
	})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	info, err := Analyze(context.Background(), buf.Bytes(), imgformat.PNG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsPaletteMode {
		t.Fatal("expected palette mode")
	}
	if info.ColorCount != 2 {
		t.Fatalf("expected 2 palette colors, got %d", info.ColorCount)
	}
	if info.PNGLossyProxyRatio.WasAttempted() && info.PNGLossyProxyRatio.Ok() {
		t.Fatal("palette-mode images should not get a lossy-proxy measurement")
	}
}

func TestAnalyzeSVG_ViewBoxAndBloat(t *testing.T) {
	markup := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50">
<!-- generator comment -->
<metadata><rdf:RDF>stuff</rdf:RDF></metadata>
<rect width="100" height="50"/>
</svg>`)
	info, err := Analyze(context.Background(), markup, imgformat.SVG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Dimensions.W != 100 || info.Dimensions.H != 50 {
		t.Fatalf("unexpected dimensions: %+v", info.Dimensions)
	}
	ratio, ok := info.SVGBloatRatio.Get()
	if !ok || ratio <= 0 {
		t.Fatalf("expected a positive bloat ratio, got %v ok=%v", ratio, ok)
	}
	if !info.HasMetadataChunks {
		t.Fatal("expected metadata chunks to be detected")
	}
}

func TestAnalyzeSVG_NoBloat(t *testing.T) {
	markup := []byte(`<svg viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`)
	info, err := Analyze(context.Background(), markup, imgformat.SVG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ratio, ok := info.SVGBloatRatio.Get()
	if !ok || ratio != 0 {
		t.Fatalf("expected zero bloat ratio, got %v ok=%v", ratio, ok)
	}
}

func TestJPEGQualityFromQuantAverage_Monotonic(t *testing.T) {
	lowQ := jpegQualityFromQuantAverage(2)
	highQ := jpegQualityFromQuantAverage(40)
	if lowQ <= highQ {
		t.Fatalf("expected lower quant average to map to higher quality: low=%d high=%d", lowQ, highQ)
	}
	if lowQ < 1 || lowQ > 100 || highQ < 1 || highQ > 100 {
		t.Fatalf("quality out of range: low=%d high=%d", lowQ, highQ)
	}
}
