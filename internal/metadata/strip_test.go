package metadata

import (
	"testing"

	"github.com/hackclub/imgopt/internal/imgformat"
)

func TestStrip_PassThroughFormats(t *testing.T) {
	original := []byte("<svg><rect/></svg>")
	for _, f := range []imgformat.Format{imgformat.SVG, imgformat.SVGZ, imgformat.WEBP, imgformat.GIF, imgformat.BMP, imgformat.AVIF, imgformat.HEIC, imgformat.JXL} {
		out, err := Strip(original, f)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", f, err)
		}
		if string(out) != string(original) {
			t.Fatalf("%s: expected pass-through, got mutated bytes", f)
		}
	}
}

func TestStrip_UnknownFormat(t *testing.T) {
	_, err := Strip([]byte("x"), imgformat.Format("bogus"))
	if err == nil {
		t.Fatal("expected an error for an unhandled format")
	}
}
