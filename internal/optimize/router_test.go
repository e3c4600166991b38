package optimize

import (
	"testing"

	"github.com/hackclub/imgopt/internal/method"
)

func TestPickBest_PrefersSmallest(t *testing.T) {
	candidates := []candidate{
		{data: []byte("aaaaaaaaaa"), tag: method.Oxipng},
		{data: []byte("aaa"), tag: method.PngquantOxipng},
		{data: []byte("aaaaa"), tag: method.Mozjpeg},
	}
	best := pickBest(candidates)
	if best == nil || len(best.data) != 3 {
		t.Fatalf("expected the 3-byte candidate to win, got %+v", best)
	}
}

func TestPickBest_TieBreaksTowardSimplerMethod(t *testing.T) {
	candidates := []candidate{
		{data: []byte("aaa"), tag: method.PngquantOxipng}, // lossy, rank 3
		{data: []byte("aaa"), tag: method.Oxipng},          // lossless, rank 1
	}
	best := pickBest(candidates)
	if best == nil || best.tag != method.Oxipng {
		t.Fatalf("expected the simpler (lossless) tag to win a tie, got %+v", best)
	}
}

func TestPickBest_SkipsNilCandidates(t *testing.T) {
	candidates := []candidate{
		{data: nil, tag: method.Mozjpeg},
		{data: []byte("x"), tag: method.Jpegtran},
	}
	best := pickBest(candidates)
	if best == nil || best.tag != method.Jpegtran {
		t.Fatalf("expected the non-nil candidate to win, got %+v", best)
	}
}

func TestPickBest_EmptyReturnsNil(t *testing.T) {
	if pickBest(nil) != nil {
		t.Fatal("expected nil for an empty candidate set")
	}
}

func TestMinifySVG_StripsCommentsAndWhitespace(t *testing.T) {
	in := []byte("<svg>\n  <!-- note -->\n  <rect/>\n</svg>")
	out := minifySVG(in)
	if string(out) != "<svg><rect/></svg>" {
		t.Fatalf("unexpected minified output: %q", out)
	}
}
