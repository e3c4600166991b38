package optimize

import (
	"bytes"
	"regexp"

	"github.com/hackclub/imgopt/internal/method"
	"github.com/hackclub/imgopt/internal/svgsan"
)

var (
	svgCommentRe       = regexp.MustCompile(`(?s)<!--.*?-->`)
	svgInterTagSpaceRe = regexp.MustCompile(`>\s+<`)
)

// optimizeSVG sanitizes then minifies markup (scour stand-in: no Go scour
// binding exists in the corpus, so minification is comment-stripping plus
// inter-tag whitespace collapse rather than scour's full attribute/path
// rewriting), per spec.md §4.6.5.
func optimizeSVG(data []byte) ([]candidate, error) {
	sanitized, err := svgsan.Sanitize(data)
	if err != nil {
		return nil, err
	}
	minified := minifySVG(sanitized)
	return []candidate{{data: minified, tag: method.Scour}}, nil
}

func minifySVG(markup []byte) []byte {
	out := svgCommentRe.ReplaceAll(markup, nil)
	out = svgInterTagSpaceRe.ReplaceAll(out, []byte("><"))
	return bytes.TrimSpace(out)
}
