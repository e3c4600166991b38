package optimize

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/hackclub/imgopt/internal/method"
	"github.com/hackclub/imgopt/internal/svgsan"
)

// optimizeSVGZ decompresses, sanitizes and minifies the embedded SVG the
// same way optimizeSVG does, then regzips at the strongest compression
// level, per spec.md §4.6.5.
func optimizeSVGZ(data []byte) ([]candidate, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("optimize: svgz gunzip: %w", err)
	}
	defer r.Close()
	markup, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("optimize: svgz read: %w", err)
	}

	sanitized, err := svgsan.Sanitize(markup)
	if err != nil {
		return nil, err
	}
	minified := minifySVG(sanitized)

	var buf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("optimize: svgz gzip writer: %w", err)
	}
	if _, err := gw.Write(minified); err != nil {
		return nil, fmt.Errorf("optimize: svgz gzip write: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("optimize: svgz gzip close: %w", err)
	}

	return []candidate{{data: buf.Bytes(), tag: method.Scour}}, nil
}
