package header

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"regexp"

	"github.com/hackclub/imgopt/internal/errs"
	"github.com/hackclub/imgopt/internal/imgformat"
)

var (
	svgViewBoxRe  = regexp.MustCompile(`viewBox\s*=\s*"([^"]*)"`)
	svgWidthRe    = regexp.MustCompile(`\bwidth\s*=\s*"([0-9.]+)`)
	svgHeightRe   = regexp.MustCompile(`\bheight\s*=\s*"([0-9.]+)`)
	svgCommentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	svgMetadataRe = regexp.MustCompile(`(?s)<metadata\b.*?</metadata>`)
	svgEditorNSRe = regexp.MustCompile(`(?s)<(sodipodi|inkscape):[a-zA-Z-]+\b[^>]*?(/>|>.*?</(sodipodi|inkscape):[a-zA-Z-]+>)`)
)

func analyzeSVG(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		ColorType:  ColorRGBA,
		FrameCount: 1,
		RawData:    data,
	}

	markup := data
	if format == imgformat.SVGZ {
		decompressed, err := gunzipAll(data)
		if err != nil {
			return info, &errs.MalformedSvgError{Err: err}
		}
		markup = decompressed
	}

	if m := svgViewBoxRe.FindSubmatch(markup); m != nil {
		var x0, y0, w, h float64
		parts := bytes.Fields(bytes.ReplaceAll(m[1], []byte(","), []byte(" ")))
		if len(parts) == 4 {
			scanFloat(parts[0], &x0)
			scanFloat(parts[1], &y0)
			scanFloat(parts[2], &w)
			scanFloat(parts[3], &h)
			info.Dimensions.W = int(w)
			info.Dimensions.H = int(h)
		}
	} else {
		var w, h float64
		if m := svgWidthRe.FindSubmatch(markup); m != nil {
			scanFloat(m[1], &w)
		}
		if m := svgHeightRe.FindSubmatch(markup); m != nil {
			scanFloat(m[1], &h)
		}
		info.Dimensions.W = int(w)
		info.Dimensions.H = int(h)
	}

	var bloat int
	for _, re := range []*regexp.Regexp{svgCommentRe, svgMetadataRe, svgEditorNSRe} {
		for _, m := range re.FindAll(markup, -1) {
			bloat += len(m)
		}
	}
	info.HasMetadataChunks = bloat > 0
	if len(markup) > 0 {
		info.SVGBloatRatio = Value(float64(bloat) / float64(len(markup)))
	} else {
		info.SVGBloatRatio = Failed()
	}

	return info, nil
}

func gunzipAll(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func scanFloat(b []byte, out *float64) {
	var f float64
	var sign float64 = 1
	i := 0
	if i < len(b) && b[i] == '-' {
		sign = -1
		i++
	}
	var intPart, frac float64
	var fracDiv float64 = 1
	seenDot := false
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c == '.' && !seenDot:
			seenDot = true
		case c >= '0' && c <= '9':
			if seenDot {
				frac = frac*10 + float64(c-'0')
				fracDiv *= 10
			} else {
				intPart = intPart*10 + float64(c-'0')
			}
		default:
			f = sign * (intPart + frac/fracDiv)
			*out = f
			return
		}
	}
	f = sign * (intPart + frac/fracDiv)
	*out = f
}
