// Package method defines the closed set of encoder pipeline tags an
// optimizer result or a predictor's expectation can carry. Strings never
// cross this boundary raw so optimizers and predictors cannot disagree on
// spelling (Design Notes: "duck-typed method string").
package method

type Tag string

const (
	None             Tag = "none"
	Oxipng           Tag = "oxipng"
	PngquantOxipng   Tag = "pngquant_oxipng"
	Mozjpeg          Tag = "mozjpeg"
	Jpegtran         Tag = "jpegtran"
	Cwebp            Tag = "cwebp"
	WebpVips         Tag = "webp_vips"
	Gifsicle         Tag = "gifsicle"
	Scour            Tag = "scour"
	MetadataStrip    Tag = "metadata_strip"
	AvifReencode     Tag = "avif_reencode"
	HeicReencode     Tag = "heic_reencode"
	HeicLossy        Tag = "heic_lossy"
	JxlReencode      Tag = "jxl_reencode"
	JxlLossy         Tag = "jxl_lossy"
	TiffAdobeDeflate Tag = "tiff_adobe_deflate"
	TiffLzw          Tag = "tiff_lzw"
	BmpPillow        Tag = "bmp_24bit"
)

// Simpler reports whether a is the "simpler" tag relative to b under the
// tie-break rule in spec.md §5 ("prefer the candidate with the simpler
// method tag (lossless over lossy)"). It is only meaningful for tags that
// can legitimately tie on size for the same format.
func Simpler(a, b Tag) bool {
	rank := map[Tag]int{
		None:             0,
		Oxipng:           1,
		Jpegtran:         1,
		TiffAdobeDeflate: 1,
		TiffLzw:          1,
		MetadataStrip:    1,
		AvifReencode:     1,
		HeicReencode:     1,
		JxlReencode:      1,
		BmpPillow:        1,
		WebpVips:         2,
		Cwebp:            2,
		Scour:            2,
		Gifsicle:         2,
		PngquantOxipng:   3,
		Mozjpeg:          3,
		HeicLossy:        3,
		JxlLossy:         3,
	}
	ra, oka := rank[a]
	rb, okb := rank[b]
	if !oka || !okb {
		return false
	}
	return ra < rb
}
