// Package imgformat classifies raw image bytes into a closed Format tag.
// Detection never trusts a file extension or a caller-provided MIME type —
// only the bytes themselves.
package imgformat

// Format is a closed tag. Dispatch on it with an exhaustive switch, never a
// map lookup, so adding a format that some dispatcher forgot is a compile
// error (Design Notes: "runtime reflection on optimizer registry").
type Format string

const (
	PNG  Format = "png"
	APNG Format = "apng"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
	GIF  Format = "gif"
	SVG  Format = "svg"
	SVGZ Format = "svgz"
	AVIF Format = "avif"
	HEIC Format = "heic"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
	JXL  Format = "jxl"
)

// IsVector reports whether the format is XML/SVG-based rather than a raster
// container.
func (f Format) IsVector() bool {
	return f == SVG || f == SVGZ
}

// Valid reports whether f is one of the closed tags above.
func (f Format) Valid() bool {
	switch f {
	case PNG, APNG, JPEG, WEBP, GIF, SVG, SVGZ, AVIF, HEIC, TIFF, BMP, JXL:
		return true
	}
	return false
}
