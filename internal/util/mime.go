package util

import (
	"net/http"

	"github.com/hackclub/imgopt/internal/imgformat"
)

// DetectContentType detects the MIME type of the given data using stdlib
// content sniffing. The URL fetcher uses it when a response carries no
// Content-Type header (imgformat.Detect is the authority for dispatch
// decisions).
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

var formatMIME = map[imgformat.Format]string{
	imgformat.PNG:  "image/png",
	imgformat.APNG: "image/apng",
	imgformat.JPEG: "image/jpeg",
	imgformat.WEBP: "image/webp",
	imgformat.GIF:  "image/gif",
	imgformat.SVG:  "image/svg+xml",
	imgformat.SVGZ: "image/svg+xml",
	imgformat.AVIF: "image/avif",
	imgformat.HEIC: "image/heic",
	imgformat.TIFF: "image/tiff",
	imgformat.BMP:  "image/bmp",
	imgformat.JXL:  "image/jxl",
}

// MIMEForFormat maps a detected Format to the MIME type used on outbound
// optimize responses.
func MIMEForFormat(f imgformat.Format) string {
	if mime, ok := formatMIME[f]; ok {
		return mime
	}
	return "application/octet-stream"
}
