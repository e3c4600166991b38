package imgformat

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/hackclub/imgopt/internal/errs"
)

var (
	pngMagic   = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegMagic  = []byte{0xFF, 0xD8, 0xFF}
	gif87Magic = []byte("GIF87a")
	gif89Magic = []byte("GIF89a")
	bmpMagic   = []byte("BM")
	tiffLE     = []byte("II*\x00")
	tiffBE     = []byte("MM\x00*")
	jxlBare    = []byte{0xFF, 0x0A}
	jxlISOBMFF = []byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20, 0x0D, 0x0A, 0x87, 0x0A}
	gzipMagic  = []byte{0x1F, 0x8B}
)

// brandFormats maps an ISO-BMFF brand (4 ASCII bytes) to a Format.
var brandFormats = map[string]Format{
	"jxl ": JXL,
	"avif": AVIF,
	"avis": AVIF,
	"heic": HEIC,
	"heix": HEIC,
	"mif1": HEIC,
}

// Detect classifies raw bytes into a Format, following spec rule order
// (first match wins). Inputs shorter than 4 bytes cannot be classified.
func Detect(data []byte) (Format, error) {
	if len(data) < 4 {
		return "", &errs.UnsupportedFormatError{Prefix: data}
	}

	if bytes.HasPrefix(data, jxlBare) {
		return JXL, nil
	}
	if bytes.HasPrefix(data, jxlISOBMFF) {
		return JXL, nil
	}
	if bytes.HasPrefix(data, pngMagic) {
		if isAPNG(data) {
			return APNG, nil
		}
		return PNG, nil
	}
	if bytes.HasPrefix(data, jpegMagic) {
		return JPEG, nil
	}
	if bytes.HasPrefix(data, gif87Magic) || bytes.HasPrefix(data, gif89Magic) {
		return GIF, nil
	}
	if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WEBP, nil
	}
	if bytes.HasPrefix(data, bmpMagic) {
		return BMP, nil
	}
	if bytes.HasPrefix(data, tiffLE) || bytes.HasPrefix(data, tiffBE) {
		return TIFF, nil
	}
	if len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp")) {
		if f, ok := detectISOBMFFBrand(data); ok {
			return f, nil
		}
		return "", &errs.UnsupportedFormatError{Prefix: data}
	}
	if bytes.HasPrefix(data, gzipMagic) {
		if payload, ok := gunzipSniff(data); ok && looksLikeSVG(payload) {
			return SVGZ, nil
		}
	}
	if looksLikeSVG(data) {
		return SVG, nil
	}

	return "", &errs.UnsupportedFormatError{Prefix: data}
}

// isAPNG reports whether an acTL chunk appears before the first IDAT chunk.
func isAPNG(data []byte) bool {
	pos := len(pngMagic)
	for pos+8 <= len(data) {
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		typ := string(data[pos+4 : pos+8])
		switch typ {
		case "acTL":
			return true
		case "IDAT":
			return false
		}
		pos += 8 + int(length) + 4 // length + type + data + crc
		if int64(pos) > int64(len(data)) {
			break
		}
	}
	return false
}

// detectISOBMFFBrand inspects the major brand at offset 8, falling back to
// the compatible-brands list that follows the minor version field.
func detectISOBMFFBrand(data []byte) (Format, bool) {
	if len(data) < 8 {
		return "", false
	}
	boxLen := int(binary.BigEndian.Uint32(data[0:4]))
	if boxLen < 16 || boxLen > len(data) {
		boxLen = len(data)
	}
	if len(data) < 16 {
		return "", false
	}
	major := string(data[8:12])
	if f, ok := brandFormats[major]; ok {
		return f, true
	}
	// Compatible brands: 4-byte entries starting at offset 16 until boxLen.
	for off := 16; off+4 <= boxLen && off+4 <= len(data); off += 4 {
		brand := string(data[off : off+4])
		if f, ok := brandFormats[brand]; ok {
			return f, true
		}
	}
	return "", false
}

func gunzipSniff(data []byte) ([]byte, bool) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer r.Close()
	// Only need enough bytes to sniff the XML/SVG prolog.
	buf := make([]byte, 512)
	n, _ := io.ReadFull(r, buf)
	if n == 0 {
		return nil, false
	}
	return buf[:n], true
}

// looksLikeSVG skips a UTF-8 BOM and leading whitespace, then checks for an
// XML prolog or a bare <svg> root element.
func looksLikeSVG(data []byte) bool {
	b := data
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		b = b[3:]
	}
	b = bytes.TrimLeft(b, " \t\r\n")
	return bytes.HasPrefix(b, []byte("<?xml")) || bytes.HasPrefix(b, []byte("<svg"))
}
