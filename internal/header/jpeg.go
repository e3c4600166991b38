package header

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/hackclub/imgopt/internal/imgformat"
)

func analyzeJPEG(ctx context.Context, data []byte, format imgformat.Format) (Info, error) {
	info := Info{
		Format:     format,
		FileSize:   len(data),
		ColorType:  ColorRGB,
		FrameCount: 1,
		RawData:    data,
	}

	var lumaQuantAvg float64
	var haveQuantAvg bool

	pos := 2 // skip SOI
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			pos++
			continue
		}
		marker := data[pos+1]
		if marker == 0xD8 || marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			pos += 2
			continue
		}
		if marker == 0xD9 { // EOI
			break
		}
		if pos+4 > len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		segStart := pos + 4
		segEnd := segStart + segLen - 2
		if segEnd > len(data) || segEnd < segStart {
			break
		}
		seg := data[segStart:segEnd]

		switch {
		case marker == 0xE1 && bytes.HasPrefix(seg, []byte("Exif\x00\x00")):
			info.HasEXIF = true
			info.HasMetadataChunks = true
		case marker == 0xEC || marker == 0xED || marker == 0xEE: // APP12/13/14, common metadata carriers
			info.HasMetadataChunks = true
		case marker == 0xDB: // DQT
			if avg, ok := firstLumaQuantAverage(seg); ok && !haveQuantAvg {
				lumaQuantAvg = avg
				haveQuantAvg = true
			}
		case marker == 0xC0: // SOF0: baseline
			parseSOF(seg, &info)
			info.IsProgressive = false
		case marker == 0xC2: // SOF2: progressive
			parseSOF(seg, &info)
			info.IsProgressive = true
		case marker == 0xC1, marker == 0xC3: // SOF1/SOF3, treated as non-progressive
			parseSOF(seg, &info)
			info.IsProgressive = false
		}

		if marker == 0xDA { // SOS: entropy-coded data follows, stop scanning markers
			break
		}
		pos = segEnd
	}

	if haveQuantAvg {
		info.EstimatedQuality = jpegQualityFromQuantAverage(lumaQuantAvg)
	} else {
		info.EstimatedQuality = 75 // spec.md fallback when DQT can't be read
	}

	img, decodeErr := decodeImage(data)
	if decodeErr != nil {
		info.FlatPixelRatio = Failed()
		info.UniqueColorRatio = Failed()
		return info, nil
	}
	sample := cropCentral(img, 64, 64)
	info.FlatPixelRatio = Value(flatPixelRatio(sample))
	info.UniqueColorRatio = Value(uniqueColorRatio(sample))

	return info, nil
}

func parseSOF(seg []byte, info *Info) {
	if len(seg) < 5 {
		return
	}
	info.Dimensions.H = int(binary.BigEndian.Uint16(seg[1:3]))
	info.Dimensions.W = int(binary.BigEndian.Uint16(seg[3:5]))
	info.BitDepth = int(seg[0])
	if len(seg) >= 6 {
		numComponents := int(seg[5])
		if numComponents == 1 {
			info.ColorType = ColorGrayscale
		} else if numComponents == 4 {
			info.ColorType = ColorCMYK
		}
	}
}

// firstLumaQuantAverage returns the mean value of the first (luminance, id 0)
// 8-bit quantization table found in a DQT segment, which may hold more than
// one table back to back.
func firstLumaQuantAverage(seg []byte) (float64, bool) {
	pos := 0
	for pos < len(seg) {
		precisionAndID := seg[pos]
		precision := precisionAndID >> 4
		id := precisionAndID & 0x0F
		pos++
		tableLen := 64
		if precision != 0 {
			tableLen = 128
		}
		if pos+tableLen > len(seg) {
			return 0, false
		}
		if id == 0 {
			var sum int
			if precision == 0 {
				for _, v := range seg[pos : pos+tableLen] {
					sum += int(v)
				}
				return float64(sum) / float64(tableLen), true
			}
			for i := pos; i+1 < pos+tableLen; i += 2 {
				sum += int(binary.BigEndian.Uint16(seg[i : i+2]))
			}
			return float64(sum) / float64(tableLen/2), true
		}
		pos += tableLen
	}
	return 0, false
}

// jpegQualityFromQuantAverage inverts libjpeg's quality-to-scale mapping to
// recover an approximate original encode quality from the luminance
// quantization table average (spec.md GLOSSARY: "JPEG quality reverse
// mapping").
func jpegQualityFromQuantAverage(avgQ float64) int {
	scale := avgQ / 57.625 * 100
	var quality float64
	if scale < 100 {
		quality = (200 - scale) / 2
	} else {
		quality = 5000 / scale
	}
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return int(quality + 0.5)
}
