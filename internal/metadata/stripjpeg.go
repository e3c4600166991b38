package metadata

import (
	"bytes"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// stripJPEG replaces the EXIF segment with a rebuilt, minimal one carrying
// only the orientation tag, since orientation changes how the image renders
// and every other EXIF field (camera make/model, GPS, thumbnails,
// timestamps) does not. All other segments (ICC profile, XMP, IPTC,
// comments) are written back unchanged.
func stripJPEG(data []byte) ([]byte, error) {
	parser := jpegstructure.NewJpegMediaParser()
	intfc, err := parser.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("metadata: jpeg parse: %w", err)
	}
	segments := intfc.(*jpegstructure.SegmentList)

	orientation := uint16(1)
	if rootIfd, _, err := segments.Exif(); err == nil && rootIfd != nil {
		if results, err := rootIfd.FindTagWithName("Orientation"); err == nil && len(results) > 0 {
			if raw, err := rootIfd.TagValue(results[0]); err == nil {
				if v, ok := raw.([]uint16); ok && len(v) > 0 {
					orientation = v[0]
				}
			}
		}
	}

	rootIb := exif.NewIfdBuilder(exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	if err := rootIb.SetStandardWithName("Orientation", orientation); err != nil {
		return nil, fmt.Errorf("metadata: jpeg orientation rebuild: %w", err)
	}
	if err := segments.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("metadata: jpeg exif replace: %w", err)
	}

	var buf bytes.Buffer
	if err := segments.Write(&buf); err != nil {
		return nil, fmt.Errorf("metadata: jpeg write: %w", err)
	}
	return buf.Bytes(), nil
}
