package codec

import "encoding/binary"

// PNGChunk is one length-prefixed PNG chunk, CRC included verbatim so
// callers that only filter chunks never need to recompute it.
type PNGChunk struct {
	Type string
	Data []byte
	CRC  []byte
}

var PNGMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// WalkPNGChunks parses the chunk stream following the 8-byte signature,
// calling visit for each chunk in order. If the trailing bytes are
// truncated (not enough bytes left for a full chunk), the remainder is
// copied verbatim via a final synthetic chunk of Type "" so callers that
// reassemble output don't silently drop it (spec.md §4.3: "must tolerate
// truncated trailing chunks by copying remainder verbatim").
func WalkPNGChunks(data []byte, visit func(PNGChunk) bool) {
	if len(data) < len(PNGMagic) {
		return
	}
	pos := len(PNGMagic)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		dataStart := pos + 8
		dataEnd := dataStart + length
		crcEnd := dataEnd + 4
		if dataEnd > len(data) || crcEnd > len(data) {
			if !visit(PNGChunk{Type: "", Data: data[pos:]}) {
				return
			}
			return
		}
		if !visit(PNGChunk{Type: typ, Data: data[dataStart:dataEnd], CRC: data[dataEnd:crcEnd]}) {
			return
		}
		pos = crcEnd
	}
	if pos < len(data) {
		visit(PNGChunk{Type: "", Data: data[pos:]})
	}
}

// EncodePNGChunk re-serializes a chunk (length + type + data + crc).
func EncodePNGChunk(c PNGChunk) []byte {
	if c.Type == "" {
		return append([]byte{}, c.Data...)
	}
	out := make([]byte, 0, 8+len(c.Data)+4)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(c.Data)))
	out = append(out, lenBuf[:]...)
	out = append(out, []byte(c.Type)...)
	out = append(out, c.Data...)
	out = append(out, c.CRC...)
	return out
}
