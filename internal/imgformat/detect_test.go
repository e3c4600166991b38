package imgformat

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestDetect_JXLBare(t *testing.T) {
	f, err := Detect([]byte{0xFF, 0x0A, 0x00, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != JXL {
		t.Fatalf("got %s, want JXL", f)
	}
}

func TestDetect_PNGvsAPNG(t *testing.T) {
	plain := append(append([]byte{}, pngMagic...), chunk("IHDR", make([]byte, 13))...)
	plain = append(plain, chunk("IDAT", []byte{1, 2, 3})...)
	f, err := Detect(plain)
	if err != nil || f != PNG {
		t.Fatalf("got %s, %v; want PNG", f, err)
	}

	anim := append(append([]byte{}, pngMagic...), chunk("IHDR", make([]byte, 13))...)
	anim = append(anim, chunk("acTL", []byte{0, 0, 0, 1})...)
	anim = append(anim, chunk("IDAT", []byte{1, 2, 3})...)
	f, err = Detect(anim)
	if err != nil || f != APNG {
		t.Fatalf("got %s, %v; want APNG", f, err)
	}
}

func TestDetect_SVG(t *testing.T) {
	f, err := Detect([]byte("  \n<?xml version=\"1.0\"?><svg/>"))
	if err != nil || f != SVG {
		t.Fatalf("got %s, %v; want SVG", f, err)
	}
}

func TestDetect_SVGZ(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	gw.Write([]byte("<svg xmlns='http://www.w3.org/2000/svg'/>"))
	gw.Close()

	f, err := Detect(buf.Bytes())
	if err != nil || f != SVGZ {
		t.Fatalf("got %s, %v; want SVGZ", f, err)
	}
}

func TestDetect_JPEG(t *testing.T) {
	f, err := Detect([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0})
	if err != nil || f != JPEG {
		t.Fatalf("got %s, %v; want JPEG", f, err)
	}
}

func TestDetect_WEBP(t *testing.T) {
	data := append([]byte("RIFF"), 0, 0, 0, 0)
	data = append(data, []byte("WEBP")...)
	f, err := Detect(data)
	if err != nil || f != WEBP {
		t.Fatalf("got %s, %v; want WEBP", f, err)
	}
}

func TestDetect_Unsupported(t *testing.T) {
	_, err := Detect([]byte("not an image"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func chunk(typ string, data []byte) []byte {
	length := len(data)
	out := make([]byte, 0, 8+length+4)
	out = append(out, byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
	out = append(out, []byte(typ)...)
	out = append(out, data...)
	out = append(out, 0, 0, 0, 0) // fake CRC
	return out
}
