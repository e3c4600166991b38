package svgsan

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScript(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script><rect width="1" height="1"/></svg>`
	out, err := Sanitize([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "script") || strings.Contains(string(out), "alert") {
		t.Fatalf("script content survived sanitization: %s", out)
	}
}

func TestSanitize_RemovesEventHandlerAttrs(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><rect onclick="evil()" width="1" height="1"/></svg>`
	out, err := Sanitize([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "onclick") {
		t.Fatalf("onclick attribute survived sanitization: %s", out)
	}
}

func TestSanitize_RemovesDangerousHref(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><a href="javascript:alert(1)"><rect width="1" height="1"/></a></svg>`
	out, err := Sanitize([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "javascript:") {
		t.Fatalf("dangerous href survived sanitization: %s", out)
	}
}

func TestSanitize_IsIdempotent(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script><rect onload="x()" width="1" height="1"/></svg>`
	once, err := Sanitize([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Sanitize(once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if string(once) != string(twice) {
		t.Fatalf("sanitize is not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestSanitize_MalformedXMLErrors(t *testing.T) {
	_, err := Sanitize([]byte(`<svg><rect></svg`))
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}
