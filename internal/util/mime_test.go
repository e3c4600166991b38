package util

import (
	"testing"

	"github.com/hackclub/imgopt/internal/imgformat"
)

func TestMIMEForFormat(t *testing.T) {
	tests := []struct {
		format   imgformat.Format
		expected string
	}{
		{imgformat.PNG, "image/png"},
		{imgformat.JPEG, "image/jpeg"},
		{imgformat.WEBP, "image/webp"},
		{imgformat.GIF, "image/gif"},
		{imgformat.SVG, "image/svg+xml"},
		{imgformat.Format("bogus"), "application/octet-stream"},
	}

	for _, test := range tests {
		if got := MIMEForFormat(test.format); got != test.expected {
			t.Errorf("MIMEForFormat(%s) = %s, expected %s", test.format, got, test.expected)
		}
	}
}
