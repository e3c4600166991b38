package http

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hackclub/imgopt/internal/config"
	"github.com/hackclub/imgopt/internal/gate"
	"github.com/hackclub/imgopt/internal/optimize"
	"github.com/hackclub/imgopt/internal/predict"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><!-- comment --><rect width="10" height="10"/></svg>`

func newTestServer() *Server {
	cfg := &config.Config{
		DefaultQuality: 80,
		MaxUploadBytes: 1 << 20,
	}
	return NewServer(cfg, zerolog.Nop(), gate.New(1, 1), optimize.NewRouter(5*time.Second), predict.NewEstimator())
}

func TestHandleOptimize_SVGRoundTrip(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("POST", "/v1/optimize", bytes.NewReader([]byte(sampleSVG)))
	rec := httptest.NewRecorder()

	s.HandleOptimize(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Original-Format") != "svg" {
		t.Fatalf("expected svg format header, got %q", rec.Header().Get("X-Original-Format"))
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("<!--")) {
		t.Fatalf("expected comment to be stripped from optimized output")
	}
}

func TestHandleOptimize_UnsupportedFormatReturns415(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("POST", "/v1/optimize", bytes.NewReader([]byte("not an image")))
	rec := httptest.NewRecorder()

	s.HandleOptimize(rec, req)

	if rec.Code != 415 {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestHandleEstimate_SVGReturnsPrediction(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("POST", "/v1/estimate", bytes.NewReader([]byte(sampleSVG)))
	rec := httptest.NewRecorder()

	s.HandleEstimate(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"format":"svg"`)) {
		t.Fatalf("expected svg format in response, got %s", rec.Body.String())
	}
}
