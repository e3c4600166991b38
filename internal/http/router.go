// Package http is the thin HTTP layer in front of the optimize/estimate
// core (spec.md §6: "invoked by an HTTP layer (thin, out of scope)"). It
// owns request parsing, the compression gate, and response headers; all
// format and encoding logic lives in internal/optimize and internal/predict.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hackclub/imgopt/internal/config"
	"github.com/hackclub/imgopt/internal/errs"
	"github.com/hackclub/imgopt/internal/gate"
	"github.com/hackclub/imgopt/internal/optimize"
	"github.com/hackclub/imgopt/internal/predict"
	"github.com/hackclub/imgopt/internal/util"
)

type Server struct {
	config    *config.Config
	logger    zerolog.Logger
	gate      *gate.Gate
	router    *optimize.Router
	estimator *predict.Estimator
	fetcher   *util.HTTPFetcher
}

func NewServer(
	cfg *config.Config,
	logger zerolog.Logger,
	g *gate.Gate,
	router *optimize.Router,
	estimator *predict.Estimator,
) *Server {
	return &Server{
		config:    cfg,
		logger:    logger,
		gate:      g,
		router:    router,
		estimator: estimator,
		fetcher:   util.NewHTTPFetcher(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Original-Size", "X-Optimized-Size", "X-Reduction-Percent", "X-Original-Format", "X-Optimization-Method"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/optimize", s.HandleOptimize)
		r.Post("/estimate", s.HandleEstimate)
	})

	return r
}

// Middleware

func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("ip", r.RemoteAddr).
			Msg("request")
	})
}

// Handlers

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"inFlight":  s.gate.InFlight(),
	})
}

// HandleOptimize reads image bytes from the request (raw body, or a
// "file" multipart field, or a "url" fetched via the SSRF-guarded
// util.HTTPFetcher), runs them through the compression gate and the
// optimize.Router, and writes the winning candidate back with the
// spec's X-* response headers.
func (s *Server) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := s.readImageInput(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg := s.optimizeConfigFromRequest(r)

	if err := s.gate.Acquire(ctx); err != nil {
		s.writeError(w, err)
		return
	}
	defer s.gate.Release()

	result, err := s.router.Optimize(ctx, data, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResult(w, result)
}

// HandleEstimate mirrors HandleOptimize but never runs an optimizer: it
// runs only the header analyzer (whose content probes encode small samples)
// and the predictor formulas.
func (s *Server) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := s.readImageInput(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg := s.optimizeConfigFromRequest(r)

	prediction, err := s.estimator.Estimate(ctx, data, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"format":            prediction.Format,
		"method":            prediction.Method,
		"original_size":     prediction.OriginalSize,
		"predicted_size":    prediction.PredictedSize,
		"reduction_percent": prediction.ReductionPercent,
		"potential":         prediction.Potential,
		"confidence":        prediction.Confidence,
		"already_optimized": prediction.AlreadyOptimized,
	})
}

func (s *Server) readImageInput(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	if imageURL := r.URL.Query().Get("url"); imageURL != "" {
		data, _, err := s.fetcher.FetchURL(r.Context(), imageURL)
		if err != nil {
			return nil, &errs.OptimizationError{Tool: "url-fetch", ExitCode: -1, Err: err}
		}
		return data, nil
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errs.ErrFileTooLarge
		}
		return nil, err
	}
	if int64(len(data)) > s.config.MaxUploadBytes {
		return nil, errs.ErrFileTooLarge
	}
	return data, nil
}

func (s *Server) optimizeConfigFromRequest(r *http.Request) optimize.Config {
	q := r.URL.Query()
	cfg := optimize.Config{
		Quality:         s.config.DefaultQuality,
		StripMetadata:   s.config.StripMetadata,
		ProgressiveJPEG: s.config.ProgressiveJPEG,
		PNGLossy:        s.config.PNGLossy,
	}
	if v := q.Get("quality"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Quality = parsed
		}
	}
	if v := q.Get("strip_metadata"); v != "" {
		cfg.StripMetadata = v == "true" || v == "1"
	}
	if v := q.Get("progressive"); v != "" {
		cfg.ProgressiveJPEG = v == "true" || v == "1"
	}
	if v := q.Get("png_lossy"); v != "" {
		cfg.PNGLossy = v == "true" || v == "1"
	}
	if v := q.Get("max_reduction"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxReduction = &parsed
		}
	}
	return cfg
}

func (s *Server) writeResult(w http.ResponseWriter, result optimize.Result) {
	reduction := 0.0
	if result.OriginalSize > 0 {
		reduction = 100 * (1 - float64(result.OutputSize)/float64(result.OriginalSize))
	}

	w.Header().Set("Content-Type", util.MIMEForFormat(result.Format))
	w.Header().Set("X-Original-Size", strconv.Itoa(result.OriginalSize))
	w.Header().Set("X-Optimized-Size", strconv.Itoa(result.OutputSize))
	w.Header().Set("X-Reduction-Percent", strconv.FormatFloat(reduction, 'f', 2, 64))
	w.Header().Set("X-Original-Format", string(result.Format))
	w.Header().Set("X-Optimization-Method", string(result.Method))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, errs.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errs.ErrBackpressure):
		var bp *errs.BackpressureError
		if errors.As(err, &bp) {
			w.Header().Set("Retry-After", strconv.Itoa(bp.RetryAfterSeconds))
		}
		status = http.StatusTooManyRequests
	case errors.Is(err, errs.ErrToolTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrMalformedSvg):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrOptimization):
		status = http.StatusBadGateway
	}

	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
