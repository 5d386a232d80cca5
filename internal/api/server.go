// Package api exposes the hedge calculator over HTTP as a JSON API.
// Handlers hold no per-request state; every request recomputes from its body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/amtfdev/hedgecalculator/internal/config"
	apperrors "github.com/amtfdev/hedgecalculator/internal/errors"
	"github.com/amtfdev/hedgecalculator/internal/export"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/logging"
)

// maxBodyBytes caps request bodies; option lists are small.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	presets hedge.Presets
	clock   func() time.Time
	started time.Time
}

// NewServer creates a Server. A nil clock means time.Now.
func NewServer(cfg *config.Config, logger zerolog.Logger, presets hedge.Presets, clock func() time.Time) *Server {
	if clock == nil {
		clock = time.Now
	}
	return &Server{
		cfg:     cfg,
		logger:  logging.WithOperation(logger, "api"),
		presets: presets,
		clock:   clock,
		started: time.Now(),
	}
}

type apiRoute struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

func (s *Server) routes() []apiRoute {
	return []apiRoute{
		{Path: "/defaults", Method: http.MethodGet, Handler: s.handleDefaults},
		{Path: "/indexes", Method: http.MethodGet, Handler: s.handleIndexes},
		{Path: "/calc", Method: http.MethodPost, Handler: s.handleCalc},
		{Path: "/chart", Method: http.MethodPost, Handler: s.handleChart},
		{Path: "/export", Method: http.MethodPost, Handler: s.handleExport},
		{Path: "/selftest", Method: http.MethodGet, Handler: s.handleSelfTest},
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	for _, rt := range s.routes() {
		api.HandleFunc(rt.Path, rt.Handler).Methods(rt.Method)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})

	return s.wrap(r)
}

// wrap layers the middleware around h. Recovery sits inside compression so
// a recovered 500 is written through the encoder like any other response.
func (s *Server) wrap(h http.Handler) http.Handler {
	h = s.recoverPanics(h)
	if s.cfg == nil || s.cfg.Server.Compress {
		h = ZstdMiddleware(h)
	}
	return s.logRequests(h)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return logging.WithLogger(ctx, s.logger)
		},
	}
	shutdownTimeout := 5 * time.Second
	if s.cfg != nil {
		srv.ReadTimeout = s.cfg.Server.ReadTimeout
		srv.WriteTimeout = s.cfg.Server.WriteTimeout
		if s.cfg.Server.ShutdownTimeout > 0 {
			shutdownTimeout = s.cfg.Server.ShutdownTimeout
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", addr).Msg("Hedge API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("Hedge API shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	report := s.health()
	status := http.StatusOK
	if !report.OK {
		status = http.StatusServiceUnavailable
	}
	s.respond(w, status, report)
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	session := hedge.NewSession(s.clock)
	if s.cfg != nil {
		now := s.clock()
		s.respond(w, http.StatusOK, session.Load(s.cfg.DefaultRaw(hedge.DefaultRows(now))))
		return
	}
	s.respond(w, http.StatusOK, session.Init())
}

func (s *Server) handleIndexes(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.presets.Sorted())
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.recompute(req, "api.calc")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.respond(w, http.StatusOK, res)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.recompute(req, "api.chart")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.respond(w, http.StatusOK, res.Chart)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.recompute(req.Inputs, "api.export")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc := export.Build(res, req.Notes, s.clock())
	switch strings.ToLower(req.Format) {
	case "", export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case export.FormatYAML, "yml":
		w.Header().Set("Content-Type", "application/yaml")
	default:
		writeError(w, http.StatusBadRequest, apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "%q", req.Format))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, doc, req.Format); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write export")
		w.Header().Del("Content-Type")
		writeError(w, http.StatusInternalServerError, errors.New("export failed"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSelfTest(w http.ResponseWriter, _ *http.Request) {
	report := hedge.SelfTest(s.clock())
	status := http.StatusOK
	if !report.OK {
		status = http.StatusInternalServerError
	}
	s.respond(w, status, report)
}

// recompute applies an optional preset and runs the pipeline.
func (s *Server) recompute(req calcRequest, trigger string) (hedge.Result, error) {
	raw := req.raw()
	if req.Preset != "" {
		preset, err := s.presets.Lookup(req.Preset)
		if err != nil {
			return hedge.Result{}, err
		}
		raw = hedge.ApplyPreset(raw, preset)
	}

	res := hedge.Recompute(raw, s.clock())
	logging.LogRecompute(s.logger, trigger, len(raw.Options), len(res.Solutions), res.Dropped)
	return res, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Wrap(apperrors.ErrBadRequest, "empty body")
		}
		return apperrors.Wrapf(apperrors.ErrBadRequest, "invalid JSON: %v", err)
	}
	return nil
}

// respond writes v as JSON, logging when it cannot be encoded.
func (s *Server) respond(w http.ResponseWriter, status int, v interface{}) {
	if err := writeJSON(w, status, v); err != nil {
		s.logger.Error().Err(err).Int("status", status).Msg("Failed to write response")
	}
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(v)
	if err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "internal error", Status: status})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, werr := w.Write(buf.Bytes()); err == nil {
		err = werr
	}
	return err
}

func writeError(w http.ResponseWriter, status int, err error) {
	_ = writeJSON(w, status, errorResponse{Error: err.Error(), Status: status})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogRequest(s.logger, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Addr picks the listen address: an explicit override, then the config,
// then :8080.
func Addr(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg != nil && cfg.Server.Addr != "" {
		return cfg.Server.Addr
	}
	return ":8080"
}
