package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNearest = 10

var errNotReady = errors.New("region centers not loaded yet")

// Service is the query surface behind the JSON API.
type Service interface {
	Regions() domain.CenterMap
	Nearest(region string, n int) ([]domain.RegionDistance, error)
	Locate(p domain.Position) (domain.RegionDistance, bool)
	Report(ctx context.Context, term string) (domain.Report, error)
	ScoreWords(text string) []domain.WordScore
}

// Server exposes health, readiness, metrics, and the query API. The API and
// readiness stay unavailable until a Service is attached.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	svc        atomic.Pointer[serviceRef]
}

type serviceRef struct{ Service }

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and /api/v1 routes.
func NewServer(addr string, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(s))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Get("/regions/{name}/nearest", s.handleNearest)
		r.Get("/locate", s.handleLocate)
		r.Get("/sentiment", s.handleSentiment)
		r.Post("/words", s.handleWords)
	})

	return s
}

// Attach makes svc available to the API and marks the server ready.
func (s *Server) Attach(svc Service) {
	s.svc.Store(&serviceRef{svc})
}

// CheckReadiness reports whether a Service has been attached.
func (s *Server) CheckReadiness(_ context.Context) error {
	if s.svc.Load() == nil {
		return errNotReady
	}
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) service(w http.ResponseWriter) (Service, bool) {
	ref := s.svc.Load()
	if ref == nil {
		writeError(w, http.StatusServiceUnavailable, errNotReady)
		return nil, false
	}
	return ref.Service, true
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	svc, ok := s.service(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, svc.Regions())
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w)
	if !ok {
		return
	}

	n := defaultNearest
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("n must be an integer"))
			return
		}
		n = parsed
	}

	regions, err := svc.Nearest(chi.URLParam(r, "name"), n)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regions)
}

var errNoRegions = errors.New("no regions loaded")

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w)
	if !ok {
		return
	}

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, errors.New("lat must be a number in [-90, 90]"))
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, errors.New("lon must be a number in [-180, 180]"))
		return
	}

	region, ok := svc.Locate(domain.Position{Lat: lat, Lon: lon})
	if !ok {
		writeError(w, http.StatusNotFound, errNoRegions)
		return
	}
	writeJSON(w, http.StatusOK, region)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w)
	if !ok {
		return
	}
	report, err := svc.Report(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type wordsRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.service(w)
	if !ok {
		return
	}

	var req wordsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("body must be a JSON object with a text field"))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}
	writeJSON(w, http.StatusOK, svc.ScoreWords(req.Text))
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownRegion):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidSentimentValue),
		errors.Is(err, domain.ErrInvalidPolygon),
		errors.Is(err, domain.ErrEmptyRegionSet):
		writeError(w, http.StatusBadRequest, err)
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
