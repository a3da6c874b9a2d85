package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/collatz"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/observability"
	"github.com/aretw0/collatz/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// Config is the responder configuration, fixed at construction time.
type Config struct {
	// Store holds the persisted state document. Required.
	Store ports.StateStore
	// StaticDir is served for every path without a dedicated route.
	// Dotfiles and YAML files are never served, nor are directory listings.
	// Empty disables static serving.
	StaticDir string
	// Hidden lists further file names never served from StaticDir, such as a JSON config file.
	Hidden []string
	// Metrics records request outcomes when set.
	Metrics *observability.Metrics
	// Gatherer backs GET /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server answers stats requests from a persisted state document.
// It never runs the engine.
type Server struct {
	store   ports.StateStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler of the stats responder.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	r := chi.NewRouter()

	for _, p := range []string{"/stats", "/stats/", "/stats.json", "/stats.json/"} {
		r.Get(p, s.GetStats)
	}
	for _, p := range []string{"/collatz_state.json", "/state.json"} {
		r.Get(p, s.GetStateFile)
	}
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	if cfg.StaticDir != "" {
		r.NotFound(http.FileServer(assetDir{root: http.Dir(cfg.StaticDir), hidden: cfg.Hidden}).ServeHTTP)
	}

	return enableCORS(r)
}

// GetSwagger parses the embedded API description.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load api description: %w", err)
	}
	return doc, nil
}

// OpenAPISpec returns the embedded API description.
func OpenAPISpec() []byte {
	return rawSpec
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStats handles the GET /stats request.
// The document is validated as JSON but written back byte for byte.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Load(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			s.writeStats(w, http.StatusNotFound, errorPayload("state file not found"))
			return
		}
		s.logger.Error("Stats: failed to load state", "error", err)
		s.writeStats(w, http.StatusInternalServerError, errorPayload(fmt.Sprintf("failed to read state: %v", err)))
		return
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("Stats: malformed state document", "error", err, "size", len(data))
		s.writeStats(w, http.StatusInternalServerError, errorPayload(fmt.Sprintf("invalid JSON: %v", err)))
		return
	}

	s.writeStats(w, http.StatusOK, data)
}

// GetStateFile handles GET /collatz_state.json and /state.json for static clients.
func (s *Server) GetStateFile(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Load(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			http.Error(w, "State file not found", http.StatusNotFound)
			return
		}
		s.logger.Error("StateFile: failed to load state", "error", err)
		http.Error(w, "Failed to read state file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	resp := map[string]string{
		"app":         "collatz-stats",
		"version":     strings.TrimSpace(collatz.Version),
		"api_version": apiVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeStats(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("Stats: write failed", "error", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveStatsRequest(status)
	}
}

func errorPayload(msg string) []byte {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return body
}
