package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/presentation/graph"
	"github.com/aretw0/schematic/pkg/ports"
	"github.com/aretw0/schematic/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	errNotAnObject  = errors.New("body is not a JSON object")
	errTrailingData = errors.New("unexpected data after the JSON object")
)

// DefaultMaxBodyBytes caps validation request bodies.
const DefaultMaxBodyBytes int64 = 1 << 20

// Server exposes a catalog over a stateless JSON API.
type Server struct {
	Catalog      ports.Catalog
	logger       *slog.Logger
	gatherer     prometheus.Gatherer
	maxBodyBytes int64
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics serves g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewHandler creates a new HTTP handler for the catalog.
func NewHandler(catalog ports.Catalog, opts ...Option) http.Handler {
	s := &Server{
		Catalog:      catalog,
		logger:       slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	r.Route("/kinds", func(r chi.Router) {
		r.Get("/", s.ListKinds)
		r.Get("/{kind}", s.DescribeKind)
		r.Get("/{kind}/openapi", s.KindOpenAPI)
		r.Post("/{kind}/validate", s.Validate)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListKinds handles GET /kinds.
func (s *Server) ListKinds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"kinds": s.Catalog.Kinds()})
}

// DescribeKind handles GET /kinds/{kind}.
func (s *Server) DescribeKind(w http.ResponseWriter, r *http.Request) {
	decl, err := s.Catalog.Describe(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, decl)
}

// KindOpenAPI handles GET /kinds/{kind}/openapi.
func (s *Server) KindOpenAPI(w http.ResponseWriter, r *http.Request) {
	schema, err := s.Catalog.OpenAPI(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, schema)
}

// Validate handles POST /kinds/{kind}/validate.
// The body is a JSON object of field values; the response is a schematic.Report.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	data, err := decodeObject(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body: expected a JSON object", http.StatusBadRequest)
		s.logger.Warn("Validate: Invalid request body", "kind", kind, "error", err)
		return
	}

	report, err := s.Catalog.Validate(kind, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// decodeObject reads exactly one JSON object from body. null and trailing
// content are rejected.
func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errNotAnObject
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	return data, nil
}

// GetGraph handles GET /graph, returning a Mermaid class diagram of all kinds.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	decls, err := ports.Declarations(s.Catalog)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(decls))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "schematic-http",
		"version": strings.TrimSpace(schematic.Version),
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, registry.ErrKindNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	s.logger.Error("request failed", "error", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
