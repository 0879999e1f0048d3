package introspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig configures a dev introspection Server.
type ServerConfig struct {
	// Addr is the address to listen on, e.g. ":6060".
	Addr string

	// StreamInterval is how often /debug/stream pushes a new snapshot.
	// Default: 500ms.
	StreamInterval time.Duration

	// TracerName names the otel tracer used for every route.
	// Default: "reactor/introspect".
	TracerName string

	MetricsOptions []MetricsOption
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":6060"
	}
	if c.StreamInterval <= 0 {
		c.StreamInterval = 500 * time.Millisecond
	}
	if c.TracerName == "" {
		c.TracerName = defaultTracerName
	}
}

// Server is the dev observability endpoint for a reactor graph: Prometheus
// metrics, a JSON graph snapshot, and a websocket feed of that snapshot.
// Nothing here touches the reactor engine's hot path; it only ever reads
// reactor.Snapshot() and whatever nodes were explicitly registered.
type Server struct {
	cfg      ServerConfig
	registry *Registry
	metrics  *metrics
	stream   *streamHub
	httpSrv  *http.Server
	stop     chan struct{}
	logger   *slog.Logger
}

// NewServer builds a Server backed by registry. Call Run to start listening.
func NewServer(registry *Registry, cfg ServerConfig) *Server {
	cfg.setDefaults()
	logger := slog.Default().With("component", "introspect")

	s := &Server{
		cfg:      cfg,
		registry: registry,
		metrics:  registerMetrics(cfg.MetricsOptions...),
		stream:   newStreamHub(registry, cfg.StreamInterval),
		stop:     make(chan struct{}),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Logger)

	r.Get("/metrics", traced(cfg.TracerName, "/metrics", s.handleMetrics))
	r.Get("/debug/graph", traced(cfg.TracerName, "/debug/graph", s.handleGraph))
	r.Get("/debug/stream", s.stream.handle) // websocket upgrade: not wrapped in an HTTP span

	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: r}
	return s
}

func (s *Server) handleMetrics(w http.ResponseWriter, req *http.Request) {
	s.metrics.refresh(s.registry)
	promhttp.Handler().ServeHTTP(w, req)
}

func (s *Server) handleGraph(w http.ResponseWriter, req *http.Request) {
	snap := s.registry.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

// Run starts the stream hub's broadcast loop and blocks serving HTTP until
// ctx is canceled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.stream.run(s.stop)

	s.logger.Info("introspection server listening", "addr", s.cfg.Addr)

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		close(s.stop)
		s.logger.Error("introspection server stopped", "error", err)
		return err
	case <-ctx.Done():
		close(s.stop)
		s.logger.Info("introspection server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
