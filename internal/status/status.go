// Package status provides a lightweight HTTP API for runtime inspection of a
// running witness generator.
//
// Endpoints:
//
//	GET /status   - health, uptime, configuration summary
//	GET /metrics  - a snapshot of all pipeline counters
package status

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tlsn-go/witnessgen/internal/config"
	"github.com/tlsn-go/witnessgen/internal/logger"
	"github.com/tlsn-go/witnessgen/internal/metrics"
)

// Server is the status API server.
type Server struct {
	cfg       *config.Config
	startTime time.Time
	token     string
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// New creates a status server bound to cfg's token and reporting m's
// counters.
func New(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		startTime: time.Now(),
		token:     cfg.StatusToken,
		metrics:   m,
		log:       log,
	}
	if s.token != "" {
		log.Info("auth", "bearer token authentication enabled")
	}
	return s
}

// Handler returns the HTTP handler for the status API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.authMiddleware)
	r.Get("/status", s.handleStatus)
	r.Get("/metrics", s.handleMetrics)
	return r
}

// authMiddleware rejects requests lacking a valid Bearer token, if one is
// configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(auth[len(prefix):])), []byte(s.token)) != 1 {
			s.log.Warnf("auth", "unauthorized access from %s to %s", r.RemoteAddr, r.URL.Path)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode", "json encode error: %v", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	type response struct {
		Status         string `json:"status"`
		Uptime         string `json:"uptime"`
		BindAddress    string `json:"bindAddress"`
		MaxStackHeight int    `json:"maxStackHeight"`
		CacheBackend   string `json:"cacheBackend"`
	}
	resp := response{
		Status:         "running",
		Uptime:         time.Since(s.startTime).Round(time.Second).String(),
		BindAddress:    s.cfg.BindAddress,
		MaxStackHeight: s.cfg.MaxStackHeight,
		CacheBackend:   s.cfg.CacheBackend,
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		http.Error(w, "metrics not enabled", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// ListenAndServe starts the status HTTP server on cfg.BindAddress:cfg.StatusPort.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.StatusPort)
	s.log.Infof("listen", "status server listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
