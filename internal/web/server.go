package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/drinklog/internal/catalog"
	"github.com/vbonduro/drinklog/internal/metrics"
	"github.com/vbonduro/drinklog/internal/service"
	"golang.org/x/time/rate"
)

type Server struct {
	ledger         *service.Ledger
	catalog        *catalog.Service
	refreshLimiter *rate.Limiter
	mux            *http.ServeMux
	logger         *slog.Logger
}

// NewServer builds the JSON API. Catalog refreshes are limited to
// refreshPerMinute requests.
func NewServer(ledger *service.Ledger, cat *catalog.Service, refreshPerMinute int, logger *slog.Logger) *Server {
	if refreshPerMinute < 1 {
		refreshPerMinute = 1
	}
	s := &Server{
		ledger:         ledger,
		catalog:        cat,
		refreshLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(refreshPerMinute)), 1),
		mux:            http.NewServeMux(),
		logger:         logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", metrics.Handler())

	s.mux.HandleFunc("GET /entries", s.handleListEntries)
	s.mux.HandleFunc("POST /entries", s.handleAddEntry)
	s.mux.HandleFunc("DELETE /entries", s.handleRemoveEntries)
	s.mux.HandleFunc("GET /entries/{id}", s.handleGetEntry)
	s.mux.HandleFunc("DELETE /entries/{id}", s.handleRemoveEntry)
	s.mux.HandleFunc("PUT /entries/{id}/timestamp", s.handleUpdateTimestamp)

	s.mux.HandleFunc("GET /profile", s.handleGetProfile)
	s.mux.HandleFunc("PUT /profile", s.handleUpdateProfile)

	s.mux.HandleFunc("GET /status", s.handleStatus)
	s.mux.HandleFunc("GET /status/alcohol", s.handleAlcoholStatus)
	s.mux.HandleFunc("GET /status/caffeine", s.handleCaffeineStatus)

	s.mux.HandleFunc("GET /catalog", s.handleListCatalog)
	s.mux.Handle("POST /catalog/refresh", rateLimited(s.refreshLimiter, http.HandlerFunc(s.handleRefreshCatalog)))
	s.mux.HandleFunc("DELETE /catalog/cache", s.handleClearCatalogCache)
	s.mux.HandleFunc("POST /catalog/log", s.handleLogCatalogDrink)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// rateLimited rejects requests with 429 once limiter is exhausted.
func rateLimited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many refresh requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	metrics.InstrumentHandler(requestLogger(s.logger, securityHeaders(s.mux))).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
