// Package server provides the HTTP REST API for the offer analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/offer-analyzer/internal/cache"
	"github.com/jonathan/offer-analyzer/internal/compliance"
	"github.com/jonathan/offer-analyzer/internal/contribution"
	"github.com/jonathan/offer-analyzer/internal/db"
	"github.com/jonathan/offer-analyzer/internal/engine"
	"github.com/jonathan/offer-analyzer/internal/llm"
	"github.com/jonathan/offer-analyzer/internal/market"
	"github.com/jonathan/offer-analyzer/internal/metrics"
	"github.com/jonathan/offer-analyzer/internal/scripts"
	"github.com/jonathan/offer-analyzer/internal/server/ratelimit"
)

// Server owns the HTTP listener and every backend it fans out to.
type Server struct {
	httpServer  *http.Server
	logger      *zap.Logger
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter

	db            *db.DB       // nil without DATABASE_URL; db-backed routes return 503
	cache         *cache.Cache // nil without REDIS_ADDR; assessments skip memoization
	engine        *engine.Engine
	rates         compliance.RateSource
	contributions *contribution.Service
	scripts       *scripts.Generator
	llmClient     llm.Client // nil without an API key
}

// Config carries the settings New needs to stand up a server.
type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string
	APIKey      string
	MinSamples  int
	RateLimit   int // Per-minute budget for unlisted endpoints
	WriteLimit  int // Per-minute budget for the strict write endpoints
}

// New creates a new server instance. The database, Redis, and the LLM are
// all optional: without them the server still assesses offers from the
// default market snapshot and the embedded statutory table.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		logger:  logger,
		metrics: metrics.New(),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	if cfg.RedisAddr != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisAddr)
		if err != nil {
			// Memoization is an optimization; serve without it.
			logger.Warn("redis unavailable, assessment caching disabled", zap.Error(err))
		} else {
			s.cache = cache.New(client, cache.WithLogger(logger))
		}
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
	}

	// Assemble the assessment pipeline. A nil sample store resolves every
	// assessment from the default snapshot; the rate source falls back to
	// the embedded table when the database is absent or misses.
	var store market.SampleStore
	if s.db != nil {
		store = s.db
	}
	resolver := market.NewResolver(store, market.WithMinSamples(cfg.MinSamples))
	s.rates = db.NewRateSource(s.db)
	s.engine = engine.New(resolver, s.rates)
	s.scripts = scripts.NewGenerator(s.llmClient, scripts.WithLogger(logger))
	if s.db != nil {
		s.contributions = contribution.NewService(s.db)
	}

	// Rate limit config comes from the environment; explicit settings on cfg
	// override it.
	rlConfig := ratelimit.LoadConfig()
	if cfg.RateLimit > 0 {
		rlConfig.DefaultLimit = cfg.RateLimit
	}
	if cfg.WriteLimit > 0 {
		rlConfig.EndpointConfigs = ratelimit.DefaultEndpointConfigs(cfg.WriteLimit)
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withMetrics(s.withCORS(s.routes())))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM-backed endpoints can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Assessment endpoints
	mux.HandleFunc("POST /assess", s.handleAssess)
	mux.HandleFunc("POST /parse-offer", s.handleParseOffer)
	mux.HandleFunc("POST /scripts", s.handleGenerateScripts)

	// Crowdsourced salary data
	mux.HandleFunc("POST /contributions", s.handleSubmitContribution)

	// Minimum wage lookups and admin CRUD
	mux.HandleFunc("GET /umk", s.handleListUMKRates)
	mux.HandleFunc("GET /umk/{city}", s.handleLookupUMK)
	mux.HandleFunc("POST /umk", s.handleCreateUMKRate)
	mux.HandleFunc("PUT /umk/{region}", s.handleUpdateUMKRate)
	mux.HandleFunc("DELETE /umk/{region}", s.handleDeleteUMKRate)
	mux.HandleFunc("GET /umk-stats", s.handleUMKStats)

	// Operational endpoints
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	s.logger.Info("server stopped")
	return nil
}

// close releases everything the server holds open.
func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("failed to close cache", zap.Error(err))
		}
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS allows browser clients from any origin and short-circuits
// preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client token buckets before any handler runs.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging emits one structured log line per completed request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withMetrics records request counts and latencies, labeled by the matched
// route pattern so path parameters don't explode the label space.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux fills in Pattern during dispatch
		route := strings.TrimPrefix(r.Pattern, r.Method+" ")
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(route, r.Method, rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// handleHealth reports liveness. It deliberately does not probe the database
// or Redis; the server degrades per-route instead of going unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes data as the JSON body with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes the {"error": ...} shape every failure path uses.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID keys rate-limit buckets by the caller's IP. X-Forwarded-For
// is deliberately ignored because it is client-controlled unless a trusted
// proxy sets it.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr // no port component, e.g. unix sockets in tests
	}
	return ip
}

// setRateLimitHeaders exposes the client's remaining budget on every limited
// endpoint, not just on 429s, so well-behaved clients can pace themselves.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return // exempt endpoint, nothing to report
	}
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

// rateLimitResponse writes the 429 body. The retry_after field and Retry-After
// header are only present when the limiter could compute a wait time.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	body := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if secs := int(info.RetryAfter.Seconds()); secs > 0 {
		body["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset_at", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, body)
}
