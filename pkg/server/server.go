package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"benlabs/caliper/pkg/config"
	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/ratelimit"
	"benlabs/caliper/pkg/server/handlers"
	"benlabs/caliper/pkg/server/middleware"
	"benlabs/caliper/pkg/telemetry/health"
	"benlabs/caliper/pkg/telemetry/metrics"
)

// Server is the demo web service.
type Server struct {
	cfg      config.ServerConfig
	logger   *slog.Logger
	metrics  *metrics.Collector
	checker  *health.Checker
	runner   *lint.Runner
	registry *lint.Registry
	limiter  *ratelimit.Limiter

	httpServer   *http.Server
	metricsPath  string
	shutdownOnce sync.Once

	mu        sync.Mutex
	isRunning bool
}

// Deps are the collaborators the server wires together.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Collector
	Checker  *health.Checker
	Runner   *lint.Runner
	Registry *lint.Registry

	// MetricsPath is where the scrape endpoint mounts (default
	// "/metrics").
	MetricsPath string
}

// New creates the server. The rate limiter is built from cfg; its
// reset scheduler starts with the server.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		checker:     deps.Checker,
		runner:      deps.Runner,
		registry:    deps.Registry,
		metricsPath: deps.MetricsPath,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.metricsPath == "" {
		s.metricsPath = "/metrics"
	}

	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			DailyCap:          cfg.RateLimit.DailyCap,
			ResetSchedule:     cfg.RateLimit.DailyResetSchedule,
			Logger:            s.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("building rate limiter: %w", err)
		}
		s.limiter = limiter
	}
	return s, nil
}

// Start runs the server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	if s.limiter != nil {
		s.limiter.Start()
	}

	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	if s.cfg.TLS.Enabled {
		s.httpServer.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS13}
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"address", s.cfg.ListenAddress,
			"tls_enabled", s.cfg.TLS.Enabled,
		)

		var err error
		if s.cfg.TLS.Enabled {
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown drains in-flight requests and stops the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info("initiating graceful shutdown", "timeout", s.cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}
		if s.limiter != nil {
			s.limiter.Stop()
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("server stopped")
	})

	return shutdownErr
}

// Routes builds the handler tree and middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", s.checker.LivenessHandler())
	mux.Handle("/ready", s.checker.ReadinessHandler())
	if s.metrics != nil {
		mux.Handle(s.metricsPath, s.metrics.Handler())
	}

	mux.Handle("/api/lint", handlers.NewLintHandler(s.runner, s.cfg.MaxRequestBytes))
	mux.Handle("/api/rules", handlers.NewRulesHandler(s.registry))
	mux.Handle("/api/oscilloscope/stream", handlers.NewOscilloscopeHandler(
		handlers.OscilloscopeConfig{
			SampleRate:     s.cfg.Oscilloscope.SampleRate,
			BatchSize:      s.cfg.Oscilloscope.BatchSize,
			MaxConnections: s.cfg.Oscilloscope.MaxConnections,
			PingInterval:   s.cfg.Oscilloscope.PingInterval,
			CheckOrigin:    s.checkStreamOrigin(),
		},
		s.logger, s.metrics))

	// Innermost to outermost: timeout, rate limit, CORS, security
	// headers, logging, request ID, recovery.
	var handler http.Handler = mux
	handler = middleware.Timeout(s.cfg.WriteTimeout)(handler)
	handler = middleware.RateLimit(s.limiter, s.metrics)(handler)
	handler = middleware.CORS(middleware.CORSConfig{
		Enabled:        s.cfg.CORS.Enabled,
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: s.cfg.CORS.AllowedMethods,
		AllowedHeaders: s.cfg.CORS.AllowedHeaders,
		MaxAge:         s.cfg.CORS.MaxAge,
	})(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Logging(s.logger, s.metrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// checkStreamOrigin accepts WebSocket origins from the CORS allow
// list, falling back to gorilla's same-host default when CORS is off.
func (s *Server) checkStreamOrigin() func(*http.Request) bool {
	if !s.cfg.CORS.Enabled {
		return nil
	}
	allowed := s.cfg.CORS.AllowedOrigins
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
